package model

import (
	"strings"
	"testing"
	"time"
)

func validComment() *Comment {
	return &Comment{
		ID:          "c-1",
		ReportID:    "r-1",
		AuthorID:    "u-1",
		AvatarColor: "#3366ff",
		Message:     "Confirmo a situação.",
		Role:        "user",
		CreatedAt:   testNow.AddDate(0, 0, -1),
	}
}

// TestComment_Validate cobre as regras de domínio do comentário,
// incluindo o limite exato de 500 caracteres da mensagem.
func TestComment_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Comment)
		wantField string
	}{
		{
			name:      "valid",
			mutate:    func(c *Comment) {},
			wantField: "",
		},
		{
			name:      "missing report reference",
			mutate:    func(c *Comment) { c.ReportID = "" },
			wantField: "reportId",
		},
		{
			name:      "missing author reference",
			mutate:    func(c *Comment) { c.AuthorID = "" },
			wantField: "authorId",
		},
		{
			name:      "missing avatar color",
			mutate:    func(c *Comment) { c.AvatarColor = "" },
			wantField: "avatarColor",
		},
		{
			name:      "empty message",
			mutate:    func(c *Comment) { c.Message = "   " },
			wantField: "message",
		},
		{
			name:      "message at the 500 character limit",
			mutate:    func(c *Comment) { c.Message = strings.Repeat("m", 500) },
			wantField: "",
		},
		{
			name:      "message one character over the limit",
			mutate:    func(c *Comment) { c.Message = strings.Repeat("m", 501) },
			wantField: "message",
		},
		{
			name:      "accented message at the 500 character limit",
			mutate:    func(c *Comment) { c.Message = strings.Repeat("ção", 166) + "çã" },
			wantField: "",
		},
		{
			name:      "accented message one character over the limit",
			mutate:    func(c *Comment) { c.Message = strings.Repeat("ção", 167) },
			wantField: "message",
		},
		{
			name:      "missing role",
			mutate:    func(c *Comment) { c.Role = "" },
			wantField: "role",
		},
		{
			name:      "created in the future beyond tolerance",
			mutate:    func(c *Comment) { c.CreatedAt = testNow.Add(10 * time.Minute) },
			wantField: "createdAt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validComment()
			tt.mutate(c)

			err := c.Validate(testNow)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want violation on %q", tt.wantField)
			}
			if err.Field != tt.wantField {
				t.Errorf("Validate().Field = %q, want %q", err.Field, tt.wantField)
			}
		})
	}
}
