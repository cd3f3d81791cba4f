// Package source provê a leitura do banco de documentos de origem da
// migração.
package source

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document é um documento bruto da origem: o identificador externo e
// um mapa não ordenado de campos dinamicamente tipados. Os acessores
// nunca falham; valores ausentes ou de tipo inesperado resolvem para o
// default informado. A validação de domínio acontece depois, sobre o
// registro mapeado.
type Document struct {
	ID     string
	Fields map[string]any
}

// String retorna o campo como string ou def quando ausente ou de outro
// tipo.
func (d Document) String(key, def string) string {
	if v, ok := d.Fields[key].(string); ok {
		return v
	}
	return def
}

// Int retorna o campo como int, aceitando os tipos numéricos que o
// driver BSON produz. Retorna def quando ausente ou não numérico.
func (d Document) Int(key string, def int) int {
	switch v := d.Fields[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Float retorna o campo como float64. Retorna def quando ausente ou
// não numérico.
func (d Document) Float(key string, def float64) float64 {
	switch v := d.Fields[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// Bool retorna o campo como bool ou def quando ausente ou de outro
// tipo.
func (d Document) Bool(key string, def bool) bool {
	if v, ok := d.Fields[key].(bool); ok {
		return v
	}
	return def
}

// Time retorna o campo como data. Aceita o timestamp nativo da origem
// ou uma string RFC 3339; valores ausentes ou não interpretáveis
// resolvem para def.
func (d Document) Time(key string, def time.Time) time.Time {
	if t, ok := parseTime(d.Fields[key]); ok {
		return t
	}
	return def
}

// OptionalTime retorna o campo como data opcional: nil quando ausente
// ou não interpretável.
func (d Document) OptionalTime(key string) *time.Time {
	if t, ok := parseTime(d.Fields[key]); ok {
		return &t
	}
	return nil
}

// parseTime interpreta o valor dinâmico como data.
func parseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

// FirstString achata um campo de lista para seu primeiro elemento
// string. Lista ausente ou vazia resolve para a string vazia. Usado
// para campos de imagem: a origem aceita múltiplas URLs, o destino
// armazena apenas a primeira.
func (d Document) FirstString(key string) string {
	switch list := d.Fields[key].(type) {
	case primitive.A:
		for _, item := range list {
			if s, ok := item.(string); ok {
				return s
			}
		}
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				return s
			}
		}
	case []string:
		if len(list) > 0 {
			return list[0]
		}
	}
	return ""
}

// Map retorna o campo como sub-documento aninhado. O segundo retorno
// indica se o campo existe e é um mapa.
func (d Document) Map(key string) (Document, bool) {
	switch m := d.Fields[key].(type) {
	case map[string]any:
		return Document{Fields: m}, true
	case primitive.M:
		return Document{Fields: m}, true
	default:
		return Document{}, false
	}
}
