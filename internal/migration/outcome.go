package migration

import "fmt"

// CollectionOutcome acumula os contadores de uma coleção durante uma
// execução da migração. Skipped cobre documentos rejeitados por
// validação, por dependência não resolvida ou por falha de persistência
// individual.
type CollectionOutcome struct {
	Created int
	Updated int
	Skipped int
}

// Outcome é o resultado agregado de uma execução da migração.
// Efêmero: retornado ao chamador e refletido na trilha de auditoria.
type Outcome struct {
	Users    CollectionOutcome
	Reports  CollectionOutcome
	Comments CollectionOutcome
}

// Summary descreve o resultado em uma frase, usada na resposta HTTP e
// no registro de auditoria de conclusão.
func (o *Outcome) Summary() string {
	return fmt.Sprintf(
		"usuários: %d criados, %d atualizados, %d ignorados; "+
			"denúncias: %d criadas, %d atualizadas, %d ignoradas; "+
			"comentários: %d criados, %d existentes, %d ignorados",
		o.Users.Created, o.Users.Updated, o.Users.Skipped,
		o.Reports.Created, o.Reports.Updated, o.Reports.Skipped,
		o.Comments.Created, o.Comments.Updated, o.Comments.Skipped,
	)
}
