package app

// Command representa o modo de execução da aplicação.
type Command string

const (
	// CommandServe inicia o servidor da API.
	CommandServe Command = "serve"
	// CommandMigrate aplica as migrações de schema do banco relacional.
	CommandMigrate Command = "migrate"
	// CommandCleanup executa o expurgo da trilha de auditoria.
	CommandCleanup Command = "cleanup"
	// CommandHealthcheck verifica a saúde do servidor em execução.
	// Usado como healthcheck do Docker em ambiente distroless.
	CommandHealthcheck Command = "healthcheck"
)

// ParseCommand interpreta o subcomando dos argumentos de linha de
// comando. Sem argumentos ou com comando desconhecido retorna
// CommandServe.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "serve":
		return CommandServe
	case "migrate":
		return CommandMigrate
	case "cleanup":
		return CommandCleanup
	case "healthcheck":
		return CommandHealthcheck
	default:
		return CommandServe
	}
}
