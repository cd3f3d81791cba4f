package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/cidade-integra/cidade-integra-backend/internal/app"
)

func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente.
	_ = godotenv.Load()

	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
