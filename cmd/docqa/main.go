package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/helix-labs/docqa-cli/internal/adapters/driving/cli"
)

func main() {
	// Optional .env for local development; a missing file is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
