package main

import (
	"os"

	"github.com/joho/godotenv"

	"docuvet/internal/cli"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(cli.Execute())
}
