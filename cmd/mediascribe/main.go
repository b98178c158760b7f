package main

import (
	"os"

	"github.com/joho/godotenv"
	"mediascribe/internal/cli"
)

func main() {
	// Optional; API keys usually come from the environment directly.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
