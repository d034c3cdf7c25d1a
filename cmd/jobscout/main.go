package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Credentials (Mongo, SMTP, OpenAI) may live in a local .env file.
	// A missing file is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
