package main

import (
	"os"

	"github.com/joho/godotenv"
)

// version is set via ldflags during build
var version = "dev"

func main() {
	// A missing .env is fine; the environment may already be configured.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
