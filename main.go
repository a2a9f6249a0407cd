package main

import (
	"github.com/joho/godotenv"

	"schedbot/cmd"
)

// version will be set by goreleaser during build
var version = "dev"

func main() {
	// Load .env if present; real env vars win.
	_ = godotenv.Load()

	// Set the version from build-time variable
	cmd.SetVersion(version)

	// Execute the root command
	cmd.Execute()
}
