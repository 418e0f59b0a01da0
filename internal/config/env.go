package config

import (
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFile loads a .env file from the working directory if present, so
// ${VAR} references in the YAML config can be resolved without exporting
// variables in the shell.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}
