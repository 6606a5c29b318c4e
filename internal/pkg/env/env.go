// Package env layers configuration lookups: values loaded from an optional
// .env file shadow the process environment, which in turn shadows the
// caller's default.
package env

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var fileEnv map[string]string

// GetEnv returns the configured value for key. A value from the loaded .env
// file wins over the process environment; def is returned when neither is set.
func GetEnv(key, def string) string {
	if val, ok := fileEnv[key]; ok {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the first .env file found relative to the working
// directory. Containerized deployments usually ship without one and configure
// everything through the process environment, so a missing file is not fatal.
func SetupEnvFile() {
	candidates := []string{
		".env",
		"../../.env", // from cmd/cartfox or cmd/migrate
		"../../../.env",
	}
	for _, candidate := range candidates {
		if parsed, err := godotenv.Read(candidate); err == nil {
			fileEnv = parsed
			return
		}
	}
	log.Println("no .env file found, using process environment only")
}

// IsDev reports whether the app runs with APP_ENV=dev.
func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
