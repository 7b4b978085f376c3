// Package config loads environment-driven configuration into tagged structs.
//
// It wraps github.com/caarlos0/env for parsing and github.com/joho/godotenv
// for optional .env files.
package config
