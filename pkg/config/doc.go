// Package config loads application configuration from environment variables
// into tagged structs, wrapping github.com/joho/godotenv for .env files and
// github.com/caarlos0/env for parsing.
//
// Each component owns its Config struct (see pkg/db, pkg/httpserver,
// pkg/redis) and main wires them together:
//
//	var dbCfg db.Config
//	config.MustLoad(&dbCfg)
package config
