// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv, which reads optional .env files into
// the process environment, with github.com/caarlos0/env/v11, which parses the
// environment into structs annotated with env tags. Each configuration type is
// parsed once and cached; WithPrefix loads the same type under a key prefix
// and caches it separately.
//
// # Usage
//
//	var cookies cookie.Config
//	if err := config.Load(&cookies); err != nil {
//	    log.Fatal(err)
//	}
//
//	var sessions session.Config
//	config.MustLoad(&sessions)
//
//	var admin session.Config
//	config.MustLoad(&admin, config.WithPrefix("ADMIN_"))
//
// LoadEnv reads extra .env files before the first Load. ResetCache clears the
// cache between tests.
package config
