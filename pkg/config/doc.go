// Package config loads service configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// optional .env files are merged into the process environment (existing
// variables win), then the environment is parsed into a struct using `env`
// field tags.
//
//	type ServerConfig struct {
//	    Addr      string `env:"HTTP_ADDR" envDefault:":8080"`
//	    FormsFile string `env:"FORMS_FILE,required"`
//	}
//
//	cfg, err := config.Load[ServerConfig]()
//
// A missing default `.env` is not an error. Files passed with WithEnvFiles
// must exist.
package config
