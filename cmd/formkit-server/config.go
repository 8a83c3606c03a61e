package main

import "github.com/dmitrymomot/formkit/pkg/httpserver"

// Config is loaded from the environment (and an optional .env file).
type Config struct {
	httpserver.Config

	FormsFile    string `env:"FORMS_FILE" envDefault:"forms.yaml"`
	MessagesFile string `env:"MESSAGES_FILE"`
	AppEnv       string `env:"APP_ENV" envDefault:"development"`
	LogLevel     string `env:"LOG_LEVEL"`
	ServiceName  string `env:"SERVICE_NAME" envDefault:"formkit"`
	MaxMemory    int64  `env:"MULTIPART_MAX_MEMORY" envDefault:"10485760"`
}
