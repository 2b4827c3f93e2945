package configs

type Logger struct {
	AppName string `env:"LOGGER_APP_NAME" envDefault:"team-polls"`
	URL     string `env:"LOKI_URL"`
}
