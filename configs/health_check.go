package configs

type HealthCheck struct {
	Address string `env:"HEALTH_CHECK_ADDRESS" envDefault:":8080"`
}
