package configs

import "time"

// Webhook receives final results of closed polls as JSON. Empty URL disables it.
type Webhook struct {
	URL      string        `env:"RESULTS_WEBHOOK_URL"`
	Timeout  time.Duration `env:"RESULTS_WEBHOOK_TIMEOUT" envDefault:"10s"`
	Attempts uint          `env:"RESULTS_WEBHOOK_ATTEMPTS" envDefault:"3"`
}

func (c Webhook) Enabled() bool {
	return c.URL != ""
}
