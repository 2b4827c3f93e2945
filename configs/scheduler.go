package configs

import "time"

type Scheduler struct {
	Interval  time.Duration `env:"SCHEDULER_INTERVAL" envDefault:"30s"`
	BatchSize int           `env:"SCHEDULER_BATCH_SIZE" envDefault:"100"`
}
