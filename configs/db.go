package configs

type DB struct {
	URL             string `env:"DATABASE_URL,notEmpty"`
	ConnectAttempts uint   `env:"DATABASE_CONNECT_ATTEMPTS" envDefault:"5"`
	MigrationsDir   string `env:"DATABASE_MIGRATIONS_DIR" envDefault:"migrations"`
}
