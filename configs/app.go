package configs

type App struct {
	Environment   string   `env:"ENVIRONMENT,notEmpty"`
	InitialAdmins []string `env:"INITIAL_ADMINS" envSeparator:","`
}

func (c App) IsDevEnvironment() bool {
	return c.Environment == "dev"
}

func (c App) IsInitialAdmin(userID string) bool {
	for _, admin := range c.InitialAdmins {
		if admin == userID {
			return true
		}
	}
	return false
}
