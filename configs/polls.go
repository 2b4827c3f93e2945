package configs

type Polls struct {
	VoterTokenSecret      string `env:"VOTER_TOKEN_SECRET,notEmpty"`
	MaxPollsPerUserPerDay int    `env:"POLLS_MAX_PER_USER_PER_DAY" envDefault:"5"`
}
