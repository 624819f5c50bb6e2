package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port                   string `env:"PORT" envDefault:"8080"`
	DBUser                 string `env:"DB_USER,required"`
	DBPassword             string `env:"DB_PASSWORD,required"`
	DBHost                 string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME,required"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	JWTSecret       string `env:"JWT_SECRET,required"`
	TokenTTLHours   int    `env:"TOKEN_TTL_HOURS" envDefault:"24"`
	BcryptCost      int    `env:"BCRYPT_COST" envDefault:"10"`
	DefaultPlanName string `env:"DEFAULT_PLAN_NAME" envDefault:"basic"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
