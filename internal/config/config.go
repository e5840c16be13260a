package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"APP_ENV" envDefault:"development"`

	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBHost     string `env:"DB_HOST,required"` // hostname, or an absolute socket path
	DBName     string `env:"DB_NAME,required"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`

	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID,required"`
	StorageBucket     string `env:"STORAGE_BUCKET,required"`

	// SchedulerSecret signs the account-deletion callback token issued to
	// the external job scheduler.
	SchedulerSecret      string        `env:"SCHEDULER_SECRET,required"`
	AccountDeletionDelay time.Duration `env:"ACCOUNT_DELETION_DELAY" envDefault:"168h"`
}

func (c *Config) Dev() bool {
	return c.Env == "development"
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
