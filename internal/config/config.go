package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port       int  `env:"PORT" envDefault:"9090"`
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`

	Secret           string `env:"SECRET,required"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	SessionTokenIssuer        string        `env:"SESSION_TOKEN_ISSUER" envDefault:"accountms"`
	SessionTokenAudience      string        `env:"SESSION_TOKEN_AUDIENCE" envDefault:"accountms"`
	SessionTokenValidDuration time.Duration `env:"SESSION_TOKEN_VALID_DURATION" envDefault:"24h"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`

	RabbitmqURL           string `env:"RABBITMQ_URL,required"`
	RabbitmqEmailExchange string `env:"RABBITMQ_EMAIL_EXCHANGE" envDefault:""`
	RabbitmqEmailQueue    string `env:"RABBITMQ_EMAIL_QUEUE" envDefault:"send-email"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// AppURL is the public base URL used to build password reset links.
	AppURL string `env:"APP_URL,required"`

	AwsRegion      string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY,required"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY,required"`
	AwsEmailSender string `env:"AWS_EMAIL_SENDER,required"`

	GoogleRecaptchaSecretKey      string        `env:"GOOGLE_RECAPTCHA_SECRET_KEY" envDefault:""`
	GoogleRecaptchaScoreThreshold float64       `env:"GOOGLE_RECAPTCHA_SCORE_THRESHOLD" envDefault:"0.5"`
	GoogleRecaptchaRequestTimeout time.Duration `env:"GOOGLE_RECAPTCHA_REQUEST_TIMEOUT" envDefault:"5s"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	return config, nil
}
