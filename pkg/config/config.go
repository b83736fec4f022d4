package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	BoltDB                     *BoltDB       `split_words:"true"`
	HttpServer                 *HttpServer   `split_words:"true"`
	DebugServer                *DebugServer  `split_words:"true"`
	DataLoader                 *DataLoader   `split_words:"true"`
	Initial                    *Initial      `split_words:"true"`
	CorsAllowedOrigins         []string      `split_words:"true" default:"*"`
	CorsAllowCredentials       bool          `split_words:"true" default:"true"`
	SubscriptionAllowedOrigins []string      `split_words:"true" default:"*"`
	JwtSecret                  string        `required:"true" split_words:"true"`
	JwtDuration                time.Duration `split_words:"true" default:"8h"`
	LogLevel                   string        `split_words:"true" default:"info"`
}

func Load(prefix string) (*Config, error) {
	prefix = strings.ToUpper(prefix)
	prefix = strings.ReplaceAll(prefix, "-", "_")
	prefix = strings.ReplaceAll(prefix, " ", "_")
	var config Config
	if err := envconfig.Process(prefix, &config); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	return &config, nil
}

func (c *Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
