package config

import (
	"time"
)

// DataLoader tunes the per-request loaders.
type DataLoader struct {
	Wait     time.Duration `default:"250us"`
	MaxBatch int           `split_words:"true" default:"100"`
}
