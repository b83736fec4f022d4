package config

import (
	"time"
)

type BoltDB struct {
	Path    string        `default:"teamboard.db"`
	Timeout time.Duration `default:"5s"`
}
