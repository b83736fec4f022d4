package config

import (
	"fmt"
)

// DebugServer serves pprof and the prometheus metrics, off by default.
type DebugServer struct {
	Enabled     bool   `default:"false"`
	Host        string `default:"127.0.0.1"`
	Port        uint16 `default:"6060"`
	MetricsPath string `split_words:"true" default:"/metrics"`
}

func (s *DebugServer) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
