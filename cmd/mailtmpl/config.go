package main

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// config is read from the environment and then overridden by flags.
type config struct {
	LogLevel        string `env:"MAILTMPL_LOG_LEVEL" envDefault:"warn"`
	CacheSize       int    `env:"MAILTMPL_CACHE_SIZE" envDefault:"128"`
	ReportFormat    string `env:"MAILTMPL_REPORT_FORMAT" envDefault:"markdown"`
	ReportTemplates string `env:"MAILTMPL_REPORT_TEMPLATES"`
	TemplateDir     string `env:"MAILTMPL_TEMPLATE_DIR"`
}

func loadConfig(environ map[string]string) (config, error) {
	var cfg config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// newLogger builds a development logger for debug and a production logger
// for every other level. Logs go to stderr so stdout carries only output.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
