package main

import (
	"time"

	"github.com/tinytelemetry/sshmon/internal/timeseries"
)

const (
	defaultBindHost      = "127.0.0.1"
	defaultAPIPort       = 3000
	defaultQueryTimeout  = 30 * time.Second
	defaultReferenceYear = timeseries.DefaultReferenceYear
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	DataPath      string        `mapstructure:"data"`
	ColumnMapping string        `mapstructure:"column-mapping"`
	ReferenceYear int           `mapstructure:"reference-year"`
	TUIEnabled    bool          `mapstructure:"tui"`
	APIEnabled    bool          `mapstructure:"api-enabled"`
	APIPort       int           `mapstructure:"api-port"`
	APIAddr       string        `mapstructure:"api-addr"`
	QueryTimeout  time.Duration `mapstructure:"query-timeout"`
	ConfigPath    string        `mapstructure:"-"` // not from config file
}
