package gen

import (
	"errors"
	"log/slog"
	"runtime"
	"strings"

	"github.com/syssam/modelc/schema/field"
)

// Naming selects how emitted table and column names are derived from
// entity and field names.
type Naming uint8

const (
	// NamingPreserve keeps declared names as they are.
	NamingPreserve Naming = iota
	// NamingSnake snake-cases columns and snake-cases and pluralizes tables
	// ("SteeringWheel" → "steering_wheels", "carId" → "car_id").
	NamingSnake
)

// String returns the name of the naming strategy.
func (n Naming) String() string {
	if n == NamingSnake {
		return "snake"
	}
	return "preserve"
}

// ParseNaming parses a naming strategy name.
func ParseNaming(s string) (Naming, error) {
	switch strings.ToLower(s) {
	case "", "preserve":
		return NamingPreserve, nil
	case "snake":
		return NamingSnake, nil
	}
	return NamingPreserve, NewConfigError("Naming", s, "unsupported naming; use preserve or snake")
}

// Config holds the options of one compilation.
type Config struct {
	// Logger receives debug records of each pipeline stage.
	// Defaults to a logger that discards everything.
	Logger *slog.Logger
	// Workers bounds the number of entities whose fields are resolved
	// concurrently. Defaults to GOMAXPROCS.
	Workers int
	// IDField is the name of the synthesized surrogate identifier.
	IDField string
	// IDType is the kind of the synthesized surrogate identifier.
	IDType *field.TypeInfo
	// StrictForeignKeys makes the foreign keys of required relationships
	// non-null. Off by default: foreign keys are always nullable.
	StrictForeignKeys bool
	// Naming of emitted tables and columns.
	Naming Naming
}

var defaultIDType = &field.TypeInfo{Type: field.TypeID}

// Option configures a compilation.
type Option func(*Config) error

// WithLogger sets the logger of the pipeline.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers bounds the concurrency of field resolution. Zero restores the
// default.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithIDField sets the name and kind of the synthesized surrogate
// identifier. Supported kinds: id, string, integer.
func WithIDField(name string, t field.Type) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("IDField", nil, "identifier field name cannot be empty")
		}
		switch t {
		case field.TypeID, field.TypeString, field.TypeInteger:
		default:
			return NewConfigError("IDField", t.String(), "unsupported identifier kind; use id, string, or integer")
		}
		c.IDField = name
		c.IDType = &field.TypeInfo{Type: t}
		return nil
	}
}

// WithStrictForeignKeys makes required relationships emit non-null foreign
// keys.
func WithStrictForeignKeys(strict bool) Option {
	return func(c *Config) error {
		c.StrictForeignKeys = strict
		return nil
	}
}

// WithNaming sets the naming strategy of emitted tables and columns.
func WithNaming(n Naming) Option {
	return func(c *Config) error {
		if n != NamingPreserve && n != NamingSnake {
			return NewConfigError("Naming", int(n), "unknown naming strategy")
		}
		c.Naming = n
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c *Config) idField() string {
	if c.IDField == "" {
		return "id"
	}
	return c.IDField
}

func (c *Config) idType() *field.TypeInfo {
	if c.IDType == nil {
		return defaultIDType
	}
	return c.IDType
}
