package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syssam/modelc/compiler"
	"github.com/syssam/modelc/compiler/gen"
	"github.com/syssam/modelc/dialect"
)

// config is the resolved command configuration. Flags take precedence over
// MODELC_* environment variables, which take precedence over the config
// file.
type config struct {
	Files             []string
	Dialect           string
	Format            string
	Out               string
	DSN               string
	LogLevel          string
	Naming            string
	Workers           int
	StrictForeignKeys bool

	logger *slog.Logger
}

func loadConfig(cmd *cobra.Command, args []string) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix("MODELC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("modelc: read config: %w", err)
		}
	} else {
		v.SetConfigName(".modelc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("modelc: read config: %w", err)
		}
	}

	d, err := dialect.Parse(v.GetString("dialect"))
	if err != nil {
		return nil, err
	}
	c := &config{
		Files:             args,
		Dialect:           d,
		Format:            v.GetString("format"),
		Out:               v.GetString("out"),
		DSN:               v.GetString("dsn"),
		LogLevel:          v.GetString("log-level"),
		Naming:            v.GetString("naming"),
		Workers:           v.GetInt("workers"),
		StrictForeignKeys: v.GetBool("strict-foreign-keys"),
	}
	if len(c.Files) == 0 {
		c.Files = v.GetStringSlice("files")
	}
	if len(c.Files) == 0 {
		return nil, fmt.Errorf("modelc: no declaration files given")
	}
	switch c.Format {
	case formatTables, formatDDL, formatSnapshot:
	default:
		return nil, fmt.Errorf("modelc: unknown format %q", c.Format)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("modelc: log level: %w", err)
	}
	c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return c, nil
}

// options returns the compiler options of the configuration.
func (c *config) options() ([]gen.Option, error) {
	naming, err := gen.ParseNaming(c.Naming)
	if err != nil {
		return nil, err
	}
	opts := []gen.Option{
		gen.WithLogger(c.logger),
		gen.WithNaming(naming),
		gen.WithStrictForeignKeys(c.StrictForeignKeys),
		gen.WithWorkers(c.Workers),
	}
	return opts, nil
}

func (c *config) compile(ctx context.Context) (*compiler.Result, error) {
	opts, err := c.options()
	if err != nil {
		return nil, err
	}
	res, err := compiler.CompileFiles(ctx, c.Files, opts...)
	if err != nil {
		return nil, err
	}
	c.logger.Info("compiled", "files", len(c.Files), "tables", len(res.Tables))
	return res, nil
}
