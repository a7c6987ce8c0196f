// modelc compiles model declarations into relational tables.
//
//	modelc compile schema.graphql --format ddl --dialect postgres
//	modelc apply schema.graphql --dialect sqlite --dsn "file:app.db"
//	modelc watch schema.graphql
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/syssam/modelc/compiler"
	"github.com/syssam/modelc/dialect/sql"
)

// Output formats of the compile and watch commands.
const (
	formatTables   = "tables"
	formatDDL      = "ddl"
	formatSnapshot = "snapshot"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "modelc",
		Short: "Compile model declarations into relational tables",
		Long: `modelc resolves entity, field and relationship declarations (Go builders,
YAML or GraphQL SDL documents) into a table set with primary keys, foreign
keys and join tables, and emits it as tables, DDL or a binary snapshot.`,
		SilenceUsage: true,
	}
	f := root.PersistentFlags()
	f.String("config", "", "config file (default .modelc.yaml in the working directory)")
	f.StringP("dialect", "d", "sqlite", "SQL dialect: sqlite, postgres or mysql")
	f.StringP("format", "f", formatTables, "output format: tables, ddl or snapshot")
	f.StringP("out", "o", "", "write output to a file instead of stdout")
	f.String("dsn", "", "data source name of the database to apply to")
	f.String("log-level", "warn", "log level: debug, info, warn or error")
	f.String("naming", "preserve", "emitted names: preserve or snake")
	f.Int("workers", 0, "field resolution parallelism (0 uses GOMAXPROCS)")
	f.Bool("strict-foreign-keys", false, "required relationships produce non-null foreign keys")

	root.AddCommand(newCompileCmd(), newApplyCmd(), newWatchCmd())
	return root
}

func newCompileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile [files]",
		Short: "Compile declaration files and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			res, err := cfg.compile(cmd.Context())
			if err != nil {
				cfg.logger.Error("compile failed", "err", err)
				return err
			}
			return cfg.write(cmd, res)
		},
	}
}

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply [files]",
		Short: "Compile declaration files and create the tables in a database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			if cfg.DSN == "" {
				return fmt.Errorf("modelc: apply requires --dsn")
			}
			res, err := cfg.compile(cmd.Context())
			if err != nil {
				cfg.logger.Error("compile failed", "err", err)
				return err
			}
			drv, err := sql.Open(cfg.Dialect, cfg.DSN)
			if err != nil {
				return err
			}
			defer drv.Close()
			if err := res.Apply(cmd.Context(), drv, cfg.logger); err != nil {
				cfg.logger.Error("apply failed", "err", err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d tables\n", len(res.Tables))
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [files]",
		Short: "Recompile declaration files whenever they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return cfg.watch(cmd.Context(), func(res *compiler.Result) error {
				return cfg.write(cmd, res)
			})
		},
	}
}

// write renders the result in the configured format to --out or the
// command output.
func (c *config) write(cmd *cobra.Command, res *compiler.Result) error {
	var w io.Writer = cmd.OutOrStdout()
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return render(cmd.Context(), w, c.Format, c.Dialect, res)
}

func render(ctx context.Context, w io.Writer, format, dialect string, res *compiler.Result) error {
	switch format {
	case formatTables:
		for _, t := range res.Tables {
			if _, err := fmt.Fprintln(w, t.String()); err != nil {
				return err
			}
		}
		return nil
	case formatDDL:
		stmts, err := res.DDL(ctx, dialect)
		if err != nil {
			return err
		}
		for _, s := range stmts {
			if _, err := fmt.Fprintln(w, strings.TrimSuffix(s, ";")+";"); err != nil {
				return err
			}
		}
		return nil
	case formatSnapshot:
		b, err := res.Graph.MarshalSnapshot()
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("modelc: unknown format %q", format)
}
