package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modelc/compiler"
	"github.com/syssam/modelc/compiler/gen"
)

var amplify = filepath.Join("..", "..", "compiler", "load", "testdata", "amplify.graphql")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCompileTables(t *testing.T) {
	out, err := execute(t, "compile", amplify)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "List(id id!, title string!"), lines[0])
	assert.Equal(t, "X(pizzaId id!->Pizza, toppingId id!->Topping) pk(pizzaId, toppingId)", lines[7])
}

func TestCompileSnakeNaming(t *testing.T) {
	out, err := execute(t, "compile", amplify, "--naming", "snake")
	require.NoError(t, err)
	assert.Contains(t, out, "steering_wheels(id id!, car_id id->cars) pk(id)")
}

func TestCompileDDL(t *testing.T) {
	out, err := execute(t, "compile", amplify, "--format", "ddl", "--dialect", "postgres")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE")
	assert.Contains(t, out, "jsonb")
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.True(t, strings.HasSuffix(line, ";"), line)
	}
}

func TestCompileSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.msgpack")
	out, err := execute(t, "compile", amplify, "--format", "snapshot", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s, err := gen.DecodeSnapshot(b)
	require.NoError(t, err)
	assert.Len(t, s.Nodes, 8)
	_, ok := s.Node("SteeringWheel")
	assert.True(t, ok)
}

func TestCompileEnv(t *testing.T) {
	t.Setenv("MODELC_FORMAT", "ddl")
	t.Setenv("MODELC_DIALECT", "mysql")
	out, err := execute(t, "compile", amplify)
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE `List`")

	// Flags take precedence over the environment.
	out, err = execute(t, "compile", amplify, "--format", "tables")
	require.NoError(t, err)
	assert.NotContains(t, out, "CREATE TABLE")
}

func TestCompileConfigFile(t *testing.T) {
	abs, err := filepath.Abs(amplify)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "modelc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: ddl\ndialect: sqlite\nfiles:\n  - "+abs+"\n"), 0o644))

	out, err := execute(t, "compile", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE")
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no files", args: []string{"compile"}, want: "no declaration files"},
		{name: "format", args: []string{"compile", amplify, "--format", "xml"}, want: `unknown format "xml"`},
		{name: "dialect", args: []string{"compile", amplify, "--dialect", "oracle"}, want: "unsupported dialect"},
		{name: "log level", args: []string{"compile", amplify, "--log-level", "loud"}, want: "log level"},
		{name: "naming", args: []string{"compile", amplify, "--naming", "kebab"}, want: "kebab"},
		{name: "workers", args: []string{"compile", amplify, "--workers", "-1"}, want: "workers cannot be negative"},
		{name: "missing file", args: []string{"compile", "missing.graphql"}, want: "missing.graphql"},
		{name: "config file", args: []string{"compile", amplify, "--config", "missing.yaml"}, want: "read config"},
		{name: "apply without dsn", args: []string{"apply", amplify}, want: "requires --dsn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApply(t *testing.T) {
	out, err := execute(t, "apply", amplify, "--dialect", "sqlite", "--dsn", "file:cli?mode=memory&_pragma=foreign_keys(1)")
	require.NoError(t, err)
	assert.Equal(t, "applied 8 tables\n", out)
}

// syncBuffer collects the output of the watch loop.
type syncBuffer struct {
	mu      sync.Mutex
	results []*compiler.Result
}

func (b *syncBuffer) add(res *compiler.Result) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results = append(b.results, res)
	return nil
}

func (b *syncBuffer) last() (int, *compiler.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.results) == 0 {
		return 0, nil
	}
	return len(b.results), b.results[len(b.results)-1]
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  - name: List\n"), 0o644))

	root := newRootCmd()
	root.SetErr(&bytes.Buffer{})
	cmd, _, err := root.Find([]string{"watch"})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags(nil))
	cfg, err := loadConfig(cmd, []string{path})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	buf := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- cfg.watch(ctx, buf.add) }()

	require.Eventually(t, func() bool {
		n, _ := buf.last()
		return n == 1
	}, 5*time.Second, 10*time.Millisecond)

	// An invalid document is logged and skipped.
	require.NoError(t, os.WriteFile(path, []byte("models: [\n"), 0o644))
	time.Sleep(3 * debounce)
	require.NoError(t, os.WriteFile(path, []byte("models:\n  - name: List\n  - name: Todo\n"), 0o644))

	require.Eventually(t, func() bool {
		_, res := buf.last()
		return res != nil && len(res.Tables) == 2
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
