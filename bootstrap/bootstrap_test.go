package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxfl/SelectorFramework/config"
	"github.com/maxfl/SelectorFramework/pipeline"
)

// countReader emits a fixed number of records then reports end-of-file.
type countReader struct {
	pipeline.BaseAlgorithm
	limit int
	seen  int
}

func (r *countReader) Reader() bool { return true }
func (r *countReader) Execute() (pipeline.Status, error) {
	r.seen++
	if r.seen >= r.limit {
		return pipeline.EndOfFile, nil
	}
	return pipeline.Continue, nil
}
func (r *countReader) Ready() bool { return r.seen > 0 }
func (r *countReader) Data() int   { return r.seen }

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := &config.Config{} // missing name and definition
	if _, err := New(cfg, pipeline.NewRegistry()); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestApp_Run(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.dat")
	writeFiles(t, dir, map[string]string{
		"counting.yaml": `
name: counting
algorithms:
  - component: count-reader
outputs:
  - path: ` + outPath + `
`,
	})

	registry := pipeline.NewRegistry()
	registry.RegisterAlgorithm("count-reader", func() (pipeline.Algorithm, error) {
		return &countReader{limit: 3}, nil
	})

	cfg := &config.Config{Name: "test-run"}
	cfg.Pipeline.Definition = "counting"
	cfg.Pipeline.Dirs = []string{dir}
	cfg.Logging.Output = "stderr"

	app, err := New(cfg, registry)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("expected output file to exist: %v", err)
	}
}

func TestApp_Run_UnknownDefinition(t *testing.T) {
	cfg := &config.Config{Name: "test-run"}
	cfg.Pipeline.Definition = "missing"
	cfg.Pipeline.Dirs = []string{t.TempDir()}

	app, err := New(cfg, pipeline.NewRegistry())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := app.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing definition")
	}
}

func TestApp_Run_UnknownComponent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"p.yaml": "name: p\nalgorithms:\n  - component: nobody\n",
	})

	cfg := &config.Config{Name: "test-run"}
	cfg.Pipeline.Definition = "p"
	cfg.Pipeline.Dirs = []string{dir}

	app, err := New(cfg, pipeline.NewRegistry())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := app.Run(context.Background()); err == nil {
		t.Fatal("expected error for unregistered component")
	}
}
