package engine

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/canvasdoc/internal/config"
	"github.com/ivlev/canvasdoc/internal/loader"
	"github.com/ivlev/canvasdoc/internal/summary"
)

const good = `<canvas width="10" height="10" fps="24">
  <defs>
    <real id="r" value="1"/>
    <animated id="a" type="real">
      <waypoint time="0s" use=":r"/>
      <waypoint time="1s"><real value="2"/></waypoint>
    </animated>
  </defs>
</canvas>`

func writeDocs(t *testing.T, docs map[string]string) (string, map[string]string) {
	t.Helper()
	dir := t.TempDir()
	paths := make(map[string]string)
	for name, body := range docs {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		paths[name] = p
	}
	return dir, paths
}

func newBatch(cfg *config.Config) (*Batch, *bytes.Buffer) {
	l := loader.New(loader.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	b := NewBatch(cfg, l)
	out := &bytes.Buffer{}
	b.Out = out
	b.StatsLog = ""
	return b, out
}

func TestBatchRun(t *testing.T) {
	_, paths := writeDocs(t, map[string]string{
		"a.sif": good,
		"b.sif": good,
		"c.sif": good,
	})

	cfg := config.Default()
	cfg.Workers = 2
	b, out := newBatch(cfg)

	order := []string{paths["c.sif"], paths["a.sif"], paths["b.sif"]}
	reports, err := b.Run(context.Background(), order)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("Expected 3 reports, got %d", len(reports))
	}
	for i, r := range reports {
		if r.Path != order[i] {
			t.Errorf("Report %d: expected path %s, got %s", i, order[i], r.Path)
		}
		if r.Err != nil {
			t.Errorf("Report %d: unexpected error %v", i, r.Err)
		}
		if r.Summary == nil || r.Summary.Counts.ValueNodes != 2 {
			t.Errorf("Report %d: unexpected summary %+v", i, r.Summary)
		}
		if r.SummaryPath != "" {
			t.Errorf("Report %d: no summary dir configured, got %s", i, r.SummaryPath)
		}
	}
	if got := strings.Count(out.String(), "[>] Готово"); got != 3 {
		t.Errorf("Expected 3 progress lines, got %d", got)
	}
	if strings.Contains(out.String(), "PERFORMANCE REPORT") {
		t.Error("Report printed without ShowStats")
	}
}

func TestBatchRun_PartialFailure(t *testing.T) {
	_, paths := writeDocs(t, map[string]string{
		"ok.sif":  good,
		"bad.sif": `<canvas><defs><real id="r"/></defs></canvas>`,
	})

	cfg := config.Default()
	b, _ := newBatch(cfg)

	reports, err := b.Run(context.Background(), []string{paths["ok.sif"], paths["bad.sif"], filepath.Join(t.TempDir(), "missing.sif")})
	if err == nil {
		t.Fatal("Expected an error for failed documents")
	}
	if !strings.Contains(err.Error(), "2 из 3") {
		t.Errorf("Unexpected error message: %v", err)
	}
	if reports[0].Err != nil || reports[0].Result == nil {
		t.Errorf("First document should load, got %v", reports[0].Err)
	}
	if reports[1].Err == nil {
		t.Error("Second document should fail")
	}
	if reports[2].Err == nil {
		t.Error("Missing document should fail")
	}
}

func TestBatchRun_WritesSummaries(t *testing.T) {
	_, paths := writeDocs(t, map[string]string{"scene one.sif": good})

	cfg := config.Default()
	cfg.SummaryDir = filepath.Join(t.TempDir(), "summaries")
	b, _ := newBatch(cfg)

	reports, err := b.Run(context.Background(), []string{paths["scene one.sif"]})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	out := reports[0].SummaryPath
	if !strings.HasPrefix(filepath.Base(out), "scene_one_") {
		t.Errorf("Unexpected summary path %s", out)
	}

	s, err := summary.Read(out)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if s.Source != paths["scene one.sif"] || s.Counts.ValueNodes != 2 {
		t.Errorf("Unexpected summary: %+v", s)
	}

	latest, err := summary.FindLatest(cfg.SummaryDir)
	if err != nil || latest != out {
		t.Errorf("FindLatest = %s, %v; want %s", latest, err, out)
	}
}

func TestBatchRun_Stats(t *testing.T) {
	_, paths := writeDocs(t, map[string]string{"a.sif": good})

	cfg := config.Default()
	cfg.ShowStats = true
	cfg.BuildVersion = "test-build"
	b, out := newBatch(cfg)
	b.StatsLog = filepath.Join(t.TempDir(), "benchmark.log")

	if _, err := b.Run(context.Background(), []string{paths["a.sif"]}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{"--- [PERFORMANCE REPORT] ---", "Build: test-build", "Documents: 1 (failed: 0)", "Value Nodes: 2", "RSS:"} {
		if !strings.Contains(text, want) {
			t.Errorf("Report is missing %q:\n%s", want, text)
		}
	}

	data, err := os.ReadFile(b.StatsLog)
	if err != nil {
		t.Fatalf("Stats log not written: %v", err)
	}
	if !strings.Contains(string(data), "Input: a.sif | Docs: 1") {
		t.Errorf("Unexpected log entry: %s", data)
	}
}

func TestBatchRun_Empty(t *testing.T) {
	b, _ := newBatch(config.Default())
	if _, err := b.Run(context.Background(), nil); err == nil {
		t.Error("Expected an error for an empty batch")
	}
}

func TestBatchRun_Cancelled(t *testing.T) {
	_, paths := writeDocs(t, map[string]string{"a.sif": good})
	b, _ := newBatch(config.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Run(ctx, []string{paths["a.sif"]}); err == nil {
		t.Error("Expected an error for a cancelled context")
	}
}
