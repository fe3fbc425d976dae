// Package engine loads batches of documents concurrently.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/canvasdoc/internal/config"
	"github.com/ivlev/canvasdoc/internal/loader"
	"github.com/ivlev/canvasdoc/internal/summary"
	"github.com/ivlev/canvasdoc/internal/system"
)

// Report is the outcome of loading one document.
type Report struct {
	Path        string
	Result      *loader.Result
	Summary     *summary.Summary
	SummaryPath string
	Duration    time.Duration
	Err         error
}

// Batch loads a set of documents with a shared Loader. Each document gets
// its own parser and registry.
type Batch struct {
	Config *config.Config
	Loader *loader.Loader
	// Out receives progress and the performance report. Defaults to stdout.
	Out io.Writer
	// StatsLog is the file the report line is appended to.
	StatsLog string
}

func NewBatch(cfg *config.Config, l *loader.Loader) *Batch {
	return &Batch{
		Config:   cfg,
		Loader:   l,
		Out:      os.Stdout,
		StatsLog: "benchmark.log",
	}
}

// Run loads paths with at most Config.Workers loads in flight. Reports are
// returned in the order of paths. A failed document does not stop the
// others; Run returns an error when any of them failed.
func (b *Batch) Run(ctx context.Context, paths []string) ([]Report, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("нет документов для загрузки")
	}
	startTime := time.Now()

	if b.Config.SummaryDir != "" {
		if err := os.MkdirAll(b.Config.SummaryDir, 0755); err != nil {
			return nil, fmt.Errorf("не удалось создать папку для сводок: %w", err)
		}
	}

	workers := b.Config.Workers
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	reports := make([]Report, len(paths))
	var done atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = b.loadOne(path)
			if err := reports[i].Err; err != nil {
				log.Printf("[!] Ошибка загрузки %s: %v", path, err)
			}
			fmt.Fprintf(b.Out, "[>] Готово: %d/%d\n", done.Add(1), len(paths))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}

	if b.Config.ShowStats {
		b.printStats(reports, time.Since(startTime))
	}

	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return reports, fmt.Errorf("не удалось загрузить %d из %d документов. Проверьте логи", failed, len(paths))
	}
	return reports, nil
}

func (b *Batch) loadOne(path string) Report {
	start := time.Now()
	rep := Report{Path: path}

	buf := system.GetBuffer()
	defer system.PutBuffer(buf)

	if err := readInto(buf, path); err != nil {
		rep.Err = err
		rep.Duration = time.Since(start)
		return rep
	}

	res, err := b.Loader.Load(bytes.NewReader(buf.Bytes()))
	rep.Duration = time.Since(start)
	if err != nil {
		rep.Err = fmt.Errorf("%s: %w", path, err)
		return rep
	}
	rep.Result = res
	rep.Summary = summary.Build(res, path)

	if b.Config.SummaryDir != "" {
		out := summary.Path(b.Config.SummaryDir, path)
		if err := summary.Write(rep.Summary, out); err != nil {
			rep.Err = fmt.Errorf("ошибка записи сводки %s: %w", out, err)
			return rep
		}
		rep.SummaryPath = out
	}
	return rep
}

func readInto(buf *bytes.Buffer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()
	_, err = buf.ReadFrom(f)
	return err
}

func (b *Batch) printStats(reports []Report, total time.Duration) {
	var docs, failed, nodes, diags int
	var loadTime time.Duration
	for _, r := range reports {
		loadTime += r.Duration
		if r.Err != nil {
			failed++
			continue
		}
		docs++
		if r.Summary != nil {
			nodes += r.Summary.Counts.ValueNodes
		}
		diags += len(r.Result.Diagnostics)
	}
	perSecond := float64(docs) / total.Seconds()

	rss, cpu := processUsage()
	sysMem := "n/a"
	if vm, err := mem.VirtualMemory(); err == nil {
		sysMem = fmt.Sprintf("%.1f%%", vm.UsedPercent)
	}

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Load Time (sum): %.2fs\n"+
			"Documents: %d (failed: %d)\n"+
			"Value Nodes: %d\n"+
			"Warnings: %d\n"+
			"Docs/sec: %.2f\n"+
			"RSS: %s | CPU: %s | System Memory: %s\n"+
			"----------------------------\n",
		b.Config.BuildVersion, total.Seconds(), loadTime.Seconds(), docs, failed, nodes, diags, perSecond, rss, cpu, sysMem,
	)
	fmt.Fprint(b.Out, report)

	if b.StatsLog == "" {
		return
	}
	logEntry := fmt.Sprintf("[%s] Build: %s | Input: %s | Docs: %d | Failed: %d | Nodes: %d | Total: %.2fs | Docs/sec: %.2f | RSS: %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		b.Config.BuildVersion,
		filepath.Base(reports[0].Path),
		docs,
		failed,
		nodes,
		total.Seconds(),
		perSecond,
		rss,
	)

	f, err := os.OpenFile(b.StatsLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Fprintf(b.Out, "[!] Не удалось записать %s: %v\n", b.StatsLog, err)
	}
}

// processUsage returns the resident set size and CPU usage of this
// process, formatted for the report.
func processUsage() (rss, cpu string) {
	rss, cpu = "n/a", "n/a"
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}
	if info, err := proc.MemoryInfo(); err == nil {
		rss = fmt.Sprintf("%.1f MB", float64(info.RSS)/(1<<20))
	}
	if pct, err := proc.CPUPercent(); err == nil {
		cpu = fmt.Sprintf("%.1f%%", pct)
	}
	return
}
