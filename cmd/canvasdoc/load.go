package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/canvasdoc/internal/engine"
	"github.com/ivlev/canvasdoc/internal/system"
)

var loadFlags struct {
	summaryOut  string
	workers     int
	stats       bool
	showMetrics bool
}

var loadCmd = &cobra.Command{
	Use:   "load [files...]",
	Short: "Загрузить документы и вывести сводку",
	Long: `Загружает документы параллельно. Без аргументов берется самый свежий
документ из input_dir (по умолчанию input/).`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadFlags.summaryOut, "summary-out", "", "Папка для YAML сводок (если пусто, сводки не пишутся)")
	loadCmd.Flags().IntVar(&loadFlags.workers, "workers", 0, "Потоки (0 - из конфигурации)")
	loadCmd.Flags().BoolVar(&loadFlags.stats, "stats", false, "Показать отчет о производительности")
	loadCmd.Flags().BoolVar(&loadFlags.showMetrics, "metrics", false, "Вывести метрики Prometheus после загрузки")
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if loadFlags.workers > 0 {
		cfg.Workers = loadFlags.workers
	}
	if loadFlags.summaryOut != "" {
		cfg.SummaryDir = loadFlags.summaryOut
	}
	if loadFlags.stats {
		cfg.ShowStats = true
	}

	paths := args
	if len(paths) == 0 {
		latest, err := system.FindLatestDocument(cfg.InputDir)
		if err != nil {
			return fmt.Errorf("%v. Положите документ в %s/", err, cfg.InputDir)
		}
		fmt.Printf("[*] Выбран файл: %s\n", latest)
		paths = []string{latest}
	}

	if len(paths) > 64 {
		system.InitResourceLimits(uint64(len(paths)) * 4)
	}

	l, reg, _ := newLoader(cfg)
	fmt.Println("--- [CANVASDOC: BATCH LOAD] ---")
	fmt.Printf("[*] Документов: %d | Потоков: %d | Строгий режим: %v\n", len(paths), cfg.Workers, cfg.Strict)
	fmt.Println("-----------------------------")

	reports, runErr := engine.NewBatch(cfg, l).Run(context.Background(), paths)
	for _, r := range reports {
		if r.Err != nil || r.Summary == nil {
			continue
		}
		c := r.Summary.Counts
		fmt.Printf("[+++] %s: холстов %d, узлов %d, слоев %d, ключевых кадров %d, предупреждений %d\n",
			r.Path, c.Canvases, c.ValueNodes, c.Layers, c.Keyframes, len(r.Summary.Diagnostics))
		for _, d := range r.Summary.Diagnostics {
			fmt.Printf("    [!] %s\n", d)
		}
		if r.SummaryPath != "" {
			fmt.Printf("    [*] Сводка сохранена: %s\n", r.SummaryPath)
		}
	}

	if loadFlags.showMetrics {
		if err := writeMetrics(os.Stdout, reg); err != nil {
			return fmt.Errorf("ошибка вывода метрик: %w", err)
		}
	}
	return runErr
}
