package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/ivlev/canvasdoc/internal/config"
	"github.com/ivlev/canvasdoc/internal/loader"
	"github.com/ivlev/canvasdoc/internal/metrics"
)

// Version is set at build time with -ldflags.
var Version = "dev"

var (
	cfgFile   string
	logLevel  string
	logFormat string
	strict    bool
)

var rootCmd = &cobra.Command{
	Use:   "canvasdoc",
	Short: "Загрузчик документов векторной анимации",
	Long: `canvasdoc разбирает документы canvas (.sif, .xml) в дерево объектов:
вложенные холсты, определения, анимированные значения, списки и слои.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Путь к YAML конфигурации (по умолчанию: встроенные значения)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Уровень логов: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Формат логов: text, json")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Строгий режим: предупреждения становятся ошибками")
}

// loadConfig reads the config file and applies the global flags over it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("strict") {
		cfg.Strict = strict
	}
	cfg.BuildVersion = Version

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLoader builds a loader with logging and metrics from cfg. The metrics
// registry is returned for dumping after the run.
func newLoader(cfg *config.Config) (*loader.Loader, *prometheus.Registry, *slog.Logger) {
	logger := cfg.NewLogger(os.Stderr)
	reg := prometheus.NewRegistry()
	l := loader.New(loader.Options{
		Strict:  cfg.Strict,
		Logger:  logger,
		Metrics: metrics.NewCollector(cfg.MetricsNamespace, reg),
	})
	return l, reg, logger
}

// writeMetrics prints the registry in the Prometheus text format.
func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
