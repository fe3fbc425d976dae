package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ivlev/canvasdoc/internal/summary"
	"github.com/ivlev/canvasdoc/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Перезагружать документ при каждом изменении",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	l, _, logger := newLoader(cfg)

	reload := func() error {
		res, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		c := summary.Build(res, path).Counts
		fmt.Printf("[+++] Перезагружен %s: холстов %d, узлов %d, предупреждений %d\n",
			path, c.Canvases, c.ValueNodes, len(res.Diagnostics))
		return nil
	}
	if err := reload(); err != nil {
		fmt.Printf("[!] Ошибка загрузки: %v\n", err)
	}

	w, err := watch.New(path, cfg.WatchDebounce, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("[*] Слежение за %s (Ctrl+C для выхода)\n", path)
	return w.Watch(ctx, reload)
}
