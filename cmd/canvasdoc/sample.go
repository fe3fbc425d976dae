package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/canvasdoc/internal/document"
	"github.com/ivlev/canvasdoc/internal/sampler"
)

var sampleFlags struct {
	id    string
	times []float64
}

var sampleCmd = &cobra.Command{
	Use:   "sample FILE",
	Short: "Вычислить анимированное определение в заданные моменты времени",
	Args:  cobra.ExactArgs(1),
	RunE:  runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().StringVar(&sampleFlags.id, "id", "", "Идентификатор определения (можно с путем: child:id)")
	sampleCmd.Flags().Float64SliceVar(&sampleFlags.times, "time", []float64{0}, "Моменты времени в секундах")
	_ = sampleCmd.MarkFlagRequired("id")
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	l, _, _ := newLoader(cfg)

	res, err := l.LoadFile(args[0])
	if err != nil {
		return err
	}
	node, err := lookupPath(res.Canvas, sampleFlags.id)
	if err != nil {
		return err
	}

	switch n := node.(type) {
	case *document.Animated:
		for _, t := range sampleFlags.times {
			v, err := sampler.Sample(n, t)
			if err != nil {
				return fmt.Errorf("ошибка вычисления %q в %.3fs: %w", sampleFlags.id, t, err)
			}
			fmt.Printf("[+++] %s @ %.3fs = %+v\n", sampleFlags.id, t, v)
		}
	case *document.Constant:
		fmt.Printf("[+++] %s (константа) = %+v\n", sampleFlags.id, n.Value)
	default:
		return fmt.Errorf("определение %q имеет тип %s и не может быть вычислено", sampleFlags.id, node.NodeKind())
	}
	return nil
}

// lookupPath resolves "id" or "child:...:id" starting at root.
func lookupPath(root *document.Canvas, path string) (document.ValueNode, error) {
	parts := strings.Split(path, ":")
	c := root
	for _, name := range parts[:len(parts)-1] {
		child, ok := c.Child(name)
		if !ok {
			return nil, fmt.Errorf("вложенный холст %q не найден", name)
		}
		c = child
	}
	node, ok := c.Lookup(parts[len(parts)-1])
	if !ok {
		return nil, fmt.Errorf("определение %q не найдено", path)
	}
	return node, nil
}
