package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/harshit0019/portfolio/internal/backdrop"
	"github.com/harshit0019/portfolio/internal/field"
	"github.com/harshit0019/portfolio/internal/raster"
	"github.com/harshit0019/portfolio/internal/term"
)

var (
	fps     int
	seed    int64
	width   int
	height  int
	frames  int
	samples int
	outPath string
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Padding(1, 0)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#92400e")).
			Padding(1, 2)
)

func backdropCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backdrop [mode]",
		Short: "preview a backdrop in the terminal (particles, constellation, both)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTerminal,
	}
	cmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&fps, "fps", 30, "frames per second")

	renderCmd := &cobra.Command{
		Use:   "render [mode]",
		Short: "render a backdrop to a PNG poster",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&width, "width", 1200, "image width")
	renderCmd.Flags().IntVar(&height, "height", 800, "image height")
	renderCmd.Flags().IntVar(&frames, "frames", 60, "frames to simulate before capturing")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "backdrop.png", "output file")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "run the constellation headless and chart its links per frame",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	statsCmd.Flags().IntVar(&width, "width", 1200, "surface width")
	statsCmd.Flags().IntVar(&height, "height", 800, "surface height")
	statsCmd.Flags().IntVar(&samples, "frames", 300, "frames to simulate")

	cmd.AddCommand(renderCmd, statsCmd)
	return cmd
}

func modeArg(args []string) (backdrop.Mode, error) {
	if len(args) == 0 {
		return backdrop.Both, nil
	}
	return backdrop.ParseMode(args[0])
}

func runTerminal(cmd *cobra.Command, args []string) error {
	mode, err := modeArg(args)
	if err != nil {
		return err
	}

	scr, err := term.New()
	if err != nil {
		return err
	}
	defer scr.Close()

	sz := scr.Size()
	vp := backdrop.NewViewport(sz.Width, sz.Height)
	interval := time.Second / time.Duration(max(fps, 1))
	for i, spec := range mode.Layers() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		rng := rand.New(rand.NewSource(seed + int64(i)))
		layer := backdrop.Mount(vp, ticker.C, scr.NewLayer(spec.Opacity), spec.New(rng))
		defer layer.Unmount()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return scr.Run(ctx, vp, fps)
}

func runRender(cmd *cobra.Command, args []string) error {
	mode, err := modeArg(args)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if err := raster.EncodePNG(f, raster.Poster(mode, width, height, frames, seed)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	fmt.Printf("wrote %s (%s, %dx%d, %d frames)\n", outPath, mode, width, height, frames)
	return nil
}

// linkStats is a headless constellation run.
type linkStats struct {
	Stars     int
	Threshold float64
	Counts    []float64
}

func collectLinkStats(w, h, n int, seed int64) linkStats {
	stars := field.NewConstellation(rand.New(rand.NewSource(seed)))
	rec := backdrop.NewRecording()
	rec.Resize(w, h)
	stars.Reset(w, h)

	st := linkStats{Stars: stars.Len(), Threshold: field.Threshold(w, h)}
	for i := 0; i < n; i++ {
		canvas, _ := rec.Canvas()
		stars.Frame(canvas)
		rec.Present()
		st.Counts = append(st.Counts, float64(len(stars.Links())))
	}
	return st
}

func runStats(cmd *cobra.Command, args []string) error {
	if samples <= 0 {
		return fmt.Errorf("frames must be positive, got %d", samples)
	}
	st := collectLinkStats(width, height, samples, seed)

	var sum float64
	for _, c := range st.Counts {
		sum += c
	}

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	summary := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("CONSTELLATION"),
		row("surface", fmt.Sprintf("%dx%d", width, height)),
		row("stars", fmt.Sprintf("%d", st.Stars)),
		row("threshold", fmt.Sprintf("%.1f px", st.Threshold)),
		row("frames", fmt.Sprintf("%d", len(st.Counts))),
		row("links min", fmt.Sprintf("%.0f", slices.Min(st.Counts))),
		row("links avg", fmt.Sprintf("%.1f", sum/float64(len(st.Counts)))),
		row("links max", fmt.Sprintf("%.0f", slices.Max(st.Counts))),
	)

	graph := asciigraph.Plot(st.Counts,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("links per frame"),
	)

	fmt.Println(panelStyle.Render(summary))
	fmt.Println(graphStyle.Render(graph))
	return nil
}
