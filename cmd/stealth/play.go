package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-stealth/internal/audio"
	"github.com/vovakirdan/tui-stealth/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [stage-id]",
	Short: "Play the campaign",
	Long: `Start the campaign at the title menu, or jump straight into a stage.

Starting from a later stage plays on to the end of the campaign, but only a
full run from stage 1 can set a campaign record.

Controls:
  W/A/S/D, arrows - Move
  Space/F         - Fire in the facing direction
  P               - Pause
  R               - Restart (after the run ends)
  B/Esc           - Back to menu (after the run ends)
  Q/Ctrl+C        - Quit

Examples:
  stealth play
  stealth play 4
  stealth play --mute --fps 60
  stealth play --metrics-addr :9090`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	d, err := openDeps(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer d.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	opts := tui.Options{Width: width, Height: height}
	if len(args) == 1 {
		index, err := stageIndex(d.env, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'stealth stages' to see available stages.")
			os.Exit(1)
		}
		opts.Start = index
		opts.SkipMenu = true
	}

	d.env.Audio = audio.Open(flagMute, d.logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runWithMetrics(ctx, d, func(ctx context.Context) error {
		return tui.Run(ctx, d.env, opts)
	}); err != nil {
		d.logger.Error("play failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runWithMetrics runs fn next to the metrics server; when fn returns the
// server shuts down.
func runWithMetrics(ctx context.Context, d *deps, fn func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	mctx, cancel := context.WithCancel(gctx)

	g.Go(func() error {
		return d.serveMetrics(mctx)
	})
	g.Go(func() error {
		defer cancel()
		return fn(gctx)
	})
	return g.Wait()
}

// stageIndex resolves a stage id argument to its campaign index.
func stageIndex(env *tui.Env, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid stage id %q", arg)
	}
	for i, st := range env.Stages {
		if st.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %d", id)
}
