package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/aretw0/sileo"
	"github.com/aretw0/sileo/internal/logging"
	"github.com/aretw0/sileo/internal/scenario"
	"github.com/aretw0/sileo/pkg/adapters/terminal"
	"github.com/aretw0/sileo/pkg/domain"
	"github.com/aretw0/sileo/pkg/observability"
)

//go:embed demo.yaml
var tourScenario []byte

const redrawInterval = 50 * time.Millisecond

var demoCmd = &cobra.Command{
	Use:   "demo [scenario.yaml]",
	Short: "Replay a toast scenario on the terminal",
	Long: `Draws toasts on the terminal while a scenario runs. Without a file the
built-in tour is played. With --metrics the notifier counters are served
over HTTP for as long as the demo runs.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDemo(cmd, args); err != nil {
			fmt.Fprintf(os.Stderr, "Demo failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().String("metrics", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	demoCmd.Flags().Bool("markdown", false, "Render descriptions as markdown")
	demoCmd.Flags().Bool("hold", false, "Keep running after the scenario until interrupted")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel)

	s, err := demoScenario(args)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
	}

	terminal.PrintBanner(os.Stdout)
	surface := terminal.New(os.Stdout, terminal.WithSize(width, height-1))
	metrics := observability.NewMetrics("")

	opts := append(cfg.NotifierOptions(),
		sileo.WithLogger(logger),
		sileo.WithHooks(domain.Combine(metrics.Hooks(), observability.LogHooks(logger))),
	)
	n := sileo.New(surface, opts...)
	defer n.Close()
	n.Init(cfg.InitOptions())

	var target scenario.Target = n
	if md, _ := cmd.Flags().GetBool("markdown"); md {
		render, err := terminal.NewMarkdown(42)
		if err != nil {
			return err
		}
		target = markdownTarget{Target: n, render: render, logger: logger}
	}
	player := scenario.NewPlayer(target,
		scenario.WithLogger(logger),
		scenario.WithClickHandler(func(id string) { logger.Info("button clicked", "id", id) }),
	)

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if addr, _ := cmd.Flags().GetString("metrics"); addr != "" {
		srv := &http.Server{Addr: addr, Handler: metricsRouter(metrics)}
		g.Go(func() error {
			logger.Info("serving metrics", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(redrawInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return surface.Flush()
			case <-ticker.C:
				if err := surface.Flush(); err != nil {
					return err
				}
			}
		}
	})

	hold, _ := cmd.Flags().GetBool("hold")
	g.Go(func() error {
		err := player.Play(ctx, s)
		if err == nil && hold {
			<-ctx.Done()
		}
		cancel()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	return g.Wait()
}

func demoScenario(args []string) (*scenario.Scenario, error) {
	if len(args) == 1 {
		return scenario.LoadFile(args[0])
	}
	return scenario.Load(bytes.NewReader(tourScenario))
}

// markdownTarget renders plain text descriptions through glamour before
// they reach the notifier.
type markdownTarget struct {
	scenario.Target
	render func(string) (domain.Content, error)
	logger *slog.Logger
}

func (t markdownTarget) Show(opts domain.Options) string {
	return t.Target.Show(t.convert(opts))
}

func (t markdownTarget) Update(id string, opts domain.Options) {
	t.Target.Update(id, t.convert(opts))
}

func (t markdownTarget) convert(opts domain.Options) domain.Options {
	text, ok := opts.Description.(domain.Text)
	if !ok || text == "" {
		return opts
	}
	c, err := t.render(string(text))
	if err != nil {
		t.logger.Warn("markdown rendering failed, keeping plain text", "err", err)
		return opts
	}
	opts.Description = c
	return opts
}
