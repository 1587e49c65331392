// Command termview renders the visualizer in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/agentview/internal/config"
	"github.com/Garsondee/agentview/internal/feed"
	"github.com/Garsondee/agentview/internal/game"
	"github.com/Garsondee/agentview/internal/world"
)

type options struct {
	cfg       config.Config
	seed      int64
	cols      int
	rows      int
	tickEvery time.Duration
	cellW     int
	cellH     int
	mute      bool
}

func main() {
	var (
		configPath = flag.String("config", "", "path to config yaml (optional)")
		feedURL    = flag.String("feed", "", "engine websocket url (overrides config; empty runs the sandbox)")
		logPath    = flag.String("log", "termview.log", "log file (the terminal is taken by the view)")
		opts       options
	)
	flag.Int64Var(&opts.seed, "seed", 1, "sandbox seed")
	flag.IntVar(&opts.cols, "cols", 48, "sandbox map columns")
	flag.IntVar(&opts.rows, "rows", 32, "sandbox map rows")
	flag.DurationVar(&opts.tickEvery, "tick", 250*time.Millisecond, "sandbox tick interval")
	flag.IntVar(&opts.cellW, "cell-w", 8, "viewport pixels per terminal column")
	flag.IntVar(&opts.cellH, "cell-h", 16, "viewport pixels per terminal row")
	flag.BoolVar(&opts.mute, "mute", false, "disable the marker blip")
	flag.Parse()

	lf, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal(err)
	}
	defer lf.Close()
	logger := log.New(lf, "[termview] ", log.LstdFlags|log.Lmicroseconds)

	opts.cfg = config.Default()
	if *configPath != "" {
		if opts.cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if *feedURL != "" {
		opts.cfg.Feed.URL = *feedURL
	}
	if opts.cellW < 1 || opts.cellH < 1 {
		log.Fatal("error: -cell-w and -cell-h must be > 0")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, opts, logger); err != nil {
		logger.Printf("exit: %v", err)
		stop()
		log.Fatal(err)
	}
}

func run(ctx context.Context, opts options, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	w, h := screen.Size()
	opts.cfg.Window.Width, opts.cfg.Window.Height = max(w*opts.cellW, 1), max(h*opts.cellH, 1)
	v, err := game.New(opts.cfg, nil, logger)
	if err != nil {
		return err
	}

	var sound *blipper
	if !opts.mute {
		if sound, err = newBlipper(); err != nil {
			// Non-fatal, the view runs without sound
			logger.Printf("audio init failed: %v", err)
		}
	}

	updates := make(chan feed.Message, 64)
	if opts.cfg.Feed.URL != "" {
		client, err := feed.NewClient(opts.cfg.Feed.URL, logger)
		if err != nil {
			return err
		}
		go func() {
			if err := client.Run(ctx, updates); err != nil {
				logger.Printf("feed stopped: %v", err)
			}
		}()
	} else {
		go feed.RunSandbox(ctx, world.NewSandbox(opts.cols, opts.rows, opts.seed), opts.tickEvery, updates)
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	canvas := TermCanvas{Screen: screen, CellW: opts.cellW, CellH: opts.cellH}
	input := &inputState{cellW: opts.cellW, cellH: opts.cellH}
	fps := v.Framerate()
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				w, h := screen.Size()
				v.Resize(w*opts.cellW, h*opts.cellH)
				screen.Sync()
			}
			input.handle(ev)
		case m, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			m.Apply(v)
		case <-ticker.C:
			before := len(v.Markers())
			if err := v.Step(input.take()); err != nil {
				if errors.Is(err, game.ErrQuit) {
					return nil
				}
				return err
			}
			if n := len(v.Markers()); n > before {
				sound.blip(880)
			} else if n < before {
				sound.blip(440)
			}
			if f := v.Framerate(); f != fps {
				fps = f
				ticker.Reset(time.Second / time.Duration(fps))
			}
			screen.Clear()
			v.Render(canvas)
			screen.Show()
		}
	}
}
