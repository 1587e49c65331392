package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/agentview/internal/config"
	"github.com/Garsondee/agentview/internal/feed"
	"github.com/Garsondee/agentview/internal/game"
	"github.com/Garsondee/agentview/internal/record"
	"github.com/Garsondee/agentview/internal/render"
	"github.com/Garsondee/agentview/internal/status"
	"github.com/Garsondee/agentview/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config yaml (optional)")
		feedURL    = flag.String("feed", "", "engine websocket url (overrides config; empty runs the sandbox)")
		statusAddr = flag.String("status", "", "status http listen address (overrides config)")
		recordPath = flag.String("record", "", "frame recording path, .jsonl.zst (overrides config)")
		seed       = flag.Int64("seed", 1, "sandbox seed")
		cols       = flag.Int("cols", 48, "sandbox map columns")
		rows       = flag.Int("rows", 32, "sandbox map rows")
		tickEvery  = flag.Duration("tick", 250*time.Millisecond, "sandbox tick interval")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[viewer] ", log.LstdFlags|log.Lmicroseconds)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Fatalf("load config: %v", err)
		}
	}
	if *feedURL != "" {
		cfg.Feed.URL = *feedURL
	}
	if *statusAddr != "" {
		cfg.Status.Addr = *statusAddr
	}
	if *recordPath != "" {
		cfg.Record.Path = *recordPath
	}

	atlas := render.BuildAtlas(cfg.TileSize)
	v, err := game.New(cfg, atlas.Sprites, log.New(os.Stdout, "[render] ", log.LstdFlags|log.Lmicroseconds))
	if err != nil {
		logger.Fatalf("init: %v", err)
	}
	g := game.NewGame(v, render.NewSheet(atlas))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	updates := make(chan feed.Message, 64)
	if cfg.Feed.URL != "" {
		feedLog := log.New(os.Stdout, "[feed] ", log.LstdFlags|log.Lmicroseconds)
		client, err := feed.NewClient(cfg.Feed.URL, feedLog)
		if err != nil {
			logger.Fatalf("feed: %v", err)
		}
		go func() {
			if err := client.Run(ctx, updates); err != nil {
				feedLog.Printf("stopped: %v", err)
			}
		}()
	} else {
		logger.Printf("no feed configured, running sandbox %dx%d seed=%d", *cols, *rows, *seed)
		go feed.RunSandbox(ctx, world.NewSandbox(*cols, *rows, *seed), *tickEvery, updates)
	}
	g.Updates = updates

	var hooks []func(game.Snapshot)
	if cfg.Status.Addr != "" {
		srv := status.NewServer(log.New(os.Stdout, "[status] ", log.LstdFlags|log.Lmicroseconds))
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Status.Addr); err != nil {
				logger.Printf("status: %v", err)
			}
		}()
		hooks = append(hooks, srv.Publish)
	}
	var rec *record.Writer
	if cfg.Record.Path != "" {
		if rec, err = record.Create(cfg.Record.Path); err != nil {
			logger.Fatalf("record: %v", err)
		}
		hooks = append(hooks, func(s game.Snapshot) {
			if err := rec.Write(s); err != nil {
				logger.Printf("record: %v", err)
			}
		})
	}
	g.OnFrame = func(s game.Snapshot) {
		for _, h := range hooks {
			h(s)
		}
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Framerate)
	runErr := ebiten.RunGame(g)

	stop()
	if rec != nil {
		if err := rec.Close(); err != nil {
			logger.Printf("record: %v", err)
		} else {
			logger.Printf("recorded %d frames to %s", rec.Lines(), cfg.Record.Path)
		}
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
