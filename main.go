package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"StoryCuts/internal/config"
	localnet "StoryCuts/internal/net"
	"StoryCuts/internal/proxy"
	"StoryCuts/internal/state"
	"StoryCuts/internal/story"
	"StoryCuts/internal/ui"
)

const usage = `usage: storycuts [board|proxy]

  board   open the story board (default)
  proxy   run the story proxy service`

func main() {
	mode := "board"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "board":
		runBoard()
	case "proxy":
		runProxy()
	case "-h", "--help", "help":
		fmt.Println(usage)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}

func runBoard() {
	cfg, path, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if path != "" {
		log.Printf("[BOARD] Loaded config from %s", path)
	}

	newRand := func() *rand.Rand {
		if cfg.Seed != 0 {
			return rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
		}
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	ctrl, err := state.NewController(newRand(), cfg.Settings(), state.Size{W: 1280, H: 800})
	if err != nil {
		log.Fatalf("Failed to lay out board: %v", err)
	}
	log.Printf("[BOARD] Session %s with %d cuts", ctrl.SessionID, len(ctrl.Layout.Cuts))

	gen := story.Resolve(context.Background(), cfg.Story, localnet.Discover)

	ui.RunApp(ui.Options{
		Controller: ctrl,
		Generator:  gen,
		Timeout:    cfg.Story.Timeout,
		NewRand:    newRand,
	})
}

func runProxy() {
	cfg := config.LoadProxy()
	if cfg.GeminiAPIKey == "" {
		log.Printf("[PROXY] GEMINI_API_KEY is not set; upstream calls will fail")
	}

	app := proxy.New(cfg, proxy.NewGeminiClient(cfg))

	if cfg.AdvertiseMDNS {
		port, err := strconv.Atoi(cfg.Port)
		if err != nil {
			log.Fatalf("Invalid PORT %q: %v", cfg.Port, err)
		}
		server, err := localnet.Advertise(port)
		if err != nil {
			log.Printf("[MDNS] Advertising disabled: %v", err)
		} else {
			defer server.Shutdown()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Printf("[PROXY] Shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("[PROXY] Shutdown error: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting story proxy on %s (env: %s, model: %s)", addr, cfg.Environment, cfg.GeminiModel)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
