package main

import (
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/joho/godotenv"

	"github.com/pthm-cable/resumefx/audio"
	"github.com/pthm-cable/resumefx/config"
	"github.com/pthm-cable/resumefx/game"
)

func main() {
	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// CLI flags
	configPath := flag.String("config", os.Getenv("RESUMEFX_CONFIG"), "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	scene := flag.String("scene", "", "Initial scene: particles, aurora, smooth, starfield, graph, charts, meshes (empty = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	mute := flag.Bool("mute", false, "Start with audio muted")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Headless runs never open an audio device
	player := audio.New(cfg.Audio.Enabled && !*headless, audio.Options{
		SampleRate: cfg.Audio.SampleRate,
		Volume:     cfg.Audio.Volume,
		ClipsDir:   cfg.Audio.ClipsDir,
	})
	if *mute {
		player.ToggleMute()
	}
	if c, ok := player.(interface{ Close() }); ok {
		defer c.Close()
	}

	opts := game.Options{
		Seed:      rngSeed,
		Scene:     *scene,
		OutputDir: *outputDir,
		Headless:  *headless,
		Audio:     player,
	}

	if *headless {
		// Headless mode - pure CPU, no raylib needed
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"scene", g.Scene().Name(),
			"max_ticks", *maxTicks,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && g.Tick() >= int64(*maxTicks) {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Resume Analyzer Visuals")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && g.Tick() >= int64(*maxTicks) {
			break
		}
	}
}
