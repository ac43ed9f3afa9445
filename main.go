package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"wormhole/internal/config"
	"wormhole/internal/game"
)

func init() {
	// glfw and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML file overriding the preset.")
	preset := flag.String("preset", config.PresetWormhole, "Base configuration: wormhole or classic.")
	seed := flag.Uint64("seed", 0, "Particle placement seed (0 = clock).")
	particles := flag.Int("particles", 0, "Override the particle count.")
	clampRush := flag.Bool("clamp-rush", false, "Stop rush speed growing past the fast bound.")
	mute := flag.Bool("mute", false, "Disable the engine drone.")
	quiet := flag.Bool("quiet", false, "Discard log output.")
	flag.Parse()

	log.SetPrefix("wormhole: ")
	log.SetFlags(log.Ltime)
	if *quiet {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(*preset, *configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *particles > 0 {
		cfg.Field.Particles = *particles
	}
	if *clampRush {
		cfg.Rush.Clamp = true
	}
	switch {
	case *seed != 0:
		cfg.Field.Seed = *seed
	case cfg.Field.Seed == 0:
		cfg.Field.Seed = uint64(time.Now().UnixNano())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := game.RunDesktop(ctx, cfg, game.Options{Mute: *mute}); err != nil {
		log.Printf("run: %v", err)
		stop()
		os.Exit(1)
	}
}

func loadConfig(preset, path string) (config.Config, error) {
	if p, ok := os.LookupEnv("WORMHOLE_PRESET"); ok && preset == config.PresetWormhole {
		preset = p
	}
	cfg, err := config.Preset(preset)
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		if cfg, err = config.Load(path, cfg); err != nil {
			return config.Config{}, err
		}
		log.Printf("loaded %s", path)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return config.Config{}, err
	}
	return cfg, cfg.Validate()
}
