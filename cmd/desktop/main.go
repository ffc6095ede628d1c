package main

import (
	"errors"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/starfall/internal/audio"
	"github.com/tomz197/starfall/internal/audio/device"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/desktop"
	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/scene"
)

func main() {
	mute := flag.Bool("mute", false, "disable sound")
	tuningPath := flag.String("config", config.GetEnv(config.EnvTuningPath, ""), "YAML tuning file")
	scale := flag.Float64("scale", 1, "window scale")
	flag.Parse()

	logger := config.NewLogger("desktop")

	tuning := config.Default()
	if *tuningPath != "" {
		var err error
		if tuning, err = config.Load(*tuningPath); err != nil {
			logger.Fatal("failed to load tuning", "path", *tuningPath, "err", err)
		}
	}
	catalog, err := scene.CatalogFromEnv()
	if err != nil {
		logger.Fatal("failed to load sprites", "err", err)
	}

	var sound loop.Audio = audio.Nop{}
	if !*mute {
		if p, err := device.Open(logger.WithPrefix("audio")); err != nil {
			logger.Warn("audio unavailable", "err", err)
		} else {
			sound = p
		}
	}

	game, err := desktop.New(desktop.Options{Tuning: tuning, Assets: catalog, Audio: sound, Logger: logger})
	if err != nil {
		logger.Fatal("failed to start", "err", err)
	}

	ebiten.SetWindowSize(int(tuning.Field.Width**scale), int(tuning.Field.Height**scale))
	ebiten.SetWindowTitle("Starfall")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tuning.Round.FrameRate)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
}
