package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/starfall/internal/audio"
	"github.com/tomz197/starfall/internal/audio/device"
	"github.com/tomz197/starfall/internal/client"
	"github.com/tomz197/starfall/internal/config"
	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/scene"
	"github.com/tomz197/starfall/internal/tui"
)

func main() {
	ansi := flag.Bool("ansi", false, "draw with raw ANSI half blocks instead of tcell")
	mute := flag.Bool("mute", false, "disable sound")
	tuningPath := flag.String("config", config.GetEnv(config.EnvTuningPath, ""), "YAML tuning file")
	flag.Parse()

	logger := config.NewLogger("game")

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

	// The game owns the terminal from here on; child loggers copy the output,
	// so detach before any are derived
	closeLog, err := config.DetachLogger(logger)
	if err != nil {
		logger.Fatal("failed to open log file", "err", err)
	}
	sound := openAudio(logger, *mute)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if *ansi {
		err = runANSI(ctx, client.Options{Tuning: tuning, Assets: catalog, Audio: sound, Logger: logger})
	} else {
		err = runTUI(ctx, tui.Options{Tuning: tuning, Assets: catalog, Audio: sound, Logger: logger})
	}
	stop()
	_ = closeLog()

	if err != nil {
		logger.SetOutput(os.Stderr)
		logger.Fatal("game error", "err", err)
	}
}

// openAudio returns the speaker, or a silent player when there is none.
func openAudio(logger *log.Logger, mute bool) loop.Audio {
	if mute {
		return audio.Nop{}
	}
	p, err := device.Open(logger.WithPrefix("audio"))
	if err != nil {
		// Non-fatal, the game runs without sound
		logger.Warn("audio unavailable", "err", err)
		return audio.Nop{}
	}
	return p
}

func runTUI(ctx context.Context, opts tui.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	f, err := tui.New(screen, opts)
	if err != nil {
		return err
	}
	return f.Run(ctx)
}

func runANSI(ctx context.Context, opts client.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	c, err := client.New(bufio.NewReader(os.Stdin), os.Stdout, opts)
	if err != nil {
		return err
	}
	return c.Run(ctx)
}
