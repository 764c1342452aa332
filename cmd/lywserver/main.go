// Command lywserver runs the authoritative Light-Year Wars match host.
//
// Usage:
//
//	lywserver [options]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/lightyear-wars/lywars/server"
)

type options struct {
	Port           int     `short:"p" long:"port" description:"UDP port to listen on" default:"22311"`
	MaxPlayers     int     `long:"max-players" description:"Maximum concurrent players" default:"16"`
	TimeoutSeconds float64 `long:"timeout-seconds" description:"Inactivity timeout before a player is dropped" default:"1800"`
	Seed           uint32  `long:"seed" description:"RNG seed shared with clients for fleet-launch replay" default:"305419896"`

	PlanetCount  int     `long:"planet-count" description:"Number of planets to generate" default:"24"`
	FactionSlots int     `long:"faction-slots" description:"Number of free-for-all faction slots" default:"16"`
	Width        float64 `long:"width" description:"Galaxy width" default:"3000"`
	Height       float64 `long:"height" description:"Galaxy height" default:"3000"`

	LobbyCountdown float64 `long:"lobby-countdown" description:"Seconds to wait once 2+ players have joined before auto-starting the match" default:"10"`

	DebugRecording bool   `long:"debug-recording" description:"Keep a compressed ring buffer of recent ticks for support bundles"`
	SpectatorAddr string `long:"spectator-addr" description:"Address to serve the read-only spectator dashboard on, e.g. :8080 (empty disables it)"`

	Verbose bool `short:"v" long:"verbose" description:"Enable debug-level logging"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "lywserver"
	parser.LongDescription = "Authoritative UDP host for Light-Year Wars matches."

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.NewConsoleWriter()).Level(level).With().Timestamp().Logger()

	cfg := server.Config{
		Port:                  opts.Port,
		MaxPlayers:            opts.MaxPlayers,
		TimeoutSeconds:        opts.TimeoutSeconds,
		Seed:                  opts.Seed,
		LobbyCountdownSeconds: opts.LobbyCountdown,
		Level: server.LevelConfig{
			Width:        opts.Width,
			Height:       opts.Height,
			PlanetCount:  opts.PlanetCount,
			FactionCount: opts.FactionSlots,
			MinCapacity:  5,
			MaxCapacity:  30,
		},
		DebugRecording: opts.DebugRecording,
		SpectatorAddr:  opts.SpectatorAddr,
	}

	srv := server.NewServer(cfg, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	dumpChan := make(chan os.Signal, 1)
	signal.Notify(dumpChan, syscall.SIGUSR1)
	go func() {
		for range dumpChan {
			srv.DumpDebugRecording()
		}
	}()

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}
