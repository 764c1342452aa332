// Command lywclient is a headless reference client: it joins a Light-Year
// Wars match, mirrors the authoritative world, and logs every state
// transition. Rendering is explicitly out of scope (spec.md §1) — this
// binary exists to exercise the wire protocol and the client applicator,
// not to be played interactively.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/lightyear-wars/lywars/client"
	"github.com/lightyear-wars/lywars/wire"
)

// maxDatagramSize mirrors server.MaxDatagramSize; duplicated here rather
// than importing the server package, which the client has no other reason
// to depend on.
const maxDatagramSize = 2048

type options struct {
	Server  string `short:"s" long:"server" description:"Server address (host:port)" default:"127.0.0.1:22311"`
	Seed    uint32 `long:"seed" description:"Initial RNG state of the client mirror (each FLEET_LAUNCH carries its own)" default:"305419896"`
	Verbose bool   `short:"v" long:"verbose" description:"Enable debug-level logging"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "lywclient"
	parser.LongDescription = "Headless reference client for Light-Year Wars."

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, opts, log); err != nil {
		log.Fatal().Err(err).Msg("client exited with error")
	}
}

func run(ctx context.Context, opts options, log zerolog.Logger) error {
	addr, err := net.ResolveUDPAddr("udp4", opts.Server)
	if err != nil {
		return fmt.Errorf("resolving server address: %w", err)
	}
	conn, err := net.DialUDP("udp4", nil, addr)
	if err != nil {
		return fmt.Errorf("dialing server: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Write(wire.JoinPrefix); err != nil {
		return fmt.Errorf("sending JOIN: %w", err)
	}
	log.Info().Str("server", opts.Server).Msg("sent JOIN")

	mirror := client.NewMirror(opts.Seed)
	buf := make([]byte, maxDatagramSize)

	ticker := time.NewTicker(time.Second / 20)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("client shutting down")
			return nil
		case <-ticker.C:
			disconnected, err := drainInbound(conn, buf, mirror, log)
			if err != nil {
				return err
			}
			if disconnected {
				return nil
			}
			mirror.Tick(1.0 / 20)
		}
	}
}

// drainInbound reads every datagram already queued on conn without
// blocking for more, applying each to mirror in turn. It reports whether
// the server disconnected us during this drain.
func drainInbound(conn *net.UDPConn, buf []byte, mirror *client.Mirror, log zerolog.Logger) (disconnected bool, err error) {
	for {
		if err := conn.SetReadDeadline(time.Now()); err != nil {
			return false, err
		}
		n, err := conn.Read(buf)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return false, nil
			}
			return false, fmt.Errorf("reading from server: %w", err)
		}

		if wire.IsServerFull(buf[:n]) {
			return false, fmt.Errorf("server is full")
		}

		wasStage := mirror.Stage
		if err := mirror.ApplyPacket(buf[:n]); err != nil {
			log.Warn().Err(err).Msg("failed to apply packet")
			continue
		}
		if mirror.Stage != wasStage {
			log.Info().Str("stage", stageName(mirror.Stage)).Msg("stage transition")
		}
		if mirror.Disconnected() {
			log.Info().Str("reason", mirror.DisconnectReason).Msg("server disconnected us")
			return true, nil
		}
	}
}

func stageName(s client.Stage) string {
	if s == client.StageSynced {
		return "synced"
	}
	return "awaiting-full"
}
