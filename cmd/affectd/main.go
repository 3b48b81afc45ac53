// Command affectd is the long-running affect engine service: a decay
// ticker plus the read-only dashboard HTTP/websocket API, wired the way
// the teacher's Runner and Scheduler wire their own background loops.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/affectengine/affectengine/internal/affect"
	"github.com/affectengine/affectengine/internal/config"
	"github.com/affectengine/affectengine/internal/dashboard"
	"github.com/affectengine/affectengine/internal/persistence"
	"github.com/affectengine/affectengine/internal/version"
)

func main() {
	logger := newLogger()
	logger.Info().Str("version", version.String()).Msg("starting affectd")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	store := persistence.NewFileStore(cfg.StatePath, affect.DefaultPersonality())
	manager := affect.NewManager(store, cfg.AffectConfig(), nil)

	dash := dashboard.New(cfg.DashboardAddr, manager, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go dash.RunWithContext(ctx)
	go runDecayTicker(ctx, manager, dash, cfg.DecayServiceIntervalMinutes, logger)

	<-ctx.Done()
	logger.Info().Msg("affectd shutting down")
}

// runDecayTicker applies decay and advances rumination once per interval,
// persisting and broadcasting the result — the decay half of the teacher's
// Scheduler.runGuildTick loop, generalised to a single agent's state.
func runDecayTicker(ctx context.Context, manager *affect.Manager, dash *dashboard.Server, intervalMinutes int, logger zerolog.Logger) {
	if intervalMinutes <= 0 {
		intervalMinutes = 1
	}
	ticker := time.NewTicker(time.Duration(intervalMinutes) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().UTC()
			state := manager.Read()
			decayed := manager.ApplyDecay(state, now)
			advanced := manager.AdvanceRumination(decayed, now)

			saved, err := manager.Save(advanced, now)
			if err != nil {
				logger.Error().Err(err).Msg("failed to persist decay tick")
				continue
			}
			dash.Broadcast(affect.BuildSnapshot(saved))
		}
	}
}

func newLogger() zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	fileWriter := &lumberjack.Logger{
		Filename:   "./data/affectd.log",
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
	}
	multi := zerolog.MultiLevelWriter(writer, fileWriter)
	return zerolog.New(multi).With().Timestamp().Logger()
}
