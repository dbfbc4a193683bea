package main

import (
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/mlb-edge/internal/api"
	"github.com/yourusername/mlb-edge/internal/health"
	"github.com/yourusername/mlb-edge/internal/metrics"
	"github.com/yourusername/mlb-edge/internal/replay"
	"github.com/yourusername/mlb-edge/internal/scheduler"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the scheduler and the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, appLog)
			if err != nil {
				return err
			}
			defer a.Close()

			rc, err := replay.FromConfig(&cfg.Replay)
			if err != nil {
				return err
			}
			engine, err := a.replayEngine(ctx, rc)
			if err != nil {
				return err
			}

			srv := health.NewServer(health.Config{
				ServiceName:    cfg.App.Name,
				Version:        Version,
				Commit:         GitCommit,
				Port:           strconv.Itoa(cfg.Metrics.Port),
				Logger:         appLog,
				MetricsPath:    cfg.Metrics.Path,
				MetricsHandler: metricsHandler(),
			})
			srv.AddCheck("database", health.CheckFunc(a.db.Ping))
			if a.redis != nil {
				srv.AddCheck("redis", health.CheckFunc(a.redis.HealthCheck))
			}
			model, err := a.modelClient()
			if err != nil {
				return err
			}
			srv.AddCheck("model", health.CheckFunc(model.HealthCheck))
			api.Register(srv.Router(), api.NewHandler(a.repos.Feature, a.calculator(), appLog), appLog)

			sched := scheduler.NewScheduler(a.ingestion(), engine, cfg.Replay.CurrentSeason, cfg.Scheduler.JobTimeout, appLog)
			if err := sched.ScheduleRefresh(cfg.Scheduler.ScheduleRefresh); err != nil {
				return err
			}
			if err := sched.ScheduleNightlyReplay(cfg.Scheduler.NightlyReplay); err != nil {
				return err
			}

			// shut down explicitly below, after the scheduler has drained
			if err := srv.Start(cmd.Context()); err != nil {
				return err
			}
			if err := sched.Start(); err != nil {
				return err
			}
			srv.SetReady(true)
			appLog.WithField("version", Version).Info("mlb-edge serving")

			<-ctx.Done()
			appLog.Info("Shutdown signal received")
			srv.SetReady(false)

			if err := sched.Stop(); err != nil {
				appLog.WithError(err).Error("Error stopping scheduler")
			}
			return srv.Shutdown()
		},
	}
}

func metricsHandler() http.Handler {
	if !cfg.Metrics.Enabled {
		return nil
	}
	metrics.InitRegistry()
	return metrics.Handler()
}
