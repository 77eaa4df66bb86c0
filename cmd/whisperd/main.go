// Command whisperd runs the hybrid hot/cold speech-to-text server.
//
// A model kept resident in GPU memory serves short requests with minimal
// latency; when it is busy, requests overflow into isolated whisper CLI
// worker processes bounded by a slot pool.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/whisperd/coldworker"
	"github.com/skillsenselab/whisperd/config"
	"github.com/skillsenselab/whisperd/errors"
	"github.com/skillsenselab/whisperd/logger"
	"github.com/skillsenselab/whisperd/observability"
	"github.com/skillsenselab/whisperd/scheduler"
	"github.com/skillsenselab/whisperd/server"
	"github.com/skillsenselab/whisperd/transcription"
	"github.com/skillsenselab/whisperd/transcription/whispercpp"
	"github.com/skillsenselab/whisperd/version"
)

func main() {
	configFile := flag.String("config", "", "path to config.yml")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatal("config load failed", logger.ErrorFields("load", err))
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("starting whisperd", logger.Fields(
		"version", version.Version,
		"model", cfg.Model,
		"max_cold_workers", cfg.Scheduler.MaxColdWorkers,
	))

	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		log.Fatal("cache dir unavailable", logger.ErrorFields("mkdir", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Observability.Enabled {
		mp, err := observability.InitMeter(ctx, cfg.Observability)
		if err != nil {
			log.Warn("metrics disabled", logger.ErrorFields("init_meter", err))
		} else {
			defer shutdownProvider(mp.Shutdown)
		}
		tp, err := observability.InitTracer(ctx, cfg.Observability)
		if err != nil {
			log.Warn("tracing disabled", logger.ErrorFields("init_tracer", err))
		} else {
			defer shutdownProvider(tp.Shutdown)
		}
	}

	// A failed model load keeps the server up; jobs are rejected with
	// MODEL_NOT_LOADED until it is fixed, as the original daemon behaves.
	var model transcription.Model
	if m, err := whispercpp.Load(cfg.Hot); err != nil {
		log.Error("resident model load failed, hot path unavailable",
			logger.ErrorFields("load_model", err))
	} else {
		model = m
		defer m.Close()
	}

	launcher := coldworker.NewLauncher(cfg.ColdWorker)
	router := scheduler.NewRouter(model, launcher, cfg.Scheduler, scheduler.Hooks{})

	if cfg.Observability.Enabled {
		metrics, err := observability.NewSchedulerMetrics(observability.Meter(),
			func() int { return router.Stats().ColdInUse })
		if err != nil {
			log.Warn("scheduler metrics disabled", logger.ErrorFields("instruments", err))
		} else {
			router.SetHooks(schedulerHooks(metrics))
		}
	}

	srv := server.New(cfg.Server)
	server.RegisterRoutes(srv, router, cfg.Scheduler.JobTimeout)
	if err := srv.Start(ctx); err != nil {
		log.Fatal("server start failed", logger.ErrorFields("start", err))
	}

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("shutdown incomplete", logger.ErrorFields("stop", err))
	}
}

func shutdownProvider(shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = shutdown(ctx)
}

// schedulerHooks wires scheduler events into the metric instruments.
func schedulerHooks(metrics *observability.SchedulerMetrics) scheduler.Hooks {
	if metrics == nil {
		return scheduler.Hooks{}
	}
	return scheduler.Hooks{
		OnResult: func(res scheduler.Result) {
			code := ""
			if res.Err != nil {
				code = string(errors.Code(res.Err))
			}
			metrics.RecordResult(string(res.Path), code, res.Elapsed)
		},
		OnReject: func(code errors.ErrorCode) {
			metrics.RecordRejection(string(code))
		},
	}
}
