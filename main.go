package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qmdx00/lifecycle"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/Rahul-Personal-lists/calendar-sync/core"
	"github.com/Rahul-Personal-lists/calendar-sync/pkg/resources"
	"github.com/Rahul-Personal-lists/calendar-sync/pkg/servers"
)

func main() {
	var err error

	name, version, env := "calendar-sync", "1.0", "local"

	// 1. Config and base logger
	resources.LoadConfig()

	log.Logger = log.With().Str("service", name).Str("version", version).Str("env", env).Logger()
	ctx := log.Logger.WithContext(context.Background())

	startupLogger := log.Ctx(ctx).With().Str("stage", "startup").Str("component", "main").Logger()
	shutdownLogger := log.Ctx(ctx).With().Str("stage", "shut down").Str("component", "main").Logger()

	startupLogger.Info().Msg("application starting up")
	defer shutdownLogger.Info().Msg("application stopped")

	// 2. Telemetry (traces/metrics/logs) + zerolog -> OTel bridge
	stopTracer, err := resources.CreateTracer(ctx)
	if err != nil {
		shutdownLogger.Fatal().Err(err).Msg(fmt.Sprintf("unable to setup tracing: %v", err))
	}
	defer stopWithTimeout(ctx, stopTracer, 15*time.Second)

	stopMeter, err := resources.CreateMeter(ctx)
	if err != nil {
		shutdownLogger.Fatal().Err(err).Msg(fmt.Sprintf("unable to setup metrics: %v", err))
	}
	defer stopWithTimeout(ctx, stopMeter, 15*time.Second)

	stopLogger, err := resources.CreateLoggerProvider(ctx)
	if err != nil {
		shutdownLogger.Fatal().Err(err).Msg(fmt.Sprintf("unable to setup log export: %v", err))
	}
	defer stopWithTimeout(ctx, stopLogger, 15*time.Second)

	log.Logger = log.Logger.Hook(resources.NewZerologHook(name, version))
	ctx = log.Logger.WithContext(ctx)

	// 3. Core resources
	pool, err := resources.CreateDatabaseConnectionPool(ctx)
	if err != nil {
		shutdownLogger.Fatal().Err(err).Msg(fmt.Sprintf("unable to create database connection pool: %v", err))
	}

	// 4. Wiring
	parser := core.NewVoiceParser()
	repo := core.NewRepository(pool)
	handlers := core.NewHandlers(repo, parser)

	// 5. Servers setup

	gin.SetMode(gin.ReleaseMode)

	restHandler := gin.Default()
	restHandler.Use(resources.TracerMiddleware(name))
	restHandler.Use(resources.MeterMiddleware(name))

	restHandler.POST("/parse", handlers.PostParse)
	restHandler.POST("/events", handlers.PostEvents)
	restHandler.POST("/events/voice", handlers.PostVoiceEvents)
	restHandler.GET("/events", handlers.ListEvents)
	restHandler.GET("/events/:id", handlers.GetEvents)
	restHandler.DELETE("/events/:id", handlers.DeleteEvents)
	restHandler.GET("/calendar.ics", handlers.GetCalendarFeed)

	debugHandler := http.NewServeMux()
	debugHandler.HandleFunc("/debug/pprof/", pprof.Index)
	debugHandler.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	debugHandler.HandleFunc("/debug/pprof/profile", pprof.Profile)
	debugHandler.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	debugHandler.HandleFunc("/debug/pprof/trace", pprof.Trace)

	scheduler := cron.New()

	_, err = scheduler.AddFunc(viper.GetString("RETENTION_SCHEDULE"), func() {
		jobCtx := log.Logger.WithContext(context.Background())

		purged, purgeErr := core.PurgeExpiredEvents(jobCtx, repo, viper.GetInt("RETENTION_DAYS"), time.Now())
		if purgeErr != nil {
			log.Ctx(jobCtx).Error().Err(purgeErr).Msg("retention purge failed")
			return
		}

		log.Ctx(jobCtx).Info().Int64("purged", purged).Msg("retention purge done")
	})
	if err != nil {
		shutdownLogger.Fatal().Err(err).Msg("unable to schedule retention job")
	}

	// 6. Lifecycle

	app := lifecycle.NewApp(
		lifecycle.WithName(name),
		lifecycle.WithVersion(version),
		lifecycle.WithSignal(syscall.SIGINT, syscall.SIGTERM),
	)

	app.Attach(servers.BuildBaseServer(pool))
	app.Attach(servers.BuildCronServer(scheduler))
	app.Attach("debug-server", servers.NewHttpServer(&http.Server{
		Addr:              net.JoinHostPort(viper.GetString("DEBUG_HOST"), viper.GetString("DEBUG_PORT")),
		Handler:           debugHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}))
	app.Attach("rest-server", servers.NewHttpServer(&http.Server{
		Addr:              net.JoinHostPort(viper.GetString("SERVER_HOST"), viper.GetString("SERVER_PORT")),
		Handler:           restHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}))

	err = app.Run()
	if err != nil {
		shutdownLogger.Error().Err(err).Msg("application stopped with error")
	}
}

func stopWithTimeout(ctx context.Context, stopFn func(context.Context) error, timeout time.Duration) {
	stopCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := stopFn(stopCtx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to shut down telemetry")
	}
}
