package servers

import (
	"context"

	"github.com/qmdx00/lifecycle"
	"github.com/rs/zerolog/log"
)

type cronServer struct {
	ctx          context.Context //nolint:containedctx
	name         string
	closeChannel chan struct{}
	internal     CronScheduler
}

func BuildCronServer(scheduler CronScheduler) (string, Server) {
	return "cron-server", NewCronServer(scheduler)
}

func NewCronServer(scheduler CronScheduler) lifecycle.Server {
	return &cronServer{
		name:         "cron-server",
		closeChannel: make(chan struct{}),
		internal:     scheduler,
	}
}

func (server *cronServer) Run(ctx context.Context) error {
	log.Ctx(ctx).Info().Str("stage", "startup").Str("component", server.name).Msg("starting up")

	server.ctx = ctx

	server.internal.Start()
	<-server.closeChannel

	return nil
}

func (server *cronServer) Stop(ctx context.Context) error {
	log.Ctx(ctx).Info().Str("stage", "shut down").Str("component", server.name).Msg("stopping")
	defer log.Ctx(ctx).Info().Str("stage", "shut down").Str("component", server.name).Msg("stopped")

	// Stop schedules nothing new; wait for in-flight jobs, bounded by ctx.
	stopped := server.internal.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}

	close(server.closeChannel)

	return nil
}
