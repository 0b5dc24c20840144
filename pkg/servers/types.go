package servers

import (
	"context"
	"net/http"

	"github.com/qmdx00/lifecycle"
	"github.com/robfig/cron/v3"
)

var (
	_ Server = (*httpServer)(nil)
	_ Server = (*baseServer)(nil)
	_ Server = (*cronServer)(nil)
)

type Server interface {
	lifecycle.Server
}

var (
	_ CronScheduler = (*cron.Cron)(nil)
)

// CronScheduler is the slice of robfig/cron the cron server drives.
type CronScheduler interface {
	Start()
	Stop() context.Context
}

//

var (
	_ BuildHttpServerFn = BuildHttpServer
)

type BuildHttpServerFn func(server *http.Server) (string, Server)
