package bootstrap

import (
	"context"
	"log/slog"

	"github.com/skyburst-games/popmeta/internal/challenge"
	"github.com/skyburst-games/popmeta/internal/event"
	"github.com/skyburst-games/popmeta/internal/ledger"
	"github.com/skyburst-games/popmeta/internal/scheduler"
	"github.com/skyburst-games/popmeta/internal/server"
	"github.com/skyburst-games/popmeta/internal/sse"
	"github.com/skyburst-games/popmeta/internal/store"
	"github.com/skyburst-games/popmeta/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server           *server.Server
	Scheduler        *scheduler.Scheduler
	WorkerPool       *worker.Pool
	Hub              *sse.Hub
	LedgerService    ledger.Service
	ChallengeService challenge.Service
	Publisher        *event.ResilientPublisher
	Storage          store.Store
}

// GracefulShutdown performs graceful shutdown of all application components,
// in dependency order:
//  1. HTTP server (stop accepting new requests)
//  2. Scheduler and worker pool (no new background jobs)
//  3. SSE hub (disconnect streaming clients)
//  4. Ledger and challenge flush (wait for in-flight storage writes)
//  5. Event publisher (drain retry loops)
//  6. Storage (close connections)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.Hub != nil {
		components.Hub.Stop()
	}

	// Flush pending slot writes before tearing down the bus and storage so no
	// accepted gameplay event is lost.
	slog.Info(LogMsgFlushingLedger)
	components.LedgerService.Flush()
	components.ChallengeService.Flush()

	slog.Info(LogMsgShuttingDownEventPublisher)
	components.Publisher.Wait()

	// Storage last; PostgresStore.Close also closes the connection pool.
	if components.Storage != nil {
		components.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}
