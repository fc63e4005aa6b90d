package main

import (
	"collab-lab/domain"
	"collab-lab/internal"
	"collab-lab/moderation"
	"collab-lab/realtime/relay"
	"collab-lab/repositories"
	"collab-lab/repositories/storage"
	"collab-lab/runtime/workers"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource so that deferred cleanups execute before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	repository := repositories.NewPresenceRepository(db, log, config.LimitChanges)

	// 3. Moderation of display names
	var censor relay.NameCensor
	if config.EnableModeration {
		moderator, err := newModerator(log, config.CharReplacement)
		if err != nil {
			return err
		}
		censor = moderator
	}

	// 4. Hub, presence log and supervision
	changes := make(chan domain.Change, config.BufferSize)
	hub := relay.NewHub(log, censor, func(change domain.Change) {
		select {
		case changes <- change:
		default:
			log.Warn("Presence log buffer full, dropping change",
				"room", change.Room, "participant", change.Participant.ID)
		}
	})

	sup := workers.NewSupervisor(log)
	sup.Add(
		workers.NewEventFanout(log, changes, config.SinkTimeout, storage.NewDiskSink(repository)),
		workers.NewHeartbeatWorker(log, config.HeartbeatInterval, hub.Stats),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	supervised := make(chan struct{})
	go func() {
		defer close(supervised)
		sup.Run(ctx)
	}()

	// 5. HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RequestID, middleware.Recoverer)
	relay.NewServer(log, hub, []byte(config.JwtSecret), repository, config.PingInterval).Routes(router)
	if config.EnableInspect {
		router.Method(http.MethodGet, "/debug/inspect", internal.InspectHandler(db, nil, func() map[string]any {
			stats := hub.Stats()
			return map[string]any{"rooms": stats.Rooms, "members": stats.Members}
		}))
	}

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{Addr: address, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	// 6. gRPC health service
	grpcAddress := fmt.Sprintf("%s:%d", config.Host, config.GrpcPort)
	listener, err := net.Listen("tcp", grpcAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", grpcAddress, err)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	errChan := make(chan error, 2)
	go func() {
		log.Info("Starting gRPC health server", "address", grpcAddress)
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()
	go func() {
		log.Info("Starting relay", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
	sup.Stop()
	<-supervised
	log.Info("Relay stopped cleanly")
	return nil
}

func newModerator(log *slog.Logger, replacement string) (*moderation.Moderator, error) {
	char, err := internal.CharacterRune(replacement)
	if err != nil {
		return nil, err
	}
	words, err := moderation.LoadEmbeddedWords()
	if err != nil {
		return nil, err
	}
	log.Info("Moderation enabled", "words", len(words.Words), "languages", words.Languages)
	return moderation.NewModerator(words.Words, char, log)
}
