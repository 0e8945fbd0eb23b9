package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"auction/api"
)

func main() {
	args, err := ParseArgs()
	if err != nil {
		slog.Error("Fail to parse arguments", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: args.LogLevel})))
	if err := args.Validate(); err != nil {
		slog.Error("Invalid arguments", slog.Any("error", err))
		os.Exit(1)
	}

	server, err := api.NewServer(args.ServerConfig)
	if err != nil {
		slog.Error("Fail to create server", slog.Any("error", err))
		os.Exit(1)
	}
	defer server.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		slog.Error("Fail to start server", slog.Any("error", err))
		return
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(slog.Default()))
	server.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    args.ServerURL,
		Handler: router,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Start HTTP server", slog.String("addr", args.ServerURL))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// SSE 連線不會自行結束，逾時後強制關閉
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Fail to shutdown HTTP server gracefully", slog.Any("error", err))
			return httpServer.Close()
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", slog.Any("error", err))
		return
	}
	slog.Info("Server stopped")
}
