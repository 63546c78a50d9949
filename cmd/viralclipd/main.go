// Command viralclipd runs the analysis daemon: it owns the session state
// machine and clip collection and serves the control socket the CLI talks to.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"viralclip/internal/config"
	"viralclip/internal/daemon"
	"viralclip/internal/ipc"
	"viralclip/internal/logging"
	"viralclip/internal/notifications"
	"viralclip/internal/services/extractor"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	service := extractor.NewClient(cfg)
	notifier := notifications.NewService(cfg)

	d, err := daemon.New(cfg, service, notifier, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		return
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(ctx, cfg.SocketPath(), d, logger)
	if err != nil {
		logger.Error("start IPC server", logging.Error(err))
		return
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("viralclipd shutting down")
}
