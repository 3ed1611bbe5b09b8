package main

import (
	"context"
	"fmt"
	"log/slog"

	"uav-roster/internal/application/club"
	"uav-roster/internal/infrastructure/config"
	"uav-roster/internal/infrastructure/metrics"
	"uav-roster/internal/infrastructure/notify"
	"uav-roster/internal/infrastructure/persistence"
	"uav-roster/internal/infrastructure/ticket"
	httpapi "uav-roster/internal/interface/http"
)

// app 串接設定、儲存、服務與 HTTP 路由。
type app struct {
	backend *persistence.Backend
	service *club.Service
	server  *httpapi.Server
}

func newApp(ctx context.Context, cfg config.Config, backend *persistence.Backend, logger *slog.Logger) (*app, error) {
	loc, err := cfg.Club.Location()
	if err != nil {
		logger.Warn("invalid club timezone, using UTC", slog.String("error", err.Error()))
	}

	rec := metrics.New(nil)
	opts := club.Options{
		Location: loc,
		Logger:   logger,
		Observer: rec,
	}
	if tg := cfg.Notifier.Telegram; tg.Enabled && tg.Token != "" && tg.ChatID != 0 {
		opts.Announcer = notify.NewScoreAnnouncer(notify.NewTelegramClient(tg.Token, tg.ChatID, "UAV", tg.Timeout))
		logger.Info("score announcements enabled")
	}
	svc := club.NewService(backend.Repo, opts)

	data, err := svc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	logger.Info("roster loaded", slog.String("backend", backend.Name), slog.Int("members", len(data.Members)))

	srv := httpapi.NewServer(svc, httpapi.Options{
		Tickets:        ticket.NewIssuer(cfg.Ticket.Secret, cfg.Ticket.TTL),
		Metrics:        rec,
		Logger:         logger,
		Storage:        backend.Pinger,
		Backend:        backend.Name,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
	})
	return &app{backend: backend, service: svc, server: srv}, nil
}
