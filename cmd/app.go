package cmd

import (
	"net/http"
	"time"

	"github.com/simonvc/shopledger/internal/backup"
	"github.com/simonvc/shopledger/internal/client"
	"github.com/simonvc/shopledger/internal/config"
	"github.com/simonvc/shopledger/internal/export"
	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/logger"
	"github.com/simonvc/shopledger/internal/observability"
	"github.com/simonvc/shopledger/internal/report"
	"github.com/simonvc/shopledger/internal/server"
	"github.com/simonvc/shopledger/internal/store"
	"go.uber.org/zap"
)

// app is the server side of shopledger wired from configuration.
type app struct {
	store   *store.Store
	backup  *backup.Gateway
	server  *server.Server
	metrics *observability.Metrics
}

func newApp(cfg *config.Config, addr string, base *zap.Logger) (*app, error) {
	st, err := store.Open(cfg.DBPath, logger.Named(base, "store"))
	if err != nil {
		return nil, err
	}
	metrics := observability.NewMetrics()
	engine := ledger.New(st,
		ledger.WithLogger(logger.Named(base, "ledger")),
		ledger.WithRecorder(metrics),
	)
	gateway := backup.NewGateway(st, logger.Named(base, "backup"))
	renderer := export.Renderer{}
	if cfg.GotenbergURL != "" {
		renderer.PDF = &export.PDFRenderer{
			Endpoint: cfg.GotenbergURL,
			Client:   &http.Client{Timeout: 30 * time.Second},
		}
	}
	srv := server.New(server.Options{
		Ledger:             engine,
		Reports:            report.NewService(st, logger.Named(base, "report")),
		Backup:             gateway,
		Renderer:           renderer,
		Metrics:            metrics,
		Logger:             logger.Named(base, "http"),
		Currency:           cfg.Currency,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		ReadTimeout:        cfg.ReadTimeout,
		WriteTimeout:       cfg.WriteTimeout,
	}, addr)
	return &app{store: st, backup: gateway, server: srv, metrics: metrics}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func newClient() *client.Client {
	return client.New(cfg.ServerURL)
}
