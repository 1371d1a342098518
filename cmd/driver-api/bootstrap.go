package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/DriverBox/config"
	"github.com/BearBump/DriverBox/internal/i18n"
	"github.com/BearBump/DriverBox/internal/metrics"
	"github.com/BearBump/DriverBox/internal/services/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type driverAPIApp struct {
	ctx     context.Context
	cancel  context.CancelFunc
	opts    driverAPIOpts
	svc     *driver.Service
	closers []func()
}

func newDriverService(cfg *config.Config, f apiFactories) (*driver.Service, func(), error) {
	store, err := f.newStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	lang, err := i18n.ParseLanguage(cfg.DriverBox.DefaultLanguage)
	if err != nil {
		if cfg.DriverBox.DefaultLanguage != "" {
			slog.Warn("unknown default language, using pt", "language", cfg.DriverBox.DefaultLanguage)
		}
		lang = i18n.DefaultLanguage
	}
	sessionTTL := time.Duration(cfg.DriverBox.SessionTTLSeconds) * time.Second
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	driverName := cfg.DriverBox.DriverName
	if driverName == "" {
		driverName = "Motorista"
	}

	submitters, closeFn := f.newSubmitters(cfg)
	svc := driver.New(store, f.newCamera(cfg), submitters, f.newCache(cfg), driver.Config{
		DriverName:      driverName,
		DefaultLanguage: lang,
		SessionTTL:      sessionTTL,
	})
	return svc, closeFn, nil
}

func mustBootstrapDriverAPI() *driverAPIApp {
	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	httpAddr := cfg.DriverBox.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	svc, closeSubmitters, err := newDriverService(cfg, defaultAPIFactories())
	if err != nil {
		panic(fmt.Sprintf("ошибка инициализации, %v", err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.Register(reg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &driverAPIApp{
		ctx:    ctx,
		cancel: cancel,
		opts: driverAPIOpts{
			httpAddr:    httpAddr,
			swaggerPath: os.Getenv("swaggerPath"),
			metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		},
		svc: svc,
	}
	if closeSubmitters != nil {
		app.closers = append(app.closers, closeSubmitters)
	}
	return app
}

func (a *driverAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.svc != nil {
		a.svc.Close()
	}
	for _, fn := range a.closers {
		fn()
	}
}

func (a *driverAPIApp) Run() error {
	return runDriverAPI(a.ctx, a.opts, a.svc)
}
