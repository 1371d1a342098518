package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/BearBump/DriverBox/internal/api/driverapi"
	"github.com/BearBump/DriverBox/internal/services/driver"
)

type driverAPIOpts struct {
	httpAddr        string
	swaggerPath     string
	metrics         http.Handler
	janitorInterval time.Duration

	onListen func(httpAddr string)
}

func runDriverAPI(ctx context.Context, opts driverAPIOpts, svc *driver.Service) error {
	if opts.janitorInterval <= 0 {
		opts.janitorInterval = time.Minute
	}

	lis, err := net.Listen("tcp", opts.httpAddr)
	if err != nil {
		return err
	}
	if opts.onListen != nil {
		opts.onListen(lis.Addr().String())
	}

	api := driverapi.New(svc)
	srv := &http.Server{
		Handler: api.Handler(driverapi.Options{
			SwaggerPath: opts.swaggerPath,
			Metrics:     opts.metrics,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go svc.RunJanitor(ctx, opts.janitorInterval)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("driver api listening", "addr", lis.Addr().String())
	if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
		return err
	}
	return ctx.Err()
}
