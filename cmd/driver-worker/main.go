package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BearBump/DriverBox/config"
	"github.com/BearBump/DriverBox/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics.Register(reg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = RunDriverWorker(ctx, cfg, defaultWorkerFactories(), workerHTTPOpts{
		httpAddr: cfg.DriverBox.WorkerHTTPAddr,
		metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	if err != nil && err != context.Canceled {
		panic(err)
	}
}
