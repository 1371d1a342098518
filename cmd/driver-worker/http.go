package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/BearBump/DriverBox/config"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/BearBump/DriverBox/internal/services/ledger"
	"github.com/go-chi/chi/v5"
)

type workerHTTPOpts struct {
	httpAddr string
	metrics  http.Handler
	onListen func(httpAddr string)

	ledger  *ledger.Ledger
	storage storage
	cfg     *config.Config
}

func workerRouter(opts workerHTTPOpts) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.storage != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := opts.storage.Ping(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "not ready", "error": err.Error()})
				return
			}
		}
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	})

	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.ledger == nil {
			_, _ = w.Write([]byte(`{"error":"ledger not wired"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(opts.ledger.Stats())
	})

	r.Get("/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.cfg == nil {
			_, _ = w.Write([]byte(`{"error":"config not wired"}`))
			return
		}
		// без паролей: только то, что нужно для отладки
		out := map[string]any{
			"kafkaHost":          opts.cfg.Kafka.Host,
			"kafkaPort":          opts.cfg.Kafka.Port,
			"submissionsTopic":   opts.cfg.Kafka.SubmissionsTopic,
			"kafkaConsumerGroup": opts.cfg.DriverBox.KafkaConsumerGroup,
			"databaseHost":       opts.cfg.Database.Host,
			"databaseName":       opts.cfg.Database.DBName,
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	// что уже сохранено по доставке: для разбора спорных случаев
	r.Get("/deliveries/{deliveryID}/submissions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if opts.storage == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"storage not wired"}`))
			return
		}
		id := chi.URLParam(r, "deliveryID")
		rs, err := opts.storage.ListReceiptsByDelivery(r.Context(), id)
		if err != nil {
			writeStorageError(w, err)
			return
		}
		occ, err := opts.storage.ListOccurrencesByDelivery(r.Context(), id)
		if err != nil {
			writeStorageError(w, err)
			return
		}
		if rs == nil {
			rs = []*models.Receipt{}
		}
		if occ == nil {
			occ = []*models.Occurrence{}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"deliveryId":  id,
			"receipts":    rs,
			"occurrences": occ,
		})
	})

	if opts.metrics != nil {
		r.Handle("/metrics", opts.metrics)
	}
	return r
}

func writeStorageError(w http.ResponseWriter, err error) {
	slog.Error("read submissions", "error", err.Error())
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func runWorkerHTTPServer(ctx context.Context, opts workerHTTPOpts) error {
	if opts.httpAddr == "" {
		opts.httpAddr = ":8082"
	}

	lis, err := net.Listen("tcp", opts.httpAddr)
	if err != nil {
		return err
	}
	if opts.onListen != nil {
		opts.onListen(lis.Addr().String())
	}

	srv := &http.Server{Handler: workerRouter(opts), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(lis); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
