package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/formie-filemaker/config"
	"github.com/marcelsud/formie-filemaker/filemaker"
	"github.com/marcelsud/formie-filemaker/forms"
	"github.com/marcelsud/formie-filemaker/internal/http/chi"
	"github.com/marcelsud/formie-filemaker/metrics"
	"github.com/marcelsud/formie-filemaker/payload"
	"github.com/marcelsud/formie-filemaker/report"
	"github.com/marcelsud/formie-filemaker/report/memory"
	"github.com/marcelsud/formie-filemaker/report/redis"
	"github.com/marcelsud/formie-filemaker/signature"
)

const TIMEOUT = 30 * time.Second

/* main wires the packages together and is the only place that decides
 * which storage backs the error reports
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	logger := httplog.NewLogger("formie-filemaker", httplog.Options{
		JSON: true,
	})

	loader := forms.NewLoader()
	if err := loader.Load(cfg.GetFormsFile()); err != nil {
		fmt.Println(err)
		return
	}

	var repo report.Repository
	if cfg.UseRedis() {
		repo, err = redis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.GetReportTTL(), cfg.GetReportLimit())
		if err != nil {
			fmt.Println(err)
			return
		}
	} else {
		repo = memory.NewRepository(cfg.GetReportLimit())
	}
	defer repo.Close(ctx)

	translator, err := report.NewTranslator(cfg.GetReportLanguage())
	if err != nil {
		fmt.Println(err)
		return
	}
	reports := report.NewService(repo, translator, logger)

	collector := metrics.NewReportCollector(repo)
	exporter, err := metrics.NewOTelExporter(collector)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(context.Background())

	dispatcher := filemaker.NewDispatcher(cfg.Webhook(), payload.NewBuilder(), reports,
		filemaker.WithForms(loader),
		filemaker.WithHTTPClient(&http.Client{Timeout: cfg.GetHTTPTimeout()}),
		filemaker.WithRecorder(exporter),
		filemaker.WithLogger(logger),
	)

	opts := chi.Options{
		Metrics: exporter.ServeHTTP(),
		Stats:   collector,
	}
	if cfg.SigningSecret != "" {
		secret, err := signature.ParseSecret(cfg.SigningSecret)
		if err != nil {
			fmt.Println(err)
			return
		}
		opts.Verifier = signature.NewVerifier(secret, cfg.GetSignatureTolerance())
	}

	r := chi.Handlers(ctx, dispatcher, reports, opts)
	http.Handle("/", r)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * cfg.GetHTTPTimeout(),
		Addr:         ":" + cfg.GetPort(),
		Handler:      http.DefaultServeMux,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	logger.Info().
		Str("port", cfg.GetPort()).
		Int("forms", len(loader.List())).
		Str("report_language", translator.Language().String()).
		Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("forcing closing the server: %w", err)
	default:
		errShutdown <- fmt.Errorf("shutting down server: %w", err)
	}
}
