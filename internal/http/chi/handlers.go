package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/formie-filemaker/filemaker"
	"github.com/marcelsud/formie-filemaker/metrics"
	"github.com/marcelsud/formie-filemaker/report"
	"github.com/marcelsud/formie-filemaker/signature"
)

// Reports is the read side of the error surface
type Reports interface {
	Get(ctx context.Context, id string) (report.Report, error)
	List(ctx context.Context, limit int) ([]report.Report, error)
}

// Options carries the optional pieces of the API
type Options struct {
	// Verifier authenticates POST /v1/submissions when set
	Verifier *signature.Verifier
	// Metrics is mounted on /metrics when set
	Metrics http.Handler
	// Stats backs GET /v1/stats when set
	Stats metrics.Collector
}

// Handlers sets up the host-facing API
func Handlers(ctx context.Context, useCase filemaker.UseCase, reports Reports, opts Options) *chi.Mux {
	logger := httplog.NewLogger("formie-filemaker", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.Verifier != nil {
				r.Use(verifySignature(opts.Verifier))
			}
			r.Post("/submissions", postSubmission(useCase).ServeHTTP)
		})

		r.Get("/forms/{form_id}/settings", getFormSettings(useCase).ServeHTTP)
		r.Get("/connection", getConnection(useCase).ServeHTTP)

		r.Get("/errors", getReports(reports).ServeHTTP)
		r.Get("/errors/{id}", getReport(reports).ServeHTTP)

		if opts.Stats != nil {
			r.Get("/stats", getStats(opts.Stats).ServeHTTP)
		}
	})

	return r
}

// verifySignature rejects submissions whose Standard Webhooks signature does not check out
func verifySignature(v *signature.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := v.VerifyRequest(r); err != nil {
				httplog.LogEntrySetField(r.Context(), "signature_error", err.Error())
				http.Error(w, "invalid webhook signature", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
