package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/conference-cli/internal/docload"
	"github.com/sells-group/conference-cli/internal/pipeline"
	"github.com/sells-group/conference-cli/internal/reconcile"
	"github.com/sells-group/conference-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for parse requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		p := pipeline.New(docload.NewPDFLoader(), pipelineConfig())

		// Parsing is CPU-bound; throttle the endpoint so a burst of
		// requests cannot pile up whole-document parses.
		limiter := rate.NewLimiter(rate.Limit(cfg.Server.ParseRatePerSec), cfg.Server.ParseBurst)

		r := chi.NewRouter()
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/parse", func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				http.Error(w, `{"error":"too many parse requests"}`, http.StatusTooManyRequests)
				return
			}

			var body struct {
				Documents []string `json:"documents"`
				Save      bool     `json:"save"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
			if len(body.Documents) == 0 {
				http.Error(w, `{"error":"documents is required"}`, http.StatusBadRequest)
				return
			}

			result, err := p.Run(req.Context(), body.Documents)
			if err != nil {
				zap.L().Error("serve: parse failed", zap.Error(err))
				http.Error(w, `{"error":"parse failed"}`, http.StatusInternalServerError)
				return
			}

			if body.Save {
				if err := saveResult(req, st, body.Documents, result); err != nil {
					zap.L().Error("serve: save failed", zap.String("run_id", result.RunID), zap.Error(err))
					http.Error(w, `{"error":"save failed"}`, http.StatusInternalServerError)
					return
				}
			}

			writeJSON(w, http.StatusOK, map[string]any{
				"run_id":   result.RunID,
				"status":   result.Status(),
				"skipped":  result.Skipped,
				"profiles": reconcile.BuildExport(result.Profiles),
			})
		})

		r.Get("/runs", func(w http.ResponseWriter, req *http.Request) {
			runs, err := st.ListRuns(req.Context(), 50)
			if err != nil {
				zap.L().Error("serve: list runs failed", zap.Error(err))
				http.Error(w, `{"error":"list runs failed"}`, http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, runs)
		})

		r.Get("/runs/{id}/profiles", func(w http.ResponseWriter, req *http.Request) {
			profiles, err := st.ListProfiles(req.Context(), chi.URLParam(req, "id"))
			if err != nil {
				zap.L().Error("serve: list profiles failed", zap.Error(err))
				http.Error(w, `{"error":"list profiles failed"}`, http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, reconcile.BuildExport(profiles))
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// saveResult persists a parse run and its profiles.
func saveResult(req *http.Request, st store.Store, documents []string, result *pipeline.Result) error {
	run, err := st.CreateRun(req.Context(), documents)
	if err != nil {
		return err
	}
	// Keep the pipeline's run ID in the response but the store's ID on disk.
	result.RunID = run.ID
	if err := st.SaveProfiles(req.Context(), run.ID, result.Profiles); err != nil {
		return err
	}
	return st.CompleteRun(req.Context(), run.ID, result.Status(), len(result.Profiles), result.RecordCount)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
