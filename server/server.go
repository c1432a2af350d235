package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/kasuboski/showtrack/pkg/cache"
	"github.com/kasuboski/showtrack/pkg/library"
	"github.com/kasuboski/showtrack/pkg/manager"
	"github.com/kasuboski/showtrack/pkg/storage"
	"github.com/kasuboski/showtrack/pkg/tracking"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// pendingPlanTTL is how long a mismatched import waits for its resolution
const pendingPlanTTL = 30 * time.Minute

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

// Server exposes the media manager over a JSON API
type Server struct {
	baseLogger *zap.SugaredLogger
	manager    manager.MediaManager
	plans      *cache.Cache[string, *manager.ImportPlan]
}

// New creates a new media server
func New(logger *zap.SugaredLogger, m manager.MediaManager) Server {
	return Server{
		baseLogger: logger,
		manager:    m,
		plans:      cache.New[string, *manager.ImportPlan](pendingPlanTTL),
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: err.Error(),
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// statusFor maps core errors onto http status codes
func statusFor(err error) int {
	var remoteErr *tracking.RemoteError

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrConstraintViolation), errors.Is(err, manager.ErrLocalAhead):
		return http.StatusConflict
	case errors.Is(err, tracking.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, storage.ErrNegativeProgress),
		errors.Is(err, storage.ErrInvalidSortKey),
		errors.Is(err, manager.ErrInvalidEpisodeList),
		errors.Is(err, manager.ErrEpisodeCountMismatch),
		errors.Is(err, manager.ErrEmptyTitle),
		errors.Is(err, manager.ErrEmptyQuery),
		errors.Is(err, library.ErrUnreadable):
		return http.StatusBadRequest
	case errors.As(err, &remoteErr):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// Router builds the http routes
func (s Server) Router() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/shows", s.ListShows()).Methods(http.MethodGet)
	v1.HandleFunc("/shows", s.CreateShow()).Methods(http.MethodPost)
	v1.HandleFunc("/shows/{id}", s.GetShow()).Methods(http.MethodGet)
	v1.HandleFunc("/shows/{id}", s.DeleteShow()).Methods(http.MethodDelete)
	v1.HandleFunc("/shows/{id}/progress", s.SetProgress()).Methods(http.MethodPut)
	v1.HandleFunc("/shows/{id}/episodes", s.AppendEpisodes()).Methods(http.MethodPost)
	v1.HandleFunc("/shows/{id}/episodes/{number}", s.UpsertEpisode()).Methods(http.MethodPut)

	v1.HandleFunc("/imports", s.ImportShow()).Methods(http.MethodPost)
	v1.HandleFunc("/imports/{plan}/resolve", s.ResolveImport()).Methods(http.MethodPost)

	v1.HandleFunc("/files", s.ListFiles()).Methods(http.MethodGet)
	v1.HandleFunc("/files/title", s.GuessTitle()).Methods(http.MethodGet)
	v1.HandleFunc("/files/count", s.CountFiles()).Methods(http.MethodGet)

	v1.HandleFunc("/sync", s.Sync()).Methods(http.MethodPost)
	v1.HandleFunc("/search", s.Search()).Methods(http.MethodGet)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
	)(rtr)
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.baseLogger.Infow("serving...", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}
