package server

import (
	"net/http"

	"github.com/kasuboski/showtrack/pkg/logger"
)

// Sync runs one progress sync pass against the tracking service
func (s Server) Sync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		report, err := s.manager.SyncProgress(r.Context())
		if err != nil {
			log.Errorw("sync failed", "error", err)
			writeResponse(w, statusFor(err), GenericResponse{Error: err.Error(), Response: report})
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: report})
	}
}

// Search looks up titles on the tracking service
func (s Server) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := s.manager.SearchTitles(r.Context(), r.URL.Query().Get("query"))
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: results})
	}
}
