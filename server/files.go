package server

import (
	"errors"
	"net/http"
)

var errMissingPath = errors.New("path query parameter is required")

func (s Server) ListFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			writeErrorResponse(w, http.StatusBadRequest, errMissingPath)
			return
		}

		files, err := s.manager.ListVideoFiles(path)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: files})
	}
}

func (s Server) GuessTitle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			writeErrorResponse(w, http.StatusBadRequest, errMissingPath)
			return
		}

		title, err := s.manager.GuessTitle(path)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: title})
	}
}

func (s Server) CountFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			writeErrorResponse(w, http.StatusBadRequest, errMissingPath)
			return
		}

		count, err := s.manager.CountVideoFiles(path)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: count})
	}
}
