package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kasuboski/showtrack/pkg/logger"
	"github.com/kasuboski/showtrack/pkg/pagination"
	"github.com/kasuboski/showtrack/pkg/storage"
)

type CreateShowRequest struct {
	Title     string `json:"title"`
	ServiceID int32  `json:"serviceId"`
	Progress  int32  `json:"progress"`
}

type SetProgressRequest struct {
	Progress int32 `json:"progress"`
}

type UpsertEpisodeRequest struct {
	Path   string `json:"path"`
	Title  string `json:"title"`
	Recap  bool   `json:"recap"`
	Filler bool   `json:"filler"`
}

// ListShowsResponse is one page of shows
type ListShowsResponse struct {
	Shows []*storage.Show `json:"shows"`
	Meta  pagination.Meta `json:"meta"`
}

func showID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid show id: %w", err)
	}
	return id, nil
}

// ListShows lists every show with its episodes, optionally sorted and paged
func (s Server) ListShows() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		sort, err := storage.ParseSortKey(r.URL.Query().Get("sort"))
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		params, err := pagination.FromQuery(r.URL.Query())
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		shows, err := s.manager.ListShows(r.Context(), sort)
		if err != nil {
			log.Errorw("failed to list shows", "error", err)
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		page, meta := pagination.Page(shows, params)
		writeResponse(w, http.StatusOK, GenericResponse{Response: ListShowsResponse{Shows: page, Meta: meta}})
	}
}

func (s Server) GetShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := showID(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		show, err := s.manager.GetShow(r.Context(), id)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: show})
	}
}

func (s Server) CreateShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		var request CreateShowRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			log.Debugw("invalid request body", "error", err)
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}

		id, err := s.manager.CreateShow(r.Context(), request.Title, request.ServiceID, request.Progress)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		show, err := s.manager.GetShow(r.Context(), id)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusCreated, GenericResponse{Response: show})
	}
}

func (s Server) SetProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := showID(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		var request SetProgressRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}

		if request.Progress < 0 {
			writeErrorResponse(w, http.StatusBadRequest, storage.ErrNegativeProgress)
			return
		}

		if err := s.manager.SetProgress(r.Context(), id, request.Progress); err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: request})
	}
}

func (s Server) DeleteShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := showID(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		if err := s.manager.DeleteShow(r.Context(), id); err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: "deleted"})
	}
}

func (s Server) UpsertEpisode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := showID(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		number, err := strconv.ParseInt(mux.Vars(r)["number"], 10, 32)
		if err != nil || number < 1 {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid episode number %q", mux.Vars(r)["number"]))
			return
		}

		var request UpsertEpisodeRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}

		episode := storage.Episode{
			ShowID: id,
			Number: int32(number),
			Path:   request.Path,
			Title:  request.Title,
			Recap:  request.Recap,
			Filler: request.Filler,
		}
		if err := s.manager.UpsertEpisode(r.Context(), episode); err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: episode})
	}
}
