package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/kasuboski/showtrack/pkg/logger"
	"github.com/kasuboski/showtrack/pkg/manager"
	"github.com/kasuboski/showtrack/pkg/storage"
)

var ErrPlanNotFound = errors.New("import plan not found or expired")

type ImportRequest struct {
	Title     string `json:"title"`
	ServiceID int32  `json:"serviceId"`
	Progress  int32  `json:"progress"`
	Path      string `json:"path"`
	AutoLink  bool   `json:"autoLink"`
}

type AppendRequest struct {
	Path string `json:"path"`
}

type ResolveRequest struct {
	// Episodes lists the episode numbers of the plan's files, such as "8,10-12"
	Episodes string `json:"episodes"`
}

type ImportResponse struct {
	PlanID   string              `json:"planId,omitempty"`
	State    manager.ImportState `json:"state"`
	ShowID   int64               `json:"showId"`
	Files    []string            `json:"files"`
	Expected int32               `json:"expected"`
	Offset   int32               `json:"offset"`
	Episodes []storage.Episode   `json:"episodes"`
}

func importResponse(planID string, plan *manager.ImportPlan) ImportResponse {
	episodes := plan.Episodes
	if episodes == nil {
		episodes = []storage.Episode{}
	}

	return ImportResponse{
		PlanID:   planID,
		State:    plan.State(),
		ShowID:   plan.ShowID,
		Files:    plan.Files,
		Expected: plan.Expected,
		Offset:   plan.Offset,
		Episodes: episodes,
	}
}

// writePlan answers an import or append. A mismatched plan is kept until it is resolved or expires.
func (s Server) writePlan(w http.ResponseWriter, r *http.Request, plan *manager.ImportPlan, err error) {
	log := logger.FromCtx(r.Context())

	if plan == nil {
		writeErrorResponse(w, statusFor(err), err)
		return
	}

	if err != nil {
		writeResponse(w, statusFor(err), GenericResponse{Error: err.Error(), Response: importResponse("", plan)})
		return
	}

	if plan.State() == manager.ImportStateMismatch {
		id := uuid.NewString()
		s.plans.Set(id, plan)
		log.Debugw("import waiting for episode numbers", "plan", id, "files", len(plan.Files), "expected", plan.Expected)
		writeResponse(w, http.StatusAccepted, GenericResponse{Response: importResponse(id, plan)})
		return
	}

	writeResponse(w, http.StatusCreated, GenericResponse{Response: importResponse("", plan)})
}

// ImportShow creates a show from a directory of episode files
func (s Server) ImportShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}

		plan, err := s.manager.ImportShow(r.Context(), manager.ImportRequest{
			Title:     request.Title,
			ServiceID: request.ServiceID,
			Progress:  request.Progress,
			Path:      request.Path,
			AutoLink:  request.AutoLink,
		})
		s.writePlan(w, r, plan, err)
	}
}

// AppendEpisodes attaches more episode files to an existing show
func (s Server) AppendEpisodes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := showID(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		var request AppendRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}

		plan, err := s.manager.AppendEpisodes(r.Context(), id, request.Path)
		s.writePlan(w, r, plan, err)
	}
}

// ResolveImport numbers a mismatched import from user input and stores its episodes
func (s Server) ResolveImport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["plan"]

		var request ResolveRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}

		// the handler owns the plan until it is put back, so concurrent resolves of one id cannot both commit
		plan, ok := s.plans.Take(id)
		if !ok {
			writeErrorResponse(w, http.StatusNotFound, ErrPlanNotFound)
			return
		}

		if err := s.manager.ResolveMismatch(plan, request.Episodes); err != nil {
			s.plans.Set(id, plan)
			writeResponse(w, statusFor(err), GenericResponse{Error: err.Error(), Response: importResponse(id, plan)})
			return
		}

		if err := s.manager.Commit(r.Context(), plan); err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		writeResponse(w, http.StatusCreated, GenericResponse{Response: importResponse("", plan)})
	}
}
