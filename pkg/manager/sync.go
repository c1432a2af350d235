package manager

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kasuboski/showtrack/pkg/logger"
	"github.com/kasuboski/showtrack/pkg/storage"
	"github.com/kasuboski/showtrack/pkg/tracking"
)

type SyncAction string

const (
	SyncActionPulled    SyncAction = "pulled"
	SyncActionPushed    SyncAction = "pushed"
	SyncActionUnchanged SyncAction = "unchanged"
	SyncActionSkipped   SyncAction = "skipped"
)

// SyncOutcome is what one sync pass did to one show
type SyncOutcome struct {
	ShowID int64      `json:"showId"`
	Title  string     `json:"title"`
	Action SyncAction `json:"action"`
	Local  int32      `json:"local"`
	Remote int32      `json:"remote"`
}

type SyncReport struct {
	ID        string        `json:"id"`
	Pulled    int           `json:"pulled"`
	Pushed    int           `json:"pushed"`
	Unchanged int           `json:"unchanged"`
	Skipped   int           `json:"skipped"`
	Shows     []SyncOutcome `json:"shows"`
}

func (r *SyncReport) add(o SyncOutcome) {
	switch o.Action {
	case SyncActionPulled:
		r.Pulled++
	case SyncActionPushed:
		r.Pushed++
	case SyncActionUnchanged:
		r.Unchanged++
	case SyncActionSkipped:
		r.Skipped++
	}
	r.Shows = append(r.Shows, o)
}

// SyncProgress copies progress to whichever side is behind for every linked show.
// A remote ahead of local overwrites local progress; a local ahead of remote is pushed to the tracking service.
// There is no conflict detection. The pass stops at the first failing show and updates already made are kept.
func (m MediaManager) SyncProgress(ctx context.Context) (SyncReport, error) {
	report := SyncReport{
		ID:    uuid.NewString(),
		Shows: []SyncOutcome{},
	}

	log := logger.FromCtx(ctx).With("sync_id", report.ID, "service", m.tracking.Name())
	ctx = logger.WithCtx(ctx, log)

	if !m.tracking.IsAuthenticated(ctx) {
		return report, tracking.ErrNotAuthenticated
	}

	shows, err := m.storage.ListShows(ctx, storage.SortByIDAsc)
	if err != nil {
		return report, err
	}

	for _, show := range shows {
		outcome, err := m.syncShow(ctx, show)
		if err != nil {
			return report, fmt.Errorf("failed to sync %q: %w", show.Title, err)
		}
		report.add(outcome)
	}

	log.Debugw("sync finished", "pulled", report.Pulled, "pushed", report.Pushed, "unchanged", report.Unchanged, "skipped", report.Skipped)
	return report, nil
}

func (m MediaManager) syncShow(ctx context.Context, show *storage.Show) (SyncOutcome, error) {
	log := logger.FromCtx(ctx).With("show", show.Title)

	outcome := SyncOutcome{
		ShowID: show.ID,
		Title:  show.Title,
		Local:  show.Progress,
	}

	if !show.Linked() {
		outcome.Action = SyncActionSkipped
		return outcome, nil
	}

	// a show missing from the remote list counts as progress 0
	remote, _, err := m.tracking.RemoteProgress(ctx, show.ServiceID)
	if err != nil {
		return outcome, err
	}
	outcome.Remote = remote

	switch {
	case remote > show.Progress:
		if err := m.storage.UpdateShowProgress(ctx, show.ID, remote); err != nil {
			return outcome, err
		}
		outcome.Action = SyncActionPulled
		outcome.Local = remote
	case remote < show.Progress:
		accepted, err := m.tracking.SetRemoteProgress(ctx, show.ServiceID, show.Progress)
		if err != nil {
			return outcome, err
		}
		if accepted != show.Progress {
			log.Debugw("tracking service adjusted pushed progress", "requested", show.Progress, "accepted", accepted)
		}
		outcome.Action = SyncActionPushed
		outcome.Remote = accepted
	default:
		outcome.Action = SyncActionUnchanged
	}

	log.Debugw("synced show", "action", outcome.Action, "local", outcome.Local, "remote", outcome.Remote)
	return outcome, nil
}
