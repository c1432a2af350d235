package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kasuboski/showtrack/pkg/logger"
	"github.com/kasuboski/showtrack/pkg/machine"
	"github.com/kasuboski/showtrack/pkg/storage"
	"github.com/kasuboski/showtrack/pkg/tracking"
)

var (
	ErrLocalAhead      = errors.New("more local files than the tracking service expects")
	ErrPlanNotNumbered = errors.New("import plan has no episode numbers")
)

type ImportState string

const (
	ImportStateNew      ImportState = "new"
	ImportStateNumbered ImportState = "numbered"
	ImportStateMismatch ImportState = "mismatch"
	ImportStateAborted  ImportState = "aborted"
)

func newImportMachine() *machine.StateMachine[ImportState] {
	return machine.New(ImportStateNew,
		machine.From(ImportStateNew).To(ImportStateNumbered, ImportStateMismatch, ImportStateAborted),
		machine.From(ImportStateMismatch).To(ImportStateNumbered),
	)
}

// ImportPlan maps the video files found for a show to episode numbers.
// A plan in the mismatch state needs ResolveMismatch before it can be committed.
type ImportPlan struct {
	ShowID    int64
	ServiceID int32
	Files     []string
	// Expected is the tracking service's episode count, 0 when unknown
	Expected int32
	// Offset is the highest episode number stored before this plan
	Offset   int32
	Episodes []storage.Episode

	metadata map[int32]tracking.EpisodeMetadata
	machine  *machine.StateMachine[ImportState]
}

func (p *ImportPlan) State() ImportState {
	return p.machine.State()
}

// Remaining is how many episodes the tracking service expects beyond those already stored
func (p *ImportPlan) Remaining() int32 {
	return max(p.Expected-p.Offset, 0)
}

// PlanImport lists the video files at path and numbers them for showID.
// Files are numbered after the show's highest stored episode unless the tracking service expects a different
// number of episodes, in which case the plan is left in the mismatch or aborted state.
func (m MediaManager) PlanImport(ctx context.Context, showID int64, path string) (*ImportPlan, error) {
	log := logger.FromCtx(ctx)

	show, err := m.storage.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	files, err := m.library.ListVideoFiles(path)
	if err != nil {
		return nil, err
	}

	offset, err := m.storage.MaxEpisodeNumber(ctx, showID)
	if err != nil {
		return nil, err
	}

	plan := &ImportPlan{
		ShowID:    show.ID,
		ServiceID: show.ServiceID,
		Files:     files,
		Offset:    offset,
		machine:   newImportMachine(),
	}

	if show.Linked() {
		expected, ok, err := m.tracking.EpisodeCount(ctx, show.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to get episode count for %q: %w", show.Title, err)
		}
		if ok {
			plan.Expected = expected
		}

		plan.metadata = m.episodeMetadata(ctx, show.ServiceID)
	}

	discovered := offset + int32(len(files))
	next := ImportStateNumbered
	switch {
	case plan.Expected == 0, discovered == plan.Expected:
		plan.Episodes = plan.number(autoNumbers(offset, len(files)))
	case plan.Expected > discovered:
		next = ImportStateMismatch
	default:
		next = ImportStateAborted
	}

	if err := plan.machine.Transition(next); err != nil {
		return nil, err
	}

	log.Debugw("planned import", "show", show.Title, "files", len(files), "expected", plan.Expected, "offset", offset, "state", next)
	return plan, nil
}

// ResolveMismatch numbers a mismatched plan from user input such as "8,10-12".
// The numbers are used as given and matched to the files in order. On failure the plan stays in the mismatch state.
func (m MediaManager) ResolveMismatch(plan *ImportPlan, input string) error {
	if !plan.machine.CanTransition(ImportStateNumbered) {
		return fmt.Errorf("%w: plan is %s", machine.ErrInvalidTransition, plan.State())
	}

	numbers, err := ParseEpisodeList(input)
	if err != nil {
		return err
	}

	if len(numbers) != len(plan.Files) {
		return fmt.Errorf("%w: %d numbers for %d files", ErrEpisodeCountMismatch, len(numbers), len(plan.Files))
	}

	episodes := plan.number(numbers)
	if err := plan.machine.Transition(ImportStateNumbered); err != nil {
		return err
	}
	plan.Episodes = episodes

	return nil
}

// Commit stores every numbered episode of the plan
func (m MediaManager) Commit(ctx context.Context, plan *ImportPlan) error {
	if plan.State() != ImportStateNumbered {
		return fmt.Errorf("%w: plan is %s", ErrPlanNotNumbered, plan.State())
	}

	for _, e := range plan.Episodes {
		if err := m.storage.UpsertEpisode(ctx, e); err != nil {
			return fmt.Errorf("failed to store episode %d: %w", e.Number, err)
		}
	}

	return nil
}

// ImportRequest describes a show to add from a directory of episode files
type ImportRequest struct {
	Title     string
	ServiceID int32
	Progress  int32
	Path      string
	// AutoLink looks up the service id by title when ServiceID is 0
	AutoLink bool
}

// ImportShow creates the show, or reuses an existing show with the same title, and attaches the files at path.
// A numbered plan is committed. A mismatched plan is returned for the caller to resolve and commit.
// A local ahead plan attaches nothing and returns ErrLocalAhead.
func (m MediaManager) ImportShow(ctx context.Context, req ImportRequest) (*ImportPlan, error) {
	log := logger.FromCtx(ctx)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		guessed, err := m.library.GuessTitle(req.Path)
		if err != nil {
			return nil, err
		}
		title = guessed
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}

	serviceID := req.ServiceID
	if serviceID == 0 && req.AutoLink {
		id, ok, err := m.FindServiceID(ctx, title)
		if err != nil {
			log.Debugw("failed to link show", "title", title, "error", err)
		}
		if ok {
			serviceID = id
		}
	}

	showID, err := m.storage.CreateShow(ctx, title, serviceID, req.Progress)
	if errors.Is(err, storage.ErrConstraintViolation) {
		existing, lookupErr := m.storage.GetShowIDByTitle(ctx, title)
		if lookupErr != nil {
			return nil, err
		}
		log.Debugw("show already exists", "title", title, "id", existing)
		showID = existing
	} else if err != nil {
		return nil, err
	}

	return m.AppendEpisodes(ctx, showID, req.Path)
}

// AppendEpisodes plans the files at path for an existing show and commits the plan when it is numbered
func (m MediaManager) AppendEpisodes(ctx context.Context, showID int64, path string) (*ImportPlan, error) {
	plan, err := m.PlanImport(ctx, showID, path)
	if err != nil {
		return nil, err
	}

	switch plan.State() {
	case ImportStateNumbered:
		return plan, m.Commit(ctx, plan)
	case ImportStateAborted:
		return plan, fmt.Errorf("%w: %d files stored or found, %d expected", ErrLocalAhead, plan.Offset+int32(len(plan.Files)), plan.Expected)
	default:
		return plan, nil
	}
}

// episodeMetadata is best effort; a failed lookup leaves every episode without metadata
func (m MediaManager) episodeMetadata(ctx context.Context, serviceID int32) map[int32]tracking.EpisodeMetadata {
	md, err := m.tracking.EpisodeMetadata(ctx, serviceID)
	if err != nil {
		logger.FromCtx(ctx).Warnw("failed to get episode metadata", "service_id", serviceID, "error", err)
		return map[int32]tracking.EpisodeMetadata{}
	}

	return tracking.MetadataByNumber(md)
}

func autoNumbers(offset int32, n int) []int32 {
	numbers := make([]int32, n)
	for i := range numbers {
		numbers[i] = offset + int32(i) + 1
	}
	return numbers
}

// number zips numbers onto the plan's files in order
func (p *ImportPlan) number(numbers []int32) []storage.Episode {
	episodes := make([]storage.Episode, 0, len(numbers))
	for i, n := range numbers {
		md := p.metadata[n]
		episodes = append(episodes, storage.Episode{
			ShowID: p.ShowID,
			Number: n,
			Path:   p.Files[i],
			Title:  md.Title,
			Aired:  md.Aired,
			Score:  md.Score,
			Recap:  md.Recap,
			Filler: md.Filler,
		})
	}
	return episodes
}
