package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/kasuboski/showtrack/pkg/manager"
	"github.com/spf13/cobra"
)

var (
	showTitle     string
	showServiceID int32
	showProgress  int32
	showEpisodes  string
	showNoLink    bool
)

var errImportCancelled = errors.New("import cancelled")

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "manage tracked shows",
}

var showAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "add a show from a directory of episode files",
	Long: `add a show from a directory of episode files.
The title is guessed from the first file name when --title is not given. Without --service-id the show is linked
to the tracking service when exactly one search result has the same title.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a := newApp(context.Background())
		defer a.close()

		plan, err := a.manager.ImportShow(ctx, manager.ImportRequest{
			Title:     showTitle,
			ServiceID: showServiceID,
			Progress:  showProgress,
			Path:      args[0],
			AutoLink:  !showNoLink,
		})
		if err != nil {
			return err
		}

		return finishPlan(ctx, a.manager, plan, showEpisodes)
	},
}

var showAppendCmd = &cobra.Command{
	Use:   "append <show-id> <path>",
	Short: "attach more episode files to a show",
	Long:  `attach more episode files to a show. New files are numbered after the highest stored episode.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseShowID(args[0])
		if err != nil {
			return err
		}

		ctx, a := newApp(context.Background())
		defer a.close()

		plan, err := a.manager.AppendEpisodes(ctx, id, args[1])
		if err != nil {
			return err
		}

		return finishPlan(ctx, a.manager, plan, showEpisodes)
	},
}

var showDeleteCmd = &cobra.Command{
	Use:   "delete <show-id>",
	Short: "delete a show and its episodes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseShowID(args[0])
		if err != nil {
			return err
		}

		ctx, a := newApp(context.Background())
		defer a.close()

		return a.manager.DeleteShow(ctx, id)
	},
}

var showProgressCmd = &cobra.Command{
	Use:   "progress <show-id> <episode>",
	Short: "set the last watched episode of a show",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseShowID(args[0])
		if err != nil {
			return err
		}

		progress, err := strconv.ParseInt(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid progress %q: %w", args[1], err)
		}

		ctx, a := newApp(context.Background())
		defer a.close()

		return a.manager.SetProgress(ctx, id, int32(progress))
	},
}

func parseShowID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid show id %q: %w", s, err)
	}
	return id, nil
}

// finishPlan resolves a mismatched plan from --episodes or an interactive prompt and reports what was stored
func finishPlan(ctx context.Context, m manager.MediaManager, plan *manager.ImportPlan, episodes string) error {
	if plan.State() == manager.ImportStateMismatch {
		var err error
		switch {
		case episodes != "":
			err = m.ResolveMismatch(plan, episodes)
		case isTerminal(os.Stdin):
			err = promptForEpisodes(os.Stdin, os.Stdout, m, plan)
		default:
			err = fmt.Errorf("%w: %d files found but %d episodes remain, pass --episodes",
				manager.ErrEpisodeCountMismatch, len(plan.Files), plan.Remaining())
		}
		if err != nil {
			return err
		}

		if err := m.Commit(ctx, plan); err != nil {
			return err
		}
	}

	fmt.Printf("stored %s for show %d\n", pluralEpisodes(len(plan.Episodes)), plan.ShowID)
	return nil
}

// promptForEpisodes asks for episode numbers until they resolve the plan. An empty line cancels.
func promptForEpisodes(in io.Reader, out io.Writer, m manager.MediaManager, plan *manager.ImportPlan) error {
	fmt.Fprintf(out, "found %d files but %d episodes remain:\n", len(plan.Files), plan.Remaining())
	for _, f := range plan.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "episode numbers for these files (e.g. 8,10-12), empty to cancel: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return errImportCancelled
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			return errImportCancelled
		}

		err := m.ResolveMismatch(plan, input)
		if err == nil {
			return nil
		}
		fmt.Fprintln(out, err)
	}
}

func pluralEpisodes(n int) string {
	return english.Plural(n, "episode", "")
}

func init() {
	showAddCmd.Flags().StringVar(&showTitle, "title", "", "show title, guessed from the file names when empty")
	showAddCmd.Flags().Int32Var(&showServiceID, "service-id", 0, "id of the show on the tracking service")
	showAddCmd.Flags().Int32Var(&showProgress, "progress", 0, "last watched episode")
	showAddCmd.Flags().BoolVar(&showNoLink, "no-link", false, "do not search the tracking service for the title")

	for _, c := range []*cobra.Command{showAddCmd, showAppendCmd} {
		c.Flags().StringVar(&showEpisodes, "episodes", "", "episode numbers of the files when they do not match the expected count, e.g. 8,10-12")
	}

	showCmd.AddCommand(showAddCmd, showAppendCmd, showDeleteCmd, showProgressCmd)
	rootCmd.AddCommand(showCmd)
}
