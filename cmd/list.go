package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/kasuboski/showtrack/pkg/storage"
	"github.com/spf13/cobra"
)

var (
	listSort     string
	listEpisodes bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list tracked shows",
	Long:  `list tracked shows with their progress and episode counts`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a := newApp(context.Background())
		defer a.close()

		sort, err := storage.ParseSortKey(listSort)
		if err != nil {
			return err
		}

		shows, err := a.manager.ListShows(ctx, sort)
		if err != nil {
			return err
		}

		if listEpisodes {
			renderEpisodes(shows)
			return nil
		}

		rows := make([][]string, 0, len(shows))
		for _, s := range shows {
			missing := 0
			for _, e := range s.Episodes {
				if e.FileDeleted {
					missing++
				}
			}

			rows = append(rows, []string{
				strconv.FormatInt(s.ID, 10),
				s.Title,
				serviceID(s),
				strconv.Itoa(int(s.Progress)),
				strconv.Itoa(len(s.Episodes)),
				strconv.Itoa(missing),
			})
		}

		renderTable(os.Stdout,
			[]string{"ID", "Title", "Service ID", "Progress", "Episodes", "Missing"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight},
		)
		return nil
	},
}

func serviceID(s *storage.Show) string {
	if !s.Linked() {
		return "-"
	}
	return strconv.Itoa(int(s.ServiceID))
}

func renderEpisodes(shows []*storage.Show) {
	rows := [][]string{}
	for _, s := range shows {
		for _, e := range s.Episodes {
			flags := ""
			if e.Recap {
				flags += "R"
			}
			if e.Filler {
				flags += "F"
			}
			if e.FileDeleted {
				flags += "D"
			}

			watched := ""
			if e.Number <= s.Progress {
				watched = "yes"
			}

			rows = append(rows, []string{s.Title, strconv.Itoa(int(e.Number)), e.Title, flags, watched, e.Path})
		}
	}

	renderTable(os.Stdout,
		[]string{"Show", "#", "Title", "Flags", "Watched", "Path"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)
}

func init() {
	listCmd.Flags().StringVar(&listSort, "sort", "id", "sort order: id, -id, title, -title, service, -service")
	listCmd.Flags().BoolVar(&listEpisodes, "episodes", false, "list every episode instead of one row per show")
	rootCmd.AddCommand(listCmd)
}
