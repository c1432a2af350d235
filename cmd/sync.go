package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/kasuboski/showtrack/pkg/manager"
	"github.com/spf13/cobra"
)

var syncAll bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "sync watch progress with the tracking service",
	Long: `sync watch progress with the tracking service.
A show whose remote progress is ahead takes the remote value. A show whose local progress is ahead is pushed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a := newApp(context.Background())
		defer a.close()

		report, err := a.manager.SyncProgress(ctx)
		printSyncReport(report, syncAll)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d pulled, %d pushed, %d unchanged, %d skipped\n",
			a.manager.TrackingName(), report.Pulled, report.Pushed, report.Unchanged, report.Skipped)
		return nil
	},
}

func printSyncReport(report manager.SyncReport, all bool) {
	rows := [][]string{}
	for _, o := range report.Shows {
		if !all && (o.Action == manager.SyncActionUnchanged || o.Action == manager.SyncActionSkipped) {
			continue
		}
		rows = append(rows, []string{o.Title, string(o.Action), strconv.Itoa(int(o.Local)), strconv.Itoa(int(o.Remote))})
	}

	if len(rows) == 0 {
		return
	}

	renderTable(os.Stdout, []string{"Show", "Action", "Local", "Remote"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight})
}

func init() {
	syncCmd.Flags().BoolVar(&syncAll, "all", false, "include unchanged and unlinked shows in the report")
	rootCmd.AddCommand(syncCmd)
}
