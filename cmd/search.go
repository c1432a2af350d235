package cmd

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <title>",
	Short: "search the tracking service for a show",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, a := newApp(context.Background())
		defer a.close()

		results, err := a.manager.SearchTitles(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{strconv.Itoa(int(r.RemoteID)), r.Title})
		}

		renderTable(os.Stdout, []string{"Service ID", "Title"}, rows, []columnAlignment{alignRight})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
