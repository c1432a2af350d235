package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "inspect episode files on disk",
}

var filesListCmd = &cobra.Command{
	Use:   "list <path>",
	Short: "list the video files at a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a := newApp(context.Background())
		defer a.close()

		files, err := a.manager.ListVideoFiles(args[0])
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(files))
		var total uint64
		for _, f := range files {
			total += uint64(f.Size)
			rows = append(rows, []string{filepath.Base(f.Path), humanize.Bytes(uint64(f.Size))})
		}

		renderTable(os.Stdout, []string{"File", "Size"}, rows, []columnAlignment{alignLeft, alignRight})
		fmt.Printf("%d files, %s\n", len(files), humanize.Bytes(total))
		return nil
	},
}

var filesTitleCmd = &cobra.Command{
	Use:   "title <path>",
	Short: "guess a show title from the file names at a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a := newApp(context.Background())
		defer a.close()

		title, err := a.manager.GuessTitle(args[0])
		if err != nil {
			return err
		}

		fmt.Println(title)
		return nil
	},
}

var filesCountCmd = &cobra.Command{
	Use:   "count <path>",
	Short: "count the video files at a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a := newApp(context.Background())
		defer a.close()

		count, err := a.manager.CountVideoFiles(args[0])
		if err != nil {
			return err
		}

		fmt.Println(count)
		return nil
	},
}

func init() {
	filesCmd.AddCommand(filesListCmd, filesTitleCmd, filesCountCmd)
	rootCmd.AddCommand(filesCmd)
}
