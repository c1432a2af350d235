package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/kasuboski/showtrack/config"
	mhttp "github.com/kasuboski/showtrack/pkg/http"
	"github.com/kasuboski/showtrack/pkg/library"
	"github.com/kasuboski/showtrack/pkg/logger"
	"github.com/kasuboski/showtrack/pkg/manager"
	"github.com/kasuboski/showtrack/pkg/storage/sqlite"
	"github.com/kasuboski/showtrack/pkg/tracking"
	"github.com/kasuboski/showtrack/pkg/tracking/mal"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app holds what every command needs. close releases the store and its lock.
type app struct {
	cfg     config.Config
	log     *zap.SugaredLogger
	manager manager.MediaManager
	close   func()
}

func loadConfig() (config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.New(viper.GetViper())
	if err != nil {
		return cfg, logger.Get(), fmt.Errorf("failed to read configuration: %w", err)
	}

	logger.Configure(logger.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})

	return cfg, logger.Get(), nil
}

// newApp opens the store and builds the manager. Failing to open the store is fatal.
func newApp(ctx context.Context) (context.Context, *app) {
	cfg, log, err := loadConfig()
	if err != nil {
		log.Fatalw("failed to read configurations", "error", err)
	}
	ctx = logger.WithCtx(ctx, log)

	store, err := sqlite.New(ctx, cfg.Storage.FilePath)
	if err != nil {
		log.Fatalw("failed to open store", "path", cfg.Storage.FilePath, "error", err)
	}

	lib := library.New(afero.NewOsFs(), library.WithRoot(cfg.Library.Root))
	m := manager.New(newTrackingService(cfg), lib, store)

	return ctx, &app{
		cfg:     cfg,
		log:     log,
		manager: m,
		close: func() {
			if err := store.Close(); err != nil {
				log.Warnw("failed to close store", "error", err)
			}
		},
	}
}

func newTrackingService(cfg config.Config) tracking.Service {
	var svc tracking.Service = tracking.Local{}

	if cfg.Tracking.Provider == mal.Name {
		client := mhttp.NewRateLimitedClient(
			mhttp.WithMaxRetries(cfg.Tracking.MAL.MaxRetries),
			mhttp.WithBaseBackoff(cfg.Tracking.MAL.BaseBackoff),
		)
		svc = mal.New(cfg.Tracking.MAL.ClientID, cfg.Tracking.MAL.AccessToken,
			mal.WithAPIURL(cfg.Tracking.MAL.APIURL),
			mal.WithJikanURL(cfg.Tracking.MAL.JikanURL),
			mal.WithHTTPClient(client),
		)
	}

	return tracking.WithRetry(svc, cfg.Tracking.Retries, cfg.Tracking.RetryDelay)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(w io.Writer, headers []string, rows [][]string, aligns []columnAlignment) {
	columns := len(headers)
	if columns == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	if !isTerminal(w) {
		tw.SetStyle(table.StyleLight)
		tw.Style().Options.DrawBorder = false
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	tw.Render()
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
