package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/glabrego/pagerdeck/internal/app"
	"github.com/glabrego/pagerdeck/internal/cells"
	"github.com/glabrego/pagerdeck/internal/config"
	"github.com/glabrego/pagerdeck/internal/gallery"
	"github.com/glabrego/pagerdeck/internal/hosting"
	"github.com/glabrego/pagerdeck/internal/items"
	"github.com/glabrego/pagerdeck/internal/logging"
	"github.com/glabrego/pagerdeck/internal/positions"
	"github.com/glabrego/pagerdeck/internal/storage"
	"github.com/glabrego/pagerdeck/internal/tui"
)

// env holds what every command needs once flags are parsed.
type env struct {
	cfg      config.Config
	log      *zap.Logger
	closeLog func() error
	repo     *storage.Repository
	service  *app.Service
}

func prepare(ctx context.Context, cmd *cli.Command, console io.Writer) (*env, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.IsSet("db") {
		cfg.Storage.DBPath = cmd.String("db")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-file") {
		cfg.Log.File = cmd.String("log-file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare logs: %w", err)
	}
	e := &env{cfg: cfg, log: logger, closeLog: closeLog}

	repo, err := storage.NewRepository(cfg.Storage.DBPath)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("storage init error: %w", err), e.close())
	}
	e.repo = repo

	initCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := repo.Init(initCtx); err != nil {
		return nil, multierr.Append(fmt.Errorf("storage schema error: %w", err), e.close())
	}
	if err := repo.CheckWritable(initCtx); err != nil {
		return nil, multierr.Append(fmt.Errorf("storage write check failed (%w), verify %s is writable", err, cfg.Storage.DBPath), e.close())
	}

	e.service = app.NewService(repo, logger)
	logger.Debug("Program started", zap.String("db", cfg.Storage.DBPath), zap.Strings("args", os.Args))
	return e, nil
}

func (e *env) close() (err error) {
	if e.repo != nil {
		if er := e.repo.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close storage: %w", er))
		}
	}
	_ = e.log.Sync()
	if er := e.closeLog(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close log file: %w", er))
	}
	return err
}

func runScreen(ctx context.Context, cmd *cli.Command) (err error) {
	e, err := prepare(ctx, cmd, nil)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, e.close())
	}()

	list := items.Default()
	if err := list.Validate(); err != nil {
		e.log.Warn("Item list is inconsistent, galleries sharing an id share a position", zap.Error(err))
	}

	store := positions.NewStore()
	revision := ""
	if cmd.Bool("fresh") {
		e.log.Info("Starting without saved positions")
	} else {
		restoreCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pages, rev, err := e.service.RestorePositions(restoreCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("cannot restore positions: %w", err)
		}
		store.Restore(pages)
		revision = rev
	}

	offscreen := e.cfg.Pager.OffscreenLimit
	reg, err := hosting.NewRegistry(e.cfg.Registry.Capacity, func() *gallery.Pager {
		return gallery.New(gallery.WithLogger(e.log), gallery.WithOffscreenLimit(offscreen))
	}, e.log)
	if err != nil {
		return fmt.Errorf("cannot create hosting registry: %w", err)
	}
	ctrl := cells.NewController(list, hosting.NewAdapter(reg, store, e.log), e.log)
	rec := cells.NewRecycler(ctrl)

	model, err := tui.NewModel(list, rec, reg, store, e.service, e.log)
	if err != nil {
		return fmt.Errorf("cannot lay out screen: %w", err)
	}
	model.SetRevision(revision)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	if fm, ok := final.(tui.Model); ok {
		fm.Teardown()
		if err := fm.Err(); err != nil {
			return err
		}
	}
	return nil
}

func showSnapshot(ctx context.Context, cmd *cli.Command) (err error) {
	e, err := prepare(ctx, cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, e.close())
	}()

	info, err := e.service.DescribeSnapshot(ctx)
	if err != nil {
		return err
	}
	w := cmd.Root().Writer
	switch {
	case !info.Present:
		fmt.Fprintln(w, "no snapshot")
		return nil
	case !info.Valid:
		fmt.Fprintf(w, "snapshot %s (saved %s) is malformed and will be ignored\n", info.Revision, info.SavedAt.Format(time.RFC3339))
		return nil
	}
	fmt.Fprintf(w, "snapshot %s (saved %s)\n", info.Revision, info.SavedAt.Format(time.RFC3339))
	for _, id := range slices.Sorted(maps.Keys(info.Pages)) {
		fmt.Fprintf(w, "  gallery %d: page %d\n", id, info.Pages[id])
	}
	return nil
}

func clearSnapshot(ctx context.Context, cmd *cli.Command) (err error) {
	e, err := prepare(ctx, cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, e.close())
	}()

	if err := e.service.ClearPositions(ctx); err != nil {
		return err
	}
	e.log.Info("Snapshot cleared")
	fmt.Fprintln(cmd.Root().Writer, "snapshot cleared")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cli.Command{
		Name:            "pagerdeck",
		Usage:           "scrollable list of paged galleries that keeps every gallery's page",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (TOML)"},
			&cli.StringFlag{Name: "db", Usage: "snapshot database `PATH`"},
			&cli.StringFlag{Name: "log-level", Usage: "logging `LEVEL`: none, normal or debug"},
			&cli.StringFlag{Name: "log-file", Usage: "write logs to `FILE`"},
			&cli.BoolFlag{Name: "fresh", Usage: "start without the saved snapshot"},
		},
		Action: runScreen,
		Commands: []*cli.Command{
			{
				Name:  "snapshot",
				Usage: "Inspects the saved gallery positions",
				Commands: []*cli.Command{
					{Name: "show", Usage: "Prints the saved positions", Action: showSnapshot},
					{Name: "clear", Usage: "Deletes the saved positions", Action: clearSnapshot},
				},
			},
		},
	}

	if err := root.Run(ctx, os.Args); err != nil {
		log.Fatalf("pagerdeck: %v", err)
	}
}
