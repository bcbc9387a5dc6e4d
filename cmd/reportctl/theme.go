package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	prefsbun "github.com/goliatone/go-report/adapters/prefs/bun"
	prefsfs "github.com/goliatone/go-report/adapters/prefs/fs"
	"github.com/goliatone/go-report/config"
	"github.com/goliatone/go-report/theme"
)

func newThemeCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Apply, toggle or inspect the theme preference",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Apply the stored theme, or the system preference when none is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, root, func(ctx context.Context, c *theme.Controller) error {
				mode, err := c.ApplyStoredOrSystemTheme(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", mode)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark and persist the choice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, root, func(ctx context.Context, c *theme.Controller) error {
				if _, err := c.ApplyStoredOrSystemTheme(ctx); err != nil {
					return err
				}
				mode, err := c.ToggleTheme(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", mode)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored preference and the system preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, root, func(ctx context.Context, c *theme.Controller) error {
				return showTheme(ctx, cmd.OutOrStdout(), c)
			})
		},
	})

	return cmd
}

func showTheme(ctx context.Context, w io.Writer, c *theme.Controller) error {
	stored := "unset"
	if value, ok, err := c.Store.Get(ctx, c.Key); err != nil {
		return err
	} else if ok {
		stored = value
	}

	system := "unknown"
	if c.System != nil {
		if dark, err := c.System.PrefersDark(ctx); err == nil {
			system = theme.Light.String()
			if dark {
				system = theme.Dark.String()
			}
		}
	}
	fmt.Fprintf(w, "stored: %s\nsystem: %s\n", stored, system)
	return nil
}

func withController(cmd *cobra.Command, root *rootFlags, run func(context.Context, *theme.Controller) error) error {
	cfg, err := config.LoadOrDefault(root.configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), root.verbose)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, closeStore, err := openPreferenceStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	system, closeSystem := newSystemSignal(cfg)
	defer closeSystem()

	controller := theme.NewController(store, system, theme.NewDocumentState())
	controller.Key = cfg.Theme.Key
	controller.Logger = logger
	controller.Indicator = theme.IndicatorFunc(func(icon theme.Icon) {
		logger.Debugf("theme icon: %s", icon)
	})
	return run(ctx, controller)
}

func openPreferenceStore(ctx context.Context, cfg *config.Config) (theme.PreferenceStore, func(), error) {
	if cfg.Theme.Store != config.StoreSQLite {
		return prefsfs.NewStore(cfg.Theme.Path), func() {}, nil
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+cfg.Theme.Path+"?cache=shared")
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	store := prefsbun.NewStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, func() { _ = db.Close() }, nil
}

func newSystemSignal(cfg *config.Config) (theme.SystemSignal, func()) {
	switch cfg.Theme.System {
	case config.SystemDark:
		return theme.StaticSignal(true), func() {}
	case config.SystemLight:
		return theme.StaticSignal(false), func() {}
	case config.SystemChromium:
		src := newChromiumSource(cfg, cfg.Theme.URL)
		return src, func() { _ = src.Close() }
	}
	return theme.NewEnvSignal(), func() {}
}
