package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	storefs "github.com/goliatone/go-report/adapters/store/fs"
	"github.com/goliatone/go-report/config"
)

func newReportsCmd(root *rootFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Inspect or remove saved reports",
	}
	cmd.PersistentFlags().StringVarP(&out, "out", "o", "", "Output directory")

	withStore := func(fn func(*storefs.Store) error) error {
		cfg, err := config.LoadOrDefault(root.configPath)
		if err != nil {
			return err
		}
		if out != "" {
			cfg.Report.OutputDir = out
		}
		return fn(storefs.NewStore(cfg.Report.OutputDir))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show FILENAME",
		Short: "Print the metadata of a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *storefs.Store) error {
				reader, meta, err := store.Open(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_ = reader.Close()
				fmt.Fprintf(cmd.OutOrStdout(), "filename: %s\ncontent_type: %s\nsize: %d\ncreated_at: %s\n",
					meta.Filename, meta.ContentType, meta.Size, meta.CreatedAt.Format(time.RFC3339))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm FILENAME",
		Short: "Remove a saved report and its metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *storefs.Store) error {
				reader, _, err := store.Open(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_ = reader.Close()
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	})

	return cmd
}
