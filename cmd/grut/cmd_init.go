package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/grut/cmd/ui"
	"github.com/utkarsh5026/grut/pkg/grut"
	"github.com/utkarsh5026/grut/pkg/repository/layout"
	"github.com/utkarsh5026/grut/pkg/store"
)

func newInitCmd() *cobra.Command {
	var objectStore string
	var compression int

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new grut repository",
		Long: `Initialize a new grut repository in the current directory or specified path.
This creates a .grut directory holding the object store, HEAD and the index.
Running init on an existing repository changes nothing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}

			opts := grut.InitOptions{}
			if objectStore != "" {
				backend, err := store.ParseBackend(objectStore)
				if err != nil {
					return err
				}
				opts.ObjectStore = backend
			}
			if cmd.Flags().Changed("compression") {
				opts.Compression = &compression
			}

			result, err := grut.Initialize(cmd.Context(), absPath, opts)
			if err != nil {
				return fmt.Errorf("failed to initialize repository: %w", err)
			}

			out := cmd.OutOrStdout()
			if result.AlreadyInitialized {
				fmt.Fprintln(out, ui.WarningMessage("Repository already initialized."))
				return nil
			}

			fmt.Fprintln(out, ui.SuccessMessage("Initialized empty grut repository in",
				filepath.Join(absPath, layout.SourceDir)))
			fmt.Fprintf(out, "  object store: %s\n", result.ObjectStore)
			return nil
		},
	}

	cmd.Flags().StringVar(&objectStore, "object-store", "", "Object store backend (file, badger)")
	cmd.Flags().IntVar(&compression, "compression", -1, "zlib level for the file backend (-1..9)")

	return cmd
}
