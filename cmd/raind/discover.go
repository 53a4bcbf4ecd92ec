package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"raind/internal/registry"
	"raind/pkg/types"
)

func newDiscoverCmd(root *rootOptions) *cobra.Command {
	var embedding, asJSON bool
	cmd := &cobra.Command{
		Use:     "discover",
		Short:   "Scan the models directory and print what was found",
		Example: "  raind discover --models-dir ~/models\n  raind discover --embedding --json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.resolveConfig(cmd)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg, false)
			if err != nil {
				return err
			}
			defer closeLog()
			reg := registry.New(cfg.ModelsDir, registry.WithLogger(log))
			var models []types.ModelDescriptor
			if embedding {
				models, err = reg.DiscoverEmbedding()
			} else {
				models, err = reg.Discover()
			}
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), types.ModelsResponse{Models: nonNil(models)})
			}
			printModels(cmd.OutOrStdout(), cfg.ModelsDir, models)
			return nil
		},
	}
	cmd.Flags().BoolVar(&embedding, "embedding", false, "Scan <models-dir>/embedding instead")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func printModels(w io.Writer, dir string, models []types.ModelDescriptor) {
	if len(models) == 0 {
		fmt.Fprintf(w, "no models found in %s\n", dir)
		return
	}
	for _, m := range models {
		fmt.Fprintf(w, "%-32s %-12s %10d MB  %v\n", m.ID, m.Format, m.SizeMB, m.Capabilities)
	}
}

func nonNil(m []types.ModelDescriptor) []types.ModelDescriptor {
	if m == nil {
		return []types.ModelDescriptor{}
	}
	return m
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
