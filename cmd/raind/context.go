package main

import (
	"os"

	"github.com/spf13/cobra"

	"raind/internal/retrieval"
	"raind/pkg/types"
)

type contextOptions struct {
	file      string
	root      string
	strategy  string
	maxTokens int
	selection string
}

func newContextCmd(root *rootOptions) *cobra.Command {
	o := &contextOptions{}
	cmd := &cobra.Command{
		Use:   "context QUERY",
		Short: "Assemble editor context for a query and print it as JSON",
		Example: "  raind context \"where is the config loaded\" --root . --strategy project\n" +
			"  raind context \"explain\" --file main.go --selection \"func main() {}\" --strategy selection",
		Args: cobra.ExactArgs(1),
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
			req, err := o.request(cmd, args[0])
			if err != nil {
				return err
			}
			resp, err := retrieval.New(retrieval.WithLogger(log)).GetContext(req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.file, "file", "", "Current file")
	f.StringVar(&o.root, "root", "", "Project root to walk (default: working directory)")
	f.StringVar(&o.strategy, "strategy", retrieval.StrategySmart, "Strategy: file|project|smart|selection")
	f.IntVar(&o.maxTokens, "max-tokens", 2048, "Token budget")
	f.StringVar(&o.selection, "selection", "", "Selected text to include")
	return cmd
}

func (o *contextOptions) request(cmd *cobra.Command, query string) (types.ContextRequest, error) {
	root := o.root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return types.ContextRequest{}, err
		}
		root = wd
	}
	req := types.ContextRequest{
		Query:       query,
		CurrentFile: o.file,
		ProjectRoot: root,
		Strategy:    o.strategy,
		MaxTokens:   o.maxTokens,
	}
	if cmd.Flags().Changed("selection") {
		sel := o.selection
		req.IncludeSelection = true
		req.SelectionContent = &sel
	}
	return req, nil
}
