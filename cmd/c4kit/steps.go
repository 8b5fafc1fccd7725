package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"c4kit/internal/errors"
	"c4kit/internal/view"
	"c4kit/internal/workspace"
)

var (
	stepsView   string
	stepsFormat string
)

var stepsCmd = &cobra.Command{
	Use:   "steps [workspace]",
	Short: "Print the ordered steps of a dynamic view",
	Long: `Print the steps of a dynamic view in order, with their order labels, the
relationship each step follows and whether it is a response.

Examples:
  c4kit steps --view signin
  c4kit steps bank.toml --view signin --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: withSession(runSteps),
}

func init() {
	stepsCmd.Flags().StringVar(&stepsView, "view", "", "View key (may be omitted when the workspace has one view)")
	stepsCmd.Flags().StringVar(&stepsFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(stepsCmd)
}

func runSteps(cmd *cobra.Command, args []string, s *session) error {
	ws, err := s.loadWorkspace(cmd.Context(), args)
	if err != nil {
		return err
	}
	v, err := pickView(ws, stepsView)
	if err != nil {
		return err
	}

	resp := newStepsResponse(v)
	output, err := FormatResponse(&resp, OutputFormat(stepsFormat))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

// pickView returns the view named key, or the only view when key is empty.
func pickView(ws *workspace.Workspace, key string) (*view.DynamicView, error) {
	if len(ws.Views) == 0 {
		return nil, errors.Errorf(errors.ViewNotFound, "the workspace declares no dynamic views")
	}
	if key == "" && len(ws.Views) == 1 {
		return ws.Views[0], nil
	}
	if v, ok := ws.View(key); ok {
		return v, nil
	}

	keys := make([]string, 0, len(ws.Views))
	for _, v := range ws.Views {
		keys = append(keys, v.Key())
	}
	if key == "" {
		return nil, errors.Errorf(errors.ViewNotFound, "choose a view with --view: %s", strings.Join(keys, ", "))
	}
	return nil, errors.Errorf(errors.ViewNotFound, "no dynamic view %q; the workspace declares: %s",
		key, strings.Join(keys, ", "))
}
