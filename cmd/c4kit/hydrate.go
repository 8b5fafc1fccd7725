package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"c4kit/internal/errors"
	"c4kit/internal/export"
)

var (
	hydrateDocument string
	hydrateFormat   string
)

var hydrateCmd = &cobra.Command{
	Use:   "hydrate [workspace]",
	Short: "Restore the views of a document against a workspace",
	Long: `Read a document written by 'c4kit export' and re-attach each persisted step to the
workspace's model. Steps whose relationship no longer exists, or whose
participants moved out of the view's scope, are reported with their error code.

Examples:
  c4kit hydrate --document views.json
  c4kit hydrate bank.hcl --document views.toml.zst --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: withSession(runHydrate),
}

func init() {
	hydrateCmd.Flags().StringVar(&hydrateDocument, "document", "", "Document to restore (.json, .yaml, .toml, optionally .zst)")
	hydrateCmd.Flags().StringVar(&hydrateFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(hydrateCmd)
}

func runHydrate(cmd *cobra.Command, args []string, s *session) error {
	if hydrateDocument == "" {
		return errors.Errorf(errors.ConfigurationError, "--document is required")
	}

	ws, err := s.loadWorkspace(cmd.Context(), args)
	if err != nil {
		return err
	}
	doc, err := export.ReadFile(hydrateDocument)
	if err != nil {
		return err
	}
	views, err := export.HydrateAll(cmd.Context(), doc, ws.Model)
	if err != nil {
		return err
	}
	s.logger.Info("Document hydrated", "document", doc.ID, "views", len(views))

	resp := &HydrateResponse{Document: hydrateDocument, Views: make([]StepsResponse, 0, len(views))}
	for _, v := range views {
		resp.Views = append(resp.Views, newStepsResponse(v))
	}

	output, err := FormatResponse(resp, OutputFormat(hydrateFormat))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}
