package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateFormat string

var validateCmd = &cobra.Command{
	Use:   "validate [workspace]",
	Short: "Load a workspace and check every view",
	Long: `Load a workspace file (.toml or .hcl), build its model and replay every step of
every dynamic view. The first problem is reported with its error code.

Examples:
  c4kit validate                     # Uses workspace.file from the configuration
  c4kit validate docs/bank.hcl
  c4kit validate --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: withSession(runValidate),
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string, s *session) error {
	ws, err := s.loadWorkspace(cmd.Context(), args)
	if err != nil {
		return err
	}

	output, err := FormatResponse(newValidateResponse(s.workspacePath(args), ws), OutputFormat(validateFormat))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}
