package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"c4kit/internal/export"
)

var (
	exportOut      string
	exportFormat   string
	exportCompress bool
	exportViews    []string
)

var exportCmd = &cobra.Command{
	Use:   "export [workspace]",
	Short: "Write dynamic views as a portable document",
	Long: `Write the persisted form of the workspace's dynamic views as a JSON, YAML or TOML
document, optionally zstd-compressed. Without --out the document goes to stdout.

When --out is given and --format is not, the format is taken from the file
extension (e.g. views.yaml, views.toml.zst).

Examples:
  c4kit export --out views.json
  c4kit export --out views.toml.zst
  c4kit export --view signin --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: withSession(runExport),
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Document format: json, yaml or toml (default: from --out or config)")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false, "zstd-compress the document (default: from --out or config)")
	exportCmd.Flags().StringArrayVar(&exportViews, "view", nil, "Export only this view (repeatable)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string, s *session) error {
	format, compress, err := exportTarget(cmd, s)
	if err != nil {
		return err
	}

	ws, err := s.loadWorkspace(cmd.Context(), args)
	if err != nil {
		return err
	}
	doc, err := export.NewExporter(s.logger).Export(cmd.Context(), ws, exportViews...)
	if err != nil {
		return err
	}

	if exportOut == "" {
		return export.Encode(cmd.OutOrStdout(), doc, format, compress)
	}

	if err := export.WriteFile(exportOut, doc, format, compress); err != nil {
		return err
	}
	info, err := os.Stat(exportOut)
	if err != nil {
		return err
	}
	s.logger.Info("Document written", "path", exportOut, "document", doc.ID)

	output, err := FormatResponse(&ExportResponse{
		Path:       exportOut,
		DocumentID: doc.ID,
		Format:     string(format),
		Compressed: compress,
		Views:      len(doc.Views),
		Bytes:      info.Size(),
	}, FormatHuman)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

// exportTarget resolves format and compression. Flags win over the --out
// extension, which wins over the configuration.
func exportTarget(cmd *cobra.Command, s *session) (export.Format, bool, error) {
	format, err := export.ParseFormat(s.config.Export.Format)
	if err != nil {
		return "", false, err
	}
	compress := s.config.Export.Compress

	if exportOut != "" {
		if f, c, err := export.FormatForPath(exportOut); err == nil {
			format, compress = f, c
		}
	}

	if cmd.Flags().Changed("format") {
		if format, err = export.ParseFormat(exportFormat); err != nil {
			return "", false, err
		}
	}
	if cmd.Flags().Changed("compress") {
		compress = exportCompress
	}
	return format, compress, nil
}
