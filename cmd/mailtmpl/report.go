package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-mailtmpl/pkg/report"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		id     string
		format string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "report <template>",
		Short: "Write the requirements document of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.ReportFormat
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			tpl, err := a.resolveTemplate(args[0], id)
			if err != nil {
				return err
			}

			renderer, err := report.NewDirRenderer(a.cfg.ReportTemplates)
			if err != nil {
				return err
			}
			doc, err := renderer.Render(cmd.Context(), report.Build(tpl), f)
			if err != nil {
				return err
			}
			if outDir == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			path := filepath.Join(outDir, report.FileName(tpl.Name, f.Extension()))
			if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			a.logger.Info("report written", zap.String("path", path))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&id, "id", "", "template id when the file holds several")
	flags.StringVar(&format, "format", "", "markdown or html (defaults to MAILTMPL_REPORT_FORMAT)")
	flags.StringVar(&outDir, "out", "", "write the report into this directory instead of stdout")
	flags.StringVar(&a.cfg.ReportTemplates, "report-templates", a.cfg.ReportTemplates, "directory with report.md.tpl / report.html.tpl overrides")
	return cmd
}
