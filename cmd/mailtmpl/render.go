package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-mailtmpl/pkg/orchestrator"
	"github.com/goliatone/go-mailtmpl/pkg/placeholder"
	"github.com/goliatone/go-mailtmpl/pkg/prompt"
)

type renderFlags struct {
	id         string
	valuesPath string
	sets       []string
	preview    bool
	ask        bool
	strict     bool
	declare    bool
	presetPath string
	failOnLeft bool
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a template with runtime values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, args[0], f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.id, "id", "", "template id when the file holds several")
	flags.StringVar(&f.valuesPath, "values", "", "JSON or YAML file with runtime values")
	flags.StringArrayVar(&f.sets, "set", nil, "runtime value as key=value (repeatable)")
	flags.BoolVar(&f.preview, "preview", true, "fill missing values from preview data")
	flags.BoolVar(&f.ask, "prompt", false, "prompt for values that are still missing")
	flags.BoolVar(&f.strict, "strict", false, "validate the template before rendering")
	flags.BoolVar(&f.declare, "declare-detected", false, "declare variables used in the body but not in the template")
	flags.StringVar(&f.presetPath, "preset", "", "JSON preset patching variables, links and preview data")
	flags.BoolVar(&f.failOnLeft, "fail-on-leftovers", false, "exit non-zero when markers remain in the output")
	return cmd
}

func (a *app) render(cmd *cobra.Command, ref string, f renderFlags) error {
	ctx := cmd.Context()
	tpl, err := a.resolveTemplate(ref, f.id)
	if err != nil {
		return err
	}
	values, err := loadValues(f.valuesPath, f.sets)
	if err != nil {
		return err
	}

	if f.ask {
		seed := values
		if f.preview {
			seed = withPreview(tpl.PreviewData, values)
		}
		driver := a.driver
		if driver == nil {
			driver = prompt.SurveyDriver()
		}
		values, err = prompt.NewCollector(driver).Collect(ctx, tpl, seed)
		if err != nil {
			return err
		}
	}

	opts := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithCacheSize(a.cfg.CacheSize),
	}
	if f.strict {
		opts = append(opts, orchestrator.WithStrictValidation())
	}
	if f.declare {
		opts = append(opts, orchestrator.WithDecorators(placeholder.DeclareDetected()))
	}
	if f.presetPath != "" {
		preset, err := orchestrator.NewJSONPresetTransformerFromFS(os.DirFS(filepath.Dir(f.presetPath)), filepath.Base(f.presetPath))
		if err != nil {
			return err
		}
		opts = append(opts, orchestrator.WithTransformer(preset))
	}

	result, err := orchestrator.New(opts...).Render(ctx, orchestrator.Request{
		Template:       tpl,
		Values:         values,
		UsePreviewData: f.preview,
	})
	if err != nil {
		return err
	}
	a.logger.Debug("rendered template",
		zap.String("template", tpl.ID),
		zap.Int("bytes", len(result.Output)),
	)

	if _, err := fmt.Fprintln(cmd.OutOrStdout(), result.Output); err != nil {
		return err
	}
	if f.failOnLeft && len(result.Leftovers) > 0 {
		return fmt.Errorf("unresolved markers: %v", result.Leftovers)
	}
	return nil
}

func withPreview(preview, values map[string]any) map[string]any {
	out := make(map[string]any, len(preview)+len(values))
	for k, v := range preview {
		out[k] = v
	}
	for k, v := range values {
		out[k] = v
	}
	return out
}
