package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-mailtmpl/pkg/model"
	"github.com/goliatone/go-mailtmpl/pkg/prompt"
)

func newVarsCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "vars <template>",
		Short: "Print a values document listing every name a render reads",
		Long: `Prints a JSON object with one key per declared variable and per clause
operand. Keys are seeded with the template preview data, or null. Edit the
result and pass it back with render --values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := a.resolveTemplate(args[0], id)
			if err != nil {
				return err
			}
			payload, err := json.MarshalIndent(valuesSkeleton(tpl), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return err
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "template id when the file holds several")
	return cmd
}

func valuesSkeleton(tpl model.EmailTemplate) map[string]any {
	names := prompt.Missing(tpl, nil)
	out := make(map[string]any, len(names))
	for _, name := range names {
		out[name] = tpl.PreviewData[name]
	}
	return out
}
