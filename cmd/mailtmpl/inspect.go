package main

import (
	"context"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mailtmpl/pkg/condition"
	"github.com/goliatone/go-mailtmpl/pkg/model"
	"github.com/goliatone/go-mailtmpl/pkg/placeholder"
	"github.com/goliatone/go-mailtmpl/pkg/report"
)

type inspection struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	Variables  []string        `yaml:"variables"`
	Conditions []string        `yaml:"conditions"`
	Undeclared []string        `yaml:"undeclared,omitempty"`
	Rules      []inspectedRule `yaml:"rules,omitempty"`
	Problems   []string        `yaml:"problems,omitempty"`
	Warnings   []string        `yaml:"warnings,omitempty"`
}

type inspectedRule struct {
	Name    string `yaml:"name"`
	Rule    string `yaml:"rule"`
	Else    string `yaml:"else"`
	Preview *bool  `yaml:"preview,omitempty"`
}

func newInspectCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "inspect <template>",
		Short: "Show the markers, rules and problems of a template as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := a.resolveTemplate(args[0], id)
			if err != nil {
				return err
			}
			out, err := inspect(cmd.Context(), tpl)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "template id when the file holds several")
	return cmd
}

func inspect(ctx context.Context, tpl model.EmailTemplate) (inspection, error) {
	if err := ctx.Err(); err != nil {
		return inspection{}, err
	}
	body := tpl.Body()
	out := inspection{
		ID:         tpl.ID,
		Name:       tpl.Name,
		Variables:  placeholder.ExtractVariables(body),
		Conditions: placeholder.ExtractConditions(body),
		Warnings:   tpl.Lint(),
	}

	for _, name := range out.Variables {
		_, declared := tpl.Variable(name)
		_, isCondition := tpl.Condition(name)
		if !declared && !isCondition {
			out.Undeclared = append(out.Undeclared, name)
		}
	}
	sort.Strings(out.Undeclared)

	// Preview results are omitted when the rules form a cycle.
	results, evalErr := condition.EvaluateAll(tpl.Conditions, tpl.PreviewData)
	if evalErr != nil {
		out.Problems = append(out.Problems, evalErr.Error())
	}
	for _, cond := range tpl.Conditions {
		rule := inspectedRule{
			Name: cond.Name,
			Rule: report.Describe(cond),
			Else: report.DescribeElse(cond),
		}
		if evalErr == nil {
			v := results[cond.Name]
			rule.Preview = &v
		}
		out.Rules = append(out.Rules, rule)
	}
	if err := tpl.Validate(); err != nil {
		out.Problems = append(out.Problems, err.Error())
	}
	return out, nil
}
