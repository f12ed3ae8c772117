package report

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

// Report is the structured projection of an email template.
type Report struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Variables   []VariableRow  `json:"variables"`
	Conditions  []ConditionRow `json:"conditions"`
	Hyperlinks  []LinkRow      `json:"hyperlinks"`
	CTAButtons  []LinkRow      `json:"cta_buttons"`
	Content     []string       `json:"content"`
}

// VariableRow describes one declared variable.
type VariableRow struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Formatter   string `json:"formatter"`
}

// ConditionRow describes a condition rule and the content it shows. Else rows
// carry the negated rule and the else content.
type ConditionRow struct {
	Name    string `json:"name"`
	Rule    string `json:"rule"`
	Content string `json:"content"`
	IsElse  bool   `json:"is_else"`
}

// LinkRow describes a hyperlink or CTA button.
type LinkRow struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Build projects tpl into a Report. An else row follows a condition row when
// the condition has an else branch with non-empty content.
func Build(tpl model.EmailTemplate) Report {
	r := Report{
		Name:        tpl.Name,
		Description: tpl.Description,
		Content:     PlainText(tpl.Body()),
	}

	for _, v := range tpl.Variables {
		formatter := string(v.Formatter)
		if v.Formatter == "" {
			formatter = string(model.FormatterNone)
		}
		r.Variables = append(r.Variables, VariableRow{
			Name:        v.Name,
			Description: v.Description,
			Type:        string(v.Type),
			Formatter:   formatter,
		})
	}

	for _, c := range tpl.Conditions {
		r.Conditions = append(r.Conditions, ConditionRow{
			Name:    c.Name,
			Rule:    Describe(c),
			Content: c.Content,
		})
		if c.HasElse && c.ElseContent != "" {
			r.Conditions = append(r.Conditions, ConditionRow{
				Name:    c.Name + " (ELSE)",
				Rule:    DescribeElse(c),
				Content: c.ElseContent,
				IsElse:  true,
			})
		}
	}

	for _, link := range tpl.Hyperlinks {
		r.Hyperlinks = append(r.Hyperlinks, LinkRow{Text: link.Text, URL: link.URL})
	}
	for _, button := range tpl.CTAButtons {
		r.CTAButtons = append(r.CTAButtons, LinkRow{Text: button.Text, URL: button.URL})
	}
	return r
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	blockBoundary = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|h[1-6]|li|tr|td|th|table|ul|ol|blockquote|section|article|header|footer|pre)\s*>`)
)

func plainTextSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// PlainText strips markup from body and returns its non-empty lines, trimmed.
// Block-level closing tags and <br> end a line.
func PlainText(body string) []string {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	marked := blockBoundary.ReplaceAllStringFunc(body, func(tag string) string {
		return tag + "\n"
	})
	text := html.UnescapeString(plainTextSanitizer().Sanitize(marked))

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
