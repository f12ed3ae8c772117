package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

// Transformer mutates a template copy before decorators run. Implementations
// can retarget links, adjust formatters or seed preview data.
type Transformer interface {
	Transform(ctx context.Context, tpl *model.EmailTemplate) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, tpl *model.EmailTemplate) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, tpl *model.EmailTemplate) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, tpl)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file,
// e.g. to point links at a staging host:
//
//	{
//	  "variables": {"total": {"formatter": "currency", "description": "Order total"}},
//	  "hyperlinks": {"link-1": "https://staging.example.com/docs"},
//	  "cta_buttons": {"cta-1": "https://staging.example.com/buy"},
//	  "preview_data": {"name": "Ann"}
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Variables   map[string]jsonVariablePatch `json:"variables"`
	Hyperlinks  map[string]string            `json:"hyperlinks"`
	CTAButtons  map[string]string            `json:"cta_buttons"`
	PreviewData map[string]any               `json:"preview_data"`
}

type jsonVariablePatch struct {
	Formatter   model.FormatterKind `json:"formatter"`
	Description string              `json:"description"`
	Type        model.VariableType  `json:"type"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the patches onto tpl. Patches naming a variable, link or
// button the template does not declare are an error.
func (t *JSONPresetTransformer) Transform(ctx context.Context, tpl *model.EmailTemplate) error {
	if tpl == nil {
		return errors.New("json preset transformer: template is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for name, patch := range t.document.Variables {
		v := findVariable(tpl.Variables, name)
		if v == nil {
			return fmt.Errorf("json preset transformer: variable %q not found", name)
		}
		applyVariablePatch(v, patch)
	}
	for id, url := range t.document.Hyperlinks {
		link := findHyperlink(tpl.Hyperlinks, id)
		if link == nil {
			return fmt.Errorf("json preset transformer: hyperlink %q not found", id)
		}
		link.URL = url
	}
	for id, url := range t.document.CTAButtons {
		button := findCTAButton(tpl.CTAButtons, id)
		if button == nil {
			return fmt.Errorf("json preset transformer: cta button %q not found", id)
		}
		button.URL = url
	}
	if len(t.document.PreviewData) > 0 {
		if tpl.PreviewData == nil {
			tpl.PreviewData = make(map[string]any, len(t.document.PreviewData))
		}
		for key, value := range t.document.PreviewData {
			tpl.PreviewData[key] = value
		}
	}
	return nil
}

func applyVariablePatch(v *model.Variable, patch jsonVariablePatch) {
	if patch.Formatter != "" {
		v.Formatter = patch.Formatter
	}
	if patch.Description != "" {
		v.Description = patch.Description
	}
	if patch.Type != "" {
		v.Type = patch.Type
	}
}

func findVariable(vars []model.Variable, name string) *model.Variable {
	for i := range vars {
		if vars[i].Name == name {
			return &vars[i]
		}
	}
	return nil
}

func findHyperlink(links []model.Hyperlink, id string) *model.Hyperlink {
	for i := range links {
		if links[i].ID == id {
			return &links[i]
		}
	}
	return nil
}

func findCTAButton(buttons []model.CTAButton, id string) *model.CTAButton {
	for i := range buttons {
		if buttons[i].ID == id {
			return &buttons[i]
		}
	}
	return nil
}
