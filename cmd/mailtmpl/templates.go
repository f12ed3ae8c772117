package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mailtmpl/pkg/model"
	"github.com/goliatone/go-mailtmpl/pkg/templatefile"
)

// resolveTemplate loads ref as a file when it exists and otherwise looks it up
// by id or name in the configured template directory. A file holding several
// templates needs id to pick one.
func (a *app) resolveTemplate(ref, id string) (model.EmailTemplate, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		data, err := os.ReadFile(ref)
		if err != nil {
			return model.EmailTemplate{}, fmt.Errorf("read %s: %w", ref, err)
		}
		templates, err := templatefile.LoadBytes(data, ref)
		if err != nil {
			return model.EmailTemplate{}, err
		}
		store, err := templatefile.NewStore(templates...)
		if err != nil {
			return model.EmailTemplate{}, err
		}
		return pick(store, id, ref)
	}

	if a.cfg.TemplateDir == "" {
		return model.EmailTemplate{}, fmt.Errorf("template %q not found and no template directory configured", ref)
	}
	store, err := templatefile.Load(a.cfg.TemplateDir)
	if err != nil {
		return model.EmailTemplate{}, err
	}
	tpl, ok := store.Find(ref)
	if !ok {
		return model.EmailTemplate{}, fmt.Errorf("template %q not found in %s", ref, a.cfg.TemplateDir)
	}
	return tpl, nil
}

func pick(store *templatefile.Store, id, source string) (model.EmailTemplate, error) {
	if id != "" {
		tpl, ok := store.Find(id)
		if !ok {
			return model.EmailTemplate{}, fmt.Errorf("template %q not found in %s", id, source)
		}
		return tpl, nil
	}
	all := store.List()
	if len(all) != 1 {
		return model.EmailTemplate{}, fmt.Errorf("%s holds %d templates, use --id", source, len(all))
	}
	return all[0], nil
}

// loadValues reads a JSON or YAML value document and applies key=value
// overrides. Override values that parse as JSON keep their JSON type.
func loadValues(path string, sets []string) (map[string]any, error) {
	values := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read values: %w", err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &values)
		default:
			err = json.Unmarshal(data, &values)
		}
		if err != nil {
			return nil, fmt.Errorf("decode values %s: %w", path, err)
		}
	}
	for _, set := range sets {
		key, raw, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q, want key=value", set)
		}
		var decoded any
		if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
			values[key] = decoded
		} else {
			values[key] = raw
		}
	}
	return values, nil
}
