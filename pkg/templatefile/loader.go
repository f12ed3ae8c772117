// Package templatefile loads email template documents from JSON and YAML
// files. A file holds a single template, a list of templates, or a mapping
// with a "templates" list.
package templatefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

// Store indexes loaded templates by id.
type Store struct {
	templates map[string]model.EmailTemplate
	sources   map[string]string
}

// NewStore indexes templates. Duplicate or empty ids are an error.
func NewStore(templates ...model.EmailTemplate) (*Store, error) {
	store := newStore()
	for _, tpl := range templates {
		if err := store.add(tpl, ""); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func newStore() *Store {
	return &Store{
		templates: make(map[string]model.EmailTemplate),
		sources:   make(map[string]string),
	}
}

func (s *Store) add(tpl model.EmailTemplate, source string) error {
	id := strings.TrimSpace(tpl.ID)
	if id == "" {
		if source != "" {
			return fmt.Errorf("templatefile: file %s defines a template with an empty id", source)
		}
		return errors.New("templatefile: template with an empty id")
	}
	if prev, exists := s.sources[id]; exists {
		return fmt.Errorf("templatefile: duplicate template %q (file %s, first seen in %s)", id, source, prev)
	}
	tpl.ID = id
	s.templates[id] = tpl
	s.sources[id] = source
	return nil
}

// Load reads a single template file, or every template file below path when
// it is a directory.
func Load(path string) (*Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("templatefile: %w", err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("templatefile: read %s: %w", path, err)
	}
	templates, err := LoadBytes(data, path)
	if err != nil {
		return nil, err
	}
	store := newStore()
	for _, tpl := range templates {
		if err := store.add(tpl, path); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadFS walks fsys and parses every .json, .yaml and .yml file. When fsys is
// nil or holds no template files, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := newStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTemplateFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("templatefile: read %s: %w", path, err)
		}
		templates, err := LoadBytes(data, path)
		if err != nil {
			return err
		}
		for _, tpl := range templates {
			if err := store.add(tpl, path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadBytes parses the templates held in data. name selects the decoder by
// extension; unknown extensions try JSON first, then YAML.
func LoadBytes(data []byte, name string) ([]model.EmailTemplate, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("templatefile: file %s is empty", name)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		templates, err := decode(data, json.Unmarshal)
		if err != nil {
			return nil, fmt.Errorf("templatefile: parse %s: %w", name, err)
		}
		return templates, nil
	case ".yaml", ".yml":
		templates, err := decode(data, yaml.Unmarshal)
		if err != nil {
			return nil, fmt.Errorf("templatefile: parse %s: %w", name, err)
		}
		return templates, nil
	}

	if templates, err := decode(data, json.Unmarshal); err == nil {
		return templates, nil
	}
	if templates, err := decode(data, yaml.Unmarshal); err == nil {
		return templates, nil
	}
	return nil, fmt.Errorf("templatefile: parse %s: invalid JSON or YAML", name)
}

type envelope struct {
	Templates []model.EmailTemplate `json:"templates" yaml:"templates"`
}

func decode(data []byte, unmarshal func([]byte, any) error) ([]model.EmailTemplate, error) {
	var shape any
	if err := unmarshal(data, &shape); err != nil {
		return nil, err
	}

	switch typed := shape.(type) {
	case []any:
		var list []model.EmailTemplate
		if err := unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	case map[string]any:
		if _, ok := typed["templates"]; ok {
			var env envelope
			if err := unmarshal(data, &env); err != nil {
				return nil, err
			}
			return env.Templates, nil
		}
	default:
		return nil, fmt.Errorf("expected a template object or list, got %T", shape)
	}

	var single model.EmailTemplate
	if err := unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []model.EmailTemplate{single}, nil
}

func isTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Get returns the template with the given id.
func (s *Store) Get(id string) (model.EmailTemplate, bool) {
	if s == nil {
		return model.EmailTemplate{}, false
	}
	tpl, ok := s.templates[strings.TrimSpace(id)]
	return tpl, ok
}

// Find looks a template up by id, then by name.
func (s *Store) Find(key string) (model.EmailTemplate, bool) {
	if tpl, ok := s.Get(key); ok {
		return tpl, true
	}
	for _, tpl := range s.List() {
		if tpl.Name == key {
			return tpl, true
		}
	}
	return model.EmailTemplate{}, false
}

// Source returns the file a template was loaded from.
func (s *Store) Source(id string) string {
	if s == nil {
		return ""
	}
	return s.sources[id]
}

// List returns every template sorted by id.
func (s *Store) List() []model.EmailTemplate {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.templates))
	for id := range s.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]model.EmailTemplate, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.templates[id])
	}
	return out
}

// Len reports the number of templates.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.templates)
}
