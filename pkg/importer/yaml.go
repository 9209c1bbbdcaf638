// Package importer builds templates from external definitions: YAML/JSON
// template documents and OpenAPI request-body schemas.
package importer

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lumenarts/forge/pkg/model"
)

// LoadFS walks the filesystem and parses every YAML/JSON template document,
// returning templates in path order. Fields missing an id receive a
// generated one; every parsed template must pass validation.
func LoadFS(fsys fs.FS) ([]model.Template, error) {
	if fsys == nil {
		return nil, nil
	}

	var templates []model.Template
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTemplateFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("importer: read %s: %w", path, err)
		}

		tpl, err := Parse(data, path)
		if err != nil {
			return err
		}
		templates = append(templates, tpl)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// Parse decodes a single template document. JSON documents are detected by
// extension; everything else goes through the YAML decoder, which accepts
// JSON as a subset anyway.
func Parse(data []byte, path string) (model.Template, error) {
	var tpl model.Template
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &tpl); err != nil {
			return model.Template{}, fmt.Errorf("importer: parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &tpl); err != nil {
			return model.Template{}, fmt.Errorf("importer: parse %s: %w", path, err)
		}
	}

	for i := range tpl.Fields {
		if strings.TrimSpace(tpl.Fields[i].ID) == "" {
			tpl.Fields[i].ID = uuid.NewString()
		}
	}

	if result := model.Validate(tpl); !result.Valid {
		return model.Template{}, fmt.Errorf("importer: template %s: %w", path, result.Err())
	}
	return tpl, nil
}

func isTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
