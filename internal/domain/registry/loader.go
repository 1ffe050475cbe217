package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/shipforge/internal/domain/component"
	"github.com/andrescamacho/shipforge/internal/domain/modifier"
	"github.com/andrescamacho/shipforge/internal/domain/vehicle"
)

// definitionFile is the YAML document shape for definition data. A file may
// carry any mix of the three definition kinds.
type definitionFile struct {
	Components []component.Definition    `yaml:"components"`
	Modifiers  []modifier.Definition     `yaml:"modifiers"`
	Classes    []vehicle.ClassDefinition `yaml:"classes"`
}

// Load reads definition YAML from path (a file, or a directory whose *.yaml
// and *.yml files are loaded in name order) into the registry. Any parse or
// validation failure aborts the load; the registry may hold a partial set
// and should be discarded by the caller.
func Load(r *Registry, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat definitions path: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return fmt.Errorf("failed to read definitions directory: %w", err)
		}
		files = files[:0]
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if ext == ".yaml" || ext == ".yml" {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
		sort.Strings(files)
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if err := LoadBytes(r, data); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}

	return r.CheckReferences()
}

// LoadBytes parses one YAML document and registers its definitions
func LoadBytes(r *Registry, data []byte) error {
	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse definitions: %w", err)
	}

	v := validator.New()

	for i := range file.Components {
		def := file.Components[i]
		if err := v.Struct(&def); err != nil {
			return fmt.Errorf("component %q: %w", def.ID, err)
		}
		if err := r.RegisterComponent(&def); err != nil {
			return err
		}
	}
	for i := range file.Modifiers {
		def := file.Modifiers[i]
		if err := v.Struct(&def); err != nil {
			return fmt.Errorf("modifier %q: %w", def.ID, err)
		}
		if err := r.RegisterModifier(&def); err != nil {
			return err
		}
	}
	for i := range file.Classes {
		def := file.Classes[i]
		if err := v.Struct(&def); err != nil {
			return fmt.Errorf("vehicle class %q: %w", def.ID, err)
		}
		if err := r.RegisterClass(&def); err != nil {
			return err
		}
	}

	return nil
}
