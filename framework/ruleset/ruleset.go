package ruleset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-validation/framework/validation"
)

var (
	// ErrRuleSetNotFound is returned by Store.Get for unknown names.
	ErrRuleSetNotFound = errors.New("ruleset: not found")

	// ErrInvalidRuleSet is returned for files that cannot be used as a rule set.
	ErrInvalidRuleSet = errors.New("ruleset: invalid rule set")
)

// File is the on-disk shape of a rule set:
//
//	name: signup
//	rules:
//	  email: required|email
//	  age: [required, "between:18,65"]
//	  plan:
//	    - name: in
//	      parameters: [free, pro]
//	messages:
//	  email.required: We need your email.
//	attributes:
//	  plan: free
type File struct {
	Name       string            `yaml:"name"`
	Rules      map[string]any    `yaml:"rules"`
	Messages   map[string]string `yaml:"messages"`
	Attributes map[string]any    `yaml:"attributes"`
}

// Parse decodes a YAML rule set. fallbackName is used when the document has
// no name of its own.
func Parse(fallbackName string, data []byte) (validation.Context, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return validation.Context{}, fmt.Errorf("%w: %s: %v", ErrInvalidRuleSet, fallbackName, err)
	}

	name := f.Name
	if name == "" {
		name = fallbackName
	}
	if name == "" {
		return validation.Context{}, fmt.Errorf("%w: missing name", ErrInvalidRuleSet)
	}
	if len(f.Rules) == 0 {
		return validation.Context{}, fmt.Errorf("%w: %s: no rules", ErrInvalidRuleSet, name)
	}

	return validation.NewContextWith(name, validation.Rules(f.Rules), validation.Messages(f.Messages), f.Attributes), nil
}

// LoadFile reads and parses one rule set file. The file name without its
// extension is the fallback name.
func LoadFile(path string) (validation.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return validation.Context{}, fmt.Errorf("ruleset: read %s: %w", path, err)
	}
	return Parse(nameFromPath(path), data)
}

// Check compiles the rule set and reports rule names registry does not know.
func Check(set validation.Context, registry *validation.Registry) error {
	compiled := validation.Compile(set.Rules())
	for _, field := range compiled.Fields() {
		for _, spec := range compiled.Rule(field) {
			if spec.Unknown() || !registry.Has(spec.Name) {
				return fmt.Errorf("%w: %s: field %q uses unregistered rule %q", ErrInvalidRuleSet, set.Name(), field, spec.Name)
			}
		}
	}
	return nil
}

func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isRuleSetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return !strings.HasPrefix(filepath.Base(path), ".")
	}
	return false
}
