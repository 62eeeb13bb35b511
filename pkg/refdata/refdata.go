// Package refdata carries the reference data that drives reconciliation:
// the category id table, the ordered classification rules, the month-name
// translation table and the candidate program list. A default document is
// embedded in the binary; an operator-maintained YAML file can replace it
// per run.
package refdata

import (
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/rostersync/pkg/classify"
	"github.com/agentstation/rostersync/pkg/errors"
)

// Category maps a category display name to its master-data id.
type Category struct {
	Name string `yaml:"name"`
	ID   int    `yaml:"id"`
}

// Rule selects a category by keyword. Rules are matched in document order.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Set is one complete reference data document.
type Set struct {
	Categories  []Category        `yaml:"categories"`
	Rules       []Rule            `yaml:"rules"`
	Months      map[string]string `yaml:"months,omitempty"`
	NewPrograms []string          `yaml:"new_programs,omitempty"`
}

// Default returns the embedded reference data document.
func Default() (*Set, error) {
	return parse(defaultsYAML, "embedded defaults")
}

// Load reads a reference data document from disk. An empty path selects
// the embedded defaults.
func Load(path string) (*Set, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Set, error) {
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, errors.WrapParse("yaml", source, err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// Validate checks the document for holes the pipelines cannot work around.
func (s *Set) Validate() error {
	seen := make(map[string]struct{}, len(s.Categories))
	for _, category := range s.Categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return errors.NewConfigError("refdata", "category with empty name", nil)
		}
		if category.ID <= 0 {
			return errors.NewConfigError("refdata", "category "+name+" has no valid id", nil)
		}
		if _, dup := seen[name]; dup {
			return errors.NewConfigError("refdata", "duplicate category "+name, nil)
		}
		seen[name] = struct{}{}
	}

	for _, rule := range s.Rules {
		if _, ok := seen[rule.Category]; !ok {
			return errors.NewConfigError("refdata", "rule references unknown category "+rule.Category, nil)
		}
		if len(rule.Keywords) == 0 {
			return errors.NewConfigError("refdata", "rule for category "+rule.Category+" has no keywords", nil)
		}
		for _, keyword := range rule.Keywords {
			if strings.TrimSpace(keyword) == "" {
				return errors.NewConfigError("refdata", "empty keyword in category "+rule.Category, nil)
			}
		}
	}

	return nil
}

// CategoryIDs returns the category name to id table.
func (s *Set) CategoryIDs() map[string]int {
	ids := make(map[string]int, len(s.Categories))
	for _, category := range s.Categories {
		ids[strings.TrimSpace(category.Name)] = category.ID
	}
	return ids
}

// ClassifierRules converts the document rules into classifier rules,
// preserving document order.
func (s *Set) ClassifierRules() []classify.Rule {
	rules := make([]classify.Rule, 0, len(s.Rules))
	for _, rule := range s.Rules {
		rules = append(rules, classify.Rule{
			Category: rule.Category,
			Keywords: rule.Keywords,
		})
	}
	return rules
}

// MonthTable returns the month-name override table, or nil when the
// document does not carry one so callers fall back to the built-in table.
func (s *Set) MonthTable() map[string]string {
	if len(s.Months) == 0 {
		return nil
	}
	return s.Months
}

// Classifier compiles the document into a ready classifier.
func (s *Set) Classifier() (*classify.Classifier, error) {
	return classify.New(s.ClassifierRules(), s.CategoryIDs())
}
