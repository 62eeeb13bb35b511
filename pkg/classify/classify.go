// Package classify predicts program categories from ordered keyword rules.
// Rules are evaluated in declaration order and the first rule with any
// matching keyword wins, so narrower rules must be listed before broader
// ones. Names that match no rule fall through to the Uncategorized
// sentinel, which carries no category id.
package classify

import (
	"regexp"
	"strings"

	"github.com/agentstation/rostersync/pkg/errors"
)

// Uncategorized is the sentinel category for names no rule matches.
const Uncategorized = "Uncategorized"

// Rule pairs a category with the keywords that select it.
type Rule struct {
	Category string
	Keywords []string
}

// Prediction is the classifier outcome for a single program name.
// CategoryID is nil for Uncategorized predictions.
type Prediction struct {
	Category   string
	CategoryID *int
}

// Categorized reports whether the prediction resolved to a real category.
func (p Prediction) Categorized() bool { return p.CategoryID != nil }

type compiledRule struct {
	category string
	id       int
	patterns []*regexp.Regexp
}

// Classifier matches program names against an ordered rule list.
type Classifier struct {
	rules []compiledRule
}

// New compiles the rule list against the category id table. Every rule
// category must have an id entry and every keyword must be non-empty;
// violations are configuration errors.
func New(rules []Rule, categoryIDs map[string]int) (*Classifier, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		id, ok := categoryIDs[rule.Category]
		if !ok {
			return nil, errors.NewConfigError("rules", "rule references unknown category "+rule.Category, nil)
		}

		cr := compiledRule{category: rule.Category, id: id}
		for _, keyword := range rule.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				return nil, errors.NewConfigError("rules", "empty keyword in category "+rule.Category, nil)
			}
			pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
			if err != nil {
				return nil, errors.NewConfigError("rules", "cannot compile keyword "+keyword, err)
			}
			cr.patterns = append(cr.patterns, pattern)
		}
		compiled = append(compiled, cr)
	}

	return &Classifier{rules: compiled}, nil
}

// Classify returns the prediction for a program name. The name is trimmed
// and lower-cased before matching; keywords match on word boundaries only,
// so "excel" does not match "excellent".
func (c *Classifier) Classify(name string) Prediction {
	normalized := strings.ToLower(strings.TrimSpace(name))

	for _, rule := range c.rules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(normalized) {
				id := rule.id
				return Prediction{Category: rule.category, CategoryID: &id}
			}
		}
	}

	return Prediction{Category: Uncategorized}
}
