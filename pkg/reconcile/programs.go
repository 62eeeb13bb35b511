package reconcile

import (
	"strings"

	"github.com/gosimple/slug"

	"github.com/agentstation/rostersync/pkg/classify"
)

// ProgramOption configures a ProgramReconciler.
type ProgramOption func(*ProgramReconciler)

// WithSlugger replaces the slug derivation applied to candidate names.
func WithSlugger(fn func(string) string) ProgramOption {
	return func(r *ProgramReconciler) {
		if fn != nil {
			r.slugify = fn
		}
	}
}

// ProgramReconciler decides which candidate program names need master
// records, predicting a category for each name that is new.
type ProgramReconciler struct {
	classifier *classify.Classifier
	slugify    func(string) string
}

// NewProgramReconciler builds a program reconciler. The classifier
// supplies category predictions for new names; a nil classifier leaves
// every new name uncategorized.
func NewProgramReconciler(classifier *classify.Classifier, opts ...ProgramOption) *ProgramReconciler {
	r := &ProgramReconciler{
		classifier: classifier,
		slugify:    slug.Make,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile compares each candidate name against the snapshot, in
// order. Known names come back Exists/Skip with no category; unknown
// names come back New/Insert with a predicted category and a derived
// slug. Two new candidates in the same run are not checked against
// each other, only against the snapshot.
func (r *ProgramReconciler) Reconcile(candidates []string, snap *Snapshot) []ProgramDecision {
	decisions := make([]ProgramDecision, 0, len(candidates))
	for _, name := range candidates {
		trimmed := strings.TrimSpace(name)
		d := ProgramDecision{
			Name:     trimmed,
			Slug:     r.slugify(trimmed),
			Category: CategoryNotApplicable,
			Status:   StatusExists,
			Action:   ActionSkip,
		}
		if !snap.HasProgramName(trimmed) {
			d.Status = StatusNew
			d.Action = ActionInsert
			pred := classify.Prediction{Category: classify.Uncategorized}
			if r.classifier != nil {
				pred = r.classifier.Classify(trimmed)
			}
			d.Category = pred.Category
			d.CategoryID = pred.CategoryID
		}
		decisions = append(decisions, d)
	}
	return decisions
}
