// Package rules flags methods that likely contain business logic.
//
// The verdict is a size/shape heuristic, not a semantic analysis: without
// type information, method size and control-flow presence are the only
// generally available complexity proxies. The heuristic over-approximates on
// purpose; the tool's job is discovery, not certification.
package rules

import (
	"jdisco/internal/javaparse"
)

// DefaultStatementThreshold is the statement count above which a public
// method without control flow is still flagged as a business rule. The value
// is a fixed constant so two runs over an unchanged tree always agree.
const DefaultStatementThreshold = 5

// Scorer assigns business-rule verdicts to parsed methods.
type Scorer struct {
	threshold int
}

// NewScorer creates a scorer with the default statement threshold.
func NewScorer() *Scorer {
	return &Scorer{threshold: DefaultStatementThreshold}
}

// NewScorerWithThreshold creates a scorer with a custom threshold.
// Values below 1 fall back to the default.
func NewScorerWithThreshold(threshold int) *Scorer {
	if threshold < 1 {
		threshold = DefaultStatementThreshold
	}
	return &Scorer{threshold: threshold}
}

// Threshold returns the active statement threshold.
func (s *Scorer) Threshold() int {
	return s.threshold
}

// Score sets the business-rule verdict on every method of the unit:
// a method is flagged when it is public and either contains control flow or
// exceeds the statement threshold. Verdicts are written exactly once.
func (s *Scorer) Score(unit *javaparse.StructuralUnit) {
	for i := range unit.Methods {
		m := &unit.Methods[i]
		m.BusinessRuleVerdict = m.Visibility == javaparse.VisibilityPublic &&
			(m.HasControlFlow || m.StatementCount > s.threshold)
	}
}

// UnitStats are per-unit counts derived from the scored methods. They are
// computed on demand so businessRuleMethods can never exceed publicMethods.
type UnitStats struct {
	TotalMethods        int `json:"totalMethods"`
	PublicMethods       int `json:"publicMethods"`
	BusinessRuleMethods int `json:"businessRuleMethods"`
}

// Stats derives the per-unit counts for a scored unit.
func Stats(unit *javaparse.StructuralUnit) UnitStats {
	return UnitStats{
		TotalMethods:        len(unit.Methods),
		PublicMethods:       unit.PublicMethodCount(),
		BusinessRuleMethods: unit.BusinessRuleCount(),
	}
}
