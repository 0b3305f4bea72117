package game

import "fmt"

// Severity grades a rule violation.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	case SeverityFatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}

// RuleViolation is one rule's objection to an action.
type RuleViolation struct {
	RuleName string
	Message  string
	Severity Severity
}

func (v RuleViolation) String() string {
	return fmt.Sprintf("[%s] %s: %s", v.Severity, v.RuleName, v.Message)
}

// Rule validates actions and may apply side effects when an action is
// accepted. Validate returns nil when the action is fine; Apply runs
// after validation passes and returns nil on success.
type Rule interface {
	Name() string
	Validate(g *Game, a GameAction) *RuleViolation
	Apply(g *Game, a GameAction) *RuleViolation
}

// RuleConfig tunes how the engine evaluates rules.
type RuleConfig struct {
	StopOnFirstViolation bool
	AutoApplyEffects     bool
	MinSeverity          Severity // violations below this are dropped
}

// DefaultRuleConfig reports everything and applies rule side effects.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		StopOnFirstViolation: false,
		AutoApplyEffects:     true,
		MinSeverity:          SeverityWarning,
	}
}

// RuleEngine evaluates a fixed set of rules against actions.
type RuleEngine struct {
	rules  []Rule
	config RuleConfig
}

// NewRuleEngine creates an engine with the given configuration.
func NewRuleEngine(config RuleConfig) *RuleEngine {
	return &RuleEngine{config: config}
}

// AddRule registers a rule. Rules run in registration order.
func (e *RuleEngine) AddRule(r Rule) {
	e.rules = append(e.rules, r)
}

// Rules returns the registered rules in evaluation order.
func (e *RuleEngine) Rules() []Rule {
	return e.rules
}

// Config returns the engine's configuration.
func (e *RuleEngine) Config() RuleConfig {
	return e.config
}

// ValidateAction runs every rule against the action and returns the
// violations at or above the configured severity. With
// StopOnFirstViolation set, evaluation stops at the first reported
// violation.
func (e *RuleEngine) ValidateAction(g *Game, a GameAction) []RuleViolation {
	var violations []RuleViolation
	for _, r := range e.rules {
		v := r.Validate(g, a)
		if v == nil || v.Severity < e.config.MinSeverity {
			continue
		}
		violations = append(violations, *v)
		if e.config.StopOnFirstViolation {
			break
		}
	}
	return violations
}

// ApplyAction validates the action and, if nothing at Error severity or
// above objects, runs each rule's Apply hook. The first Apply failure
// aborts the remainder. Returned violations include warnings even when
// the action goes through.
func (e *RuleEngine) ApplyAction(g *Game, a GameAction) ([]RuleViolation, bool) {
	violations := e.ValidateAction(g, a)
	for _, v := range violations {
		if v.Severity >= SeverityError {
			return violations, false
		}
	}
	if !e.config.AutoApplyEffects {
		return violations, true
	}
	for _, r := range e.rules {
		if v := r.Apply(g, a); v != nil {
			violations = append(violations, *v)
			return violations, false
		}
	}
	return violations, true
}
