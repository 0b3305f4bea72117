package game

// SpecialCondition is an instance of a condition on a specific Pokémon.
type SpecialCondition struct {
	Kind          ConditionKind
	DamagePerTurn int // for Poisoned / Burned
	Duration      int // turns remaining; 0 means until removed
	AppliedTurn   int
}

// NewPoisoned returns a standard poison condition (10 damage between turns).
func NewPoisoned(turn int) SpecialCondition {
	return SpecialCondition{Kind: ConditionPoisoned, DamagePerTurn: 10, AppliedTurn: turn}
}

// NewBurned returns a standard burn condition (20 damage between turns).
func NewBurned(turn int) SpecialCondition {
	return SpecialCondition{Kind: ConditionBurned, DamagePerTurn: 20, AppliedTurn: turn}
}

// NewCondition returns a condition of the given kind with standard
// parameters.
func NewCondition(kind ConditionKind, turn int) SpecialCondition {
	switch kind {
	case ConditionPoisoned:
		return NewPoisoned(turn)
	case ConditionBurned:
		return NewBurned(turn)
	default:
		return SpecialCondition{Kind: kind, AppliedTurn: turn}
	}
}

// TicksDamage reports whether the condition deals damage between turns.
func (c SpecialCondition) TicksDamage() bool {
	return c.DamagePerTurn > 0
}

// PreventsRetreat reports whether the condition blocks retreating.
func (c SpecialCondition) PreventsRetreat() bool {
	switch c.Kind {
	case ConditionParalyzed, ConditionAsleep, ConditionTrapped:
		return true
	default:
		return false
	}
}

// PreventsAttack reports whether the condition blocks attacking outright.
func (c SpecialCondition) PreventsAttack() bool {
	switch c.Kind {
	case ConditionParalyzed, ConditionAsleep:
		return true
	default:
		return false
	}
}
