package game

// --- Enums ---

// GamePhase is the phase within one turn.
type GamePhase int

const (
	PhaseBeginningOfTurn GamePhase = iota
	PhaseMain
	PhaseAttack
	PhaseEndOfTurn
)

func (p GamePhase) String() string {
	switch p {
	case PhaseBeginningOfTurn:
		return "BeginningOfTurn"
	case PhaseMain:
		return "Main"
	case PhaseAttack:
		return "Attack"
	case PhaseEndOfTurn:
		return "EndOfTurn"
	default:
		return "Unknown"
	}
}

// GameState is the overall lifecycle state of a match.
type GameState int

const (
	StateSetup GameState = iota
	StateInProgress
	StateFinished
	StateCancelled
)

func (s GameState) String() string {
	switch s {
	case StateSetup:
		return "Setup"
	case StateInProgress:
		return "InProgress"
	case StateFinished:
		return "Finished"
	case StateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// CardKind distinguishes the three card categories.
type CardKind int

const (
	KindPokemon CardKind = iota
	KindEnergy
	KindTrainer
)

func (k CardKind) String() string {
	switch k {
	case KindPokemon:
		return "Pokemon"
	case KindEnergy:
		return "Energy"
	case KindTrainer:
		return "Trainer"
	default:
		return "Unknown"
	}
}

// EnergyType is one of the game's energy colors.
type EnergyType int

const (
	EnergyGrass EnergyType = iota
	EnergyFire
	EnergyWater
	EnergyLightning
	EnergyPsychic
	EnergyFighting
	EnergyDarkness
	EnergyMetal
	EnergyFairy
	EnergyDragon
	EnergyColorless
)

func (e EnergyType) String() string {
	switch e {
	case EnergyGrass:
		return "Grass"
	case EnergyFire:
		return "Fire"
	case EnergyWater:
		return "Water"
	case EnergyLightning:
		return "Lightning"
	case EnergyPsychic:
		return "Psychic"
	case EnergyFighting:
		return "Fighting"
	case EnergyDarkness:
		return "Darkness"
	case EnergyMetal:
		return "Metal"
	case EnergyFairy:
		return "Fairy"
	case EnergyDragon:
		return "Dragon"
	case EnergyColorless:
		return "Colorless"
	default:
		return "Unknown"
	}
}

// Stage is a Pokémon's evolution stage.
type Stage int

const (
	StageBasic Stage = iota
	Stage1
	Stage2
	StageMega
	StageGX
	StageEX
	StageV
	StageVMax
)

func (s Stage) String() string {
	switch s {
	case StageBasic:
		return "Basic"
	case Stage1:
		return "Stage 1"
	case Stage2:
		return "Stage 2"
	case StageMega:
		return "Mega"
	case StageGX:
		return "GX"
	case StageEX:
		return "EX"
	case StageV:
		return "V"
	case StageVMax:
		return "VMAX"
	default:
		return "Unknown"
	}
}

// TrainerType is the subtype of a Trainer card.
type TrainerType int

const (
	TrainerItem TrainerType = iota
	TrainerSupporter
	TrainerStadium
	TrainerTool
)

func (t TrainerType) String() string {
	switch t {
	case TrainerItem:
		return "Item"
	case TrainerSupporter:
		return "Supporter"
	case TrainerStadium:
		return "Stadium"
	case TrainerTool:
		return "Tool"
	default:
		return "Unknown"
	}
}

// Rarity is a card's rarity level.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityRareHolo
	RarityUltraRare
	RaritySecretRare
	RarityPromo
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityRareHolo:
		return "Rare Holo"
	case RarityUltraRare:
		return "Ultra Rare"
	case RaritySecretRare:
		return "Secret Rare"
	case RarityPromo:
		return "Promo"
	default:
		return "Unknown"
	}
}

// ConditionKind is a special condition that can affect a Pokémon.
type ConditionKind int

const (
	ConditionPoisoned ConditionKind = iota
	ConditionBurned
	ConditionParalyzed
	ConditionAsleep
	ConditionConfused
	ConditionTrapped
)

func (c ConditionKind) String() string {
	switch c {
	case ConditionPoisoned:
		return "Poisoned"
	case ConditionBurned:
		return "Burned"
	case ConditionParalyzed:
		return "Paralyzed"
	case ConditionAsleep:
		return "Asleep"
	case ConditionConfused:
		return "Confused"
	case ConditionTrapped:
		return "Trapped"
	default:
		return "Unknown"
	}
}

// AttackTarget is an attack's target selection mode.
type AttackTarget int

const (
	TargetActive AttackTarget = iota // opponent's active Pokémon
	TargetChoose                     // attacker chooses any opposing Pokémon
	TargetAll                        // all opposing Pokémon
	TargetBench                      // a benched Pokémon
	TargetSelf                       // the attacker itself (healing etc.)
)

func (t AttackTarget) String() string {
	switch t {
	case TargetActive:
		return "Active"
	case TargetChoose:
		return "Choose"
	case TargetAll:
		return "All"
	case TargetBench:
		return "Bench"
	case TargetSelf:
		return "Self"
	default:
		return "Unknown"
	}
}
