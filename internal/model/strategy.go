package model

// Strategy is one of the 6 Rs migration strategies.
type Strategy string

const (
	StrategyRehost     Strategy = "rehost"
	StrategyReplatform Strategy = "replatform"
	StrategyRefactor   Strategy = "refactor"
	StrategyRepurchase Strategy = "repurchase"
	StrategyRetire     Strategy = "retire"
	StrategyRetain     Strategy = "retain"
)

// CostSaving is the qualitative cost-saving tag of a strategy.
type CostSaving string

const (
	CostSavingVeryHigh CostSaving = "very high"
	CostSavingHigh     CostSaving = "high"
	CostSavingMedium   CostSaving = "medium"
	CostSavingNone     CostSaving = "none"
)

// Multiplier returns the fraction of spend expected to be saved.
func (c CostSaving) Multiplier() float64 {
	switch c {
	case CostSavingVeryHigh:
		return 0.4
	case CostSavingHigh:
		return 0.3
	case CostSavingMedium:
		return 0.2
	default:
		return 0
	}
}

// StrategyInfo describes a strategy for display.
type StrategyInfo struct {
	Key         Strategy   `json:"key"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Complexity  Level      `json:"complexity"`
	Timeframe   string     `json:"timeframe"`
	CostSaving  CostSaving `json:"cost_saving"`
}

// StrategyOrder is the canonical display order of the 6 Rs.
var StrategyOrder = []Strategy{
	StrategyRehost,
	StrategyReplatform,
	StrategyRefactor,
	StrategyRepurchase,
	StrategyRetire,
	StrategyRetain,
}

// Strategies is the static lookup table for the 6 Rs framework.
var Strategies = map[Strategy]StrategyInfo{
	StrategyRehost: {
		Key:         StrategyRehost,
		Name:        "Rehost (Lift & Shift)",
		Description: "Move applications to cloud without changes",
		Icon:        "🚀",
		Complexity:  LevelLow,
		Timeframe:   "weeks",
		CostSaving:  CostSavingMedium,
	},
	StrategyReplatform: {
		Key:         StrategyReplatform,
		Name:        "Replatform (Lift & Reshape)",
		Description: "Make minimal changes to optimize for cloud",
		Icon:        "🔧",
		Complexity:  LevelMedium,
		Timeframe:   "months",
		CostSaving:  CostSavingHigh,
	},
	StrategyRefactor: {
		Key:         StrategyRefactor,
		Name:        "Refactor (Re-architect)",
		Description: "Redesign applications for cloud-native architecture",
		Icon:        "🏗️",
		Complexity:  LevelHigh,
		Timeframe:   "quarters",
		CostSaving:  CostSavingVeryHigh,
	},
	StrategyRepurchase: {
		Key:         StrategyRepurchase,
		Name:        "Repurchase (Drop & Shop)",
		Description: "Replace with SaaS or cloud-native solutions",
		Icon:        "🛒",
		Complexity:  LevelMedium,
		Timeframe:   "months",
		CostSaving:  CostSavingHigh,
	},
	StrategyRetire: {
		Key:         StrategyRetire,
		Name:        "Retire",
		Description: "Decommission applications no longer needed",
		Icon:        "🗑️",
		Complexity:  LevelLow,
		Timeframe:   "weeks",
		CostSaving:  CostSavingVeryHigh,
	},
	StrategyRetain: {
		Key:         StrategyRetain,
		Name:        "Retain (Revisit)",
		Description: "Keep applications on-premises for now",
		Icon:        "⏸️",
		Complexity:  LevelLow,
		Timeframe:   "immediate",
		CostSaving:  CostSavingNone,
	},
}

// Valid reports whether s is one of the 6 Rs.
func (s Strategy) Valid() bool {
	_, ok := Strategies[s]
	return ok
}

// Info returns the table entry for s.
func (s Strategy) Info() StrategyInfo {
	return Strategies[s]
}

// StrategyList returns the table in canonical order.
func StrategyList() []StrategyInfo {
	list := make([]StrategyInfo, 0, len(StrategyOrder))
	for _, s := range StrategyOrder {
		list = append(list, Strategies[s])
	}
	return list
}
