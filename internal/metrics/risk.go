package metrics

// RiskType bands a case by how far its best reward exceeds the case price.
type RiskType string

const (
	RiskMinimal     RiskType = "Minimal"
	RiskModerate    RiskType = "Moderate"
	RiskBalanced    RiskType = "Balanced"
	RiskElevated    RiskType = "Elevated"
	RiskSignificant RiskType = "Significant"
)

// risk band upper bounds on the max-loot-to-price ratio, inclusive
const (
	MinimalMaxRatio  = 10
	ModerateMaxRatio = 50
	BalancedMaxRatio = 100
	ElevatedMaxRatio = 200
)

// ClassifyRisk maps a max-loot-to-price ratio to its risk band.
// Breakpoints are inclusive and must stay stable for historical exports.
func ClassifyRisk(ratio float64) RiskType {
	switch {
	case ratio <= MinimalMaxRatio:
		return RiskMinimal
	case ratio <= ModerateMaxRatio:
		return RiskModerate
	case ratio <= BalancedMaxRatio:
		return RiskBalanced
	case ratio <= ElevatedMaxRatio:
		return RiskElevated
	default:
		return RiskSignificant
	}
}
