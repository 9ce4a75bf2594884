package models

// RiskTier is the qualitative bucket derived from the risk score,
// rendered to users as green/yellow/red
type RiskTier string

const (
	RiskTierLow    RiskTier = "low"
	RiskTierMedium RiskTier = "medium"
	RiskTierHigh   RiskTier = "high"
)

// RiskAssessment is the output of scoring a route against the flood zones
type RiskAssessment struct {
	IntersectionCount    int      `json:"intersection_count"`
	RiskScore            float64  `json:"risk_score"`
	RiskTier             RiskTier `json:"risk_tier"`
	Warnings             []string `json:"warnings"`
	AlternativeAvailable bool     `json:"alternative_available"`
}
