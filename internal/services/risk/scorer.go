// Package risk holds the stateless fraud heuristics: the additive risk
// score, the score-to-level classifier and the alert derivation rule.
// Nothing in this package performs I/O.
package risk

import (
	"strings"

	"fraudscope/internal/models"
)

const (
	MaxScore = 100.0

	HighThreshold   = 70.0
	MediumThreshold = 40.0
)

// Factor names reported by Assess.
const (
	FactorAmount           = "amount"
	FactorCountry          = "country"
	FactorChannel          = "channel"
	FactorMerchantCategory = "merchant_category"
	FactorMissingIdentity  = "missing_identity"
)

type amountBracket struct {
	min    float64
	points float64
}

// Ordered high to low, the first matching bracket wins.
var amountBrackets = []amountBracket{
	{min: 5000, points: 50},
	{min: 1000, points: 25},
	{min: 200, points: 10},
}

const (
	countryPoints          = 15.0
	channelPoints          = 10.0
	merchantCategoryPoints = 10.0
	missingIdentityPoints  = 5.0
)

var (
	riskyCountries = map[string]struct{}{
		"RU": {}, "NG": {}, "UA": {}, "BR": {}, "CN": {},
	}
	riskyChannels = map[string]struct{}{
		"web": {}, "card-not-present": {},
	}
	riskyMerchantCategories = map[string]struct{}{
		"gambling": {}, "crypto": {}, "adult": {},
	}
)

// Factor is one rule that contributed points to a score.
type Factor struct {
	Name   string  `json:"name" yaml:"name"`
	Points float64 `json:"points" yaml:"points"`
}

// Assessment is the full scoring result for one transaction.
type Assessment struct {
	Score   float64          `json:"risk_score" yaml:"risk_score"`
	Level   models.RiskLevel `json:"risk_level" yaml:"risk_level"`
	Factors []Factor         `json:"factors" yaml:"factors"`
}

// Score returns the risk score of tx in [0, 100].
func Score(tx *models.Transaction) float64 {
	return Assess(tx).Score
}

// Assess scores tx and reports which rules fired.
func Assess(tx *models.Transaction) Assessment {
	factors := make([]Factor, 0, 5)

	for _, b := range amountBrackets {
		if tx.Amount >= b.min {
			factors = append(factors, Factor{Name: FactorAmount, Points: b.points})
			break
		}
	}

	if inSet(riskyCountries, strings.ToUpper(models.StringValue(tx.Country))) {
		factors = append(factors, Factor{Name: FactorCountry, Points: countryPoints})
	}
	if inSet(riskyChannels, strings.ToLower(models.StringValue(tx.Channel))) {
		factors = append(factors, Factor{Name: FactorChannel, Points: channelPoints})
	}
	if inSet(riskyMerchantCategories, strings.ToLower(models.StringValue(tx.MerchantCategory))) {
		factors = append(factors, Factor{Name: FactorMerchantCategory, Points: merchantCategoryPoints})
	}

	// Absence is the signal here.
	if models.StringValue(tx.IPAddress) == "" || models.StringValue(tx.DeviceID) == "" {
		factors = append(factors, Factor{Name: FactorMissingIdentity, Points: missingIdentityPoints})
	}

	var score float64
	for _, f := range factors {
		score += f.Points
	}
	if score > MaxScore {
		score = MaxScore
	}

	return Assessment{
		Score:   score,
		Level:   Classify(score),
		Factors: factors,
	}
}

// Classify maps a score to its risk level.
func Classify(score float64) models.RiskLevel {
	switch {
	case score >= HighThreshold:
		return models.RiskLevelHigh
	case score >= MediumThreshold:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

func inSet(set map[string]struct{}, key string) bool {
	if key == "" {
		return false
	}
	_, ok := set[key]
	return ok
}
