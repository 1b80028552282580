// Package model loads the trained classifier artifact and maps its
// integer predictions onto rank tiers. The concrete model family hides
// behind the Predictor interface so it can change without touching the
// extraction or display layers.
package model

import "strings"

// RankLabel is one tier of the ordered, closed rank set.
type RankLabel string

// RankLabels lists every tier in the classifier's output encoding:
// the prediction index is a position in this slice.
var RankLabels = []RankLabel{
	"Unranked",
	"Iron",
	"Bronze",
	"Silver",
	"Gold",
	"Platinum",
	"Emerald",
	"Diamond",
	"Master",
	"Grandmaster",
	"Challenger",
}

// Rank converts a classifier output index into a label. An out-of-range
// index means the artifact disagrees with this encoding, which is a
// schema problem, not something to coerce.
func Rank(index int) (RankLabel, error) {
	if index < 0 || index >= len(RankLabels) {
		return "", &SchemaError{
			Detail: "class index outside the rank label set",
			Want:   len(RankLabels),
			Got:    index,
		}
	}
	return RankLabels[index], nil
}

// RankIndexFromTier maps a league-v4 tier string (e.g. "GOLD") to the
// classifier's label index. Unknown or empty tiers map to Unranked.
func RankIndexFromTier(tier string) int {
	for i, label := range RankLabels {
		if strings.EqualFold(string(label), tier) {
			return i
		}
	}
	return 0
}
