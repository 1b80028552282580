package model

import (
	"errors"
	"testing"
)

func TestRankLabels(t *testing.T) {
	if len(RankLabels) != 11 {
		t.Fatalf("RankLabels has %d entries, want 11", len(RankLabels))
	}

	expected := []RankLabel{
		"Unranked", "Iron", "Bronze", "Silver", "Gold", "Platinum",
		"Emerald", "Diamond", "Master", "Grandmaster", "Challenger",
	}
	for i, want := range expected {
		if RankLabels[i] != want {
			t.Errorf("RankLabels[%d] = %s, want %s", i, RankLabels[i], want)
		}
	}
}

func TestRank(t *testing.T) {
	if label, err := Rank(0); err != nil || label != "Unranked" {
		t.Errorf("Rank(0) = %s, %v", label, err)
	}
	if label, err := Rank(10); err != nil || label != "Challenger" {
		t.Errorf("Rank(10) = %s, %v", label, err)
	}

	for _, bad := range []int{-1, 11, 100} {
		_, err := Rank(bad)
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			t.Errorf("Rank(%d): expected *SchemaError, got %v", bad, err)
		}
	}
}

func TestRankIndexFromTier(t *testing.T) {
	tests := []struct {
		tier string
		want int
	}{
		{"IRON", 1},
		{"GOLD", 4},
		{"EMERALD", 6},
		{"CHALLENGER", 10},
		{"gold", 4}, // case-insensitive
		{"", 0},
		{"WOOD", 0}, // unknown -> Unranked
	}

	for _, tt := range tests {
		if got := RankIndexFromTier(tt.tier); got != tt.want {
			t.Errorf("RankIndexFromTier(%q) = %d, want %d", tt.tier, got, tt.want)
		}
	}
}
