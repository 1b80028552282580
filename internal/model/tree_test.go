package model

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rank-predictor/internal/features"
)

// testArtifact builds a two-level tree over the full 45-column schema:
// splits on KDA, then on GoldPerMin for the high-KDA branch.
func testArtifact(t *testing.T) Artifact {
	t.Helper()

	kdaIdx, goldIdx := -1, -1
	for i, name := range features.ModelColumns {
		switch name {
		case "KDA":
			kdaIdx = i
		case "GoldPerMin":
			goldIdx = i
		}
	}
	if kdaIdx == -1 || goldIdx == -1 {
		t.Fatal("schema is missing KDA or GoldPerMin")
	}

	return Artifact{
		Kind:     "decision_tree",
		Features: features.ModelColumns,
		Nodes: []Node{
			{Feature: kdaIdx, Threshold: 3.0, Left: 1, Right: 2},
			{Left: -1, Class: 2}, // low KDA -> Bronze
			{Feature: goldIdx, Threshold: 400, Left: 3, Right: 4},
			{Left: -1, Class: 4},  // Gold
			{Left: -1, Class: 10}, // Challenger
		},
	}
}

func rowWith(kda, goldPerMin float64) features.FeatureRow {
	return features.FeatureRow{KDA: kda, GoldPerMin: goldPerMin}
}

func TestTreePredict(t *testing.T) {
	tree, err := New(testArtifact(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name string
		row  features.FeatureRow
		want RankLabel
	}{
		{"low KDA", rowWith(1.0, 500), "Bronze"},
		{"high KDA low gold", rowWith(7.5, 300), "Gold"},
		{"high KDA high gold", rowWith(7.5, 450), "Challenger"},
		{"boundary KDA goes left", rowWith(3.0, 450), "Bronze"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PredictRank(tt.row, tree)
			if err != nil {
				t.Fatalf("PredictRank failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("PredictRank = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTreePredict_SchemaMismatch(t *testing.T) {
	tree, err := New(testArtifact(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Deliberately one column short of the trained schema
	short := make([]float64, features.NumModelColumns-1)

	_, err = tree.Predict(short)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if schemaErr.Want != features.NumModelColumns || schemaErr.Got != features.NumModelColumns-1 {
		t.Errorf("mismatch counts = want %d got %d", schemaErr.Want, schemaErr.Got)
	}
}

func TestCheckSchema(t *testing.T) {
	tree, err := New(testArtifact(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := tree.CheckSchema(features.ModelColumns); err != nil {
		t.Errorf("CheckSchema against the real columns failed: %v", err)
	}

	// Wrong count
	if err := tree.CheckSchema(features.ModelColumns[:44]); err == nil {
		t.Error("expected error for truncated column set")
	}

	// Same count, one renamed column
	renamed := make([]string, len(features.ModelColumns))
	copy(renamed, features.ModelColumns)
	renamed[0] = "CreepScore"
	err = tree.CheckSchema(renamed)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Errorf("expected *SchemaError for renamed column, got %v", err)
	}
}

func TestTreePredict_BadLeafClass(t *testing.T) {
	artifact := testArtifact(t)
	artifact.Nodes[1].Class = 99

	tree, err := New(artifact)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = tree.Predict(rowWith(1.0, 0).Vector())
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Errorf("expected *SchemaError for out-of-range leaf class, got %v", err)
	}
}

func TestNew_RejectsBadArtifacts(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Artifact)
	}{
		{"no features", func(a *Artifact) { a.Features = nil }},
		{"no nodes", func(a *Artifact) { a.Nodes = nil }},
		{"feature index out of range", func(a *Artifact) { a.Nodes[0].Feature = 99 }},
		{"left child points backwards", func(a *Artifact) { a.Nodes[2].Left = 0 }},
		{"right child out of range", func(a *Artifact) { a.Nodes[2].Right = 99 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact := testArtifact(t)
			tt.mutate(&artifact)
			if _, err := New(artifact); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	artifact := testArtifact(t)
	data, err := json.Marshal(artifact)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	path := filepath.Join(t.TempDir(), "rank_tree.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tree, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tree.Features()) != features.NumModelColumns {
		t.Errorf("loaded features = %d, want %d", len(tree.Features()), features.NumModelColumns)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
