//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"rank-predictor/internal/features"
	"rank-predictor/internal/model"
	"rank-predictor/internal/pipeline"
	"rank-predictor/internal/riot"
)

// matchFixture is a trimmed match-v5 payload with two participants.
const matchFixture = `{
	"metadata": {"matchId": "NA1_5404818015", "participants": ["puuid-1", "puuid-2"]},
	"info": {
		"gameDuration": 1800,
		"gameMode": "CLASSIC",
		"participants": [
			{
				"riotIdGameName": "coolkaw", "championName": "Ahri", "championId": 103,
				"kills": 10, "deaths": 2, "assists": 5,
				"totalMinionsKilled": 210, "totalDamageDealtToChampions": 24000,
				"totalDamageTaken": 18000, "goldEarned": 12000, "visionScore": 30,
				"win": true, "lane": "MIDDLE", "role": "SOLO",
				"item0": 3089, "item1": 3157,
				"perks": {"styles": [
					{"selections": [{"perk": 8112}, {"perk": 8139}, {"perk": 8138}, {"perk": 8135}]},
					{"selections": [{"perk": 8233}, {"perk": 8236}]}
				]}
			},
			{
				"riotIdGameName": "rival", "championName": "Zed", "championId": 238,
				"kills": 2, "deaths": 10, "assists": 1,
				"totalMinionsKilled": 150, "totalDamageDealtToChampions": 9000,
				"totalDamageTaken": 26000, "goldEarned": 8000, "visionScore": 12,
				"win": false, "lane": "MIDDLE", "role": "SOLO"
			}
		]
	}
}`

// writeArtifact builds a single-split tree over the real schema: KDA
// above 3 predicts Gold, otherwise Silver.
func writeArtifact(t *testing.T) string {
	t.Helper()

	kdaIdx := -1
	for i, name := range features.ModelColumns {
		if name == "KDA" {
			kdaIdx = i
		}
	}
	if kdaIdx == -1 {
		t.Fatal("no KDA column in schema")
	}

	artifact := model.Artifact{
		Kind:     "decision_tree",
		Features: features.ModelColumns,
		Nodes: []model.Node{
			{Feature: kdaIdx, Threshold: 3.0, Left: 1, Right: 2},
			{Left: -1, Class: 3}, // Silver
			{Left: -1, Class: 4}, // Gold
		},
	}

	data, err := json.Marshal(artifact)
	if err != nil {
		t.Fatalf("marshal artifact: %v", err)
	}
	path := filepath.Join(t.TempDir(), "rank_tree.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestFullPipeline(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Riot-Token") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(matchFixture))
	}))
	defer api.Close()

	t.Setenv("RIOT_API_KEY", "RGAPI-e2e-key")
	t.Setenv("RIOT_REGION", "")

	client, err := riot.NewClient(riot.WithBaseURL(api.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	tree, err := model.Load(writeArtifact(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := tree.CheckSchema(features.ModelColumns); err != nil {
		t.Fatalf("CheckSchema: %v", err)
	}

	p := pipeline.New(client, tree, nil)

	result, err := p.PredictMatch(context.Background(), "NA1_5404818015")
	if err != nil {
		t.Fatalf("PredictMatch: %v", err)
	}

	if len(result.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(result.Players))
	}
	// coolkaw: KDA 7.5 -> Gold; rival: KDA 0.3 -> Silver
	if result.Players[0].Rank != "Gold" {
		t.Errorf("coolkaw rank = %s, want Gold", result.Players[0].Rank)
	}
	if result.Players[1].Rank != "Silver" {
		t.Errorf("rival rank = %s, want Silver", result.Players[1].Rank)
	}
	if result.Distribution["Gold"] != 1 || result.Distribution["Silver"] != 1 {
		t.Errorf("distribution = %v", result.Distribution)
	}

	// Single-player path with the original's warning scenario
	row, diag, err := p.PlayerStats(context.Background(), "NA1_5404818015", "doesNotExist")
	if err != nil {
		t.Fatalf("PlayerStats: %v", err)
	}
	if row != nil || diag == nil {
		t.Fatalf("expected empty result with diagnostic, got row=%v diag=%v", row, diag)
	}
	if len(diag.Available) != 2 || diag.Available[0] != "coolkaw" {
		t.Errorf("available = %v", diag.Available)
	}
}

func TestFullPipeline_ExpiredKey(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"status":{"message":"Forbidden","status_code":403}}`))
	}))
	defer api.Close()

	t.Setenv("RIOT_API_KEY", "RGAPI-expired")
	t.Setenv("RIOT_REGION", "")

	client, err := riot.NewClient(riot.WithBaseURL(api.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	tree, err := model.Load(writeArtifact(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	p := pipeline.New(client, tree, nil)

	_, err = p.PredictMatch(context.Background(), "NA1_5404818015")
	if !riot.IsKind(err, riot.KindAuth) {
		t.Errorf("expected auth failure, got %v", err)
	}
}
