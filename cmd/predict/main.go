package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"rank-predictor/internal/features"
	"rank-predictor/internal/model"
	"rank-predictor/internal/pipeline"
	"rank-predictor/internal/riot"
)

func main() {
	godotenv.Load()

	matchID := flag.String("match", "", "Match ID, e.g. NA1_5404818015")
	player := flag.String("player", "", "Optional player name; predicts the whole match when omitted")
	modelPath := flag.String("model", "models/rank_tree.json", "Path to the classifier artifact")
	flag.Parse()

	if *matchID == "" {
		fmt.Println("Usage: predict --match=NA1_5404818015 [--player=coolkaw]")
		os.Exit(1)
	}

	tree, err := model.Load(*modelPath)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	if err := tree.CheckSchema(features.ModelColumns); err != nil {
		log.Fatalf("Model does not match the feature schema: %v", err)
	}

	client, err := riot.NewClient()
	if err != nil {
		log.Fatalf("Failed to create Riot client: %v", err)
	}

	p := pipeline.New(client, tree, nil)
	ctx := context.Background()

	if *player != "" {
		predictOne(ctx, p, *matchID, *player)
		return
	}
	predictAll(ctx, p, *matchID)
}

func predictOne(ctx context.Context, p *pipeline.Pipeline, matchID, player string) {
	pred, diag, err := p.PredictPlayer(ctx, matchID, player)
	if err != nil {
		log.Fatalf("Prediction failed: %v", err)
	}
	if diag != nil {
		fmt.Printf("Player %q not found in this match.\nAvailable players:\n", diag.Player)
		for _, name := range diag.Available {
			fmt.Printf("  - %s\n", name)
		}
		os.Exit(1)
	}

	row := pred.Row
	fmt.Printf("\nStats for %s (%s)\n", row.SummonerName, row.ChampionName)
	fmt.Printf("  KDA:       %d/%d/%d (%.2f)\n", row.Kills, row.Deaths, row.Assists, row.KDA)
	fmt.Printf("  CS/min:    %.1f\n", row.CSPerMin)
	fmt.Printf("  Gold/min:  %.1f\n", row.GoldPerMin)
	fmt.Printf("  Vision:    %d\n", row.VisionScore)
	fmt.Printf("  Win:       %v\n", row.Win == 1)
	fmt.Printf("\nPredicted rank: %s\n", pred.Rank)
}

func predictAll(ctx context.Context, p *pipeline.Pipeline, matchID string) {
	fmt.Printf("\nFetching match: %s\n", matchID)

	result, err := p.PredictMatch(ctx, matchID)
	if err != nil {
		log.Fatalf("Prediction failed: %v", err)
	}

	fmt.Printf("Mode: %s | Duration: %dm %ds | Players: %d\n",
		result.GameMode, result.GameDurationSec/60, result.GameDurationSec%60, len(result.Players))

	printTeam("WINNING TEAM", result.Team(true))
	printTeam("LOSING TEAM", result.Team(false))

	fmt.Println("\nRank distribution:")
	for _, label := range model.RankLabels {
		if count := result.Distribution[label]; count > 0 {
			fmt.Printf("  %-12s %d\n", label, count)
		}
	}
	fmt.Printf("\nAverage rank: %s (%.2f)\n", result.AverageRank, result.AverageIndex)
}

func printTeam(title string, players []pipeline.PlayerPrediction) {
	fmt.Printf("\n%s\n", title)
	fmt.Printf("%-20s %-14s %-10s %-7s %-8s %s\n",
		"Player", "Champion", "KDA", "CS", "Gold", "Predicted Rank")
	for _, p := range players {
		kda := fmt.Sprintf("%d/%d/%d", p.Row.Kills, p.Row.Deaths, p.Row.Assists)
		gold := fmt.Sprintf("%.1fk", float64(p.Row.TotalGold)/1000)
		fmt.Printf("%-20s %-14s %-10s %-7d %-8s %s\n",
			p.Row.SummonerName, p.Row.ChampionName, kda, p.Row.MinionsKilled, gold, p.Rank)
	}
}
