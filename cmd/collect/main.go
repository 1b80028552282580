package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"rank-predictor/internal/dataset"
	"rank-predictor/internal/riot"
)

func main() {
	godotenv.Load()

	riotID := flag.String("riot-id", "", "Seed player in format 'GameName#TagLine'")
	matches := flag.Int("matches", 10, "Matches to fetch per player")
	maxPlayers := flag.Int("max-players", 100, "Players to crawl before stopping")
	out := flag.String("out", "data/training_rows.csv", "Output CSV path")
	labeled := flag.Bool("labeled", false, "Look up each participant's real tier as the label column (slow)")
	flag.Parse()

	if *riotID == "" {
		fmt.Println("Usage: collect --riot-id=\"PlayerName#NA1\" [--matches=10] [--max-players=100] [--out=data/training_rows.csv] [--labeled]")
		os.Exit(1)
	}

	parts := strings.SplitN(*riotID, "#", 2)
	if len(parts) != 2 {
		log.Fatalf("Invalid Riot ID format. Expected 'GameName#TagLine', got: %s", *riotID)
	}
	gameName, tagLine := parts[0], parts[1]

	zlog, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	client, err := riot.NewClient()
	if err != nil {
		log.Fatalf("Failed to create Riot client: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if valid, err := riot.NewKeyValidator().ValidateKey(ctx, os.Getenv("RIOT_API_KEY")); err != nil {
		logger.Warnw("could not verify Riot API key", "error", err)
	} else if !valid {
		log.Fatal("Riot API key rejected; dev keys expire after 24h, renew at https://developer.riotgames.com")
	}

	fmt.Printf("Resolving seed player %s#%s...\n", gameName, tagLine)
	account, err := client.GetAccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		log.Fatalf("Failed to resolve account: %v", err)
	}

	writer, err := dataset.NewWriter(*out, *labeled)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer writer.Close()

	collector := dataset.New(client, writer, dataset.Config{
		MatchesPerPlayer: *matches,
		MaxPlayers:       *maxPlayers,
		Labeled:          *labeled,
	}, logger)

	fmt.Printf("Crawling up to %d players, %d matches each...\n", *maxPlayers, *matches)
	stats, err := collector.Run(ctx, account.PUUID)
	if err != nil && err != context.Canceled {
		log.Fatalf("Crawl failed: %v", err)
	}

	fmt.Printf("\nDone in %s\n", stats.Elapsed.Round(time.Second))
	fmt.Printf("  Players visited: %d\n", stats.PlayersVisited)
	fmt.Printf("  Matches fetched: %d (skipped %d)\n", stats.MatchesFetched, stats.MatchesSkipped)
	fmt.Printf("  Rows written:    %d -> %s\n", stats.RowsWritten, *out)
}
