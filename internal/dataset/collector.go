package dataset

import (
	"context"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"go.uber.org/zap"

	"rank-predictor/internal/features"
	"rank-predictor/internal/model"
	"rank-predictor/internal/riot"
)

// API is the slice of the Riot client the collector uses.
type API interface {
	GetMatch(ctx context.Context, matchID string) (*riot.MatchResponse, error)
	GetMatchHistory(ctx context.Context, puuid string, count int) ([]string, error)
	GetSoloQueueRank(ctx context.Context, puuid string) (tier, division string, hasRank bool, err error)
}

// Config controls a crawl.
type Config struct {
	MatchesPerPlayer int
	MaxPlayers       int
	// Labeled looks up each participant's actual solo queue tier and
	// writes it as the Tier column. Much slower: one league call per
	// participant per match.
	Labeled bool
}

// Stats summarizes a finished crawl.
type Stats struct {
	PlayersVisited int
	MatchesFetched int
	RowsWritten    int
	MatchesSkipped int
	Elapsed        time.Duration
}

// Collector walks the match graph breadth-first from a seed player:
// fetch a player's recent matches, extract every participant's feature
// row, queue the participants it hasn't seen. Bloom filters keep the
// visited sets cheap at crawl scale.
type Collector struct {
	api    API
	writer *Writer
	logger *zap.SugaredLogger
	cfg    Config

	visitedMatches *bloom.BloomFilter
	visitedPlayers *bloom.BloomFilter
	playerQueue    []string

	// Tier lookups already made this crawl, keyed by PUUID. Not a
	// response cache: it only avoids re-asking for the same player
	// within a single run.
	tiers map[string]int
}

// New creates a collector writing to the given Writer.
func New(api API, writer *Writer, cfg Config, logger *zap.SugaredLogger) *Collector {
	if cfg.MatchesPerPlayer <= 0 {
		cfg.MatchesPerPlayer = 10
	}
	if cfg.MaxPlayers <= 0 {
		cfg.MaxPlayers = 100
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Collector{
		api:            api,
		writer:         writer,
		logger:         logger,
		cfg:            cfg,
		visitedMatches: bloom.NewWithEstimates(500000, 0.001),
		visitedPlayers: bloom.NewWithEstimates(1000000, 0.001),
		tiers:          make(map[string]int),
	}
}

// Run crawls from the seed PUUID until MaxPlayers players have been
// processed, the queue empties, or the context is cancelled.
func (c *Collector) Run(ctx context.Context, seedPUUID string) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	c.playerQueue = append(c.playerQueue, seedPUUID)

	for len(c.playerQueue) > 0 && stats.PlayersVisited < c.cfg.MaxPlayers {
		select {
		case <-ctx.Done():
			stats.Elapsed = time.Since(start)
			return stats, ctx.Err()
		default:
		}

		puuid := c.playerQueue[0]
		c.playerQueue = c.playerQueue[1:]

		if c.visitedPlayers.TestString(puuid) {
			continue
		}
		c.visitedPlayers.AddString(puuid)
		stats.PlayersVisited++

		if err := c.collectPlayer(ctx, puuid, stats); err != nil {
			// Auth failures end the crawl; anything else skips the player
			if riot.IsKind(err, riot.KindAuth) {
				stats.Elapsed = time.Since(start)
				return stats, err
			}
			c.logger.Warnw("skipping player", "puuid", puuid, "error", err)
		}
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}

func (c *Collector) collectPlayer(ctx context.Context, puuid string, stats *Stats) error {
	matchIDs, err := c.api.GetMatchHistory(ctx, puuid, c.cfg.MatchesPerPlayer)
	if err != nil {
		return err
	}

	for _, matchID := range matchIDs {
		if c.visitedMatches.TestString(matchID) {
			stats.MatchesSkipped++
			continue
		}
		c.visitedMatches.AddString(matchID)

		match, err := c.api.GetMatch(ctx, matchID)
		if err != nil {
			if riot.IsKind(err, riot.KindAuth) {
				return err
			}
			c.logger.Warnw("skipping match", "matchId", matchID, "error", err)
			stats.MatchesSkipped++
			continue
		}
		stats.MatchesFetched++

		rows, _ := features.Extract(match, "")
		for i, row := range rows {
			tier := 0
			if c.cfg.Labeled && i < len(match.Info.Participants) {
				tier = c.tierFor(ctx, match.Info.Participants[i].PUUID)
			}
			if err := c.writer.Append(row, tier); err != nil {
				return err
			}
			stats.RowsWritten++
		}

		// Feed the frontier
		for _, p := range match.Info.Participants {
			if p.PUUID != "" && !c.visitedPlayers.TestString(p.PUUID) {
				c.playerQueue = append(c.playerQueue, p.PUUID)
			}
		}
	}

	return nil
}

// tierFor resolves a participant's rank label index, remembering lookups
// for the rest of the crawl. Lookup failures label the row Unranked.
func (c *Collector) tierFor(ctx context.Context, puuid string) int {
	if puuid == "" {
		return 0
	}
	if tier, ok := c.tiers[puuid]; ok {
		return tier
	}

	tierStr, _, hasRank, err := c.api.GetSoloQueueRank(ctx, puuid)
	tier := 0
	if err != nil {
		c.logger.Debugw("tier lookup failed", "puuid", puuid, "error", err)
	} else if hasRank {
		tier = model.RankIndexFromTier(tierStr)
	}

	c.tiers[puuid] = tier
	return tier
}
