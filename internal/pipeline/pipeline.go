// Package pipeline composes the fetch, extract, and predict steps into
// the call surface consumers actually use.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rank-predictor/internal/features"
	"rank-predictor/internal/model"
	"rank-predictor/internal/riot"
)

// MatchSource is the one capability the pipeline needs from the Riot
// client, kept narrow so tests can inject canned matches.
type MatchSource interface {
	GetMatch(ctx context.Context, matchID string) (*riot.MatchResponse, error)
}

// Pipeline wires a match source to a loaded classifier. It holds no
// mutable state; the predictor is read-only after load, so a Pipeline is
// safe for concurrent use.
type Pipeline struct {
	source    MatchSource
	predictor model.Predictor
	logger    *zap.SugaredLogger
}

// New creates a pipeline. A nil logger disables diagnostics logging.
func New(source MatchSource, predictor model.Predictor, logger *zap.SugaredLogger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Pipeline{
		source:    source,
		predictor: predictor,
		logger:    logger,
	}
}

// PlayerPrediction pairs one participant's feature row with the
// classifier's verdict.
type PlayerPrediction struct {
	Row       features.FeatureRow `json:"row"`
	RankIndex int                 `json:"rankIndex"`
	Rank      model.RankLabel     `json:"rank"`
}

// MatchPrediction is the full-match result: every participant predicted,
// plus the aggregates the demo surfaces display.
type MatchPrediction struct {
	MatchID         string                  `json:"matchId"`
	GameMode        string                  `json:"gameMode"`
	GameDurationSec int                     `json:"gameDurationSec"`
	Players         []PlayerPrediction      `json:"players"`
	Distribution    map[model.RankLabel]int `json:"distribution"`
	AverageIndex    float64                 `json:"averageIndex"`
	AverageRank     model.RankLabel         `json:"averageRank"`
}

// Team returns the players on the winning or losing side, in source order.
func (m *MatchPrediction) Team(win bool) []PlayerPrediction {
	want := 0
	if win {
		want = 1
	}
	var team []PlayerPrediction
	for _, p := range m.Players {
		if p.Row.Win == want {
			team = append(team, p)
		}
	}
	return team
}

// PlayerStats fetches a match and extracts the feature row for one
// player. A missing player is not an error: the row is nil and the
// diagnostic names the participants that were available.
func (p *Pipeline) PlayerStats(ctx context.Context, matchID, username string) (*features.FeatureRow, *features.Diagnostic, error) {
	match, err := p.source.GetMatch(ctx, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching match %s: %w", matchID, err)
	}

	rows, diag := features.Extract(match, username)
	if diag != nil {
		p.logger.Warnw("player not found in match",
			"matchId", matchID,
			"player", diag.Player,
			"available", diag.Available,
		)
		return nil, diag, nil
	}
	return &rows[0], nil, nil
}

// PredictPlayer runs the full pipeline for one player in a match.
func (p *Pipeline) PredictPlayer(ctx context.Context, matchID, username string) (*PlayerPrediction, *features.Diagnostic, error) {
	row, diag, err := p.PlayerStats(ctx, matchID, username)
	if err != nil || diag != nil {
		return nil, diag, err
	}

	index, err := p.predictor.Predict(row.Vector())
	if err != nil {
		return nil, nil, fmt.Errorf("predicting rank for %s: %w", username, err)
	}
	rank, err := model.Rank(index)
	if err != nil {
		return nil, nil, err
	}

	return &PlayerPrediction{Row: *row, RankIndex: index, Rank: rank}, nil, nil
}

// PredictMatch predicts a rank for every participant in the match and
// aggregates the results.
func (p *Pipeline) PredictMatch(ctx context.Context, matchID string) (*MatchPrediction, error) {
	match, err := p.source.GetMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("fetching match %s: %w", matchID, err)
	}

	rows, _ := features.Extract(match, "")
	if len(rows) == 0 {
		return nil, fmt.Errorf("match %s has no participants", matchID)
	}

	result := &MatchPrediction{
		MatchID:         match.Metadata.MatchID,
		GameMode:        match.Info.GameMode,
		GameDurationSec: match.Info.GameDuration,
		Players:         make([]PlayerPrediction, 0, len(rows)),
		Distribution:    make(map[model.RankLabel]int),
	}

	indexSum := 0
	for _, row := range rows {
		index, err := p.predictor.Predict(row.Vector())
		if err != nil {
			return nil, fmt.Errorf("predicting rank for %s: %w", row.SummonerName, err)
		}
		rank, err := model.Rank(index)
		if err != nil {
			return nil, err
		}

		result.Players = append(result.Players, PlayerPrediction{
			Row:       row,
			RankIndex: index,
			Rank:      rank,
		})
		result.Distribution[rank]++
		indexSum += index
	}

	result.AverageIndex = float64(indexSum) / float64(len(result.Players))
	avgRank, err := model.Rank(int(result.AverageIndex + 0.5))
	if err != nil {
		return nil, err
	}
	result.AverageRank = avgRank

	return result, nil
}
