package pipeline

import (
	"context"
	"errors"
	"testing"

	"rank-predictor/internal/riot"
)

type fakeSource struct {
	match *riot.MatchResponse
	err   error
}

func (f *fakeSource) GetMatch(ctx context.Context, matchID string) (*riot.MatchResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.match, nil
}

// fakePredictor ranks by KDA position in the vector; enough to drive the
// aggregation logic without a real tree.
type fakePredictor struct {
	indexes []int
	calls   int
	err     error
}

func (f *fakePredictor) Predict(vector []float64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	idx := f.indexes[f.calls%len(f.indexes)]
	f.calls++
	return idx, nil
}

func tenPlayerMatch() *riot.MatchResponse {
	participants := make([]riot.MatchParticipant, 10)
	names := []string{"alpha", "bravo", "charlie", "delta", "echo",
		"foxtrot", "golf", "hotel", "india", "juliett"}
	for i := range participants {
		participants[i] = riot.MatchParticipant{
			RiotIDGameName: names[i],
			Kills:          i,
			Deaths:         1,
			Assists:        i,
			Win:            i >= 5, // second half won
		}
	}
	return &riot.MatchResponse{
		Metadata: riot.MatchMetadata{MatchID: "NA1_5416850084"},
		Info: riot.MatchInfo{
			GameDuration: 1920,
			GameMode:     "CLASSIC",
			Participants: participants,
		},
	}
}

func TestPredictMatch(t *testing.T) {
	// Everyone Gold (4) except two Platinum (5)
	predictor := &fakePredictor{indexes: []int{4, 4, 4, 4, 4, 5, 5, 4, 4, 4}}
	p := New(&fakeSource{match: tenPlayerMatch()}, predictor, nil)

	result, err := p.PredictMatch(context.Background(), "NA1_5416850084")
	if err != nil {
		t.Fatalf("PredictMatch failed: %v", err)
	}

	if len(result.Players) != 10 {
		t.Fatalf("players = %d, want 10", len(result.Players))
	}
	if result.MatchID != "NA1_5416850084" {
		t.Errorf("matchId = %q", result.MatchID)
	}
	if result.Distribution["Gold"] != 8 || result.Distribution["Platinum"] != 2 {
		t.Errorf("distribution = %v", result.Distribution)
	}
	if result.AverageIndex != 4.2 {
		t.Errorf("averageIndex = %v, want 4.2", result.AverageIndex)
	}
	if result.AverageRank != "Gold" {
		t.Errorf("averageRank = %s, want Gold", result.AverageRank)
	}

	winners := result.Team(true)
	losers := result.Team(false)
	if len(winners) != 5 || len(losers) != 5 {
		t.Errorf("team split = %d/%d, want 5/5", len(winners), len(losers))
	}
	if winners[0].Row.SummonerName != "foxtrot" {
		t.Errorf("first winner = %q, want foxtrot", winners[0].Row.SummonerName)
	}
}

func TestPredictMatch_FetchFailurePropagates(t *testing.T) {
	apiErr := &riot.APIError{Kind: riot.KindAuth, Status: 403, Message: "API key rejected"}
	p := New(&fakeSource{err: apiErr}, &fakePredictor{indexes: []int{0}}, nil)

	_, err := p.PredictMatch(context.Background(), "NA1_123")
	if !riot.IsKind(err, riot.KindAuth) {
		t.Errorf("expected wrapped auth error, got %v", err)
	}
}

func TestPredictMatch_PredictorFailurePropagates(t *testing.T) {
	boom := errors.New("schema blew up")
	p := New(&fakeSource{match: tenPlayerMatch()}, &fakePredictor{err: boom}, nil)

	_, err := p.PredictMatch(context.Background(), "NA1_123")
	if !errors.Is(err, boom) {
		t.Errorf("expected predictor error to propagate, got %v", err)
	}
}

func TestPlayerStats(t *testing.T) {
	p := New(&fakeSource{match: tenPlayerMatch()}, &fakePredictor{indexes: []int{4}}, nil)

	row, diag, err := p.PlayerStats(context.Background(), "NA1_123", "CHARLIE")
	if err != nil {
		t.Fatalf("PlayerStats failed: %v", err)
	}
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if row.SummonerName != "charlie" {
		t.Errorf("row is for %q, want charlie", row.SummonerName)
	}
}

func TestPlayerStats_MissingPlayer(t *testing.T) {
	p := New(&fakeSource{match: tenPlayerMatch()}, &fakePredictor{indexes: []int{4}}, nil)

	row, diag, err := p.PlayerStats(context.Background(), "NA1_123", "doesNotExist")
	if err != nil {
		t.Fatalf("PlayerStats failed: %v", err)
	}
	if row != nil {
		t.Error("expected nil row for missing player")
	}
	if diag == nil {
		t.Fatal("expected diagnostic for missing player")
	}
	if len(diag.Available) != 10 {
		t.Errorf("available = %d names, want 10", len(diag.Available))
	}
}

func TestPredictPlayer(t *testing.T) {
	p := New(&fakeSource{match: tenPlayerMatch()}, &fakePredictor{indexes: []int{7}}, nil)

	pred, diag, err := p.PredictPlayer(context.Background(), "NA1_123", "alpha")
	if err != nil || diag != nil {
		t.Fatalf("PredictPlayer failed: err=%v diag=%v", err, diag)
	}
	if pred.Rank != "Diamond" || pred.RankIndex != 7 {
		t.Errorf("prediction = %s (%d), want Diamond (7)", pred.Rank, pred.RankIndex)
	}
}
