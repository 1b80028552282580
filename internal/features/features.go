// Package features turns raw match records into the fixed-schema rows
// the rank classifier consumes. Extraction is pure: no I/O, no shared
// state, deterministic for a given record.
package features

import (
	"fmt"
	"strings"

	"rank-predictor/internal/riot"
)

// FeatureRow is one participant's model-ready record: the 45 model
// columns (see ModelColumns) plus identifying fields the model never sees.
type FeatureRow struct {
	// Identifying, dropped before prediction
	SummonerName string
	ChampionName string

	MinionsKilled  int
	DmgDealt       int
	DmgTaken       int
	TurretDmgDealt int
	TotalGold      int
	Win            int

	Item1 int
	Item2 int
	Item3 int
	Item4 int
	Item5 int
	Item6 int

	Kills   int
	Deaths  int
	Assists int

	PrimaryKeystone int
	PrimarySlot1    int
	PrimarySlot2    int
	PrimarySlot3    int
	SecondarySlot1  int
	SecondarySlot2  int

	SummonerSpell1 int
	SummonerSpell2 int

	CurrentMasteryPoints int
	DragonKills          int
	BaronKills           int
	VisionScore          int

	// Training-schema placeholders, always zero. ChampionFk duplicates
	// ChampionID; both were separate columns in the training data.
	SummonerMatchID int
	ChampionFk      int
	SummonerFk      int

	GameDuration int // seconds

	KDA             float64
	GameDurationMin float64
	GoldPerMin      float64
	CSPerMin        float64
	DmgPerMin       float64
	VisionPerMin    float64
	DmgPerGold      float64
	DmgEfficiency   float64

	ItemCount              int
	ObjectiveParticipation int

	ChampionID int
	Lane       int // encoded, see EncodeLane
	Role       int // encoded, see EncodeRole
	GamePhase  int // encoded, see GamePhase.Code
}

// Diagnostic reports a player filter that matched no participant. This is
// an expected case (typo in the username), so it travels beside the empty
// result instead of as an error.
type Diagnostic struct {
	Player    string
	Available []string
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("player %q not found in match; available: %s",
		d.Player, strings.Join(d.Available, ", "))
}

// Extract produces one FeatureRow per participant, in the record's
// participant order. A non-empty playerFilter narrows the result to the
// participant whose game name matches, case-insensitively; when nothing
// matches, the result is empty and the Diagnostic lists the names that
// were available.
func Extract(match *riot.MatchResponse, playerFilter string) ([]FeatureRow, *Diagnostic) {
	participants := match.Info.Participants

	durationSec := match.Info.GameDuration
	durationMin := float64(durationSec) / 60
	// Guard every per-minute rate against a zero-length game
	rateDivisor := durationMin
	if rateDivisor <= 0 {
		rateDivisor = 1
	}

	phase := PhaseForDuration(durationMin)

	rows := make([]FeatureRow, 0, len(participants))
	for _, p := range participants {
		if playerFilter != "" && !strings.EqualFold(p.RiotIDGameName, playerFilter) {
			continue
		}
		rows = append(rows, buildRow(p, durationSec, durationMin, rateDivisor, phase))
	}

	if playerFilter != "" && len(rows) == 0 {
		available := make([]string, 0, len(participants))
		for _, p := range participants {
			available = append(available, p.RiotIDGameName)
		}
		return rows, &Diagnostic{Player: playerFilter, Available: available}
	}

	return rows, nil
}

func buildRow(p riot.MatchParticipant, durationSec int, durationMin, rateDivisor float64, phase GamePhase) FeatureRow {
	win := 0
	if p.Win {
		win = 1
	}

	itemCount := 0
	for _, item := range []int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5} {
		if item != 0 {
			itemCount++
		}
	}

	return FeatureRow{
		SummonerName: p.RiotIDGameName,
		ChampionName: p.ChampionName,

		MinionsKilled:  p.TotalMinionsKilled,
		DmgDealt:       p.TotalDamageDealtToChampions,
		DmgTaken:       p.TotalDamageTaken,
		TurretDmgDealt: p.DamageDealtToTurrets,
		TotalGold:      p.GoldEarned,
		Win:            win,

		Item1: p.Item0,
		Item2: p.Item1,
		Item3: p.Item2,
		Item4: p.Item3,
		Item5: p.Item4,
		Item6: p.Item5,

		Kills:   p.Kills,
		Deaths:  p.Deaths,
		Assists: p.Assists,

		PrimaryKeystone: p.Perks.PerkAt(0, 0),
		PrimarySlot1:    p.Perks.PerkAt(0, 1),
		PrimarySlot2:    p.Perks.PerkAt(0, 2),
		PrimarySlot3:    p.Perks.PerkAt(0, 3),
		SecondarySlot1:  p.Perks.PerkAt(1, 0),
		SecondarySlot2:  p.Perks.PerkAt(1, 1),

		SummonerSpell1: p.Summoner1ID,
		SummonerSpell2: p.Summoner2ID,

		CurrentMasteryPoints: p.ChampionPoints,
		DragonKills:          p.DragonKills,
		BaronKills:           p.BaronKills,
		VisionScore:          p.VisionScore,

		ChampionFk:   p.ChampionID,
		GameDuration: durationSec,

		KDA:             float64(p.Kills+p.Assists) / flooredAt1(p.Deaths),
		GameDurationMin: durationMin,
		GoldPerMin:      float64(p.GoldEarned) / rateDivisor,
		CSPerMin:        float64(p.TotalMinionsKilled) / rateDivisor,
		DmgPerMin:       float64(p.TotalDamageDealtToChampions) / rateDivisor,
		VisionPerMin:    float64(p.VisionScore) / rateDivisor,
		DmgPerGold:      float64(p.TotalDamageDealtToChampions) / flooredAt1(p.GoldEarned),
		DmgEfficiency:   float64(p.TotalDamageDealtToChampions) / flooredAt1(p.TotalDamageTaken),

		ItemCount:              itemCount,
		ObjectiveParticipation: p.DragonKills + p.BaronKills,

		ChampionID: p.ChampionID,
		Lane:       EncodeLane(p.Lane),
		Role:       EncodeRole(p.Role),
		GamePhase:  phase.Code(),
	}
}

// flooredAt1 guards denominators that can legitimately be zero.
func flooredAt1(n int) float64 {
	if n < 1 {
		return 1
	}
	return float64(n)
}
