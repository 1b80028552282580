package features

// ModelColumns is the feature schema the classifier was trained against:
// 45 columns, in training order. The extractor must produce exactly this
// set and order; the predictor asserts against it before every call.
// Column names are kept verbatim from the training data.
var ModelColumns = []string{
	"MinionsKilled", "DmgDealt", "DmgTaken", "TurretDmgDealt", "TotalGold", "Win",
	"item1", "item2", "item3", "item4", "item5", "item6",
	"kills", "deaths", "assists",
	"PrimaryKeyStone", "PrimarySlot1", "PrimarySlot2", "PrimarySlot3",
	"SecondarySlot1", "SecondarySlot2",
	"SummonerSpell1", "SummonerSpell2",
	"CurrentMasteryPoints", "DragonKills", "BaronKills", "visionScore",
	"SummonerMatchId", "ChampionFk", "SummonerFk", "GameDuration",
	"KDA", "GameDurationMin", "GoldPerMin", "CSPerMin", "DmgPerMin", "VisionPerMin",
	"DmgPerGold", "DmgEfficiency", "ItemCount", "ObjectiveParticipation",
	"ChampionId", "Lane", "Role", "GamePhase",
}

// NumModelColumns is the width of the model input vector.
const NumModelColumns = 45

// Vector flattens the row into the model input, in ModelColumns order.
// Identifying columns (SummonerName, ChampionName) are excluded here;
// they are never fed to the model.
func (r FeatureRow) Vector() []float64 {
	return []float64{
		float64(r.MinionsKilled),
		float64(r.DmgDealt),
		float64(r.DmgTaken),
		float64(r.TurretDmgDealt),
		float64(r.TotalGold),
		float64(r.Win),
		float64(r.Item1),
		float64(r.Item2),
		float64(r.Item3),
		float64(r.Item4),
		float64(r.Item5),
		float64(r.Item6),
		float64(r.Kills),
		float64(r.Deaths),
		float64(r.Assists),
		float64(r.PrimaryKeystone),
		float64(r.PrimarySlot1),
		float64(r.PrimarySlot2),
		float64(r.PrimarySlot3),
		float64(r.SecondarySlot1),
		float64(r.SecondarySlot2),
		float64(r.SummonerSpell1),
		float64(r.SummonerSpell2),
		float64(r.CurrentMasteryPoints),
		float64(r.DragonKills),
		float64(r.BaronKills),
		float64(r.VisionScore),
		float64(r.SummonerMatchID),
		float64(r.ChampionFk),
		float64(r.SummonerFk),
		float64(r.GameDuration),
		r.KDA,
		r.GameDurationMin,
		r.GoldPerMin,
		r.CSPerMin,
		r.DmgPerMin,
		r.VisionPerMin,
		r.DmgPerGold,
		r.DmgEfficiency,
		float64(r.ItemCount),
		float64(r.ObjectiveParticipation),
		float64(r.ChampionID),
		float64(r.Lane),
		float64(r.Role),
		float64(r.GamePhase),
	}
}
