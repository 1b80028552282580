package riot

// AccountResponse represents the response from /riot/account/v1/accounts/by-riot-id
type AccountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// MatchResponse represents the response from /lol/match/v5/matches/{matchId}.
// It is immutable once fetched; nothing in this module mutates it.
type MatchResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type MatchInfo struct {
	GameCreation int64              `json:"gameCreation"`
	GameDuration int                `json:"gameDuration"` // seconds
	GameMode     string             `json:"gameMode"`
	GameVersion  string             `json:"gameVersion"`
	QueueID      int                `json:"queueId"`
	Participants []MatchParticipant `json:"participants"`
}

// MatchParticipant is one player's raw statistics for a match.
// Optional stats the API omits decode to their zero value.
type MatchParticipant struct {
	ParticipantID  int    `json:"participantId"`
	PUUID          string `json:"puuid"`
	RiotIDGameName string `json:"riotIdGameName"`
	RiotIDTagline  string `json:"riotIdTagline"`
	ChampionID     int    `json:"championId"`
	ChampionName   string `json:"championName"`
	TeamID         int    `json:"teamId"`
	TeamPosition   string `json:"teamPosition"` // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY
	Lane           string `json:"lane"`
	Role           string `json:"role"`
	Win            bool   `json:"win"`

	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	TotalMinionsKilled          int `json:"totalMinionsKilled"`
	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            int `json:"totalDamageTaken"`
	DamageDealtToTurrets        int `json:"damageDealtToTurrets"`
	GoldEarned                  int `json:"goldEarned"`
	VisionScore                 int `json:"visionScore"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"` // Trinket

	Summoner1ID int `json:"summoner1Id"`
	Summoner2ID int `json:"summoner2Id"`

	// Not present on every record
	ChampionPoints int `json:"championPoints"`
	DragonKills    int `json:"dragonKills"`
	BaronKills     int `json:"baronKills"`

	Perks ParticipantPerks `json:"perks"`
}

// ParticipantPerks holds rune selections. Styles[0] is the primary tree
// (keystone + 3 slots), Styles[1] the secondary tree (2 slots).
type ParticipantPerks struct {
	Styles []PerkStyle `json:"styles"`
}

type PerkStyle struct {
	Description string          `json:"description"`
	Style       int             `json:"style"`
	Selections  []PerkSelection `json:"selections"`
}

type PerkSelection struct {
	Perk int `json:"perk"`
	Var1 int `json:"var1"`
	Var2 int `json:"var2"`
	Var3 int `json:"var3"`
}

// PerkAt returns the rune ID at the given style/selection index, or 0 when
// the record doesn't carry that slot.
func (p ParticipantPerks) PerkAt(style, selection int) int {
	if style >= len(p.Styles) {
		return 0
	}
	sels := p.Styles[style].Selections
	if selection >= len(sels) {
		return 0
	}
	return sels[selection].Perk
}

// LeagueEntryResponse represents a ranked league entry from /lol/league/v4/entries/by-puuid
type LeagueEntryResponse struct {
	LeagueID     string `json:"leagueId"`
	SummonerID   string `json:"summonerId"`
	QueueType    string `json:"queueType"` // RANKED_SOLO_5x5, RANKED_FLEX_SR
	Tier         string `json:"tier"`      // IRON .. CHALLENGER
	Rank         string `json:"rank"`      // I, II, III, IV
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}
