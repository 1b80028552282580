package riot

import (
	"context"
	"fmt"
)

const soloQueueType = "RANKED_SOLO_5x5"

// GetRankedEntriesByPUUID fetches all ranked league entries for a player.
// League endpoints are per-platform, not per-routing-region; the platform
// host is derived from the configured region's default platform.
func (c *Client) GetRankedEntriesByPUUID(ctx context.Context, puuid string) ([]LeagueEntryResponse, error) {
	if puuid == "" {
		return nil, &APIError{Kind: KindValidation, Message: "puuid is empty"}
	}

	url := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.platformBaseURL(), puuid)

	var entries []LeagueEntryResponse
	if err := c.get(ctx, url, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetSoloQueueRank returns the player's solo queue tier and division.
// hasRank is false when the player has no solo queue entry (unranked).
func (c *Client) GetSoloQueueRank(ctx context.Context, puuid string) (tier, division string, hasRank bool, err error) {
	entries, err := c.GetRankedEntriesByPUUID(ctx, puuid)
	if err != nil {
		return "", "", false, err
	}

	for _, entry := range entries {
		if entry.QueueType == soloQueueType {
			return entry.Tier, entry.Rank, true, nil
		}
	}
	return "", "", false, nil
}

// platformBaseURL maps the routing region to its default platform host.
func (c *Client) platformBaseURL() string {
	// Tests override baseURL directly; respect that for platform calls too.
	if c.baseURL != c.region.BaseURL() {
		return c.baseURL
	}

	platform := "na1"
	switch c.region {
	case RegionEurope:
		platform = "euw1"
	case RegionAsia:
		platform = "kr"
	}
	return fmt.Sprintf("https://%s.api.riotgames.com", platform)
}
