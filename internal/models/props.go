package models

// HitRateEntry records how often a stat landed over or under one betting
// line. Counts always satisfy OverCount+UnderCount == Total, and the two
// rates sum to 1; a value exactly on an integer line counts toward under.
type HitRateEntry struct {
	Line         float64 `json:"line"`
	OverCount    int     `json:"over_count"`
	UnderCount   int     `json:"under_count"`
	Total        int     `json:"total"`
	HitRateOver  float64 `json:"hit_rate_over"`
	HitRateUnder float64 `json:"hit_rate_under"`
}

// TrendDirection classifies recent form against the preceding window.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// TrendResult compares a player's most recent window of games to the window
// immediately before it for one category.
type TrendResult struct {
	Category    StatCategory   `json:"category"`
	Window      int            `json:"window"`
	RecentAvg   float64        `json:"recent_avg"`
	PreviousAvg float64        `json:"previous_avg"`
	Direction   TrendDirection `json:"direction"`
}

// CombinedPrediction blends a season hit rate with the positional
// historical rate for the same line. HistoryRate is nil when no historical
// entry existed, in which case CombinedRate equals SeasonRate and
// SBValidated is false.
type CombinedPrediction struct {
	Line         float64  `json:"line"`
	SeasonRate   float64  `json:"season_rate"`
	HistoryRate  *float64 `json:"history_rate,omitempty"`
	CombinedRate float64  `json:"combined_rate"`
	SBValidated  bool     `json:"sb_validated"`
}

// ConfidenceTier buckets a hit rate into coarse confidence bands.
type ConfidenceTier string

const (
	TierElite  ConfidenceTier = "elite"
	TierStrong ConfidenceTier = "strong"
	TierGood   ConfidenceTier = "good"
	TierNone   ConfidenceTier = "none"
)

// Bet candidate sources.
const (
	BetSourceSeason   = "season"
	BetSourceCombined = "combined"
	BetSourceGame     = "game"
)

// Game-level candidate categories. These label report rows rather than
// game-log stats, so they sit apart from the player StatCategory set.
const (
	CategoryTotalPoints StatCategory = "total_points"
	CategoryDefensiveTD StatCategory = "defensive_td"
)

// BetCandidate is one line/category rate considered by the best-bet
// selector. Player and Position are empty for game-level candidates.
type BetCandidate struct {
	Player      string         `json:"player,omitempty"`
	Position    Position       `json:"position,omitempty"`
	Category    StatCategory   `json:"category"`
	Line        float64        `json:"line"`
	Rate        float64        `json:"rate"`
	Total       int            `json:"total"`
	Source      string         `json:"source"`
	SBValidated bool           `json:"sb_validated"`
	Tier        ConfidenceTier `json:"tier"`
}

// PropCall is the simulator's betting recommendation for one line.
type PropCall string

const (
	CallStrongOver  PropCall = "strong_over"
	CallLeanOver    PropCall = "lean_over"
	CallStrongUnder PropCall = "strong_under"
	CallLeanUnder   PropCall = "lean_under"
	CallNoEdge      PropCall = "no_edge"
)

// PropSimulation is the outcome of a Monte Carlo run for one stat line.
type PropSimulation struct {
	Category         StatCategory `json:"category"`
	Line             float64      `json:"line"`
	ProjectedMean    float64      `json:"projected_mean"`
	ProjectedStdDev  float64      `json:"projected_std_dev"`
	SimMean          float64      `json:"sim_mean"`
	SimMedian        float64      `json:"sim_median"`
	CI80Low          float64      `json:"ci80_low"`
	CI80High         float64      `json:"ci80_high"`
	OverProbability  float64      `json:"over_probability"`
	UnderProbability float64      `json:"under_probability"`
	Recommendation   PropCall     `json:"recommendation"`
	Iterations       int          `json:"iterations"`
}

// MarginBucketRate is the share of decided games whose victory margin fell
// in one bucket. High of 0 marks an open-ended bucket.
type MarginBucketRate struct {
	Label string  `json:"label"`
	Low   int     `json:"low"`
	High  int     `json:"high"`
	Count int     `json:"count"`
	Total int     `json:"total"`
	Rate  float64 `json:"rate"`
}

// RoundRate is the over rate for one total-points line within one
// postseason round.
type RoundRate struct {
	GameType GameType `json:"game_type"`
	Line     float64  `json:"line"`
	Over     int      `json:"over"`
	Total    int      `json:"total"`
	Rate     float64  `json:"rate"`
}
