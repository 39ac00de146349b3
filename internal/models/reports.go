package models

import "time"

// StageAnalysis is the full squares output for one stage: the weighted
// frequency table, the normalized matrix, and its rankings.
type StageAnalysis struct {
	Stage       Stage               `json:"stage"`
	Frequencies DigitFrequencyTable `json:"frequencies"`
	Matrix      ProbabilityMatrix   `json:"matrix"`
	Ranked      []RankedSquare      `json:"ranked"`
	Top         []RankedSquare      `json:"top"`
	Bottom      []RankedSquare      `json:"bottom"`
}

// SquaresReport is the envelope for one squares analysis run.
type SquaresReport struct {
	GeneratedAt   time.Time       `json:"generated_at"`
	Filter        string          `json:"filter"`
	Model         string          `json:"model"`
	GamesAnalyzed int             `json:"games_analyzed"`
	BoostWinner   bool            `json:"boost_winner"`
	BoostLoser    bool            `json:"boost_loser"`
	Stages        []StageAnalysis `json:"stages"`
	Progressions  []Progression   `json:"progressions,omitempty"`
}

// StageByName returns the analysis for one stage, if present.
func (r *SquaresReport) StageByName(stage Stage) (*StageAnalysis, bool) {
	for i := range r.Stages {
		if r.Stages[i].Stage == stage {
			return &r.Stages[i], true
		}
	}
	return nil, false
}

// PlayerReport is the envelope for one player's prop analysis.
type PlayerReport struct {
	GeneratedAt time.Time                             `json:"generated_at"`
	Player      string                                `json:"player"`
	Position    Position                              `json:"position"`
	Games       int                                   `json:"games"`
	Summary     StatSummary                           `json:"summary"`
	HitRates    map[StatCategory][]HitRateEntry       `json:"hit_rates"`
	Trends      []TrendResult                         `json:"trends"`
	Combined    map[StatCategory][]CombinedPrediction `json:"combined,omitempty"`
	BestBets    []BetCandidate                        `json:"best_bets"`
	Simulations []PropSimulation                      `json:"simulations,omitempty"`
}

// GamePropsReport is the envelope for game-level prop analysis over a
// historical dataset.
type GamePropsReport struct {
	GeneratedAt   time.Time          `json:"generated_at"`
	GamesAnalyzed int                `json:"games_analyzed"`
	TotalPoints   []HitRateEntry     `json:"total_points"`
	Margins       []MarginBucketRate `json:"margins"`
	DefensiveTD   HitRateEntry       `json:"defensive_td"`
	Rounds        []RoundRate        `json:"rounds,omitempty"`
	BestBets      []BetCandidate     `json:"best_bets"`
}
