package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// idNamespace seeds deterministic record IDs. Re-ingesting the same natural
// key must yield the same UUID so a rerun updates in place instead of
// forking a second record.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("gridiron-edge"))

// GameID derives the record ID for a game from its natural key.
func GameID(season int, winner, loser string) uuid.UUID {
	key := fmt.Sprintf("game|%d|%s|%s", season, winner, loser)
	return uuid.NewSHA1(idNamespace, []byte(key))
}

// DataNormalizer converts raw provider rows to the internal models
type DataNormalizer struct {
	teamNameMap map[string]string // Maps provider team names to canonical names
	logger      *logrus.Logger
}

// NewDataNormalizer creates a new data normalizer
func NewDataNormalizer(logger *logrus.Logger) *DataNormalizer {
	if logger == nil {
		logger = logrus.New()
	}
	return &DataNormalizer{
		teamNameMap: buildTeamNameMap(),
		logger:      logger,
	}
}

// NormalizeGame converts GameData from any source to the internal GameRecord
// model. Unknown stage or round labels fail the whole row; a missing closing
// line or defensive touchdown flag does not.
func (n *DataNormalizer) NormalizeGame(sourceGame *datasource.GameData) (*models.GameRecord, error) {
	if sourceGame == nil {
		return nil, fmt.Errorf("source game is nil")
	}

	gameType, err := n.normalizeGameType(sourceGame.GameType)
	if err != nil {
		return nil, err
	}

	winnerScores, err := n.normalizeStageScores(sourceGame.WinnerScores)
	if err != nil {
		return nil, fmt.Errorf("winner scores: %w", err)
	}
	loserScores, err := n.normalizeStageScores(sourceGame.LoserScores)
	if err != nil {
		return nil, fmt.Errorf("loser scores: %w", err)
	}

	winner := n.normalizeTeamName(sourceGame.Winner)
	loser := n.normalizeTeamName(sourceGame.Loser)

	game := &models.GameRecord{
		ID:            GameID(sourceGame.Season, winner, loser),
		Season:        sourceGame.Season,
		GameType:      gameType,
		Winner:        winner,
		Loser:         loser,
		WinnerScores:  winnerScores,
		LoserScores:   loserScores,
		OverUnderLine: n.NormalizeClosingLine(sourceGame.OverUnder),
		DefensiveTD:   sourceGame.DefensiveTD != nil && *sourceGame.DefensiveTD,
	}

	return game, nil
}

// NormalizeGameLog converts one GameLogData row to a single-entry player
// log. The ingestion layer merges rows for the same player afterwards.
func (n *DataNormalizer) NormalizeGameLog(sourceLog *datasource.GameLogData) (*models.PlayerGameLog, error) {
	if sourceLog == nil {
		return nil, fmt.Errorf("source game log is nil")
	}

	name := sanitizeName(sourceLog.PlayerName)
	if name == "" {
		return nil, fmt.Errorf("player name is empty")
	}

	position, err := models.ParsePosition(sourceLog.Position)
	if err != nil {
		return nil, err
	}

	gameType, err := n.normalizeGameType(sourceLog.GameType)
	if err != nil {
		return nil, err
	}

	stats := make(map[models.StatCategory]float64, len(sourceLog.Stats))
	for label, value := range sourceLog.Stats {
		stats[normalizeStatLabel(label)] = value
	}

	return &models.PlayerGameLog{
		PlayerName: name,
		Position:   position,
		Entries: []models.GameLogEntry{{
			Season:   sourceLog.Season,
			Week:     sourceLog.Week,
			GameType: gameType,
			Stats:    stats,
		}},
	}, nil
}

// normalizeTeamName converts provider-specific team names to canonical format
func (n *DataNormalizer) normalizeTeamName(team string) string {
	trimmed := strings.TrimSpace(team)
	if trimmed == "" {
		return ""
	}

	if canonical, ok := n.teamNameMap[strings.ToUpper(trimmed)]; ok {
		return canonical
	}

	// Unmapped names pass through untouched; the map carries the variants
	// providers actually send.
	return trimmed
}

// normalizeGameType converts provider round labels to a canonical GameType
func (n *DataNormalizer) normalizeGameType(gameType string) (models.GameType, error) {
	normalized := strings.ToUpper(strings.TrimSpace(gameType))

	// Map common variations
	gameTypeMap := map[string]models.GameType{
		"REG":              models.GameTypeRegular,
		"REGULAR SEASON":   models.GameTypeRegular,
		"WC":               models.GameTypeWildCard,
		"WILD CARD":        models.GameTypeWildCard,
		"WILD-CARD":        models.GameTypeWildCard,
		"DIV":              models.GameTypeDivisional,
		"DIVISIONAL ROUND": models.GameTypeDivisional,
		"AFC":              models.GameTypeAFCChampionship,
		"AFCCG":            models.GameTypeAFCChampionship,
		"AFC CHAMPIONSHIP": models.GameTypeAFCChampionship,
		"NFC":              models.GameTypeNFCChampionship,
		"NFCCG":            models.GameTypeNFCChampionship,
		"NFC CHAMPIONSHIP": models.GameTypeNFCChampionship,
		"SB":               models.GameTypeSuperBowl,
		"SUPER BOWL":       models.GameTypeSuperBowl,
	}

	if mapped, ok := gameTypeMap[normalized]; ok {
		return mapped, nil
	}

	return models.ParseGameType(gameType)
}

// normalizeStageScores converts provider stage labels to typed stages. An
// unknown label is a hard error rather than a silently dropped score.
func (n *DataNormalizer) normalizeStageScores(raw map[string]int) (map[models.Stage]int, error) {
	scores := make(map[models.Stage]int, len(raw))
	for label, points := range raw {
		stage, err := normalizeStageLabel(label)
		if err != nil {
			return nil, err
		}
		scores[stage] = points
	}
	return scores, nil
}

// normalizeStageLabel maps a provider stage label to a Stage
func normalizeStageLabel(label string) (models.Stage, error) {
	normalized := strings.ToUpper(strings.TrimSpace(label))

	stageMap := map[string]models.Stage{
		"1":    models.StageQ1,
		"2":    models.StageQ2,
		"3":    models.StageQ3,
		"4":    models.StageQ4,
		"HALF": models.StageQ2,
		"HT":   models.StageQ2,
		"FT":   models.StageFinal,
		"FULL": models.StageFinal,
	}

	if mapped, ok := stageMap[normalized]; ok {
		return mapped, nil
	}

	return models.ParseStage(label)
}

// normalizeStatLabel maps a provider stat label to a StatCategory. Labels
// without a known alias pass through lowercased so provider-specific extras
// survive without colliding with the canonical categories.
func normalizeStatLabel(label string) models.StatCategory {
	normalized := strings.ToLower(strings.TrimSpace(label))

	statLabelMap := map[string]models.StatCategory{
		"pass_yds":    models.StatPassingYards,
		"pass_yards":  models.StatPassingYards,
		"passing_yds": models.StatPassingYards,
		"pass_td":     models.StatPassingTDs,
		"pass_tds":    models.StatPassingTDs,
		"int":         models.StatInterceptions,
		"ints":        models.StatInterceptions,
		"picks":       models.StatInterceptions,
		"rush_yds":    models.StatRushingYards,
		"rush_yards":  models.StatRushingYards,
		"rushing_yds": models.StatRushingYards,
		"rush_td":     models.StatRushingTDs,
		"rush_tds":    models.StatRushingTDs,
		"rec":         models.StatReceptions,
		"catches":     models.StatReceptions,
		"rec_yds":     models.StatReceivingYards,
		"rec_yards":   models.StatReceivingYards,
		"rec_td":      models.StatReceivingTDs,
		"rec_tds":     models.StatReceivingTDs,
		"fg":          models.StatFieldGoals,
		"fgm":         models.StatFieldGoals,
		"xp":          models.StatExtraPoints,
		"xpm":         models.StatExtraPoints,
		"pat":         models.StatExtraPoints,
	}

	if mapped, ok := statLabelMap[normalized]; ok {
		return mapped
	}

	return models.StatCategory(normalized)
}

// NormalizeClosingLine parses a bookmaker closing total. Lines arrive as
// plain decimals ("45.5") or with a trailing vulgar fraction ("45 1/2").
// Returns nil when the text is missing, unparseable, or not positive.
func (n *DataNormalizer) NormalizeClosingLine(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	text := strings.TrimSpace(*raw)
	if text == "" {
		return nil
	}

	if d, err := decimal.NewFromString(text); err == nil {
		return positiveFloat(d)
	}

	parts := strings.Fields(text)
	if len(parts) == 2 {
		whole, err := decimal.NewFromString(parts[0])
		if err == nil {
			if frac, ok := parseFraction(parts[1]); ok {
				return positiveFloat(whole.Add(frac))
			}
		}
	}

	n.logger.Warnf("Unparseable closing line %q", text)
	return nil
}

// parseFraction parses a vulgar fraction like "1/2"
func parseFraction(s string) (decimal.Decimal, bool) {
	numText, denText, ok := strings.Cut(s, "/")
	if !ok {
		return decimal.Decimal{}, false
	}

	num, err := decimal.NewFromString(numText)
	if err != nil {
		return decimal.Decimal{}, false
	}
	den, err := decimal.NewFromString(denText)
	if err != nil || den.IsZero() {
		return decimal.Decimal{}, false
	}

	return num.Div(den), true
}

func positiveFloat(d decimal.Decimal) *float64 {
	if !d.GreaterThan(decimal.Zero) {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

// sanitizeName trims and collapses interior whitespace. Case is preserved;
// player names carry intentional capitalization.
func sanitizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// buildTeamNameMap returns mapping of team name variations to canonical names
func buildTeamNameMap() map[string]string {
	return map[string]string{
		// AFC (canonical format: nickname)
		"CHIEFS":               "Chiefs",
		"KANSAS CITY CHIEFS":   "Chiefs",
		"KC":                   "Chiefs",
		"BENGALS":              "Bengals",
		"CINCINNATI BENGALS":   "Bengals",
		"CIN":                  "Bengals",
		"BILLS":                "Bills",
		"BUFFALO BILLS":        "Bills",
		"BUF":                  "Bills",
		"DOLPHINS":             "Dolphins",
		"MIAMI DOLPHINS":       "Dolphins",
		"MIA":                  "Dolphins",
		"PATRIOTS":             "Patriots",
		"NEW ENGLAND PATRIOTS": "Patriots",
		"NE":                   "Patriots",
		"JETS":                 "Jets",
		"NEW YORK JETS":        "Jets",
		"NYJ":                  "Jets",
		"RAVENS":               "Ravens",
		"BALTIMORE RAVENS":     "Ravens",
		"BAL":                  "Ravens",
		"STEELERS":             "Steelers",
		"PITTSBURGH STEELERS":  "Steelers",
		"PIT":                  "Steelers",
		"BROWNS":               "Browns",
		"CLEVELAND BROWNS":     "Browns",
		"CLE":                  "Browns",
		"TITANS":               "Titans",
		"TENNESSEE TITANS":     "Titans",
		"TEN":                  "Titans",
		"OILERS":               "Oilers",
		"HOUSTON OILERS":       "Oilers",
		"COLTS":                "Colts",
		"INDIANAPOLIS COLTS":   "Colts",
		"BALTIMORE COLTS":      "Colts",
		"IND":                  "Colts",
		"JAGUARS":              "Jaguars",
		"JACKSONVILLE JAGUARS": "Jaguars",
		"JAX":                  "Jaguars",
		"TEXANS":               "Texans",
		"HOUSTON TEXANS":       "Texans",
		"HOU":                  "Texans",
		"BRONCOS":              "Broncos",
		"DENVER BRONCOS":       "Broncos",
		"DEN":                  "Broncos",
		"RAIDERS":              "Raiders",
		"OAKLAND RAIDERS":      "Raiders",
		"LOS ANGELES RAIDERS":  "Raiders",
		"LAS VEGAS RAIDERS":    "Raiders",
		"OAK":                  "Raiders",
		"LV":                   "Raiders",
		"CHARGERS":             "Chargers",
		"SAN DIEGO CHARGERS":   "Chargers",
		"LOS ANGELES CHARGERS": "Chargers",
		"SD":                   "Chargers",
		"LAC":                  "Chargers",
		// NFC
		"EAGLES":               "Eagles",
		"PHILADELPHIA EAGLES":  "Eagles",
		"PHI":                  "Eagles",
		"COWBOYS":              "Cowboys",
		"DALLAS COWBOYS":       "Cowboys",
		"DAL":                  "Cowboys",
		"GIANTS":               "Giants",
		"NEW YORK GIANTS":      "Giants",
		"NYG":                  "Giants",
		"REDSKINS":             "Redskins",
		"WASHINGTON REDSKINS":  "Redskins",
		"WAS":                  "Redskins",
		"PACKERS":              "Packers",
		"GREEN BAY PACKERS":    "Packers",
		"GB":                   "Packers",
		"BEARS":                "Bears",
		"CHICAGO BEARS":        "Bears",
		"CHI":                  "Bears",
		"VIKINGS":              "Vikings",
		"MINNESOTA VIKINGS":    "Vikings",
		"MIN":                  "Vikings",
		"LIONS":                "Lions",
		"DETROIT LIONS":        "Lions",
		"DET":                  "Lions",
		"49ERS":                "49ers",
		"SAN FRANCISCO 49ERS":  "49ers",
		"SF":                   "49ers",
		"RAMS":                 "Rams",
		"LOS ANGELES RAMS":     "Rams",
		"ST. LOUIS RAMS":       "Rams",
		"ST LOUIS RAMS":        "Rams",
		"LAR":                  "Rams",
		"SEAHAWKS":             "Seahawks",
		"SEATTLE SEAHAWKS":     "Seahawks",
		"SEA":                  "Seahawks",
		"CARDINALS":            "Cardinals",
		"ARIZONA CARDINALS":    "Cardinals",
		"ARI":                  "Cardinals",
		"FALCONS":              "Falcons",
		"ATLANTA FALCONS":      "Falcons",
		"ATL":                  "Falcons",
		"PANTHERS":             "Panthers",
		"CAROLINA PANTHERS":    "Panthers",
		"CAR":                  "Panthers",
		"SAINTS":               "Saints",
		"NEW ORLEANS SAINTS":   "Saints",
		"NO":                   "Saints",
		"BUCCANEERS":           "Buccaneers",
		"TAMPA BAY BUCCANEERS": "Buccaneers",
		"BUCS":                 "Buccaneers",
		"TB":                   "Buccaneers",
	}
}
