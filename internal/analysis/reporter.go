package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/props"
	"github.com/yourusername/gridiron-edge/internal/squares"
)

// GenerateSquaresConsoleReport formats a squares report for terminal output
func GenerateSquaresConsoleReport(report *models.SquaresReport) string {
	var builder strings.Builder
	builder.WriteString("Squares Report\n")
	builder.WriteString("==============\n")
	builder.WriteString(fmt.Sprintf("Filter: %s\n", report.Filter))
	builder.WriteString(fmt.Sprintf("Model: %s\n", report.Model))
	builder.WriteString(fmt.Sprintf("Games Analyzed: %d\n", report.GamesAnalyzed))
	builder.WriteString(fmt.Sprintf("Boosts: winner=%t loser=%t\n", report.BoostWinner, report.BoostLoser))

	for i := range report.Stages {
		stage := &report.Stages[i]
		builder.WriteString(fmt.Sprintf("\nStage %s\n", stage.Stage))
		builder.WriteString(strings.Repeat("-", len("Stage ")+len(stage.Stage)) + "\n")
		builder.WriteString("Top squares:\n")
		writeSquares(&builder, stage.Top)
		builder.WriteString("Bottom squares:\n")
		writeSquares(&builder, stage.Bottom)
	}

	for _, prog := range report.Progressions {
		builder.WriteString(fmt.Sprintf("\nProgression %s to %s: %d observed squares\n", prog.From, prog.To, len(prog.Rows)))
		if top, ok := topSquareAt(report, prog.From); ok {
			writeContinuations(&builder, prog, top)
		}
	}

	return builder.String()
}

// topSquareAt returns the best-ranked square of one stage, when the report
// carries that stage.
func topSquareAt(report *models.SquaresReport, stage models.Stage) (models.RankedSquare, bool) {
	for i := range report.Stages {
		if report.Stages[i].Stage == stage && len(report.Stages[i].Top) > 0 {
			return report.Stages[i].Top[0], true
		}
	}
	return models.RankedSquare{}, false
}

func writeContinuations(builder *strings.Builder, prog models.Progression, top models.RankedSquare) {
	parts := make([]string, 0, 3)
	for _, next := range squares.MostLikelyNext(prog, top.WinnerDigit, top.LoserDigit, 3) {
		parts = append(parts, fmt.Sprintf("(%d-%d) %.1f%%", next.WinnerDigit, next.LoserDigit, next.Probability*100))
	}
	if len(parts) > 0 {
		builder.WriteString(fmt.Sprintf("  from (%d-%d): %s\n", top.WinnerDigit, top.LoserDigit, strings.Join(parts, "  ")))
	}
}

func writeSquares(builder *strings.Builder, ranked []models.RankedSquare) {
	for _, square := range ranked {
		builder.WriteString(fmt.Sprintf("  %3d. (%d-%d)  %.2f%%\n", square.Rank, square.WinnerDigit, square.LoserDigit, square.Probability*100))
	}
}

// GeneratePlayerConsoleReport formats a player prop report for terminal output
func GeneratePlayerConsoleReport(report *models.PlayerReport) string {
	var builder strings.Builder
	builder.WriteString("Player Prop Report\n")
	builder.WriteString("==================\n")
	builder.WriteString(fmt.Sprintf("Player: %s\n", report.Player))
	builder.WriteString(fmt.Sprintf("Position: %s\n", report.Position))
	builder.WriteString(fmt.Sprintf("Games: %d\n", report.Games))

	builder.WriteString("\nSummary:\n")
	for _, category := range summaryOrder(report) {
		stats, ok := report.Summary.Get(category)
		if !ok {
			continue
		}
		builder.WriteString(fmt.Sprintf("  %-16s avg %.1f  median %.1f  high %.1f  low %.1f  (%d games)\n",
			category, stats.Avg, stats.Median, stats.High, stats.Low, stats.Games))
	}

	builder.WriteString("\nHit Rates:\n")
	for _, category := range summaryOrder(report) {
		for _, entry := range report.HitRates[category] {
			builder.WriteString(fmt.Sprintf("  %s over %.1f: %.1f%% (%d/%d)\n",
				category, entry.Line, entry.HitRateOver*100, entry.OverCount, entry.Total))
		}
	}

	if len(report.Trends) > 0 {
		builder.WriteString("\nTrends:\n")
		for _, trend := range report.Trends {
			builder.WriteString(fmt.Sprintf("  %s: %s (recent %.1f vs previous %.1f over %d games)\n",
				trend.Category, trend.Direction, trend.RecentAvg, trend.PreviousAvg, trend.Window))
		}
	}

	if len(report.Simulations) > 0 {
		builder.WriteString("\nSimulations:\n")
		for _, sim := range report.Simulations {
			builder.WriteString(fmt.Sprintf("  %s %.1f: %s  over %.1f%%  proj %.1f  CI80 [%.1f, %.1f]\n",
				sim.Category, sim.Line, sim.Recommendation, sim.OverProbability*100, sim.ProjectedMean, sim.CI80Low, sim.CI80High))
		}
	}

	writeBestBets(&builder, report.BestBets)
	return builder.String()
}

// summaryOrder lists the report's categories in their hit-rate table order,
// falling back to every summarized category.
func summaryOrder(report *models.PlayerReport) []models.StatCategory {
	categories, err := props.DefaultCategories(report.Position)
	if err != nil {
		categories = make([]models.StatCategory, 0, len(report.Summary))
		for category := range report.Summary {
			categories = append(categories, category)
		}
		sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	}
	return categories
}

// GenerateGamePropsConsoleReport formats a game prop report for terminal output
func GenerateGamePropsConsoleReport(report *models.GamePropsReport) string {
	var builder strings.Builder
	builder.WriteString("Game Prop Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Games Analyzed: %d\n", report.GamesAnalyzed))

	builder.WriteString("\nTotal Points:\n")
	for _, entry := range report.TotalPoints {
		builder.WriteString(fmt.Sprintf("  over %.1f: %.1f%% (%d/%d)\n",
			entry.Line, entry.HitRateOver*100, entry.OverCount, entry.Total))
	}

	if len(report.Margins) > 0 {
		builder.WriteString("\nMargin Buckets:\n")
		for _, bucket := range report.Margins {
			builder.WriteString(fmt.Sprintf("  %-6s %.1f%% (%d/%d)\n",
				bucket.Label, bucket.Rate*100, bucket.Count, bucket.Total))
		}
	}

	if report.DefensiveTD.Total > 0 {
		builder.WriteString(fmt.Sprintf("\nDefensive TD: %.1f%% (%d/%d)\n",
			report.DefensiveTD.HitRateOver*100, report.DefensiveTD.OverCount, report.DefensiveTD.Total))
	}

	if len(report.Rounds) > 0 {
		builder.WriteString(fmt.Sprintf("\nRounds (line %.1f):\n", report.Rounds[0].Line))
		for _, round := range report.Rounds {
			builder.WriteString(fmt.Sprintf("  %-18s %.1f%% (%d/%d)\n",
				round.GameType, round.Rate*100, round.Over, round.Total))
		}
	}

	writeBestBets(&builder, report.BestBets)
	return builder.String()
}

// writeBestBets renders the selected bets annotated with their fair odds.
func writeBestBets(builder *strings.Builder, bets []models.BetCandidate) {
	if len(bets) == 0 {
		return
	}
	builder.WriteString("\nBest Bets:\n")
	for i, bet := range bets {
		label := string(bet.Category)
		if bet.Player != "" {
			label = fmt.Sprintf("%s %s", bet.Player, bet.Category)
		}
		validated := ""
		if bet.SBValidated {
			validated = "  [validated]"
		}
		builder.WriteString(fmt.Sprintf("  %d. %s over %.1f  rate %.1f%%  tier %s  fair %s%s\n",
			i+1, label, bet.Line, bet.Rate*100, bet.Tier, fairOddsLabel(bet.Rate), validated))
	}
}

// fairOddsLabel prices a hit rate as no-vig decimal and American odds. Rates
// at the probability boundaries have no finite price.
func fairOddsLabel(rate float64) string {
	dec, err := props.FairDecimalOdds(rate)
	if err != nil {
		return "n/a"
	}
	american, err := props.FairAmericanOdds(rate)
	if err != nil {
		return dec.String()
	}
	return fmt.Sprintf("%s (%+d)", dec.String(), american)
}

// GenerateJSONExport writes any report envelope as indented JSON
func GenerateJSONExport(report any, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, append(data, '\n'), 0o644)
}

// GenerateSquaresCSVExport exports every ranked square for spreadsheets
func GenerateSquaresCSVExport(report *models.SquaresReport, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	var builder strings.Builder
	builder.WriteString("stage,winner_digit,loser_digit,probability,rank\n")
	for i := range report.Stages {
		stage := &report.Stages[i]
		for _, square := range stage.Ranked {
			builder.WriteString(fmt.Sprintf("%s,%d,%d,%.6f,%d\n",
				stage.Stage, square.WinnerDigit, square.LoserDigit, square.Probability, square.Rank))
		}
	}
	return os.WriteFile(outputPath, []byte(builder.String()), 0o644)
}

// GeneratePlayerCSVExport exports a player's hit-rate table for spreadsheets
func GeneratePlayerCSVExport(report *models.PlayerReport, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	var builder strings.Builder
	builder.WriteString("player,position,category,line,over_count,under_count,total,hit_rate_over,hit_rate_under\n")
	for _, category := range summaryOrder(report) {
		for _, entry := range report.HitRates[category] {
			builder.WriteString(fmt.Sprintf("%s,%s,%s,%.1f,%d,%d,%d,%.4f,%.4f\n",
				report.Player, report.Position, category, entry.Line,
				entry.OverCount, entry.UnderCount, entry.Total, entry.HitRateOver, entry.HitRateUnder))
		}
	}
	return os.WriteFile(outputPath, []byte(builder.String()), 0o644)
}

// GenerateGamePropsCSVExport exports the total-points table for spreadsheets
func GenerateGamePropsCSVExport(report *models.GamePropsReport, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	var builder strings.Builder
	builder.WriteString("category,line,over_count,under_count,total,hit_rate_over,hit_rate_under\n")
	for _, entry := range report.TotalPoints {
		builder.WriteString(fmt.Sprintf("%s,%.1f,%d,%d,%d,%.4f,%.4f\n",
			models.CategoryTotalPoints, entry.Line, entry.OverCount, entry.UnderCount,
			entry.Total, entry.HitRateOver, entry.HitRateUnder))
	}
	if report.DefensiveTD.Total > 0 {
		entry := report.DefensiveTD
		builder.WriteString(fmt.Sprintf("%s,%.1f,%d,%d,%d,%.4f,%.4f\n",
			models.CategoryDefensiveTD, entry.Line, entry.OverCount, entry.UnderCount,
			entry.Total, entry.HitRateOver, entry.HitRateUnder))
	}
	return os.WriteFile(outputPath, []byte(builder.String()), 0o644)
}
