package usecase

import (
	"sort"

	"github.com/matchscope/matchscope-api/internal/domain/match"
)

// Form outcome codes, single characters, oldest first in a form window.
const (
	FormWin  = "W"
	FormDraw = "D"
	FormLoss = "L"
)

type RecordSplit struct {
	Wins   int
	Draws  int
	Losses int
}

// PerformanceStats is the derived record of a team over a set of finished,
// scored matches. Percentages and averages are rounded to one decimal.
type PerformanceStats struct {
	Played              int
	Wins                int
	Draws               int
	Losses              int
	WinPercentage       float64
	Points              int
	GoalsFor            int
	GoalsAgainst        int
	GoalDifference      int
	AverageGoalsFor     float64
	AverageGoalsAgainst float64
	CleanSheets         int
	Form                []string
	HomeRecord          RecordSplit
	AwayRecord          RecordSplit
}

// ComputeTeamStats derives performance figures for teamID from the given
// matches. Only finished matches with a recorded score count; everything
// else is ignored. An empty input yields an all-zero result, never an
// error.
func ComputeTeamStats(matches []match.Match, teamID int64, formWindow int) PerformanceStats {
	if formWindow < 1 {
		formWindow = 10
	}

	considered := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if !match.IsFinishedStatus(m.Status) || !m.HasScore() {
			continue
		}
		if m.HomeTeamID != teamID && m.AwayTeamID != teamID {
			continue
		}
		considered = append(considered, m)
	}

	sort.SliceStable(considered, func(i, j int) bool {
		return considered[i].KickoffAt.Before(considered[j].KickoffAt)
	})

	var stats PerformanceStats
	outcomes := make([]string, 0, len(considered))

	for _, m := range considered {
		home := m.HomeTeamID == teamID

		goalsFor, goalsAgainst := *m.HomeScore, *m.AwayScore
		if !home {
			goalsFor, goalsAgainst = goalsAgainst, goalsFor
		}

		stats.Played++
		stats.GoalsFor += goalsFor
		stats.GoalsAgainst += goalsAgainst
		if goalsAgainst == 0 {
			stats.CleanSheets++
		}

		var outcome string
		switch {
		case goalsFor > goalsAgainst:
			outcome = FormWin
			stats.Wins++
			if home {
				stats.HomeRecord.Wins++
			} else {
				stats.AwayRecord.Wins++
			}
		case goalsFor == goalsAgainst:
			outcome = FormDraw
			stats.Draws++
			if home {
				stats.HomeRecord.Draws++
			} else {
				stats.AwayRecord.Draws++
			}
		default:
			outcome = FormLoss
			stats.Losses++
			if home {
				stats.HomeRecord.Losses++
			} else {
				stats.AwayRecord.Losses++
			}
		}
		outcomes = append(outcomes, outcome)
	}

	stats.GoalDifference = stats.GoalsFor - stats.GoalsAgainst
	stats.Points = stats.Wins*3 + stats.Draws

	if stats.Played > 0 {
		stats.WinPercentage = round1(float64(stats.Wins) / float64(stats.Played) * 100)
		stats.AverageGoalsFor = round1(float64(stats.GoalsFor) / float64(stats.Played))
		stats.AverageGoalsAgainst = round1(float64(stats.GoalsAgainst) / float64(stats.Played))
	}

	if len(outcomes) > formWindow {
		outcomes = outcomes[len(outcomes)-formWindow:]
	}
	stats.Form = outcomes

	return stats
}

func round1(v float64) float64 {
	if v < 0 {
		return -round1(-v)
	}
	return float64(int(v*10+0.5)) / 10.0
}
