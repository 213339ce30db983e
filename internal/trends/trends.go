// Package trends derives a week of alignment history and a ranked insight
// list from a user's name, a calendar day, and an optional partner.
//
// Everything is a function of the seed hash(name+date+partner): calling
// Compute twice with the same inputs returns byte-identical snapshots,
// and the next calendar day reshuffles the whole picture.
package trends

import (
	"fmt"
	"math"
	"time"

	"github.com/g-jaeger77/celestAI-sub000/internal/zodiac"
)

// DayScores is one day's component breakdown, oldest day first, today at
// index 6.
type DayScores struct {
	Day       int `json:"day"`
	Mental    int `json:"mental"`
	Physical  int `json:"physical"`
	Emotional int `json:"emotional"`
	Total     int `json:"total"`
}

// Snapshot is the full trends payload. Regenerated fresh on every call;
// never cached here.
type Snapshot struct {
	AlignmentScore int         `json:"alignmentScore"`
	TrendValue     string      `json:"trendValue"`
	IsPositive     bool        `json:"isPositive"`
	WeeklyData     []DayScores `json:"weeklyData"`
	Insights       []Insight   `json:"insights"`
}

// DateString formats a time the way seeds expect a calendar day. The
// format mirrors the JS Date.toDateString() output the stored seeds were
// built from, so it must not change.
func DateString(t time.Time) string {
	return t.Format("Mon Jan 02 2006")
}

// componentScore evaluates one component at an absolute sub-seed
// position: 60 +/- 20 around the midline, clamped to [40, 100].
func componentScore(pos, offset float64) int {
	rnd := zodiac.At(pos + offset)
	return clampDay(60 + int(math.Floor(rnd*40-20)))
}

func clampDay(n int) int {
	if n > 100 {
		return 100
	}
	if n < 40 {
		return 40
	}
	return n
}

// Compute builds the trends snapshot for a user on a given day.
// partnerName may be empty. dateStr comes from DateString.
//
// Draw order matters: the weekly sub-seeds are read from the source's
// position mid-sequence, so reordering any draw changes every stored
// score. Keep the sequence: alignment, trend, 7x total, focus, emotion,
// relationship.
func Compute(userName, dateStr, partnerName string) Snapshot {
	src := zodiac.NewSource(zodiac.Hash(userName + dateStr + partnerName))

	alignment := int(math.Floor(src.Next()*41)) + 60

	trend := src.Next()*20 - 5
	rounded := math.Round(trend*10) / 10
	isPositive := rounded >= 0
	trendValue := fmt.Sprintf("%.1f%%", rounded)
	if isPositive {
		trendValue = "+" + trendValue
	}

	weekly := make([]DayScores, 0, 7)
	for i := 0; i < 7; i++ {
		daySeed := src.Pos() + float64(i*13)
		weekly = append(weekly, DayScores{
			Day:       i,
			Mental:    componentScore(daySeed, 100),
			Physical:  componentScore(daySeed, 200),
			Emotional: componentScore(daySeed, 300),
			Total:     clampDay(alignment + int(math.Floor(src.Next()*40-20))),
		})
	}

	insights := buildInsights(src, partnerName)

	return Snapshot{
		AlignmentScore: alignment,
		TrendValue:     trendValue,
		IsPositive:     isPositive,
		WeeklyData:     weekly,
		Insights:       insights,
	}
}
