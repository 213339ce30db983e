// Package synastry scores the compatibility of two birth charts.
//
// The engine is deterministic: all variance comes from a caller-supplied
// seeded source, conventionally derived from both names plus the calendar
// day (see SeedFor), so a pair's reading holds steady for a day and shifts
// the next.
package synastry

import (
	"math"

	"github.com/g-jaeger77/celestAI-sub000/internal/zodiac"
)

// Result aggregates per-context compatibility totals and the named
// sub-scores behind them. Every field is always present and in [0, 100].
type Result struct {
	LoveScore   int `json:"loveScore"`
	WorkScore   int `json:"workScore"`
	SocialScore int `json:"socialScore"`

	// Love aspects
	EgoScore       int `json:"egoScore"`
	ChemistryScore int `json:"chemistryScore"`
	PurposeScore   int `json:"purposeScore"`
	MentalScore    int `json:"mentalScore"`
	EmotionalScore int `json:"emotionalScore"`
	KarmaScore     int `json:"karmaScore"`

	// Work aspects
	WorkflowScore    int `json:"workflowScore"`
	ProfitScore      int `json:"profitScore"`
	VisionScore      int `json:"visionScore"`
	RhythmScore      int `json:"rhythmScore"`
	ReliabilityScore int `json:"reliabilityScore"`
	PowerScore       int `json:"powerScore"`

	// Social aspects
	SocialRoutineScore  int `json:"socialRoutineScore"`
	SocialCommScore     int `json:"socialCommScore"`
	SocialSupportScore  int `json:"socialSupportScore"`
	SocialFunScore      int `json:"socialFunScore"`
	SocialValuesScore   int `json:"socialValuesScore"`
	SocialConflictScore int `json:"socialConflictScore"`
}

// SeedFor builds the canonical synastry seed for a pair on a given day.
// dateStr is the caller-formatted calendar day (same format trends uses).
func SeedFor(selfName, otherName, dateStr string) int32 {
	return zodiac.Hash(selfName + otherName + dateStr)
}

// Sub-score distributions. Bases and spreads center on the original
// product's values; the three deal-breaker axes (karma, power, conflict)
// get enough spread to cross the 40 risk threshold.
type drawSpec struct {
	base   float64
	spread float64
	assign func(*Result, int)
}

var draws = []drawSpec{
	{70, 20, func(r *Result, v int) { r.EgoScore = v }},
	{60, 30, func(r *Result, v int) { r.ChemistryScore = v }},
	{70, 20, func(r *Result, v int) { r.PurposeScore = v }},
	{65, 20, func(r *Result, v int) { r.MentalScore = v }},
	{55, 20, func(r *Result, v int) { r.EmotionalScore = v }},
	{50, 40, func(r *Result, v int) { r.KarmaScore = v }},
	{60, 20, func(r *Result, v int) { r.WorkflowScore = v }},
	{50, 20, func(r *Result, v int) { r.ProfitScore = v }},
	{75, 20, func(r *Result, v int) { r.VisionScore = v }},
	{55, 20, func(r *Result, v int) { r.RhythmScore = v }},
	{70, 20, func(r *Result, v int) { r.ReliabilityScore = v }},
	{30, 50, func(r *Result, v int) { r.PowerScore = v }},
	{65, 20, func(r *Result, v int) { r.SocialRoutineScore = v }},
	{75, 20, func(r *Result, v int) { r.SocialCommScore = v }},
	{80, 20, func(r *Result, v int) { r.SocialSupportScore = v }},
	{70, 20, func(r *Result, v int) { r.SocialFunScore = v }},
	{60, 20, func(r *Result, v int) { r.SocialValuesScore = v }},
	{35, 60, func(r *Result, v int) { r.SocialConflictScore = v }},
}

// Compute scores the pairing of two charts. The baseline comes from
// whether the suns share an element; context totals are fixed offsets
// from it. Sub-scores are drawn from src in declaration order, so the
// draw order is part of the contract.
func Compute(self, other zodiac.Chart, src *zodiac.Source) Result {
	base := 65
	if self.Sun.Element == other.Sun.Element {
		base = 85
	}

	r := Result{
		LoveScore:   clampScore(base),
		WorkScore:   clampScore(base - 5),
		SocialScore: clampScore(base + 5),
	}
	for _, d := range draws {
		d.assign(&r, clampScore(int(math.Round(d.base+src.Next()*d.spread))))
	}
	return r
}

func clampScore(n int) int {
	if n > 100 {
		return 100
	}
	if n < 0 {
		return 0
	}
	return n
}
