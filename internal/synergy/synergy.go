// Package synergy turns a day's three pillar scores into a diagnostic
// verdict and per-pillar highlights. Pure functions of the scores.
package synergy

import (
	"fmt"
	"math"
	"sort"
)

// PillarScores is one day's three wellbeing axes, each 0-100.
type PillarScores struct {
	Mind int `json:"mind"`
	Body int `json:"body"`
	Soul int `json:"soul"`
}

// Tier classifies the day.
type Tier string

const (
	TierExceptional  Tier = "exceptional"
	TierDirected     Tier = "directed"
	TierStable       Tier = "stable"
	TierPreservation Tier = "preservation"
)

// Tier boundaries. 75/70 gate the high tiers, 50 separates stable from
// preservation. Shipped verdicts depend on these exact values.
const (
	highTierMean   = 75
	exceptionalLow = 70
	stableTierMean = 50
)

type pillar struct {
	score int
	name  string
}

// pillarName is the display name interpolated into verdict templates.
var pillarNames = map[string]string{
	"mind": "Mercury (Mind)",
	"body": "Mars (Body)",
	"soul": "Moon (Soul)",
}

// rank returns the pillars ordered by score descending. Ties keep the
// mind, body, soul declaration order.
func rank(s PillarScores) []pillar {
	ps := []pillar{
		{s.Mind, pillarNames["mind"]},
		{s.Body, pillarNames["body"]},
		{s.Soul, pillarNames["soul"]},
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].score > ps[j].score })
	return ps
}

// Classify returns the day's tier from the global mean and lowest pillar.
func Classify(s PillarScores) Tier {
	mean := int(math.Round(float64(s.Mind+s.Body+s.Soul) / 3))
	lowest := rank(s)[2].score

	switch {
	case mean >= highTierMean && lowest >= exceptionalLow:
		return TierExceptional
	case mean >= highTierMean:
		return TierDirected
	case mean >= stableTierMean:
		return TierStable
	default:
		return TierPreservation
	}
}

// verdictTemplates interpolate (highest, lowest) pillar names; the
// exceptional template takes (highest, lowest), directed (highest,
// lowest), stable (highest, lowest), preservation (lowest, highest).
var verdictTemplates = map[Tier]string{
	TierExceptional: `DIAGNOSIS: Exceptional Synergy.
Today's planetary alignment opened a rare corridor of efficiency. With %s leading and %s holding the base, you have a green light for your most ambitious projects. Do not waste this on trivial tasks; pitch the idea, start the heavy training, have the hard conversation. The universe removed the friction. Your only obligation now is action. The current favors you, but it will not wait. Accelerate.`,
	TierDirected: `DIAGNOSIS: Directed High Performance.
You are being pushed by a powerful current of %s, ideal for fast advances on specific fronts. The system detected, however, a light anchor in %s.

THE STRATEGY: use your main strength to compensate the weak spot. If the body is tired but the mind flies, work seated. If the mind stalls but the body hums, take it outside. Do not stop; adapt the terrain to your advantage. The result comes if you know how to maneuver.`,
	TierStable: `DIAGNOSIS: Operational Stability.
Your synergy sits in the maintenance zone. %s offers safe harbor, while %s signals friction that calls for management, not brute force.

THE STRATEGY: do not chase records today. Focus on consistency and machine upkeep. Clear the backlog, organize your environment, avoid large emotional or physical risks. The day asks for pragmatism: do the basics well and save energy for when the tide rises again.`,
	TierPreservation: `DIAGNOSIS: Preservation Mode Required.
Current transits indicate systemic resistance, especially from %s. Forcing things today costs disproportionate wear.

THE STRATEGY: slow down deliberately. Start nothing new. Use the (limited) stability of %s only to keep essentials running. Decline exhausting social invitations, postpone critical meetings. Today is for sharpening the axe, not felling the tree. A strategic retreat today secures tomorrow's win.`,
}

// Verdict produces the day's diagnostic text.
func Verdict(s PillarScores) string {
	tier := Classify(s)
	ps := rank(s)
	highest, lowest := ps[0].name, ps[2].name

	if tier == TierPreservation {
		// Preservation leads with the drag, not the strength.
		return fmt.Sprintf(verdictTemplates[tier], lowest, highest)
	}
	return fmt.Sprintf(verdictTemplates[tier], highest, lowest)
}
