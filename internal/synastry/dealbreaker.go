package synastry

import "github.com/g-jaeger77/celestAI-sub000/internal/zodiac"

// riskThreshold flags a surfaced sub-score as a risk. Business rule: a
// deal-breaker reads bad strictly below 40.
const riskThreshold = 40

// DealBreaker is the single highlighted sub-score for a context.
type DealBreaker struct {
	Score     int    `json:"score"`
	Title     string `json:"title"`
	IsBad     bool   `json:"isBad"`
	Text      string `json:"text"`
	LowLabel  string `json:"lowLabel"`
	HighLabel string `json:"highLabel"`
}

type dealBreakerCopy struct {
	title     string
	badText   string
	goodText  string
	lowLabel  string
	highLabel string
}

var dealBreakerCopyByContext = map[zodiac.Context]dealBreakerCopy{
	zodiac.ContextSocial: {
		title:     "Conflict Factor (Boundaries)",
		badText:   "Danger zone. Keep politics and money off the table; quick triggers detected.",
		goodText:  "Demilitarized zone. Disagreements get settled with diplomacy and mutual respect.",
		lowLabel:  "Volatile",
		highLabel: "Peaceful",
	},
	zodiac.ContextWork: {
		title:     "Power Dynamics",
		badText:   "Warning: ego and control disputes can sabotage the partnership. Define a clear hierarchy.",
		goodText:  "Balanced leadership. Both sides know when to yield and when to take command.",
		lowLabel:  "Conflict",
		highLabel: "Synergy",
	},
	zodiac.ContextLove: {
		title:     "Stability Factor (Karma)",
		badText:   "Attention: Saturn signals restriction. This bond will demand extra maturity to outgrow structural blocks.",
		goodText:  "Solid structure. Saturn favors longevity and commitment, a safe base to build on.",
		lowLabel:  "Risk",
		highLabel: "Stability",
	},
}

// DealBreakerFor surfaces the one deal-breaker sub-score for a context:
// social uses conflict, work uses power, anything else uses karma.
func DealBreakerFor(r Result, ctx zodiac.Context) DealBreaker {
	var score int
	switch ctx {
	case zodiac.ContextSocial:
		score = r.SocialConflictScore
	case zodiac.ContextWork:
		score = r.PowerScore
	default:
		ctx = zodiac.ContextLove
		score = r.KarmaScore
	}

	c := dealBreakerCopyByContext[ctx]
	bad := score < riskThreshold
	text := c.goodText
	if bad {
		text = c.badText
	}
	return DealBreaker{
		Score:     score,
		Title:     c.title,
		IsBad:     bad,
		Text:      text,
		LowLabel:  c.lowLabel,
		HighLabel: c.highLabel,
	}
}

// TotalFor returns the context's headline compatibility total.
func TotalFor(r Result, ctx zodiac.Context) int {
	switch ctx {
	case zodiac.ContextSocial:
		return r.SocialScore
	case zodiac.ContextWork:
		return r.WorkScore
	default:
		return r.LoveScore
	}
}
