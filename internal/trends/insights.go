package trends

import (
	"fmt"
	"math"

	"github.com/g-jaeger77/celestAI-sub000/internal/zodiac"
)

// Insight is one narrative card. All fields always present so the payload
// serializes with a stable shape.
type Insight struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Desc     string `json:"desc"`
	Score    string `json:"score"`
	Duration string `json:"duration"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
}

// Insight bands. Focus always emits; emotion only at the extremes; the
// relationship card jumps the queue when extreme and trails otherwise.
const (
	focusPeakAbove    = 75
	focusLowBelow     = 40
	emotionHighAbove  = 80
	emotionLowBelow   = 30
	relationHighAbove = 70
	relationLowBelow  = 40
)

var focusInsights = map[string]Insight{
	"peak": {
		Type: "focus", Title: "Peak Focus",
		Desc:  "High mental performance and clarity today.",
		Score: "High", Duration: "2 days", Icon: "bar_chart", Color: "cyan",
	},
	"scattered": {
		Type: "focus", Title: "Scattered Mind",
		Desc:  "Good moment for creative, intuitive work.",
		Score: "Low", Duration: "1 day", Icon: "waves", Color: "indigo",
	},
	"stable": {
		Type: "focus", Title: "Mental Stability",
		Desc:  "Ideal balance for routine tasks.",
		Score: "Medium", Duration: "3 days", Icon: "check_circle", Color: "teal",
	},
}

var emotionInsights = map[string]Insight{
	"high": {
		Type: "emotion", Title: "High Sensitivity",
		Desc:  "Take extra care with emotional interactions.",
		Score: "Intense", Duration: "Today", Icon: "favorite", Color: "rose",
	},
	"low": {
		Type: "emotion", Title: "Withdrawal",
		Desc:  "Energy turned inward.",
		Score: "Low", Duration: "2 days", Icon: "bedtime", Color: "indigo",
	},
}

var selfInsight = Insight{
	Type: "self", Title: "Inner Journey",
	Desc:  "Excellent period for self-knowledge.",
	Score: "Deep", Duration: "Week", Icon: "self_improvement", Color: "emerald",
}

// buildInsights draws the remaining sequence values and assembles the
// ordered card list. A partner card scored >70 or <40 is always first;
// computation order is preserved for everything else.
func buildInsights(src *zodiac.Source, partnerName string) []Insight {
	var insights []Insight

	focus := int(math.Floor(src.Next() * 100))
	switch {
	case focus > focusPeakAbove:
		insights = append(insights, focusInsights["peak"])
	case focus < focusLowBelow:
		insights = append(insights, focusInsights["scattered"])
	default:
		insights = append(insights, focusInsights["stable"])
	}

	emotion := int(math.Floor(src.Next() * 100))
	if emotion > emotionHighAbove {
		insights = append(insights, emotionInsights["high"])
	} else if emotion < emotionLowBelow {
		insights = append(insights, emotionInsights["low"])
	}

	if partnerName == "" {
		return append(insights, selfInsight)
	}

	rel := int(math.Floor(src.Next() * 100))
	relScore := fmt.Sprintf("%d%%", rel)
	switch {
	case rel > relationHighAbove:
		card := Insight{
			Type: "relation", Title: fmt.Sprintf("Synergy with %s", partnerName),
			Desc:  "Exceptional harmonic alignment today.",
			Score: relScore, Duration: "48h", Icon: "auto_awesome", Color: "pink",
		}
		insights = append([]Insight{card}, insights...)
	case rel < relationLowBelow:
		card := Insight{
			Type: "relation", Title: fmt.Sprintf("Challenge with %s", partnerName),
			Desc:  "Communication may demand patience and clarity.",
			Score: relScore, Duration: "24h", Icon: "bolt", Color: "amber",
		}
		insights = append([]Insight{card}, insights...)
	default:
		insights = append(insights, Insight{
			Type: "relation", Title: fmt.Sprintf("Connection with %s", partnerName),
			Desc:  "Stable, constructive relationship.",
			Score: relScore, Duration: "3 days", Icon: "group", Color: "purple",
		})
	}
	return insights
}
