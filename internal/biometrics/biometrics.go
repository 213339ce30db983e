// Package biometrics is the legacy standalone daily snapshot generator.
// The server-side scoring pipeline superseded it, but it is kept as the
// offline fallback and its formulas must keep matching what shipped.
package biometrics

import (
	"math"
	"time"
	"unicode/utf16"

	"github.com/g-jaeger77/celestAI-sub000/internal/synergy"
)

// Action window types.
const (
	WindowGold    = "GOLD"
	WindowWarning = "WARNING"
)

// ActionWindow flags the day's favorable or risky hours.
type ActionWindow struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Time  string `json:"time"`
	Desc  string `json:"desc"`
}

// Report is the full daily snapshot: three scores, their state bands,
// the action window, and the one-line insight.
type Report struct {
	MindScore    int          `json:"mindScore"`
	NeuralState  string       `json:"neuralState"`
	NeuralDesc   string       `json:"neuralDesc"`
	BodyScore    int          `json:"bodyScore"`
	BatteryState string       `json:"batteryState"`
	BatteryDesc  string       `json:"batteryDesc"`
	SoulScore    int          `json:"soulScore"`
	MoodState    string       `json:"moodState"`
	MoodDesc     string       `json:"moodDesc"`
	ActionWindow ActionWindow `json:"actionWindow"`
	DailyInsight string       `json:"dailyInsight"`
}

type band struct {
	state string
	desc  string
}

// State bands per score: >70, >40, else.
var (
	neuralBands = [3]band{
		{"Hyperfocus", "Your mind is sharp enough to cut through complex problems."},
		{"Light Ideas", "A good moment to imagine, not to calculate."},
		{"Mental Rest", "Avoid hard decisions. Lean on intuition."},
	}
	batteryBands = [3]band{
		{"Full Tank", "Great day for intense training and movement."},
		{"Economy Mode", "Stable energy. Hold the pace."},
		{"Low Energy", "Prioritize sleep and recovery today."},
	}
	moodBands = [3]band{
		{"Connected", "Your intuition is shouting. Listen."},
		{"Sentimental", "You may feel things more strongly today."},
		{"Cave Mode", "Protect your energy. Stay at peace."},
	}
)

func bandFor(score int, bands [3]band) band {
	switch {
	case score > 70:
		return bands[0]
	case score > 40:
		return bands[1]
	default:
		return bands[2]
	}
}

// Compute builds the daily report for a name at a given wall-clock time.
// The caller supplies now; the generator never reads a global clock.
//
// Seeding quirk inherited from the shipped formula: the key uses only the
// name's length, so equal-length names collide on the same day. Downstream
// consumers expect the backend-equivalent formula to match, so it stays.
func Compute(name string, now time.Time) Report {
	if name == "" {
		name = "User"
	}

	// JS Date months are zero-based; the key keeps that convention, and
	// the name length counts UTF-16 code units like String.length.
	dateSeed := now.Day() + int(now.Month()) - 1 + now.Year()
	key := float64(dateSeed + len(utf16.Encode([]rune(name))))

	mind := int(math.Floor(math.Abs(math.Sin(key)) * 100))
	body := int(math.Floor(math.Abs(math.Cos(key*1.5)) * 100))
	soul := int(math.Floor(math.Abs(math.Sin(key*2.2)) * 100))

	neural := bandFor(mind, neuralBands)
	battery := bandFor(body, batteryBands)
	mood := bandFor(soul, moodBands)

	window := ActionWindow{
		Type:  WindowGold,
		Title: "Luck",
		Time:  "09h - 11h",
		Desc:  "Make the most of this window.",
	}
	if h := now.Hour(); h >= 14 && h <= 16 {
		window = ActionWindow{
			Type:  WindowWarning,
			Title: "Caution",
			Time:  "14h - 16h",
			Desc:  "Avoid important decisions right now.",
		}
	}

	insight := "Respect your rhythm. Invisible progress is still progress."
	if mind > 60 && body > 60 {
		insight = "Today you are unstoppable. Spend that force on the hard thing."
	}

	return Report{
		MindScore:    mind,
		NeuralState:  neural.state,
		NeuralDesc:   neural.desc,
		BodyScore:    body,
		BatteryState: battery.state,
		BatteryDesc:  battery.desc,
		SoulScore:    soul,
		MoodState:    mood.state,
		MoodDesc:     mood.desc,
		ActionWindow: window,
		DailyInsight: insight,
	}
}

// Pillars extracts the three scores as synergy input.
func (r Report) Pillars() synergy.PillarScores {
	return synergy.PillarScores{Mind: r.MindScore, Body: r.BodyScore, Soul: r.SoulScore}
}
