package synergy

// Band is a per-pillar text band selected on the pillar's own score,
// independent of the day's tier.
type Band string

const (
	BandPeak    Band = "peak"
	BandNeutral Band = "neutral"
	BandDeficit Band = "deficit"
)

// Band boundaries: strictly above 80 is peak, strictly below 40 deficit.
const (
	peakAbove    = 80
	deficitBelow = 40
)

// Highlight is one pillar's status line and guidance.
type Highlight struct {
	Status string `json:"status"`
	Desc   string `json:"desc"`
}

// PillarHighlights covers all three pillars; every field always set.
type PillarHighlights struct {
	Mind Highlight `json:"mind"`
	Body Highlight `json:"body"`
	Soul Highlight `json:"soul"`
}

// BandFor buckets a single pillar score.
func BandFor(score int) Band {
	switch {
	case score > peakAbove:
		return BandPeak
	case score < deficitBelow:
		return BandDeficit
	default:
		return BandNeutral
	}
}

var highlightTable = map[string]map[Band]Highlight{
	"mind": {
		BandPeak:    {"Hyperfocus Engaged", "Your synthesis is lethal right now. Use it to study complex systems or crack that old problem in minutes."},
		BandNeutral: {"Steady Flow", "Mercury offers enough clarity for the day-to-day. Good for organizing, poor for radical innovation."},
		BandDeficit: {"Mental Fog", "Processing is slow. Do not trust your memory today; write everything down. Avoid theoretical debates, misunderstandings are likely."},
	},
	"body": {
		BandPeak:    {"Physical Power", "Mars is pouring fuel into your tank. If you do not spend this energy on movement it turns into irritation or anxiety. Train hard."},
		BandNeutral: {"Stable Energy", "Your physical battery carries the routine without trouble. Keep hydrated and take strategic breaks."},
		BandDeficit: {"Low Reserve", "The body asks for a truce. Any extra effort charges heavy interest tomorrow. Prioritize quality sleep and light meals."},
	},
	"soul": {
		BandPeak:    {"Deep Connection", "Your intuitive antenna is picking up everything. Excellent for reading rooms and people; careful not to absorb what is not yours."},
		BandNeutral: {"Equilibrium", "Emotions are under control, allowing safe social interaction. You are reachable, but protected."},
		BandDeficit: {"Shielding Needed", "High vulnerability. The smallest comment can cut. Avoid toxic people and chaotic environments; isolation today is healing."},
	},
}

// Highlights returns the three per-pillar text bands for a day's scores.
func Highlights(s PillarScores) PillarHighlights {
	return PillarHighlights{
		Mind: highlightTable["mind"][BandFor(s.Mind)],
		Body: highlightTable["body"][BandFor(s.Body)],
		Soul: highlightTable["soul"][BandFor(s.Soul)],
	}
}
