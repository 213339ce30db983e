package zodiac

// Context selects which planets feed which trait axes and which narrative
// templates downstream consumers apply.
type Context string

const (
	ContextLove   Context = "love"
	ContextWork   Context = "work"
	ContextSocial Context = "social"
)

// ParseContext maps free-form relationship type strings onto a Context.
// Unrecognized values fall back to love, the app's default lens.
func ParseContext(s string) Context {
	switch Context(s) {
	case ContextWork:
		return ContextWork
	case ContextSocial:
		return ContextSocial
	default:
		return ContextLove
	}
}

// AxisLabels returns the five radar axis labels for a context, in the
// same positional order as Traits output.
func AxisLabels(ctx Context) [5]string {
	switch ctx {
	case ContextWork:
		return [5]string{"Flow", "Profit", "Vision", "Rhythm", "Trust"}
	case ContextSocial:
		return [5]string{"Daily Life", "Banter", "Support", "Fun", "Loyalty"}
	default:
		return [5]string{"Ego", "Chemistry", "Purpose", "Mental", "Emotional"}
	}
}

// elementPower maps receptivity: Fire most active, Earth most stable.
func elementPower(element string) int {
	switch element {
	case Fire:
		return 85
	case Air:
		return 75
	case Water:
		return 65
	case Earth:
		return 55
	default:
		return 50
	}
}

func modalityPower(modality string) int {
	switch modality {
	case Cardinal:
		return 20
	case Fixed:
		return 10
	default: // Mutable and anything unrecognized
		return 0
	}
}

func planetScore(p PlanetPosition) int {
	return elementPower(p.Element) + modalityPower(p.Modality)
}

func clampTrait(n int) int {
	if n > 100 {
		return 100
	}
	if n < 30 {
		return 30
	}
	return n
}

// Traits scores a chart on the five axes of a relationship context.
// Pure: no randomness, always five values in [30, 100].
func Traits(c Chart, ctx Context) [5]int {
	sun := planetScore(c.Sun)
	moon := planetScore(c.Moon)
	mercury := planetScore(c.Mercury)
	venus := planetScore(c.Venus)
	mars := planetScore(c.Mars)
	jupiter := planetScore(c.Jupiter)
	saturn := planetScore(c.Saturn)

	var picked [5]int
	switch ctx {
	case ContextWork:
		picked = [5]int{mercury, jupiter, sun, mars, saturn}
	case ContextSocial:
		picked = [5]int{moon, mercury, jupiter, venus, saturn}
	default:
		picked = [5]int{sun, mars, jupiter, mercury, moon}
	}

	for i := range picked {
		picked[i] = clampTrait(picked[i])
	}
	return picked
}
