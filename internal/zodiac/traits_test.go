package zodiac

import "testing"

func position(sign string) PlanetPosition {
	return PlanetPosition{
		Sign:     sign,
		Element:  ElementOf(sign),
		Modality: ModalityOf(sign),
		House:    1,
		Deg:      0,
	}
}

func uniformChart(sign string) Chart {
	p := position(sign)
	return Chart{Sun: p, Moon: p, Mercury: p, Venus: p, Mars: p, Jupiter: p, Saturn: p, Ascendant: p}
}

func TestTraitsShapeAndRange(t *testing.T) {
	chart := GenerateChart("Ana", "1990-01-01")
	for _, ctx := range []Context{ContextLove, ContextWork, ContextSocial} {
		traits := Traits(chart, ctx)
		for i, v := range traits {
			if v < 30 || v > 100 {
				t.Errorf("ctx %s trait %d out of [30,100]: %d", ctx, i, v)
			}
		}
	}
}

func TestTraitsCapsAtHundred(t *testing.T) {
	// Aries is Fire+Cardinal: 85+20 = 105, capped to 100.
	traits := Traits(uniformChart("Aries"), ContextLove)
	for i, v := range traits {
		if v != 100 {
			t.Errorf("all-Aries trait %d = %d, want 100", i, v)
		}
	}
}

func TestTraitsFloor(t *testing.T) {
	// Virgo is Earth+Mutable: 55+0 = 55, above the 30 floor.
	traits := Traits(uniformChart("Virgo"), ContextWork)
	for i, v := range traits {
		if v != 55 {
			t.Errorf("all-Virgo trait %d = %d, want 55", i, v)
		}
	}
}

func TestTraitsUnknownSignDegrades(t *testing.T) {
	p := PlanetPosition{Sign: "Ophiuchus", House: 1}
	chart := Chart{Sun: p, Moon: p, Mercury: p, Venus: p, Mars: p, Jupiter: p, Saturn: p, Ascendant: p}
	traits := Traits(chart, ContextSocial)
	for i, v := range traits {
		// elementPower default 50 + modalityPower default 0.
		if v != 50 {
			t.Errorf("unknown-sign trait %d = %d, want 50", i, v)
		}
	}
}

func TestTraitsContextSelection(t *testing.T) {
	chart := uniformChart("Virgo") // baseline 55 everywhere
	chart.Mars = position("Aries") // 105 -> capped 100

	love := Traits(chart, ContextLove)
	if love[1] != 100 {
		t.Errorf("love axis 1 (Chemistry, mars) = %d, want 100", love[1])
	}
	work := Traits(chart, ContextWork)
	if work[3] != 100 {
		t.Errorf("work axis 3 (Rhythm, mars) = %d, want 100", work[3])
	}
	social := Traits(chart, ContextSocial)
	for i, v := range social {
		if v != 55 {
			t.Errorf("social axis %d = %d, want 55 (mars not selected)", i, v)
		}
	}
}

func TestParseContext(t *testing.T) {
	cases := map[string]Context{
		"love":    ContextLove,
		"work":    ContextWork,
		"social":  ContextSocial,
		"":        ContextLove,
		"unknown": ContextLove,
	}
	for in, want := range cases {
		if got := ParseContext(in); got != want {
			t.Errorf("ParseContext(%q) = %s, want %s", in, got, want)
		}
	}
}
