package zodiac

// PlanetPosition is one symbolic placement in a chart. Element and
// Modality are redundant with Sign but kept materialized so a position
// serializes as a self-contained JSON object.
type PlanetPosition struct {
	Sign     string `json:"sign"`
	Element  string `json:"element"`
	Modality string `json:"modality"`
	House    int    `json:"house"` // 1..12
	Deg      int    `json:"deg"`   // 0..29 within the sign
}

// Chart is a simplified birth chart: exactly eight named placements.
// All fields are always populated by GenerateChart.
type Chart struct {
	Sun       PlanetPosition `json:"sun"`
	Moon      PlanetPosition `json:"moon"`
	Mercury   PlanetPosition `json:"mercury"`
	Venus     PlanetPosition `json:"venus"`
	Mars      PlanetPosition `json:"mars"`
	Jupiter   PlanetPosition `json:"jupiter"`
	Saturn    PlanetPosition `json:"saturn"`
	Ascendant PlanetPosition `json:"ascendant"`
}

// GenerateChart derives a chart from a person's name and birth date
// (YYYY-MM-DD). There is no ephemeris here: placements are drawn from the
// seeded source so the same identity always maps to the same chart, which
// keeps trait and synastry output stable across calls and sessions.
func GenerateChart(name, birthDate string) Chart {
	src := NewSource(Hash(name + birthDate))
	return Chart{
		Sun:       drawPosition(src),
		Moon:      drawPosition(src),
		Mercury:   drawPosition(src),
		Venus:     drawPosition(src),
		Mars:      drawPosition(src),
		Jupiter:   drawPosition(src),
		Saturn:    drawPosition(src),
		Ascendant: drawPosition(src),
	}
}

func drawPosition(src *Source) PlanetPosition {
	sign := Signs[int(src.Next()*12)]
	return PlanetPosition{
		Sign:     sign,
		Element:  ElementOf(sign),
		Modality: ModalityOf(sign),
		House:    int(src.Next()*12) + 1,
		Deg:      int(src.Next() * 30),
	}
}
