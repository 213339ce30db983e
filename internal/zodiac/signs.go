package zodiac

// Elements.
const (
	Fire  = "Fire"
	Earth = "Earth"
	Air   = "Air"
	Water = "Water"
)

// Modalities.
const (
	Cardinal = "Cardinal"
	Fixed    = "Fixed"
	Mutable  = "Mutable"
)

// Signs in zodiacal order, Aries first.
var Signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signElement = map[string]string{
	"Aries": Fire, "Leo": Fire, "Sagittarius": Fire,
	"Taurus": Earth, "Virgo": Earth, "Capricorn": Earth,
	"Gemini": Air, "Libra": Air, "Aquarius": Air,
	"Cancer": Water, "Scorpio": Water, "Pisces": Water,
}

var signModality = map[string]string{
	"Aries": Cardinal, "Cancer": Cardinal, "Libra": Cardinal, "Capricorn": Cardinal,
	"Taurus": Fixed, "Leo": Fixed, "Scorpio": Fixed, "Aquarius": Fixed,
	"Gemini": Mutable, "Virgo": Mutable, "Sagittarius": Mutable, "Pisces": Mutable,
}

// ElementOf returns the element for a sign, or "" for an unknown sign.
func ElementOf(sign string) string {
	return signElement[sign]
}

// ModalityOf returns the modality for a sign, or "" for an unknown sign.
func ModalityOf(sign string) string {
	return signModality[sign]
}
