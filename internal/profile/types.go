package profile

// Profile is the user's stored identity: the birth data every generator
// keys off, plus free-form preferences.
type Profile struct {
	Identity    BirthIdentity
	Preferences []string
}

// BirthIdentity is the onboarding payload. FullName and BirthDate are the
// minimum needed to chart the user; time and place refine nothing in the
// symbolic engine but are kept for display and export.
type BirthIdentity struct {
	FullName     string
	BirthDate    string // YYYY-MM-DD
	BirthTime    string // HH:MM
	BirthCity    string
	BirthCountry string
}

// Onboarded reports whether enough identity exists to generate scores.
func (b BirthIdentity) Onboarded() bool {
	return b.FullName != "" && b.BirthDate != ""
}
