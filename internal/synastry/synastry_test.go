package synastry

import (
	"testing"

	"github.com/g-jaeger77/celestAI-sub000/internal/zodiac"
)

func charts(t *testing.T) (zodiac.Chart, zodiac.Chart) {
	t.Helper()
	return zodiac.GenerateChart("Luna Silva", "1995-05-15"),
		zodiac.GenerateChart("Rafael Costa", "1992-03-08")
}

func TestComputeDeterministic(t *testing.T) {
	self, other := charts(t)
	seed := SeedFor("Luna Silva", "Rafael Costa", "Mon Sep 01 2025")

	a := Compute(self, other, zodiac.NewSource(seed))
	b := Compute(self, other, zodiac.NewSource(seed))
	if a != b {
		t.Errorf("same seed produced different results:\n%+v\n%+v", a, b)
	}
}

func TestComputeSeedSensitivity(t *testing.T) {
	self, other := charts(t)
	a := Compute(self, other, zodiac.NewSource(SeedFor("Luna Silva", "Rafael Costa", "Mon Sep 01 2025")))
	b := Compute(self, other, zodiac.NewSource(SeedFor("Luna Silva", "Rafael Costa", "Tue Sep 02 2025")))
	if a == b {
		t.Error("different days produced identical synastry")
	}
}

func TestComputeBaseline(t *testing.T) {
	fire := zodiac.PlanetPosition{Sign: "Aries", Element: zodiac.Fire, Modality: zodiac.Cardinal, House: 1}
	earth := zodiac.PlanetPosition{Sign: "Taurus", Element: zodiac.Earth, Modality: zodiac.Fixed, House: 1}

	var a, b zodiac.Chart
	a.Sun, b.Sun = fire, fire
	match := Compute(a, b, zodiac.NewSource(1))
	if match.LoveScore != 85 || match.WorkScore != 80 || match.SocialScore != 90 {
		t.Errorf("matching suns: got love=%d work=%d social=%d, want 85/80/90",
			match.LoveScore, match.WorkScore, match.SocialScore)
	}

	b.Sun = earth
	mixed := Compute(a, b, zodiac.NewSource(1))
	if mixed.LoveScore != 65 || mixed.WorkScore != 60 || mixed.SocialScore != 70 {
		t.Errorf("mixed suns: got love=%d work=%d social=%d, want 65/60/70",
			mixed.LoveScore, mixed.WorkScore, mixed.SocialScore)
	}
}

func TestComputeSubScoreRanges(t *testing.T) {
	self, other := charts(t)
	for seed := int32(0); seed < 200; seed++ {
		r := Compute(self, other, zodiac.NewSource(seed*7919))
		checks := []struct {
			name     string
			v        int
			min, max int
		}{
			{"ego", r.EgoScore, 70, 90},
			{"chemistry", r.ChemistryScore, 60, 90},
			{"karma", r.KarmaScore, 50, 90},
			{"power", r.PowerScore, 30, 80},
			{"conflict", r.SocialConflictScore, 35, 95},
			{"support", r.SocialSupportScore, 80, 100},
		}
		for _, c := range checks {
			if c.v < c.min || c.v > c.max {
				t.Fatalf("seed %d: %s = %d, want [%d,%d]", seed, c.name, c.v, c.min, c.max)
			}
		}
	}
}

func TestDealBreakerThreshold(t *testing.T) {
	r := Result{KarmaScore: 39}
	if db := DealBreakerFor(r, zodiac.ContextLove); !db.IsBad {
		t.Error("karma 39 should be flagged bad")
	}
	r.KarmaScore = 40
	if db := DealBreakerFor(r, zodiac.ContextLove); db.IsBad {
		t.Error("karma 40 should not be flagged bad")
	}
}

func TestDealBreakerSelection(t *testing.T) {
	r := Result{KarmaScore: 10, PowerScore: 20, SocialConflictScore: 30}

	if db := DealBreakerFor(r, zodiac.ContextLove); db.Score != 10 {
		t.Errorf("love deal-breaker score = %d, want karma 10", db.Score)
	}
	if db := DealBreakerFor(r, zodiac.ContextWork); db.Score != 20 {
		t.Errorf("work deal-breaker score = %d, want power 20", db.Score)
	}
	if db := DealBreakerFor(r, zodiac.ContextSocial); db.Score != 30 {
		t.Errorf("social deal-breaker score = %d, want conflict 30", db.Score)
	}

	// Unknown context falls back to love.
	if db := DealBreakerFor(r, zodiac.Context("other")); db.Score != 10 {
		t.Errorf("fallback deal-breaker score = %d, want karma 10", db.Score)
	}
}

func TestDealBreakerCopySwitches(t *testing.T) {
	bad := DealBreakerFor(Result{PowerScore: 5}, zodiac.ContextWork)
	good := DealBreakerFor(Result{PowerScore: 95}, zodiac.ContextWork)
	if bad.Text == good.Text {
		t.Error("bad and good power copy should differ")
	}
	if bad.Title != good.Title {
		t.Error("title should not depend on the score")
	}
}

func TestTotalFor(t *testing.T) {
	r := Result{LoveScore: 1, WorkScore: 2, SocialScore: 3}
	if TotalFor(r, zodiac.ContextLove) != 1 || TotalFor(r, zodiac.ContextWork) != 2 || TotalFor(r, zodiac.ContextSocial) != 3 {
		t.Error("TotalFor picked the wrong context total")
	}
}
