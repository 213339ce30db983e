package zodiac

import "testing"

func TestHashKnownVectors(t *testing.T) {
	cases := []struct {
		in   string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"abc", 96354},
		{"hello", 99162322},
	}
	for _, c := range cases {
		if got := Hash(c.in); got != c.want {
			t.Errorf("Hash(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestHashCollisionPair(t *testing.T) {
	// "Aa" and "BB" hash identically under the (h<<5)-h scheme. The
	// collision is part of the inherited contract, not a defect.
	if Hash("Aa") != Hash("BB") {
		t.Errorf("expected Hash(\"Aa\") == Hash(\"BB\"), got %d and %d", Hash("Aa"), Hash("BB"))
	}
}

func TestHashSensitivity(t *testing.T) {
	a := Hash("Luna" + "Mon Sep 01 2025")
	b := Hash("Luna" + "Tue Sep 02 2025")
	if a == b {
		t.Error("different dates produced the same seed")
	}
	c := Hash("Lena" + "Mon Sep 01 2025")
	if a == c {
		t.Error("different names produced the same seed")
	}
}

func TestSourceDeterminism(t *testing.T) {
	a := NewSource(12345)
	b := NewSource(12345)
	for i := 0; i < 100; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("draw %d diverged: %v != %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, va)
		}
	}
}

func TestSourcePosAdvancesByOne(t *testing.T) {
	s := NewSource(-42)
	if s.Pos() != -42 {
		t.Fatalf("initial pos = %v, want -42", s.Pos())
	}
	s.Next()
	s.Next()
	if s.Pos() != -40 {
		t.Errorf("pos after two draws = %v, want -40", s.Pos())
	}
}

func TestAtMatchesSequence(t *testing.T) {
	s := NewSource(7)
	first := s.Next()
	if got := At(7); got != first {
		t.Errorf("At(7) = %v, want first draw %v", got, first)
	}
}
