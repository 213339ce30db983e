package profile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/g-jaeger77/celestAI-sub000/internal/zodiac"
)

// ProfileStore defines the storage operations the Manager needs.
// Implemented by storage.Store.
type ProfileStore interface {
	SetProfileKey(key, value string) error
	GetProfileKey(key string) (string, error)
	GetAllProfileKeys() (map[string]string, error)
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Manager provides cached, structured access to the user profile stored in SQLite.
type Manager struct {
	store ProfileStore
	clock Clock
	ttl   time.Duration

	mu       sync.RWMutex
	cached   *Profile
	cachedAt time.Time
}

// NewManager creates a Manager with a 60-second cache TTL.
func NewManager(store ProfileStore) *Manager {
	return &Manager{
		store: store,
		clock: realClock{},
		ttl:   60 * time.Second,
	}
}

// NewManagerWithClock creates a Manager with a custom clock (for testing).
func NewManagerWithClock(store ProfileStore, clock Clock, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		clock: clock,
		ttl:   ttl,
	}
}

// GetProfile reads all profile keys from storage (or cache) and assembles
// a structured Profile. Returns a zero-value Profile on empty store.
func (m *Manager) GetProfile() (Profile, error) {
	// Fast path: read lock for cache hit.
	m.mu.RLock()
	if m.cached != nil && m.clock.Now().Before(m.cachedAt.Add(m.ttl)) {
		p := deepCopyProfile(m.cached)
		m.mu.RUnlock()
		return p, nil
	}
	m.mu.RUnlock()

	// Slow path: write lock for cache miss.
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock.
	if m.cached != nil && m.clock.Now().Before(m.cachedAt.Add(m.ttl)) {
		return deepCopyProfile(m.cached), nil
	}

	keys, err := m.store.GetAllProfileKeys()
	if err != nil {
		return Profile{}, fmt.Errorf("loading profile keys: %w", err)
	}

	p := buildProfile(keys)
	m.cached = &p
	m.cachedAt = m.clock.Now()
	return deepCopyProfile(&p), nil
}

// SetField persists a profile key and invalidates the cache.
func (m *Manager) SetField(key string, value interface{}) error {
	var str string
	switch v := value.(type) {
	case string:
		str = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshalling value for key %q: %w", key, err)
		}
		str = string(b)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.SetProfileKey(key, str); err != nil {
		return fmt.Errorf("setting profile key %q: %w", key, err)
	}

	m.cached = nil
	return nil
}

// Chart generates the user's planetary chart from stored birth identity.
// Returns an error if the user has not completed onboarding.
func (m *Manager) Chart() (zodiac.Chart, error) {
	p, err := m.GetProfile()
	if err != nil {
		return zodiac.Chart{}, err
	}
	if !p.Identity.Onboarded() {
		return zodiac.Chart{}, fmt.Errorf("profile incomplete: full name and birth date required")
	}
	return zodiac.GenerateChart(p.Identity.FullName, p.Identity.BirthDate), nil
}

// GetSummary returns a compact one-line description of the stored identity.
func (m *Manager) GetSummary() (string, error) {
	p, err := m.GetProfile()
	if err != nil {
		return "", fmt.Errorf("getting profile for summary: %w", err)
	}
	return summarize(p), nil
}

func summarize(p Profile) string {
	if !p.Identity.Onboarded() {
		return "User profile: not yet configured."
	}

	parts := []string{fmt.Sprintf("User: %s, born %s", p.Identity.FullName, p.Identity.BirthDate)}
	if p.Identity.BirthTime != "" {
		parts = append(parts, "at "+p.Identity.BirthTime)
	}
	if p.Identity.BirthCity != "" {
		place := p.Identity.BirthCity
		if p.Identity.BirthCountry != "" {
			place += ", " + p.Identity.BirthCountry
		}
		parts = append(parts, "in "+place)
	}

	chart := zodiac.GenerateChart(p.Identity.FullName, p.Identity.BirthDate)
	parts = append(parts, fmt.Sprintf("(Sun in %s, Moon in %s)", chart.Sun.Sign, chart.Moon.Sign))

	summary := strings.Join(parts, " ") + "."
	if len(p.Preferences) > 0 {
		summary += " Focus areas: " + strings.Join(p.Preferences, ", ") + "."
	}
	return summary
}

func deepCopyProfile(p *Profile) Profile {
	if p == nil {
		return Profile{}
	}
	cp := *p

	if p.Preferences != nil {
		cp.Preferences = make([]string, len(p.Preferences))
		copy(cp.Preferences, p.Preferences)
	}
	return cp
}

// buildProfile assembles a Profile from flat key-value pairs.
// Keys use dot-notation: "identity.full_name", "identity.birth_date",
// "identity.birth_time", "identity.birth_city", "identity.birth_country",
// "preferences". List values are stored as JSON arrays.
func buildProfile(keys map[string]string) Profile {
	var p Profile

	if v, ok := keys["identity.full_name"]; ok {
		p.Identity.FullName = v
	}
	if v, ok := keys["identity.birth_date"]; ok {
		p.Identity.BirthDate = v
	}
	if v, ok := keys["identity.birth_time"]; ok {
		p.Identity.BirthTime = v
	}
	if v, ok := keys["identity.birth_city"]; ok {
		p.Identity.BirthCity = v
	}
	if v, ok := keys["identity.birth_country"]; ok {
		p.Identity.BirthCountry = v
	}

	unmarshalProfileKey(keys, "preferences", &p.Preferences)

	return p
}

// unmarshalProfileKey unmarshals a JSON value from keys into target, logging
// a warning if the value is present but malformed.
func unmarshalProfileKey(keys map[string]string, key string, target interface{}) {
	v, ok := keys[key]
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(v), target); err != nil {
		slog.Warn("malformed profile key, skipping", "key", key, "error", err)
	}
}
