package profile

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// --- Mock store ---

type mockStore struct {
	mu   sync.Mutex
	data map[string]string

	getAllCalls int
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) SetProfileKey(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockStore) GetProfileKey(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", nil
	}
	return v, nil
}

func (m *mockStore) GetAllProfileKeys() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getAllCalls++
	cp := make(map[string]string, len(m.data))
	for k, v := range m.data {
		cp[k] = v
	}
	return cp, nil
}

// --- Mock clock ---

type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// --- Tests ---

func TestGetProfile_Empty(t *testing.T) {
	store := newMockStore()
	mgr := NewManager(store)

	p, err := mgr.GetProfile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Identity.FullName != "" {
		t.Errorf("expected empty name, got %q", p.Identity.FullName)
	}
	if p.Identity.Onboarded() {
		t.Error("empty profile should not be onboarded")
	}
}

func TestSetAndGetField(t *testing.T) {
	store := newMockStore()
	mgr := NewManager(store)

	if err := mgr.SetField("identity.full_name", "Ana Silva"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if err := mgr.SetField("identity.birth_date", "1994-03-21"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}

	p, err := mgr.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if p.Identity.FullName != "Ana Silva" {
		t.Errorf("expected name %q, got %q", "Ana Silva", p.Identity.FullName)
	}
	if !p.Identity.Onboarded() {
		t.Error("expected onboarded profile after name and birth date set")
	}
}

func TestSetField_Preferences(t *testing.T) {
	store := newMockStore()
	mgr := NewManager(store)

	if err := mgr.SetField("preferences", []string{"love", "career"}); err != nil {
		t.Fatalf("SetField error: %v", err)
	}

	p, err := mgr.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if len(p.Preferences) != 2 || p.Preferences[0] != "love" {
		t.Errorf("unexpected preferences: %v", p.Preferences)
	}
}

func TestChart_RequiresOnboarding(t *testing.T) {
	store := newMockStore()
	mgr := NewManager(store)

	if _, err := mgr.Chart(); err == nil {
		t.Fatal("expected error charting an empty profile")
	}

	mgr.SetField("identity.full_name", "Ana Silva")
	mgr.SetField("identity.birth_date", "1994-03-21")

	chart, err := mgr.Chart()
	if err != nil {
		t.Fatalf("Chart error: %v", err)
	}
	if chart.Sun.Sign == "" {
		t.Error("expected populated chart")
	}
}

func TestChart_Deterministic(t *testing.T) {
	store := newMockStore()
	mgr := NewManager(store)
	mgr.SetField("identity.full_name", "Ana Silva")
	mgr.SetField("identity.birth_date", "1994-03-21")

	a, err := mgr.Chart()
	if err != nil {
		t.Fatalf("Chart error: %v", err)
	}
	b, err := mgr.Chart()
	if err != nil {
		t.Fatalf("Chart error: %v", err)
	}
	if a != b {
		t.Error("same identity should produce the same chart")
	}
}

func TestGetSummary_Empty(t *testing.T) {
	store := newMockStore()
	mgr := NewManager(store)

	summary, err := mgr.GetSummary()
	if err != nil {
		t.Fatalf("GetSummary error: %v", err)
	}
	if summary != "User profile: not yet configured." {
		t.Errorf("unexpected empty summary: %q", summary)
	}
}

func TestGetSummary_Full(t *testing.T) {
	store := newMockStore()
	mgr := NewManager(store)

	mgr.SetField("identity.full_name", "Ana Silva")
	mgr.SetField("identity.birth_date", "1994-03-21")
	mgr.SetField("identity.birth_time", "08:45")
	mgr.SetField("identity.birth_city", "Lisbon")
	mgr.SetField("identity.birth_country", "PT")
	mgr.SetField("preferences", []string{"love", "career"})

	summary, err := mgr.GetSummary()
	if err != nil {
		t.Fatalf("GetSummary error: %v", err)
	}

	checks := []string{"Ana Silva", "1994-03-21", "08:45", "Lisbon, PT", "Sun in", "love, career"}
	for _, want := range checks {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q: %s", want, summary)
		}
	}
}

func TestCacheTTL(t *testing.T) {
	store := newMockStore()
	clock := &mockClock{now: time.Now()}
	mgr := NewManagerWithClock(store, clock, 60*time.Second)

	mgr.SetField("identity.full_name", "Ana Silva")

	mgr.GetProfile()
	mgr.GetProfile()

	store.mu.Lock()
	calls := store.getAllCalls
	store.mu.Unlock()

	if calls != 1 {
		t.Errorf("expected 1 store call (cache hit on second), got %d", calls)
	}
}

func TestCacheInvalidation(t *testing.T) {
	store := newMockStore()
	clock := &mockClock{now: time.Now()}
	ttl := 60 * time.Second
	mgr := NewManagerWithClock(store, clock, ttl)

	mgr.SetField("identity.full_name", "Ana Silva")

	mgr.GetProfile()

	// Advance past TTL
	clock.Advance(ttl + time.Second)

	mgr.GetProfile()

	store.mu.Lock()
	calls := store.getAllCalls
	store.mu.Unlock()

	if calls != 2 {
		t.Errorf("expected 2 store calls (cache expired), got %d", calls)
	}
}

func TestSetFieldInvalidatesCache(t *testing.T) {
	store := newMockStore()
	clock := &mockClock{now: time.Now()}
	mgr := NewManagerWithClock(store, clock, 60*time.Second)

	mgr.SetField("identity.full_name", "Ana Silva")
	mgr.GetProfile()

	mgr.SetField("identity.birth_date", "1994-03-21")

	p, err := mgr.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if p.Identity.BirthDate != "1994-03-21" {
		t.Errorf("expected fresh read after SetField, got %q", p.Identity.BirthDate)
	}
}
