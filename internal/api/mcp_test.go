package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/g-jaeger77/celestAI-sub000/internal/profile"
	"github.com/g-jaeger77/celestAI-sub000/internal/storage"
)

// --- helpers ---

func newTestMCPDeps(t *testing.T) (MCPDeps, *storage.Store) {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	profileMgr := profile.NewManager(store)

	return MCPDeps{
		Store:   store,
		Profile: profileMgr,
		Clock:   fixedClock{now: testNow},
	}, store
}

func onboardMCP(t *testing.T, deps MCPDeps) {
	t.Helper()
	if err := deps.Profile.SetField("identity.full_name", "Ana Silva"); err != nil {
		t.Fatal(err)
	}
	if err := deps.Profile.SetField("identity.birth_date", "1994-03-21"); err != nil {
		t.Fatal(err)
	}
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func makeReadResourceRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

// --- tests ---

func TestMCPDailyReport_RequiresOnboarding(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	handler := mcpDailyReport(deps)

	result, err := handler(context.Background(), makeCallToolRequest("daily_report", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for un-onboarded profile")
	}
}

func TestMCPDailyReport(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	onboardMCP(t, deps)
	handler := mcpDailyReport(deps)

	result, err := handler(context.Background(), makeCallToolRequest("daily_report", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", toolText(t, result))
	}

	var payload struct {
		Tier    string `json:"tier"`
		Verdict string `json:"verdict"`
	}
	if err := json.Unmarshal([]byte(toolText(t, result)), &payload); err != nil {
		t.Fatalf("unmarshalling report: %v", err)
	}
	if payload.Tier == "" || payload.Verdict == "" {
		t.Errorf("incomplete report: %+v", payload)
	}
}

func TestMCPCompatibility_RequiresName(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	onboardMCP(t, deps)
	handler := mcpCompatibility(deps)

	result, err := handler(context.Background(), makeCallToolRequest("compatibility", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing name")
	}
}

func TestMCPCompatibility(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	onboardMCP(t, deps)
	handler := mcpCompatibility(deps)

	result, err := handler(context.Background(), makeCallToolRequest("compatibility", map[string]interface{}{
		"name":       "Bruno Costa",
		"birth_date": "1990-11-02",
		"context":    "work",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", toolText(t, result))
	}

	var payload struct {
		Context string `json:"context"`
		Total   int    `json:"total"`
	}
	if err := json.Unmarshal([]byte(toolText(t, result)), &payload); err != nil {
		t.Fatalf("unmarshalling result: %v", err)
	}
	if payload.Context != "work" {
		t.Errorf("context = %q, want %q", payload.Context, "work")
	}
	if payload.Total < 0 || payload.Total > 100 {
		t.Errorf("total = %d, want [0,100]", payload.Total)
	}
}

func TestMCPWeeklyTrends(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	onboardMCP(t, deps)
	handler := mcpWeeklyTrends(deps)

	result, err := handler(context.Background(), makeCallToolRequest("weekly_trends", map[string]interface{}{
		"partner": "Bruno Costa",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", toolText(t, result))
	}

	var payload struct {
		WeeklyData []struct {
			Total int `json:"total"`
		} `json:"weeklyData"`
	}
	if err := json.Unmarshal([]byte(toolText(t, result)), &payload); err != nil {
		t.Fatalf("unmarshalling trends: %v", err)
	}
	if len(payload.WeeklyData) != 7 {
		t.Errorf("weeklyData length = %d, want 7", len(payload.WeeklyData))
	}
}

func TestMCPSetBirthData(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	handler := mcpSetBirthData(deps)

	result, err := handler(context.Background(), makeCallToolRequest("set_birth_data", map[string]interface{}{
		"full_name":  "Ana Silva",
		"birth_date": "1994-03-21",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", toolText(t, result))
	}

	p, err := deps.Profile.GetProfile()
	if err != nil {
		t.Fatal(err)
	}
	if !p.Identity.Onboarded() {
		t.Error("expected onboarded profile after set_birth_data")
	}
}

func TestMCPSetBirthData_NoFields(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	handler := mcpSetBirthData(deps)

	result, err := handler(context.Background(), makeCallToolRequest("set_birth_data", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result when no fields provided")
	}
}

func TestMCPResourceProfile(t *testing.T) {
	deps, _ := newTestMCPDeps(t)
	onboardMCP(t, deps)
	handler := mcpResourceProfile(deps)

	contents, err := handler(context.Background(), makeReadResourceRequest("user://profile"))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents length = %d, want 1", len(contents))
	}

	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}

	var p profile.Profile
	if err := json.Unmarshal([]byte(text.Text), &p); err != nil {
		t.Fatalf("unmarshalling profile: %v", err)
	}
	if p.Identity.FullName != "Ana Silva" {
		t.Errorf("full name = %q, want %q", p.Identity.FullName, "Ana Silva")
	}
}
