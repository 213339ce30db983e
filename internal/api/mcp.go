package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/g-jaeger77/celestAI-sub000/internal/biometrics"
	"github.com/g-jaeger77/celestAI-sub000/internal/profile"
	"github.com/g-jaeger77/celestAI-sub000/internal/storage"
	"github.com/g-jaeger77/celestAI-sub000/internal/synastry"
	"github.com/g-jaeger77/celestAI-sub000/internal/synergy"
	"github.com/g-jaeger77/celestAI-sub000/internal/trends"
	"github.com/g-jaeger77/celestAI-sub000/internal/zodiac"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Store   *storage.Store
	Profile *profile.Manager
	Clock   profile.Clock // optional; defaults to wall clock
}

// NewMCPServer creates an MCP server with all celest tools and resources registered.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	if deps.Clock == nil {
		deps.Clock = systemClock{}
	}

	s := server.NewMCPServer(
		"celest",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("celest — local symbolic wellness engine for daily readings, compatibility, and trends."),
		server.WithRecovery(),
	)

	// Tools
	s.AddTool(
		mcp.NewTool("daily_report",
			mcp.WithDescription("Generate today's wellness reading for the configured user: pillar scores, synergy verdict, and per-pillar highlights."),
		),
		mcpDailyReport(deps),
	)

	s.AddTool(
		mcp.NewTool("compatibility",
			mcp.WithDescription("Compute today's compatibility reading between the configured user and another person."),
			mcp.WithString("name", mcp.Description("The other person's full name"), mcp.Required()),
			mcp.WithString("birth_date", mcp.Description("The other person's birth date (YYYY-MM-DD)")),
			mcp.WithString("context", mcp.Description("Reading context: love, work, or social (default love)")),
		),
		mcpCompatibility(deps),
	)

	s.AddTool(
		mcp.NewTool("weekly_trends",
			mcp.WithDescription("Generate the seven-day alignment history and insight list for the configured user."),
			mcp.WithString("partner", mcp.Description("Optional partner name to include relational insights")),
		),
		mcpWeeklyTrends(deps),
	)

	s.AddTool(
		mcp.NewTool("set_birth_data",
			mcp.WithDescription("Update the configured user's birth identity fields."),
			mcp.WithString("full_name", mcp.Description("Full name")),
			mcp.WithString("birth_date", mcp.Description("Birth date (YYYY-MM-DD)")),
			mcp.WithString("birth_time", mcp.Description("Birth time (HH:MM)")),
			mcp.WithString("birth_city", mcp.Description("Birth city")),
			mcp.WithString("birth_country", mcp.Description("Birth country")),
		),
		mcpSetBirthData(deps),
	)

	// Resources
	s.AddResource(
		mcp.NewResource(
			"user://profile",
			"User Profile",
			mcp.WithResourceDescription("Current user profile as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceProfile(deps),
	)

	return s
}

func mcpDailyReport(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := deps.Profile.GetProfile()
		if err != nil {
			return mcpError(fmt.Sprintf("failed to get profile: %v", err)), nil
		}
		if !p.Identity.Onboarded() {
			return mcpError("profile incomplete: set birth data with set_birth_data first"), nil
		}

		now := deps.Clock.Now()
		report := biometrics.Compute(p.Identity.FullName, now)
		pillars := report.Pillars()

		payload := map[string]any{
			"report":     report,
			"tier":       synergy.Classify(pillars),
			"verdict":    synergy.Verdict(pillars),
			"highlights": synergy.Highlights(pillars),
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal report: %v", err)), nil
		}

		return mcpText(string(b)), nil
	}
}

func mcpCompatibility(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcpError("name is required"), nil
		}
		birthDate := req.GetString("birth_date", "")
		rctx := zodiac.ParseContext(req.GetString("context", ""))

		p, err := deps.Profile.GetProfile()
		if err != nil {
			return mcpError(fmt.Sprintf("failed to get profile: %v", err)), nil
		}
		if !p.Identity.Onboarded() {
			return mcpError("profile incomplete: set birth data with set_birth_data first"), nil
		}

		dateStr := trends.DateString(deps.Clock.Now())
		self := zodiac.GenerateChart(p.Identity.FullName, p.Identity.BirthDate)
		other := zodiac.GenerateChart(name, birthDate)
		src := zodiac.NewSource(synastry.SeedFor(p.Identity.FullName, name, dateStr))
		result := synastry.Compute(self, other, src)

		payload := map[string]any{
			"context":     rctx,
			"date":        dateStr,
			"scores":      result,
			"total":       synastry.TotalFor(result, rctx),
			"dealBreaker": synastry.DealBreakerFor(result, rctx),
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}

		return mcpText(string(b)), nil
	}
}

func mcpWeeklyTrends(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		partner := req.GetString("partner", "")

		p, err := deps.Profile.GetProfile()
		if err != nil {
			return mcpError(fmt.Sprintf("failed to get profile: %v", err)), nil
		}
		if !p.Identity.Onboarded() {
			return mcpError("profile incomplete: set birth data with set_birth_data first"), nil
		}

		dateStr := trends.DateString(deps.Clock.Now())
		snapshot := trends.Compute(p.Identity.FullName, dateStr, partner)

		b, err := json.Marshal(snapshot)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal trends: %v", err)), nil
		}

		return mcpText(string(b)), nil
	}
}

// birthDataKeys maps tool arguments to profile keys.
var birthDataKeys = map[string]string{
	"full_name":     "identity.full_name",
	"birth_date":    "identity.birth_date",
	"birth_time":    "identity.birth_time",
	"birth_city":    "identity.birth_city",
	"birth_country": "identity.birth_country",
}

func mcpSetBirthData(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var set []string
		for arg, key := range birthDataKeys {
			v := req.GetString(arg, "")
			if v == "" {
				continue
			}
			if err := deps.Profile.SetField(key, v); err != nil {
				return mcpError(fmt.Sprintf("failed to set %s: %v", arg, err)), nil
			}
			set = append(set, arg)
		}

		if len(set) == 0 {
			return mcpError("no fields provided"), nil
		}
		return mcpText(fmt.Sprintf("Updated %d birth data field(s)", len(set))), nil
	}
}

func mcpResourceProfile(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		p, err := deps.Profile.GetProfile()
		if err != nil {
			return nil, fmt.Errorf("failed to get profile: %w", err)
		}

		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal profile: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
