package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/g-jaeger77/celestAI-sub000/internal/config"
)

// --- profile ---

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage user profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current profile as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/profile")
		if err != nil {
			return err
		}

		var profile any
		if err := decodeJSON(resp, &profile); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a profile field",
	Long: `Set a profile field.

Examples:
  celest profile set identity.full_name "Ana Silva"
  celest profile set identity.birth_date 1994-03-21
  celest profile set identity.birth_city Lisbon`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		body := map[string]any{key: value}
		resp, err := client.patch(cmd.Context(), "/profile", body)
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}

// --- today ---

type dashboardView struct {
	Date   string `json:"date"`
	Report struct {
		MindScore    int    `json:"mindScore"`
		NeuralState  string `json:"neuralState"`
		BodyScore    int    `json:"bodyScore"`
		BatteryState string `json:"batteryState"`
		SoulScore    int    `json:"soulScore"`
		MoodState    string `json:"moodState"`
		ActionWindow struct {
			Type  string `json:"type"`
			Title string `json:"title"`
			Time  string `json:"time"`
			Desc  string `json:"desc"`
		} `json:"actionWindow"`
		DailyInsight string `json:"dailyInsight"`
	} `json:"report"`
	Tier       string `json:"tier"`
	Verdict    string `json:"verdict"`
	Highlights struct {
		Mind struct {
			Status string `json:"status"`
			Desc   string `json:"desc"`
		} `json:"mind"`
		Body struct {
			Status string `json:"status"`
			Desc   string `json:"desc"`
		} `json:"body"`
		Soul struct {
			Status string `json:"status"`
			Desc   string `json:"desc"`
		} `json:"soul"`
	} `json:"highlights"`
	Alignment int `json:"alignmentScore"`
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's wellness reading",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/dashboard")
		if err != nil {
			return err
		}

		var d dashboardView
		if err := decodeJSON(resp, &d); err != nil {
			return err
		}

		fmt.Printf("%s  (%s)\n\n", colorize(colorBold, d.Date), strings.ToUpper(d.Tier))
		fmt.Printf("  Mind  %3d  %s — %s\n", d.Report.MindScore, d.Highlights.Mind.Status, d.Highlights.Mind.Desc)
		fmt.Printf("  Body  %3d  %s — %s\n", d.Report.BodyScore, d.Highlights.Body.Status, d.Highlights.Body.Desc)
		fmt.Printf("  Soul  %3d  %s — %s\n", d.Report.SoulScore, d.Highlights.Soul.Status, d.Highlights.Soul.Desc)
		fmt.Printf("\n  Alignment: %d\n", d.Alignment)

		win := d.Report.ActionWindow
		winColor := colorYellow
		if win.Type == "GOLD" {
			winColor = colorGreen
		}
		fmt.Printf("\n  %s %s (%s): %s\n", colorize(winColor, win.Title), win.Time, win.Type, win.Desc)
		fmt.Printf("\n%s\n\n%s\n", d.Verdict, colorize(colorCyan, d.Report.DailyInsight))
		return nil
	},
}

// --- trends ---

type trendsView struct {
	AlignmentScore int    `json:"alignmentScore"`
	TrendValue     string `json:"trendValue"`
	IsPositive     bool   `json:"isPositive"`
	WeeklyData     []struct {
		Day       int `json:"day"`
		Mental    int `json:"mental"`
		Physical  int `json:"physical"`
		Emotional int `json:"emotional"`
		Total     int `json:"total"`
	} `json:"weeklyData"`
	Insights []struct {
		Type  string `json:"type"`
		Title string `json:"title"`
		Desc  string `json:"desc"`
	} `json:"insights"`
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show the seven-day alignment history",
	RunE: func(cmd *cobra.Command, args []string) error {
		partner, _ := cmd.Flags().GetString("partner")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/trends"
		if partner != "" {
			path += "?partner=" + url.QueryEscape(partner)
		}
		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}

		var t trendsView
		if err := decodeJSON(resp, &t); err != nil {
			return err
		}

		trendColor := colorRed
		if t.IsPositive {
			trendColor = colorGreen
		}
		fmt.Printf("Alignment %d  (%s)\n\n", t.AlignmentScore, colorize(trendColor, t.TrendValue))

		fmt.Println("  Day  Mental  Physical  Emotional  Total")
		for _, d := range t.WeeklyData {
			fmt.Printf("  %3d  %6d  %8d  %9d  %5d\n", d.Day, d.Mental, d.Physical, d.Emotional, d.Total)
		}

		for _, in := range t.Insights {
			fmt.Printf("\n%s [%s]\n  %s\n", colorize(colorBold, in.Title), in.Type, in.Desc)
		}
		return nil
	},
}

func init() {
	trendsCmd.Flags().String("partner", "", "partner name for relational insights")
}

// --- history ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved daily snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), fmt.Sprintf("/history?limit=%d", limit))
		if err != nil {
			return err
		}

		var snaps []struct {
			Date      string `json:"date"`
			Mind      int    `json:"mind"`
			Body      int    `json:"body"`
			Soul      int    `json:"soul"`
			Alignment int    `json:"alignment"`
			Tier      string `json:"tier"`
		}
		if err := decodeJSON(resp, &snaps); err != nil {
			return err
		}

		if len(snaps) == 0 {
			fmt.Println("No snapshots yet. Run `celest today` to record one.")
			return nil
		}

		for _, s := range snaps {
			fmt.Printf("%s  mind %3d  body %3d  soul %3d  alignment %3d  %s\n",
				colorize(colorCyan, s.Date), s.Mind, s.Body, s.Soul, s.Alignment, s.Tier)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 30, "maximum number of snapshots to list")
}

// --- connections ---

var connectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "Manage saved connections",
}

var connectionsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a new connection",
	Long: `Save a new connection.

Examples:
  celest connections add "Bruno Costa" --birth-date 1990-11-02 --type love
  celest connections add "Carla Mendes" --birth-date 1992-07-19 --type work`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		birthDate, _ := cmd.Flags().GetString("birth-date")
		birthTime, _ := cmd.Flags().GetString("birth-time")
		birthCity, _ := cmd.Flags().GetString("birth-city")
		relType, _ := cmd.Flags().GetString("type")

		if birthDate == "" {
			return fmt.Errorf("--birth-date is required")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		body := map[string]any{
			"name":      args[0],
			"birthDate": birthDate,
			"birthTime": birthTime,
			"birthCity": birthCity,
			"type":      relType,
		}
		resp, err := client.post(cmd.Context(), "/connections", body)
		if err != nil {
			return err
		}

		var conn struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Score int    `json:"score"`
		}
		if err := decodeJSON(resp, &conn); err != nil {
			return err
		}

		printSuccess("Added %s (score %d, id %s)", conn.Name, conn.Score, conn.ID[:8])
		return nil
	},
}

type connectionView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	RelType   string `json:"type"`
	Score     int    `json:"score"`
}

var connectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/connections")
		if err != nil {
			return err
		}

		var conns []connectionView
		if err := decodeJSON(resp, &conns); err != nil {
			return err
		}

		if len(conns) == 0 {
			fmt.Println("No connections saved.")
			return nil
		}

		for _, c := range conns {
			fmt.Printf("%s  %-24s %-10s %-8s score %3d\n",
				colorize(colorCyan, c.ID[:8]), c.Name, c.BirthDate, c.RelType, c.Score)
		}
		return nil
	},
}

var connectionsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a saved connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), "/connections/"+args[0])
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Removed connection %s", args[0])
		return nil
	},
}

var connectionsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute today's score for every saved connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/connections/refresh", nil)
		if err != nil {
			return err
		}

		var result struct {
			Count int `json:"count"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Refreshed %d connection(s)", result.Count)
		return nil
	},
}

func init() {
	connectionsAddCmd.Flags().String("birth-date", "", "birth date (YYYY-MM-DD)")
	connectionsAddCmd.Flags().String("birth-time", "", "birth time (HH:MM)")
	connectionsAddCmd.Flags().String("birth-city", "", "birth city")
	connectionsAddCmd.Flags().String("type", "love", "relationship context: love, work, or social")
	connectionsCmd.AddCommand(connectionsAddCmd)
	connectionsCmd.AddCommand(connectionsListCmd)
	connectionsCmd.AddCommand(connectionsRemoveCmd)
	connectionsCmd.AddCommand(connectionsRefreshCmd)
}

// --- synastry ---

type synastryView struct {
	Context     string `json:"context"`
	Date        string `json:"date"`
	Total       int    `json:"total"`
	DealBreaker struct {
		Score     int    `json:"score"`
		Title     string `json:"title"`
		IsBad     bool   `json:"isBad"`
		Text      string `json:"text"`
		LowLabel  string `json:"lowLabel"`
		HighLabel string `json:"highLabel"`
	} `json:"dealBreaker"`
	Radar struct {
		Labels [5]string `json:"labels"`
		Self   [5]int    `json:"self"`
		Other  [5]int    `json:"other"`
	} `json:"radar"`
}

var synastryCmd = &cobra.Command{
	Use:   "synastry <connection-id>",
	Short: "Show today's compatibility reading for a connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		context, _ := cmd.Flags().GetString("context")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/connections/" + args[0] + "/synastry"
		if context != "" {
			path += "?context=" + url.QueryEscape(context)
		}
		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}

		var s synastryView
		if err := decodeJSON(resp, &s); err != nil {
			return err
		}

		fmt.Printf("%s  (%s, %s)\n\n", colorize(colorBold, fmt.Sprintf("Compatibility %d", s.Total)), s.Context, s.Date)

		db := s.DealBreaker
		dbColor := colorGreen
		if db.IsBad {
			dbColor = colorRed
		}
		fmt.Printf("  %s: %d  [%s .. %s]\n  %s\n\n", colorize(dbColor, db.Title), db.Score, db.LowLabel, db.HighLabel, db.Text)

		fmt.Println("  Axis           You  Them")
		for i, label := range s.Radar.Labels {
			fmt.Printf("  %-12s  %4d  %4d\n", label, s.Radar.Self[i], s.Radar.Other[i])
		}
		return nil
	},
}

func init() {
	synastryCmd.Flags().String("context", "", "reading context: love, work, or social (default love)")
}

// --- data ---

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Export or purge stored data",
}

var dataExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export profile, connections, and snapshots as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/data/export")
		if err != nil {
			return err
		}

		var payload any
		if err := decodeJSON(resp, &payload); err != nil {
			return err
		}

		writer := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			writer = f
		}

		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}

		if output != "" {
			printSuccess("Data exported to %s", output)
		}
		return nil
	},
}

var dataPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all connections and snapshots (profile is kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			printWarning("This will delete ALL connections and snapshots. Use --confirm to proceed.")
			return nil
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		printStep("Purging stored data...")
		resp, err := client.post(cmd.Context(), "/data/purge", nil)
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("All data purged")
		return nil
	},
}

func init() {
	dataExportCmd.Flags().String("output", "", "output file path (default: stdout)")
	dataPurgeCmd.Flags().Bool("confirm", false, "confirm data purge")
	dataCmd.AddCommand(dataExportCmd)
	dataCmd.AddCommand(dataPurgeCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
