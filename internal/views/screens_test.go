package views

import (
	"strings"
	"testing"
)

func TestRenderFocusPanelEnablePrompt(t *testing.T) {
	out := RenderFocusPanel(FocusPanelData{Mode: "idle", ShowEnablePrompt: true})
	if !strings.Contains(out, "Enable blocking") {
		t.Fatalf("expected enable prompt, got:\n%s", out)
	}
	if strings.Contains(out, "[s]start") {
		t.Fatalf("expected no session controls while blocking is unavailable, got:\n%s", out)
	}
}

func TestRenderFocusPanelActions(t *testing.T) {
	out := RenderFocusPanel(FocusPanelData{Mode: "paused", Timer: "12:00", Blocklist: []string{"news.example"}})
	if !strings.Contains(out, "[p]resume") || !strings.Contains(out, "news.example") {
		t.Fatalf("unexpected paused panel:\n%s", out)
	}
	out = RenderFocusPanel(FocusPanelData{Mode: "focus", Active: true})
	if !strings.Contains(out, "[p]pause") || !strings.Contains(out, "blocking: (nothing)") {
		t.Fatalf("unexpected active panel:\n%s", out)
	}
}

func TestBuildStatsMarkdown(t *testing.T) {
	md := BuildStatsMarkdown(StatsData{
		Today:        "2026-02-09",
		TodayMinutes: 50,
		TotalMinutes: 75,
		Points:       40,
		Streak:       3,
		LastActive:   "2026-02-09",
		QuestsDone:   2,
		QuestsTotal:  5,
		ActiveDays:   4,
		Recent: []HistoryRow{
			{Date: "2026-02-08", Minutes: 25},
			{Date: "2026-02-09", Minutes: 50},
		},
	})
	for _, want := range []string{"**Points:** 40", "3 day(s), last active 2026-02-09", "2/5", "**Active days:** 4", "| 2026-02-09 | 50 | " + strings.Repeat("#", 20) + " |", "| 2026-02-08 | 25 | " + strings.Repeat("#", 10) + " |"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}

	empty := BuildStatsMarkdown(StatsData{})
	if !strings.Contains(empty, "No completed focus sessions yet") {
		t.Fatalf("expected empty history note, got:\n%s", empty)
	}
}

func TestRenderQuestList(t *testing.T) {
	out := RenderQuestList([]QuestItemData{
		{ID: "stretch", Title: "Stretch", Points: 5, Done: true},
		{ID: "reflect", Title: "Reflect", Points: 10},
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "[x] stretch") || !strings.HasPrefix(lines[1], "[ ] reflect") {
		t.Fatalf("unexpected list:\n%s", out)
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if got := RenderMarkdown("   ", 40); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
	if got := RenderMarkdown("# Stats", 40); !strings.Contains(got, "Stats") {
		t.Fatalf("expected heading text, got %q", got)
	}
}
