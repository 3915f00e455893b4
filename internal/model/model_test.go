package model

import (
	"errors"
	"testing"
	"time"
)

func TestDayKeyUsesLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	now := time.Date(2026, 2, 9, 23, 30, 0, 0, time.UTC).In(loc)
	if got := DayKey(now); got != "2026-02-10" {
		t.Fatalf("unexpected day key: %s", got)
	}
}

func TestPreviousDayCrossesBoundaries(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-02-01", "2024-01-31"},
		{"2024-03-01", "2024-02-29"},
		{"2023-03-01", "2023-02-28"},
		{"2025-01-01", "2024-12-31"},
		{"2026-02-10", "2026-02-09"},
	}
	for _, tc := range cases {
		got, err := PreviousDay(tc.in)
		if err != nil {
			t.Fatalf("previous day %q failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("previous day %q = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestPreviousDayRejectsGarbage(t *testing.T) {
	_, err := PreviousDay("02/01/2024")
	if !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("FOCUS") != ModeFocus {
		t.Fatal("expected focus mode")
	}
	if ParseMode(" paused ") != ModePaused {
		t.Fatal("expected paused mode")
	}
	if ParseMode("running") != ModeIdle {
		t.Fatal("expected unknown mode to map to idle")
	}
}

func TestQuestValidate(t *testing.T) {
	q := Quest{ID: "plan-day", Title: "Plan the day", Points: 10, Category: CategoryPlanning}
	if err := q.Validate(); err != nil {
		t.Fatalf("expected valid quest, got %v", err)
	}

	q.Category = QuestCategory("Bogus")
	if err := q.Validate(); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}

	q.Category = CategoryFocus
	q.Points = 0
	if err := q.Validate(); err == nil {
		t.Fatal("expected points range error")
	}
}

func TestClampPoints(t *testing.T) {
	if ClampPoints(99999) != MaxQuestPoints {
		t.Fatal("expected upper clamp")
	}
	if ClampPoints(-4) != MinQuestPoints {
		t.Fatal("expected lower clamp")
	}
	if ClampPoints(50) != 50 {
		t.Fatal("expected value unchanged")
	}
}

func TestSessionHistoryEntryValidate(t *testing.T) {
	if err := (SessionHistoryEntry{Date: "2026-02-09", Minutes: 25}).Validate(); err != nil {
		t.Fatalf("expected valid entry, got %v", err)
	}
	err := SessionHistoryEntry{Date: "2026-02-09", Minutes: -1}.Validate()
	if !errors.Is(err, ErrInvalidMinutes) {
		t.Fatalf("expected ErrInvalidMinutes, got %v", err)
	}
}
