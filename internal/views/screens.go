package views

import (
	"fmt"
	"strings"
)

type FocusPanelData struct {
	Mode             string
	Active           bool
	Timer            string
	ProgressView     string
	ProgressPct      int
	Blocklist        []string
	TodayMinutes     int
	Extension        string
	SpinnerView      string
	ShowEnablePrompt bool
}

type QuestItemData struct {
	ID       string
	Title    string
	Points   int
	Category string
	Done     bool
}

type QuestPanelData struct {
	Items       []QuestItemData
	Cursor      int
	Points      int
	Streak      int
	EarnedToday int
	FormActive  bool
	FormView    string
}

type HistoryRow struct {
	Date    string
	Minutes int
}

type StatsData struct {
	Today        string
	TodayMinutes int
	TotalMinutes int
	Points       int
	Streak       int
	LastActive   string
	QuestsDone   int
	QuestsTotal  int
	ActiveDays   int
	Recent       []HistoryRow
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.ShowEnablePrompt {
		b.WriteString(promptStyle.Render("Enable blocking") + "\n")
		b.WriteString("no blocker extension answered.\n")
		b.WriteString("install the questd blocker extension, start `questd bridge`,\n")
		b.WriteString("or run `questd tui --simulate`, then press [r] to retry.\n")
		return strings.TrimSpace(b.String())
	}
	if data.Extension == "unknown" {
		b.WriteString(fmt.Sprintf("%s looking for the blocker extension...\n", data.SpinnerView))
	}
	b.WriteString(fmt.Sprintf("mode: %s\n", strings.ToUpper(data.Mode)))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("focused today: %dm\n", data.TodayMinutes))
	if len(data.Blocklist) == 0 {
		b.WriteString("blocking: (nothing)\n")
	} else {
		b.WriteString(fmt.Sprintf("blocking: %s\n", strings.Join(data.Blocklist, ", ")))
	}
	if data.Active {
		b.WriteString("actions: [p]pause [x]stop [r]refresh\n")
	} else if data.Mode == "paused" {
		b.WriteString("actions: [p]resume [x]stop [r]refresh\n")
	} else {
		b.WriteString("actions: [s]start focus [b]break [r]refresh\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderQuestPanel(data QuestPanelData) string {
	var b strings.Builder
	b.WriteString("quests:\n")
	b.WriteString(fmt.Sprintf("points: %d | streak: %d | earned today: %d\n", data.Points, data.Streak, data.EarnedToday))
	b.WriteString("actions: [j/k]move [space]toggle [a]add [R]reset today\n\n")
	if len(data.Items) == 0 {
		b.WriteString("(no quests)\n")
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		box := "[ ]"
		title := item.Title
		if item.Done {
			box = "[x]"
			title = doneStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s %s %s (+%d, %s)\n", cursor, box, title, item.Points, strings.ToLower(item.Category)))
	}
	if data.FormActive {
		b.WriteString("\nnew quest: title then points, e.g. \"Read a chapter 30\"\n")
		b.WriteString(data.FormView)
	}
	return strings.TrimSpace(b.String())
}

// RenderQuestList is the plain listing used outside the TUI.
func RenderQuestList(items []QuestItemData) string {
	var b strings.Builder
	for _, item := range items {
		box := "[ ]"
		if item.Done {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %-28s %-40s +%d\n", box, item.ID, item.Title, item.Points))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// BuildStatsMarkdown summarises counters and focus history as markdown.
func BuildStatsMarkdown(data StatsData) string {
	var b strings.Builder
	b.WriteString("# Stats\n\n")
	b.WriteString(fmt.Sprintf("- **Points:** %d\n", data.Points))
	b.WriteString(fmt.Sprintf("- **Streak:** %d day(s)", data.Streak))
	if data.LastActive != "" {
		b.WriteString(fmt.Sprintf(", last active %s", data.LastActive))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("- **Quests today:** %d/%d\n", data.QuestsDone, data.QuestsTotal))
	b.WriteString(fmt.Sprintf("- **Active days:** %d\n", data.ActiveDays))
	b.WriteString(fmt.Sprintf("- **Focus today (%s):** %d min\n", data.Today, data.TodayMinutes))
	b.WriteString(fmt.Sprintf("- **Focus all time:** %d min\n\n", data.TotalMinutes))

	b.WriteString("## Recent focus\n\n")
	if len(data.Recent) == 0 {
		b.WriteString("_No completed focus sessions yet._\n")
		return b.String()
	}
	b.WriteString("| Date | Minutes | |\n|---|---:|---|\n")
	peak := 0
	for _, r := range data.Recent {
		peak = max(peak, r.Minutes)
	}
	for _, r := range data.Recent {
		b.WriteString(fmt.Sprintf("| %s | %d | %s |\n", r.Date, r.Minutes, bar(r.Minutes, peak, 20)))
	}
	return b.String()
}

func bar(value, peak, width int) string {
	if peak <= 0 || value <= 0 {
		return ""
	}
	n := value * width / peak
	if n < 1 {
		n = 1
	}
	return strings.Repeat("#", n)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
