package update

import (
	"github.com/sandeepkv93/questd/internal/views"
)

const statsWidth = 56

func (m Model) statsData() views.StatsData {
	today := m.ledgerToday()
	done, _ := m.ledger.EarnedToday()
	history := m.sync.History()
	recent := history.Recent(7)
	rows := make([]views.HistoryRow, 0, len(recent))
	for _, e := range recent {
		rows = append(rows, views.HistoryRow{Date: e.Date, Minutes: e.Minutes})
	}
	return views.StatsData{
		Today:        today,
		TodayMinutes: history.Day(today),
		TotalMinutes: history.TotalMinutes(),
		Points:       m.ledger.Points(),
		Streak:       m.ledger.Streak(),
		LastActive:   m.ledger.LastActiveDate(),
		QuestsDone:   done,
		QuestsTotal:  len(m.ledger.Quests()),
		ActiveDays:   m.ledger.ActiveDays(),
		Recent:       rows,
	}
}

// refreshStats re-renders the stats markdown. Rendering is done on change
// rather than in View.
func (m *Model) refreshStats() {
	if m.sync == nil || m.ledger == nil {
		m.statsView = ""
		return
	}
	m.statsView = views.RenderMarkdown(views.BuildStatsMarkdown(m.statsData()), statsWidth)
}
