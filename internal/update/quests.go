package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/questd/internal/views"
)

const defaultCustomQuestPoints = 10

func (m Model) handleQuestKey(msg tea.KeyMsg) Model {
	quests := m.ledger.Quests()
	switch msg.String() {
	case "j", "down":
		if m.QuestCursor < len(quests)-1 {
			m.QuestCursor++
		}
	case "k", "up":
		if m.QuestCursor > 0 {
			m.QuestCursor--
		}
	case " ", "enter":
		if m.QuestCursor < 0 || m.QuestCursor >= len(quests) {
			return m
		}
		q := quests[m.QuestCursor]
		if m.ledger.ToggleQuest(q) {
			m.Status = StatusBar{Text: fmt.Sprintf("completed %q: +%d", q.Title, q.Points)}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("undid %q: -%d", q.Title, q.Points)}
		}
	case "a":
		m.QuestForm = QuestFormState{Active: true}
		m.questInput.SetValue("")
		m.questInput.Focus()
		m.Status = StatusBar{Text: "new quest: type a title and optional points"}
	case "R":
		m.ledger.ResetToday()
		m.Status = StatusBar{Text: "today's quests reset"}
	}
	return m
}

func (m Model) handleQuestFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closeQuestForm()
		m.Status = StatusBar{Text: "quest form closed"}
	case "enter":
		title, points := parseQuestForm(m.questInput.Value())
		cq, ok := m.ledger.AddCustomQuest(title, points)
		m = m.closeQuestForm()
		if !ok {
			m.Status = StatusBar{Text: "quest title is required", IsError: true}
			return m
		}
		m.QuestCursor = len(m.ledger.Quests()) - 1
		m.Status = StatusBar{Text: fmt.Sprintf("added quest %q (+%d)", cq.Title, cq.Points)}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.questInput.SetValue(m.questInput.Value() + string(msg.Runes))
		} else {
			m.questInput, _ = m.questInput.Update(msg)
		}
		m.QuestForm.Input = m.questInput.Value()
	}
	return m
}

func (m Model) closeQuestForm() Model {
	m.QuestForm = QuestFormState{}
	m.questInput.SetValue("")
	m.questInput.Blur()
	return m
}

// parseQuestForm splits "Read a chapter 30" into a title and its points. A
// missing trailing number means the default award.
func parseQuestForm(raw string) (string, int) {
	fields := strings.Fields(raw)
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
			return strings.Join(fields[:len(fields)-1], " "), n
		}
	}
	return strings.Join(fields, " "), defaultCustomQuestPoints
}

func (m Model) questItems() []views.QuestItemData {
	quests := m.ledger.Quests()
	items := make([]views.QuestItemData, 0, len(quests))
	for _, q := range quests {
		items = append(items, views.QuestItemData{
			ID:       q.ID,
			Title:    q.Title,
			Points:   q.Points,
			Category: string(q.Category),
			Done:     m.ledger.Completed(q.ID),
		})
	}
	return items
}

func (m Model) renderQuestView() string {
	_, earned := m.ledger.EarnedToday()
	return views.RenderQuestPanel(views.QuestPanelData{
		Items:       m.questItems(),
		Cursor:      m.QuestCursor,
		Points:      m.ledger.Points(),
		Streak:      m.ledger.Streak(),
		EarnedToday: earned,
		FormActive:  m.QuestForm.Active,
		FormView:    m.questInput.View(),
	})
}
