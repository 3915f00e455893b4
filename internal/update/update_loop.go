package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/questd/internal/bus"
	"github.com/sandeepkv93/questd/internal/events"
	"github.com/sandeepkv93/questd/internal/focus"
	"github.com/sandeepkv93/questd/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return PollMsg{} },
		m.probeSpinner.Tick,
		waitForStatusCmd(m.statusCh),
		waitForEventCmd(m.eventCh),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}
		if m.QuestForm.Active {
			return m.handleQuestFormKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			return m, nil
		case m.Keys.Quests:
			m.CurrentView = ViewQuests
			return m, nil
		case m.Keys.Stats:
			m.CurrentView = ViewStats
			m.refreshStats()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewFocus:
			return m.handleFocusKey(typed)
		case ViewQuests:
			return m.handleQuestKey(typed), nil
		}
	case spinner.TickMsg:
		if m.Extension != focus.ExtensionUnknown {
			return m, nil
		}
		var cmd tea.Cmd
		m.probeSpinner, cmd = m.probeSpinner.Update(typed)
		return m, cmd
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewStats {
				m.refreshStats()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case StatusMsg:
		next, cmd := m.onStatus(typed)
		return next, tea.Batch(cmd, waitForStatusCmd(m.statusCh))
	case EventMsg:
		m = m.onEvent(typed.Event)
		return m, waitForEventCmd(m.eventCh)
	case CountdownTickMsg:
		return m.onCountdownTick()
	case PollMsg:
		return m.onPoll()
	case ProbeTimeoutMsg:
		return m.onProbeTimeout()
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	switch m.CurrentView {
	case ViewFocus:
		leftPane = m.renderFocusView()
	case ViewQuests:
		leftPane = m.renderQuestView()
	case ViewStats:
		leftPane = m.statsView
	}
	rightPane := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("questd | %s | extension: %s", m.ledgerToday(), m.Extension),
		Tabs:         []string{string(ViewFocus), string(ViewQuests), string(ViewStats)},
		ActiveTab:    string(m.CurrentView),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s focus | %s quests | %s stats | / cmd | %s help | %s quit", m.Keys.Focus, m.Keys.Quests, m.Keys.Stats, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewFocus, ViewQuests, ViewStats:
		return true
	default:
		return false
	}
}

func waitForStatusCmd(ch <-chan bus.StatusPayload) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Payload: <-ch}
	}
}

func waitForEventCmd(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		return EventMsg{Event: <-ch}
	}
}

func pollCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return PollMsg{} })
}

func probeTimeoutCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return ProbeTimeoutMsg{} })
}
