package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/questd/internal/events"
	"github.com/sandeepkv93/questd/internal/focus"
	"github.com/sandeepkv93/questd/internal/model"
	"github.com/sandeepkv93/questd/internal/views"
)

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		if !m.requirePeer() {
			return m, nil
		}
		if err := m.sync.StartSession(m.Config.FocusWorkMinutes, nil); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("focus session requested: %dm", m.Config.FocusWorkMinutes)}
	case "b":
		if !m.requirePeer() {
			return m, nil
		}
		if err := m.sync.StartBreak(m.Config.FocusBreakMinutes); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("break requested: %dm", m.Config.FocusBreakMinutes)}
	case "p":
		st := m.sync.Status()
		switch {
		case st.Mode == model.ModePaused:
			m.sync.Resume()
			m.Status = StatusBar{Text: "resume requested"}
		case st.Active:
			m.sync.Pause()
			m.Status = StatusBar{Text: "pause requested"}
		default:
			m.Status = StatusBar{Text: "no session to pause", IsError: true}
		}
	case "x":
		m.sync.Stop()
		m.Status = StatusBar{Text: "stop requested"}
	case "r":
		m.sync.Reprobe()
		if m.Extension == focus.ExtensionPresent {
			m.Status = StatusBar{Text: "status refreshed"}
			return m, nil
		}
		m.Extension = focus.ExtensionUnknown
		m.Status = StatusBar{Text: "looking for the blocker extension"}
		return m, tea.Batch(m.probeSpinner.Tick, probeTimeoutCmd(m.sync.ProbeTimeout()))
	}
	return m, nil
}

const noPeerMessage = "enable blocking first: no blocker extension answered"

// requirePeer refuses session controls while the extension is known to be
// absent.
func (m *Model) requirePeer() bool {
	if m.Extension == focus.ExtensionAbsent {
		m.Status = StatusBar{Text: noPeerMessage, IsError: true}
		return false
	}
	return true
}

func (m Model) onStatus(msg StatusMsg) (Model, tea.Cmd) {
	done := m.sync.HandleStatus(msg.Payload)
	m.Extension = focus.ExtensionPresent
	if !m.profileSent {
		m.profileSent = true
		m.sync.SetProfile(m.Config.Profile)
	}
	if done.Logged {
		m.Status = StatusBar{Text: fmt.Sprintf("focus session complete: +%d min", done.Minutes)}
	}
	if m.sync.Ticking() && !m.ticking {
		m.ticking = true
		return m, countdownTickCmd()
	}
	return m, nil
}

// onCountdownTick keeps at most one tick chain alive. A stale tick that
// arrives after ticking stopped ends the chain.
func (m Model) onCountdownTick() (Model, tea.Cmd) {
	if !m.sync.Ticking() {
		m.ticking = false
		return m, nil
	}
	if m.sync.Tick() {
		return m, countdownTickCmd()
	}
	m.ticking = false
	m.sync.RequestStatus()
	return m, nil
}

func (m Model) onPoll() (Model, tea.Cmd) {
	first := !m.polled
	m.polled = true
	m.sync.RequestStatus()
	if first {
		return m, tea.Batch(pollCmd(m.Config.PollInterval), probeTimeoutCmd(m.sync.ProbeTimeout()))
	}
	return m, pollCmd(m.Config.PollInterval)
}

// onProbeTimeout keeps probing while the synchronizer still reports unknown,
// so a probe that fires early cannot leave the state unresolved.
func (m Model) onProbeTimeout() (Model, tea.Cmd) {
	m.Extension = m.sync.Extension()
	switch m.Extension {
	case focus.ExtensionAbsent:
		m.Status = StatusBar{Text: "no blocker extension answered", IsError: true}
	case focus.ExtensionUnknown:
		return m, probeTimeoutCmd(m.sync.ProbeTimeout())
	}
	return m, nil
}

func (m Model) onEvent(ev events.Event) Model {
	switch ev.Kind {
	case events.KindSessionCompleted:
		body := fmt.Sprintf("%d minute(s) logged", ev.Minutes)
		m.notify("Focus complete", body, "info")
		m.notifyDesktop(Notification{Title: "Focus session complete", Body: body, Level: "info", At: time.Now().UTC()})
		m.refreshStats()
	case events.KindFocusDataChanged, events.KindCountersChanged:
		m.refreshStats()
	}
	return m
}

func (m Model) renderFocusView() string {
	st := m.sync.Status()
	total := m.sync.SessionTotalMs()
	pct := 0.0
	if total > 0 && st.Mode != model.ModeIdle {
		pct = float64(total-st.RemainingMs) / float64(total)
		pct = min(max(pct, 0), 1)
	}
	return views.RenderFocusPanel(views.FocusPanelData{
		Mode:             string(st.Mode),
		Active:           st.Active,
		Timer:            formatDuration(int(st.RemainingMs / 1000)),
		ProgressView:     m.focusProgress.ViewAs(pct),
		ProgressPct:      int(pct * 100),
		Blocklist:        m.sync.Blocklist(),
		TodayMinutes:     m.sync.History().Day(m.ledgerToday()),
		Extension:        string(m.Extension),
		SpinnerView:      m.probeSpinner.View(),
		ShowEnablePrompt: m.Extension == focus.ExtensionAbsent,
	})
}

func countdownTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return CountdownTickMsg{} })
}
