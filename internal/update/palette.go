package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/questd/internal/commands"
	"github.com/sandeepkv93/questd/internal/focus"
	"github.com/sandeepkv93/questd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		return m
	}

	res, err := commands.Execute(cmd, m.commandHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message}
		m.notify("Command", res.Message, "info")
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

var errNoPeer = &commands.CommandError{Code: commands.ErrCodeUnavailable, Message: noPeerMessage}

// commandHandlers binds palette commands to the synchronizer and ledger.
func (m *Model) commandHandlers() commands.Handlers {
	ok := func(format string, args ...any) (commands.Result, error) {
		return commands.Result{Message: fmt.Sprintf(format, args...)}, nil
	}
	return commands.Handlers{
		Start: func(a commands.StartArgs) (commands.Result, error) {
			if m.Extension == focus.ExtensionAbsent {
				return commands.Result{}, errNoPeer
			}
			minutes := a.Minutes
			if minutes == 0 {
				minutes = m.Config.FocusWorkMinutes
			}
			if err := m.sync.StartSession(minutes, a.Domains); err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewFocus
			return ok("focus session requested: %dm", minutes)
		},
		Pause: func() (commands.Result, error) {
			m.sync.Pause()
			return ok("pause requested")
		},
		Resume: func() (commands.Result, error) {
			m.sync.Resume()
			return ok("resume requested")
		},
		Stop: func() (commands.Result, error) {
			m.sync.Stop()
			return ok("stop requested")
		},
		Break: func(a commands.BreakArgs) (commands.Result, error) {
			if m.Extension == focus.ExtensionAbsent {
				return commands.Result{}, errNoPeer
			}
			minutes := a.Minutes
			if minutes == 0 {
				minutes = m.Config.FocusBreakMinutes
			}
			if err := m.sync.StartBreak(minutes); err != nil {
				return commands.Result{}, err
			}
			return ok("break requested: %dm", minutes)
		},
		Block: func(a commands.BlockArgs) (commands.Result, error) {
			list := m.sync.UpdateBlocklist(a.Domains)
			return ok("blocking %d domain(s)", len(list))
		},
		Quest: func(a commands.QuestArgs) (commands.Result, error) {
			switch a.Action {
			case commands.QuestAdd:
				cq, added := m.ledger.AddCustomQuest(a.Title, a.Points)
				if !added {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "quest title is required"}
				}
				return ok("added quest %q (+%d)", cq.Title, cq.Points)
			default:
				completed, found := m.ledger.ToggleByID(a.ID)
				if !found {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown quest: %s", a.ID)}
				}
				if completed {
					return ok("completed quest %s", a.ID)
				}
				return ok("undid quest %s", a.ID)
			}
		},
		Reset: func() (commands.Result, error) {
			m.ledger.ResetToday()
			return ok("today's quests reset")
		},
		Profile: func(a commands.ProfileArgs) (commands.Result, error) {
			m.Config.Profile = model.Profile{MBTI: a.MBTI, Gender: a.Gender, Name: a.Name}
			m.sync.SetProfile(m.Config.Profile)
			return ok("profile sent for %s", a.Name)
		},
	}
}
