package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/questd/internal/bus"
	"github.com/sandeepkv93/questd/internal/events"
	"github.com/sandeepkv93/questd/internal/focus"
	"github.com/sandeepkv93/questd/internal/quest"
)

type View string

const (
	ViewFocus  View = "Focus"
	ViewQuests View = "Quests"
	ViewStats  View = "Stats"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Focus  string
	Quests string
	Stats  string
	Help   string
	Quit   string
}

// Deps are the long-lived services the TUI drives. The model is the only
// caller of Sync and Ledger mutations while the program runs.
type Deps struct {
	Sync     *focus.Synchronizer
	Ledger   *quest.Ledger
	Hub      *bus.Hub
	Events   *events.Dispatcher
	Notifier DesktopNotifier
}

type Model struct {
	CurrentView    View
	Extension      focus.ExtensionState
	QuestCursor    int
	QuestForm      QuestFormState
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Config         RuntimeConfig

	sync        *focus.Synchronizer
	ledger      *quest.Ledger
	notifier    DesktopNotifier
	statusCh    chan bus.StatusPayload
	eventCh     chan events.Event
	ticking     bool
	polled      bool
	profileSent bool
	statsView   string

	commandInput  textinput.Model
	questInput    textinput.Model
	focusProgress progress.Model
	probeSpinner  spinner.Model
	helpModel     help.Model
}

type QuestFormState struct {
	Active bool
	Input  string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// StatusMsg carries a status published by the blocker peer.
type StatusMsg struct {
	Payload bus.StatusPayload
}

// EventMsg carries an application event dispatched outside Update.
type EventMsg struct {
	Event events.Event
}

type CountdownTickMsg struct{}

type PollMsg struct{}

type ProbeTimeoutMsg struct{}

func NewModel(deps Deps, cfg RuntimeConfig) Model {
	if cfg.FocusWorkMinutes <= 0 {
		cfg.FocusWorkMinutes = DefaultRuntimeConfig().FocusWorkMinutes
	}
	if cfg.FocusBreakMinutes <= 0 {
		cfg.FocusBreakMinutes = DefaultRuntimeConfig().FocusBreakMinutes
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultRuntimeConfig().PollInterval
	}
	m := Model{
		CurrentView:    ViewFocus,
		Extension:      focus.ExtensionUnknown,
		DesktopEnabled: cfg.DesktopNotifications,
		Config:         cfg,
		Keys: GlobalKeyMap{
			Focus:  "1",
			Quests: "2",
			Stats:  "3",
			Help:   "?",
			Quit:   "q",
		},
		sync:     deps.Sync,
		ledger:   deps.Ledger,
		notifier: deps.Notifier,
		statusCh: make(chan bus.StatusPayload, 32),
		eventCh:  make(chan events.Event, 32),
	}
	if m.notifier == nil {
		m.notifier = NoopDesktopNotifier{}
	}
	statusCh, eventCh := m.statusCh, m.eventCh
	if deps.Hub != nil {
		deps.Hub.OnStatus(func(p bus.StatusPayload) {
			select {
			case statusCh <- p:
			default:
			}
		})
	}
	if deps.Events != nil {
		deps.Events.Subscribe("", func(ev events.Event) {
			select {
			case eventCh <- ev:
			default:
			}
		})
	}
	m.initBubbleComponents()
	m.refreshStats()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.questInput = textinput.New()
	m.questInput.Prompt = "quest> "
	m.questInput.CharLimit = 120
	m.questInput.Width = 44

	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(36))

	m.probeSpinner = spinner.New()
	m.probeSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}
