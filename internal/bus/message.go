package bus

import "encoding/json"

const DefaultApp = "questd"

type Action string

const (
	ActionGetStatus       Action = "getStatus"
	ActionStartSession    Action = "startSession"
	ActionPauseSession    Action = "pauseSession"
	ActionResumeSession   Action = "resumeSession"
	ActionStopSession     Action = "stopSession"
	ActionStartBreak      Action = "startBreak"
	ActionUpdateBlocklist Action = "updateBlocklist"
	ActionSetProfile      Action = "setProfile"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionGetStatus, ActionStartSession, ActionPauseSession, ActionResumeSession,
		ActionStopSession, ActionStartBreak, ActionUpdateBlocklist, ActionSetProfile:
		return true
	default:
		return false
	}
}

// RequestType and ResponseType derive the message type tags from an app name.
func RequestType(app string) string  { return app + ":focus" }
func ResponseType(app string) string { return app + ":focus:status" }

type Request struct {
	Type    string          `json:"type"`
	Action  Action          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Response struct {
	Type    string        `json:"type"`
	Payload StatusPayload `json:"payload"`
}

type StatusPayload struct {
	Active          bool     `json:"active"`
	Mode            string   `json:"mode"`
	RemainingMs     int64    `json:"remainingMs"`
	Domains         []string `json:"domains,omitempty"`
	LastDurationMin *int     `json:"lastDurationMin,omitempty"`
}

type StartSessionPayload struct {
	DurationMinutes int      `json:"durationMinutes"`
	Domains         []string `json:"domains"`
}

type StartBreakPayload struct {
	DurationMinutes int `json:"durationMinutes"`
}

type BlocklistPayload struct {
	Domains []string `json:"domains"`
}

type ProfilePayload struct {
	MBTI   string `json:"mbti"`
	Gender string `json:"gender"`
	Name   string `json:"name"`
}
