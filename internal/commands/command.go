package commands

import (
	"fmt"
	"strconv"
	"strings"
)

const MaxSessionMinutes = 240

type Type string

const (
	TypeStart   Type = "start"
	TypePause   Type = "pause"
	TypeResume  Type = "resume"
	TypeStop    Type = "stop"
	TypeBreak   Type = "break"
	TypeBlock   Type = "block"
	TypeQuest   Type = "quest"
	TypeReset   Type = "reset"
	TypeProfile Type = "profile"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
	ErrCodeUnavailable     ErrorCode = "unavailable"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// StartArgs.Minutes is zero when the configured default should be used.
type StartArgs struct {
	Minutes int
	Domains []string
}

type BreakArgs struct {
	Minutes int
}

type BlockArgs struct {
	Domains []string
}

type QuestAction string

const (
	QuestAdd  QuestAction = "add"
	QuestDone QuestAction = "done"
)

type QuestArgs struct {
	Action QuestAction
	ID     string
	Title  string
	Points int
}

type ProfileArgs struct {
	MBTI   string
	Gender string
	Name   string
}

type Command struct {
	Type    Type
	Raw     string
	Start   *StartArgs
	Break   *BreakArgs
	Block   *BlockArgs
	Quest   *QuestArgs
	Profile *ProfileArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeStart:
		return parseStart(input, args)
	case TypeBreak:
		return parseBreak(input, args)
	case TypePause, TypeResume, TypeStop, TypeReset:
		if len(args) > 0 {
			return Command{}, invalid("%s takes no arguments", head)
		}
		return Command{Type: Type(head), Raw: input}, nil
	case TypeBlock:
		if len(args) == 0 {
			return Command{}, invalid("block requires at least one domain")
		}
		return Command{Type: TypeBlock, Raw: input, Block: &BlockArgs{Domains: args}}, nil
	case TypeQuest:
		return parseQuest(input, args)
	case TypeProfile:
		return parseProfile(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseMinutes(raw string) (int, bool, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, nil
	}
	if v < 1 || v > MaxSessionMinutes {
		return 0, true, invalid("minutes must be between 1 and %d", MaxSessionMinutes)
	}
	return v, true, nil
}

func parseStart(raw string, args []string) (Command, error) {
	start := &StartArgs{}
	if len(args) > 0 {
		minutes, numeric, err := parseMinutes(args[0])
		if err != nil {
			return Command{}, err
		}
		if numeric {
			start.Minutes = minutes
			args = args[1:]
		}
	}
	if len(args) > 0 {
		start.Domains = args
	}
	return Command{Type: TypeStart, Raw: raw, Start: start}, nil
}

func parseBreak(raw string, args []string) (Command, error) {
	brk := &BreakArgs{}
	switch len(args) {
	case 0:
	case 1:
		minutes, numeric, err := parseMinutes(args[0])
		if err != nil {
			return Command{}, err
		}
		if !numeric {
			return Command{}, invalid("break minutes must be a number")
		}
		brk.Minutes = minutes
	default:
		return Command{}, invalid("break takes at most one argument")
	}
	return Command{Type: TypeBreak, Raw: raw, Break: brk}, nil
}

func parseQuest(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("quest requires add or done")
	}
	switch QuestAction(strings.ToLower(args[0])) {
	case QuestAdd:
		if len(args) < 3 {
			return Command{}, invalid("quest add requires points and a title")
		}
		points, err := strconv.Atoi(args[1])
		if err != nil {
			return Command{}, invalid("quest points must be a number")
		}
		title := strings.TrimSpace(strings.Join(args[2:], " "))
		return Command{Type: TypeQuest, Raw: raw, Quest: &QuestArgs{Action: QuestAdd, Points: points, Title: title}}, nil
	case QuestDone:
		if len(args) != 2 {
			return Command{}, invalid("quest done requires a quest id")
		}
		return Command{Type: TypeQuest, Raw: raw, Quest: &QuestArgs{Action: QuestDone, ID: args[1]}}, nil
	default:
		return Command{}, invalid("unknown quest action: %s", args[0])
	}
}

func parseProfile(raw string, args []string) (Command, error) {
	if len(args) < 3 {
		return Command{}, invalid("profile requires mbti, gender and name")
	}
	mbti := strings.ToUpper(args[0])
	if len(mbti) != 4 {
		return Command{}, invalid("mbti must be four letters, got %q", args[0])
	}
	return Command{Type: TypeProfile, Raw: raw, Profile: &ProfileArgs{
		MBTI:   mbti,
		Gender: strings.ToLower(args[1]),
		Name:   strings.Join(args[2:], " "),
	}}, nil
}
