package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Start   func(StartArgs) (Result, error)
	Pause   func() (Result, error)
	Resume  func() (Result, error)
	Stop    func() (Result, error)
	Break   func(BreakArgs) (Result, error)
	Block   func(BlockArgs) (Result, error)
	Quest   func(QuestArgs) (Result, error)
	Reset   func() (Result, error)
	Profile func(ProfileArgs) (Result, error)
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeStart:
		if handlers.Start == nil {
			return Result{}, missing("start")
		}
		return handlers.Start(*cmd.Start)
	case TypePause:
		if handlers.Pause == nil {
			return Result{}, missing("pause")
		}
		return handlers.Pause()
	case TypeResume:
		if handlers.Resume == nil {
			return Result{}, missing("resume")
		}
		return handlers.Resume()
	case TypeStop:
		if handlers.Stop == nil {
			return Result{}, missing("stop")
		}
		return handlers.Stop()
	case TypeBreak:
		if handlers.Break == nil {
			return Result{}, missing("break")
		}
		return handlers.Break(*cmd.Break)
	case TypeBlock:
		if handlers.Block == nil {
			return Result{}, missing("block")
		}
		return handlers.Block(*cmd.Block)
	case TypeQuest:
		if handlers.Quest == nil {
			return Result{}, missing("quest")
		}
		return handlers.Quest(*cmd.Quest)
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing("reset")
		}
		return handlers.Reset()
	case TypeProfile:
		if handlers.Profile == nil {
			return Result{}, missing("profile")
		}
		return handlers.Profile(*cmd.Profile)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
