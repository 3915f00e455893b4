package commands

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/start", TypeStart},
		{"/start 50 news.example", TypeStart},
		{"pause", TypePause},
		{"/resume", TypeResume},
		{"/STOP", TypeStop},
		{"/break 10", TypeBreak},
		{"/block a.example b.example", TypeBlock},
		{"/quest add 30 read a chapter", TypeQuest},
		{"/quest done stretch", TypeQuest},
		{"/reset", TypeReset},
		{"/profile intj f Ada Lovelace", TypeProfile},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseStartArguments(t *testing.T) {
	cmd, err := Parse("/start 45 news.example social.example")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := StartArgs{Minutes: 45, Domains: []string{"news.example", "social.example"}}
	if !reflect.DeepEqual(*cmd.Start, want) {
		t.Fatalf("start args = %+v, want %+v", *cmd.Start, want)
	}

	cmd, err = Parse("/start video.example")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Start.Minutes != 0 || len(cmd.Start.Domains) != 1 {
		t.Fatalf("expected default minutes and one domain, got %+v", *cmd.Start)
	}
}

func TestParseQuestAndProfileArguments(t *testing.T) {
	cmd, err := Parse("/quest add 30 read a chapter")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Quest.Action != QuestAdd || cmd.Quest.Points != 30 || cmd.Quest.Title != "read a chapter" {
		t.Fatalf("unexpected quest args: %+v", *cmd.Quest)
	}

	cmd, err = Parse("/profile intj F Ada Lovelace")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := ProfileArgs{MBTI: "INTJ", Gender: "f", Name: "Ada Lovelace"}
	if *cmd.Profile != want {
		t.Fatalf("profile args = %+v, want %+v", *cmd.Profile, want)
	}
}

func TestParseRejectsInvalidArguments(t *testing.T) {
	cases := []string{
		"/start 0",
		"/start 999",
		"/break soon",
		"/break 5 10",
		"/pause now",
		"/block",
		"/quest",
		"/quest add ten push ups",
		"/quest add 10",
		"/quest done",
		"/quest finish x",
		"/profile intj f",
		"/profile abc f Ada",
	}
	for _, in := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/quest done stretch")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Quest: func(a QuestArgs) (Result, error) {
			called = true
			if a.Action != QuestDone || a.ID != "stretch" {
				t.Fatalf("unexpected quest args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("/stop")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
