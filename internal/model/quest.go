package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinQuestPoints = 1
	MaxQuestPoints = 1000
)

var ErrInvalidCategory = errors.New("model: invalid quest category")

type QuestCategory string

const (
	CategoryFocus    QuestCategory = "Focus"
	CategoryWellness QuestCategory = "Wellness"
	CategoryPlanning QuestCategory = "Planning"
	CategoryCustom   QuestCategory = "Custom"
)

func (c QuestCategory) IsValid() bool {
	switch c {
	case CategoryFocus, CategoryWellness, CategoryPlanning, CategoryCustom:
		return true
	default:
		return false
	}
}

type Quest struct {
	ID       string
	Title    string
	Points   int
	Category QuestCategory
}

func (q Quest) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return errors.New("model: quest id is required")
	}
	if strings.TrimSpace(q.Title) == "" {
		return errors.New("model: quest title is required")
	}
	if q.Points < MinQuestPoints || q.Points > MaxQuestPoints {
		return fmt.Errorf("model: quest points out of range: %d", q.Points)
	}
	if !q.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, q.Category)
	}
	return nil
}

type CustomQuest struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Points int    `json:"points"`
}

func (c CustomQuest) Quest() Quest {
	return Quest{ID: c.ID, Title: c.Title, Points: c.Points, Category: CategoryCustom}
}

// ClampPoints bounds a user supplied point value to the accepted range.
func ClampPoints(points int) int {
	if points < MinQuestPoints {
		return MinQuestPoints
	}
	if points > MaxQuestPoints {
		return MaxQuestPoints
	}
	return points
}
