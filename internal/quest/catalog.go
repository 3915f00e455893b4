package quest

import (
	"errors"
	"fmt"

	"github.com/sandeepkv93/questd/internal/model"
)

var ErrDuplicateQuest = errors.New("quest: duplicate quest id")

// DefaultCatalog returns the static daily quests offered every day.
func DefaultCatalog() []model.Quest {
	return []model.Quest{
		{ID: "focus-25", Title: "Finish a 25 minute focus session", Points: 20, Category: model.CategoryFocus},
		{ID: "plan-day", Title: "Plan the top three tasks for today", Points: 10, Category: model.CategoryPlanning},
		{ID: "inbox-zero", Title: "Clear the inbox", Points: 15, Category: model.CategoryPlanning},
		{ID: "stretch", Title: "Stand up and stretch", Points: 5, Category: model.CategoryWellness},
		{ID: "reflect", Title: "Write a short end of day reflection", Points: 10, Category: model.CategoryWellness},
	}
}

func ValidateCatalog(quests []model.Quest) error {
	seen := make(map[string]struct{}, len(quests))
	for _, q := range quests {
		if err := q.Validate(); err != nil {
			return err
		}
		if _, ok := seen[q.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateQuest, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}
