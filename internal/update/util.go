package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/questd/internal/model"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func formatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	min := totalSec / 60
	sec := totalSec % 60
	return fmt.Sprintf("%02d:%02d", min, sec)
}

func (m Model) ledgerToday() string {
	if m.ledger == nil {
		return model.DayKey(time.Now())
	}
	return m.ledger.Today()
}
