package quest

import "github.com/sandeepkv93/questd/internal/model"

// NextStreak computes the streak after activity on today, given the stored
// streak and the last active day. Only an activity on the exact previous
// calendar day extends the streak; any gap, a future date or an unreadable
// date starts over at one.
func NextStreak(current int, lastActive, today string) int {
	if lastActive == "" {
		return 1
	}
	if lastActive == today {
		if current < 1 {
			return 1
		}
		return current
	}
	yesterday, err := model.PreviousDay(today)
	if err == nil && lastActive == yesterday {
		if current < 0 {
			current = 0
		}
		return current + 1
	}
	return 1
}
