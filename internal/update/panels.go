package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/questd/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	})
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}

// notifyDesktop is reserved for completed sessions; everything else stays in
// the in-app notification line.
func (m *Model) notifyDesktop(n Notification) {
	if !m.DesktopEnabled || m.notifier == nil {
		return
	}
	_ = m.notifier.Send(n)
}
