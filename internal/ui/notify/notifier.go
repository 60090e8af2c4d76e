// Package notify delivers phase announcements to the board banner and, when
// enabled, to desktop notifications.
package notify

import (
	"sync"

	"apneatimer/internal/core/phase"

	"fyne.io/fyne/v2"
)

const notificationTitle = "Apnea Timer"

// Sender posts desktop notifications. fyne.App satisfies it.
type Sender interface {
	SendNotification(notification *fyne.Notification)
}

// Banner shows an in-window announcement.
type Banner interface {
	Announce(message string, severity phase.Severity) error
}

// Notifier fans an announcement out to the banner and the desktop.
type Notifier struct {
	mu      sync.Mutex
	sender  Sender
	banner  Banner
	enabled bool
}

// New creates a notifier. Either collaborator may be nil.
func New(sender Sender, banner Banner, enabled bool) *Notifier {
	return &Notifier{sender: sender, banner: banner, enabled: enabled}
}

// SetBanner attaches the in-window banner.
func (notifier *Notifier) SetBanner(banner Banner) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.banner = banner
}

// SetEnabled toggles desktop notifications. The banner is always updated.
func (notifier *Notifier) SetEnabled(enabled bool) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.enabled = enabled
}

// Enabled reports whether desktop notifications are sent.
func (notifier *Notifier) Enabled() bool {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.enabled
}

// Announce implements cue.Announcer.
func (notifier *Notifier) Announce(message string, severity phase.Severity) error {
	notifier.mu.Lock()
	sender := notifier.sender
	banner := notifier.banner
	enabled := notifier.enabled
	notifier.mu.Unlock()

	if enabled && sender != nil {
		sender.SendNotification(fyne.NewNotification(Title(severity), message))
	}
	if banner != nil {
		return banner.Announce(message, severity)
	}
	return nil
}

// Title returns the notification title for severity.
func Title(severity phase.Severity) string {
	switch severity {
	case phase.SeverityWarning:
		return notificationTitle + " - attention"
	case phase.SeveritySuccess:
		return notificationTitle + " - done"
	default:
		return notificationTitle
	}
}
