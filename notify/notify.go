// Package notify sends desktop notifications for connection editor
// events using notify-send.
package notify

import (
	"context"
	"os/exec"

	"github.com/yllada/nm-connection-editor/common"
)

// NotificationType represents the type of notification.
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationSuccess
	NotificationWarning
	NotificationError
)

// Notification represents a system notification.
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	Icon    string
}

// iconFor picks the default icon for a notification type.
func iconFor(t NotificationType) string {
	switch t {
	case NotificationWarning:
		return "dialog-warning"
	case NotificationError:
		return "dialog-error"
	default:
		return "preferences-system-network"
	}
}

// urgencyFor maps a notification type to a notify-send urgency level.
func urgencyFor(t NotificationType) string {
	switch t {
	case NotificationError:
		return "critical"
	case NotificationWarning:
		return "normal"
	default:
		return "low"
	}
}

// Show displays a system notification using notify-send.
func Show(n Notification) {
	icon := n.Icon
	if icon == "" {
		icon = iconFor(n.Type)
	}
	urgency := urgencyFor(n.Type)

	ctx, cancel := context.WithTimeout(context.Background(), common.NotifyTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "notify-send",
		"--app-name="+common.AppName,
		"--icon="+icon,
		"--urgency="+urgency,
		n.Title,
		n.Message,
	)

	if err := cmd.Run(); err != nil {
		common.LogWarn("error showing notification: %v", err)
	}
}

// Saved shows a notification when a connection profile is saved.
func Saved(name string) {
	Show(Notification{
		Title:   "Connection Saved",
		Message: "Saved changes to " + name,
		Type:    NotificationSuccess,
	})
}

// SaveFailed shows a notification when the service rejects a save.
func SaveFailed(name, errorMsg string) {
	Show(Notification{
		Title:   "Save Failed",
		Message: name + ": " + errorMsg,
		Type:    NotificationError,
	})
}

// Removed shows a notification when a connection profile is removed.
func Removed(name string) {
	Show(Notification{
		Title:   "Connection Removed",
		Message: "Removed " + name,
		Type:    NotificationInfo,
	})
}
