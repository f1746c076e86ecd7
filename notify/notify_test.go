package notify

import "testing"

func TestIconFor(t *testing.T) {
	tests := []struct {
		name string
		typ  NotificationType
		want string
	}{
		{"info", NotificationInfo, "preferences-system-network"},
		{"success", NotificationSuccess, "preferences-system-network"},
		{"warning", NotificationWarning, "dialog-warning"},
		{"error", NotificationError, "dialog-error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := iconFor(tt.typ); got != tt.want {
				t.Errorf("iconFor(%v) = %q, want %q", tt.typ, got, tt.want)
			}
		})
	}
}

func TestUrgencyFor(t *testing.T) {
	tests := []struct {
		name string
		typ  NotificationType
		want string
	}{
		{"info", NotificationInfo, "low"},
		{"success", NotificationSuccess, "low"},
		{"warning", NotificationWarning, "normal"},
		{"error", NotificationError, "critical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := urgencyFor(tt.typ); got != tt.want {
				t.Errorf("urgencyFor(%v) = %q, want %q", tt.typ, got, tt.want)
			}
		})
	}
}
