package service_test

import (
	"testing"
	"time"

	"github.com/msomdec/cyber-thread/internal/service"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"zero", 0, "just now"},
		{"30 seconds", 30 * time.Second, "just now"},
		{"59 seconds", 59 * time.Second, "just now"},
		{"1 minute", time.Minute, "1 minute ago"},
		{"5 minutes", 5 * time.Minute, "5 minutes ago"},
		{"5 minutes 59 seconds", 5*time.Minute + 59*time.Second, "5 minutes ago"},
		{"59 minutes", 59 * time.Minute, "59 minutes ago"},
		{"1 hour", time.Hour, "1 hour ago"},
		{"3 hours", 3 * time.Hour, "3 hours ago"},
		{"23 hours", 23*time.Hour + 59*time.Minute, "23 hours ago"},
		{"1 day", 24 * time.Hour, "1 day ago"},
		{"2 days", 48 * time.Hour, "2 days ago"},
		{"400 days", 400 * 24 * time.Hour, "400 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := service.TimeAgo(now.Add(-tt.ago), now); got != tt.want {
				t.Fatalf("TimeAgo(-%v) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}
}

func TestTimeAgo_ZeroAndFuture(t *testing.T) {
	now := time.Now()
	if got := service.TimeAgo(time.Time{}, now); got != "just now" {
		t.Fatalf("zero time: got %q", got)
	}
	if got := service.TimeAgo(now.Add(10*time.Minute), now); got != "just now" {
		t.Fatalf("future time: got %q", got)
	}
}

func TestTimeAgoString(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want string
	}{
		{"2025-06-15T11:55:00Z", "5 minutes ago"},
		{"2025-06-15 09:00:00", "3 hours ago"},
		{"2025-06-13T12:00:00+00:00", "2 days ago"},
		{"Fri Jun 13 2025 12:00:00 GMT+0000 (Coordinated Universal Time)", "2 days ago"},
		{"", "just now"},
		{"not a timestamp", "just now"},
		{"2025-13-45 99:99:99", "just now"},
	}

	for _, tt := range tests {
		if got := service.TimeAgoString(tt.raw, now); got != tt.want {
			t.Errorf("TimeAgoString(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
