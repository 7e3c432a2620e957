package monitor

import (
	"os"
	"testing"
)

func TestSnapshot(t *testing.T) {
	h, err := NewHealth()
	if err != nil {
		t.Fatalf("NewHealth() error: %v", err)
	}

	snap := h.Snapshot()

	if snap.Status != "ok" {
		t.Errorf("Status = %q, want ok", snap.Status)
	}
	if snap.PID != int32(os.Getpid()) {
		t.Errorf("PID = %d, want %d", snap.PID, os.Getpid())
	}
	if snap.UptimeSeconds < 0 {
		t.Errorf("UptimeSeconds = %f, want >= 0", snap.UptimeSeconds)
	}
}
