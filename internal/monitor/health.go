package monitor

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Health reports resource usage of the bridge process itself for the
// health endpoint.
type Health struct {
	proc      *process.Process
	startedAt time.Time
}

// Snapshot is a point-in-time health reading. CPU and RSS are best effort:
// a read failure leaves them at zero rather than failing the endpoint.
type Snapshot struct {
	Status        string  `json:"status"`
	PID           int32   `json:"pid"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
	CPUPercent    float64 `json:"cpuPercent"`
	RSSBytes      uint64  `json:"rssBytes"`
}

func NewHealth() (*Health, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("attaching to own process: %w", err)
	}
	return &Health{
		proc:      proc,
		startedAt: time.Now(),
	}, nil
}

func (h *Health) Snapshot() Snapshot {
	snap := Snapshot{
		Status:        "ok",
		PID:           h.proc.Pid,
		UptimeSeconds: time.Since(h.startedAt).Seconds(),
	}

	if cpu, err := h.proc.CPUPercent(); err == nil {
		snap.CPUPercent = cpu
	}
	if mem, err := h.proc.MemoryInfo(); err == nil && mem != nil {
		snap.RSSBytes = mem.RSS
	}

	return snap
}
