package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// RoomStats is what a relay reports about its rooms on every beat.
type RoomStats struct {
	Rooms   int
	Members int
}

// HeartbeatWorker periodically logs the relay's room counts together with its own process health.
type HeartbeatWorker struct {
	log      *slog.Logger
	interval time.Duration
	stats    func() RoomStats
}

func NewHeartbeatWorker(log *slog.Logger, interval time.Duration, stats func() RoomStats) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, interval: interval, stats: stats}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting relay heartbeat worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.beat(p)
		}
	}
}

func (w *HeartbeatWorker) beat(p *process.Process) {
	rooms := w.stats()
	rss, cpu, status, err := selfStats(p)
	if err != nil {
		w.log.Error("Failed to collect self stats", "error", err)
		w.log.Info("Heartbeat", "rooms", rooms.Rooms, "members", rooms.Members)
		return
	}
	w.log.Info("Heartbeat",
		"rooms", rooms.Rooms,
		"members", rooms.Members,
		"pid", p.Pid,
		"status", status,
		"cpu_percent", cpu,
		"rss_bytes", rss)
}

// selfStats retrieves memory, CPU and OS status for the given process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}
	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
