package collector

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"sort"
	"strings"
	"time"

	"codeberg.org/mutker/hostwatch/internal/errors"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/shirou/gopsutil/v4/sensors"
)

const (
	cpuSampleWindow = 500 * time.Millisecond
	serviceTimeout  = 5 * time.Second
	rootPath        = "/"
)

// Sensor labels that identify a CPU package or core temperature
var cpuSensorKeys = []string{"coretemp", "k10temp", "cpu_thermal", "x86_pkg_temp", "soc_thermal"}

// SystemSource samples the local host through gopsutil, except for the
// service state which comes from the init system.
type SystemSource struct {
	errFactory errors.Factory
}

func NewSystemSource() *SystemSource {
	return &SystemSource{errFactory: errors.New()}
}

func (s *SystemSource) CPUPercent(ctx context.Context) (float64, error) {
	percentages, err := cpu.PercentWithContext(ctx, cpuSampleWindow, false)
	if err != nil {
		return 0, s.errFactory.Wrap(ErrMetricUnavailable, err)
	}
	if len(percentages) == 0 {
		return 0, s.errFactory.New(ErrEmptySample)
	}

	return percentages[0], nil
}

func (s *SystemSource) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, s.errFactory.Wrap(ErrMetricUnavailable, err)
	}

	return vm.UsedPercent, nil
}

func (s *SystemSource) DiskUsage(ctx context.Context) (string, error) {
	usage, err := disk.UsageWithContext(ctx, rootPath)
	if err != nil {
		return "", s.errFactory.Wrap(ErrMetricUnavailable, err)
	}

	return fmt.Sprintf("%d%%", int(math.Round(usage.UsedPercent))), nil
}

func (s *SystemSource) Temperature(ctx context.Context) (float64, error) {
	stats, err := sensors.TemperaturesWithContext(ctx)
	if err != nil {
		return 0, s.errFactory.Wrap(ErrMetricUnavailable, err)
	}

	// Prefer a known CPU sensor, fall back to the first non-zero reading
	for _, key := range cpuSensorKeys {
		for _, stat := range stats {
			if strings.Contains(stat.SensorKey, key) && stat.Temperature > 0 {
				return stat.Temperature, nil
			}
		}
	}
	for _, stat := range stats {
		if stat.Temperature > 0 {
			return stat.Temperature, nil
		}
	}

	return 0, s.errFactory.New(ErrNoSensor)
}

func (s *SystemSource) ServiceStatus(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", s.errFactory.New(ErrNoService)
	}

	ctx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	// is-active exits non-zero for anything but "active" while still
	// printing the state, so the output matters more than the exit code.
	out, err := exec.CommandContext(ctx, "systemctl", "is-active", name).Output()
	status := strings.TrimSpace(string(out))
	if status == "" {
		if err != nil {
			return "", s.errFactory.Wrap(ErrEmptyStatus, err)
		}
		return "", s.errFactory.New(ErrEmptyStatus)
	}

	return status, nil
}

func (s *SystemSource) LoadAverage(ctx context.Context) (LoadAverage, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return LoadAverage{}, s.errFactory.Wrap(ErrMetricUnavailable, err)
	}

	return LoadAverage{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, nil
}

func (s *SystemSource) Uptime(ctx context.Context) (time.Duration, error) {
	seconds, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0, s.errFactory.Wrap(ErrMetricUnavailable, err)
	}

	return time.Duration(seconds) * time.Second, nil
}

func (s *SystemSource) TopProcesses(ctx context.Context, n int) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, s.errFactory.Wrap(ErrMetricUnavailable, err)
	}

	infos := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		memPercent, err := p.MemoryPercentWithContext(ctx)
		if err != nil {
			continue
		}
		info := ProcessInfo{PID: p.Pid, MemoryPercent: float64(memPercent)}
		if user, err := p.UsernameWithContext(ctx); err == nil {
			info.User = user
		}
		if cmd, err := p.NameWithContext(ctx); err == nil {
			info.Command = cmd
		}
		infos = append(infos, info)
	}
	if len(infos) == 0 {
		return nil, s.errFactory.New(ErrNoProcessRow)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].MemoryPercent > infos[j].MemoryPercent
	})
	if len(infos) > n {
		infos = infos[:n]
	}

	return infos, nil
}
