//go:build windows

package svclist

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

// listServices walks the Service Control Manager. Services that vanish
// or deny access between enumeration and query are skipped.
func listServices(ctx context.Context) ([]ServiceInfo, error) {
	m, err := mgr.Connect()
	if err != nil {
		return nil, fmt.Errorf("svclist: connect to SCM: %w", err)
	}
	defer m.Disconnect()

	names, err := m.ListServices()
	if err != nil {
		return nil, fmt.Errorf("svclist: list services: %w", err)
	}

	services := make([]ServiceInfo, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := m.OpenService(name)
		if err != nil {
			continue
		}
		status, err := s.Query()
		if err != nil {
			s.Close()
			continue
		}
		cfg, _ := s.Config()
		services = append(services, ServiceInfo{
			Name:        name,
			DisplayName: cfg.DisplayName,
			Status:      mapWindowsState(status.State),
			StartType:   mapWindowsStartType(cfg.StartType),
			BinaryPath:  cfg.BinaryPathName,
		})
		s.Close()
	}

	sort.Slice(services, func(i, j int) bool {
		return services[i].Name < services[j].Name
	})
	return services, nil
}

func mapWindowsState(state svc.State) string {
	switch state {
	case svc.Running, svc.ContinuePending:
		return StatusRunning
	case svc.StartPending:
		return StatusStarting
	case svc.StopPending, svc.PausePending:
		return StatusStopping
	case svc.Stopped, svc.Paused:
		return StatusStopped
	default:
		return StatusUnknown
	}
}

func mapWindowsStartType(startType uint32) string {
	switch startType {
	case mgr.StartAutomatic, mgr.StartAutomatic + 0x80: // 0x80 = delayed start flag
		return "automatic"
	case mgr.StartManual:
		return "manual"
	case mgr.StartDisabled:
		return "disabled"
	default:
		return strings.ToLower(fmt.Sprintf("type_%d", startType))
	}
}
