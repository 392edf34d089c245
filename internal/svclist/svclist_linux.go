//go:build linux

package svclist

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

func listServices(ctx context.Context) ([]ServiceInfo, error) {
	unitFilesCmd := exec.CommandContext(
		ctx,
		"systemctl",
		"list-unit-files",
		"--type=service",
		"--no-legend",
		"--no-pager",
		"--plain",
	)
	unitFilesOut, err := unitFilesCmd.Output()
	if err != nil {
		return nil, fmt.Errorf("svclist: systemctl list-unit-files: %w", err)
	}

	unitsCmd := exec.CommandContext(
		ctx,
		"systemctl",
		"list-units",
		"--type=service",
		"--all",
		"--no-legend",
		"--no-pager",
		"--plain",
	)
	unitsOut, err := unitsCmd.Output()
	if err != nil {
		return nil, fmt.Errorf("svclist: systemctl list-units: %w", err)
	}

	startByUnit := parseUnitFileStates(string(unitFilesOut))
	stateByUnit := parseRuntimeStates(string(unitsOut))

	unitNames := make(map[string]struct{}, len(startByUnit)+len(stateByUnit))
	for unit := range startByUnit {
		unitNames[unit] = struct{}{}
	}
	for unit := range stateByUnit {
		unitNames[unit] = struct{}{}
	}

	services := make([]ServiceInfo, 0, len(unitNames))
	for unit := range unitNames {
		name := strings.TrimSuffix(unit, ".service")
		status := stateByUnit[unit]
		if status == "" {
			status = StatusUnknown
		}
		startType := startByUnit[unit]
		if startType == "" {
			startType = "unknown"
		}
		services = append(services, ServiceInfo{
			Name:        name,
			DisplayName: name,
			Status:      status,
			StartType:   startType,
		})
	}

	sort.Slice(services, func(i, j int) bool {
		return services[i].Name < services[j].Name
	})
	return services, nil
}

func parseUnitFileStates(output string) map[string]string {
	result := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 2 {
			continue
		}

		unit := fields[0]
		if !strings.HasSuffix(unit, ".service") {
			continue
		}

		switch state := strings.ToLower(fields[1]); state {
		case "enabled", "enabled-runtime":
			result[unit] = "automatic"
		case "disabled", "masked":
			result[unit] = "disabled"
		case "static", "indirect", "generated", "transient", "linked", "linked-runtime", "alias":
			result[unit] = "manual"
		default:
			result[unit] = state
		}
	}
	return result
}

func parseRuntimeStates(output string) map[string]string {
	result := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 4 {
			continue
		}

		unit := fields[0]
		if !strings.HasSuffix(unit, ".service") {
			continue
		}

		activeState := strings.ToLower(fields[2])
		subState := strings.ToLower(fields[3])
		switch activeState {
		case "active":
			result[unit] = StatusRunning
		case "activating":
			result[unit] = StatusStarting
		case "deactivating":
			result[unit] = StatusStopping
		case "failed":
			result[unit] = StatusFailed
		case "inactive":
			if subState == "dead" || subState == "" {
				result[unit] = StatusStopped
			} else {
				result[unit] = subState
			}
		default:
			result[unit] = StatusUnknown
		}
	}
	return result
}
