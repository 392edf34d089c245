//go:build darwin

package svclist

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

func listServices(ctx context.Context) ([]ServiceInfo, error) {
	cmd := exec.CommandContext(ctx, "launchctl", "list")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("svclist: launchctl list: %w", err)
	}

	services := parseLaunchctlList(string(output))
	sort.Slice(services, func(i, j int) bool {
		return services[i].Name < services[j].Name
	})
	return services, nil
}

// parseLaunchctlList reads "PID Status Label" rows. A numeric PID in the
// first column means the job is running.
func parseLaunchctlList(output string) []ServiceInfo {
	var services []ServiceInfo
	for _, rawLine := range strings.Split(output, "\n") {
		fields := strings.Fields(strings.TrimSpace(rawLine))
		if len(fields) < 3 || fields[0] == "PID" {
			continue
		}

		label := fields[2]
		status := StatusStopped
		if fields[0] != "-" {
			status = StatusRunning
		}
		services = append(services, ServiceInfo{
			Name:        label,
			DisplayName: label,
			Status:      status,
			StartType:   "loaded",
		})
	}
	return services
}
