//go:build darwin

package svclist

import "testing"

func TestParseLaunchctlList(t *testing.T) {
	output := `PID	Status	Label
123	0	com.apple.WindowServer
-	0	com.example.stopped
456	0	com.crowdstrike.falcond
`
	services := parseLaunchctlList(output)
	if len(services) != 3 {
		t.Fatalf("expected 3 services, got %d", len(services))
	}

	byName := map[string]ServiceInfo{}
	for _, s := range services {
		byName[s.Name] = s
	}

	if s := byName["com.apple.WindowServer"]; s.Status != StatusRunning {
		t.Errorf("WindowServer status = %q, want running", s.Status)
	}
	if s := byName["com.example.stopped"]; s.Status != StatusStopped {
		t.Errorf("stopped job status = %q, want stopped", s.Status)
	}
}
