package hostscan

import (
	"context"
	"testing"

	"github.com/avwatch/avwatch/internal/avdict"
	"github.com/avwatch/avwatch/internal/svclist"
)

func TestMatchProcessesAmbiguousExecutable(t *testing.T) {
	snap := &processSnapshot{names: map[string]bool{
		"semsvc.exe":  true,
		"svchost.exe": true,
	}}

	hits := dedupeHits(matchProcesses(avdict.Default(), snap))
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits for SemSvc.exe, got %d", len(hits))
	}
	for _, h := range hits {
		if h.Vendor != "Symantec" || h.Source != SourceProcess || h.Status != StatusActive {
			t.Errorf("unexpected hit %+v", h)
		}
	}
}

func TestMatchServicesByNameAndDisplayName(t *testing.T) {
	services := []svclist.ServiceInfo{
		{Name: "CSFalconService", DisplayName: "CrowdStrike Falcon Sensor Service", Status: svclist.StatusRunning},
		{Name: "Spooler", DisplayName: "Print Spooler", Status: svclist.StatusRunning},
		{Name: "Sophos Anti-Virus", Status: svclist.StatusStopped},
	}

	hits := dedupeHits(matchServices(avdict.Default(), services))
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d: %+v", len(hits), hits)
	}

	statusByVendor := map[string]Status{}
	for _, h := range hits {
		statusByVendor[h.Vendor] = h.Status
		if h.Source != SourceService {
			t.Errorf("unexpected source %s", h.Source)
		}
	}
	if statusByVendor["CrowdStrike"] != StatusActive {
		t.Errorf("running service should be active, got %q", statusByVendor["CrowdStrike"])
	}
	if statusByVendor["Sophos"] != StatusInstalled {
		t.Errorf("stopped service should be installed, got %q", statusByVendor["Sophos"])
	}
}

func TestMatchServicesStoppedStillCounts(t *testing.T) {
	services := []svclist.ServiceInfo{
		{Name: "McAfee McShield", Status: svclist.StatusStopped},
	}
	hits := matchServices(avdict.Default(), services)
	if len(hits) != 1 {
		t.Fatalf("stopped service should still be reported, got %d hits", len(hits))
	}
	if hits[0].Status != StatusInstalled {
		t.Errorf("stopped service status = %q, want installed", hits[0].Status)
	}
}

func TestDedupeHits(t *testing.T) {
	h := Hit{Vendor: "Sophos", SvcName: "Sophos Anti-Virus", Executable: "SavService.exe",
		Source: SourceProcess, Status: StatusActive, Observed: "savservice.exe"}
	out := dedupeHits([]Hit{h, h, h})
	if len(out) != 1 {
		t.Errorf("expected 1 hit after dedupe, got %d", len(out))
	}

	if out := dedupeHits(nil); out != nil {
		t.Errorf("expected nil for no hits, got %v", out)
	}
}

func TestScanReturnsReport(t *testing.T) {
	report := Scan(context.Background(), avdict.Default(), Options{})

	if report.CollectedAt.IsZero() {
		t.Error("CollectedAt should not be zero")
	}
	if report.ScanDurationMs < 0 {
		t.Error("ScanDurationMs should not be negative")
	}
	t.Logf("scan completed in %dms: %d processes, %d services, %d hits, %d errors",
		report.ScanDurationMs, report.ProcessCount, report.ServiceCount,
		len(report.Hits), len(report.Errors))
	for _, h := range report.Hits {
		t.Logf("  - %s / %s [%s via %s]", h.Vendor, h.SvcName, h.Observed, h.Source)
	}
}
