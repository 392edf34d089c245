// Package hostscan intersects the local host's running processes and
// registered services against the security-product dictionary and
// reports which known vendor services are present.
package hostscan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avwatch/avwatch/internal/avdict"
	"github.com/avwatch/avwatch/internal/logging"
	"github.com/avwatch/avwatch/internal/svclist"
)

var log = logging.L("hostscan")

// Source identifies which host observation produced a hit.
type Source string

const (
	SourceService Source = "service"
	SourceProcess Source = "process"
)

// Status reports whether the matched product was seen running or only
// registered on the host.
type Status string

const (
	StatusActive    Status = "active"
	StatusInstalled Status = "installed"
)

// Hit is one dictionary entry found present on the host.
type Hit struct {
	Vendor      string `json:"vendor"`
	SvcName     string `json:"svcName"`
	Executable  string `json:"executable"`
	Description string `json:"description,omitempty"`
	Source      Source `json:"source"`
	Status      Status `json:"status"`
	Observed    string `json:"observed"`
}

// Report is the result of one presence scan. A scan never fails
// outright: observation errors are recorded and matching proceeds over
// whatever was collected.
type Report struct {
	CollectedAt    time.Time `json:"collectedAt"`
	ScanDurationMs int64     `json:"scanDurationMs"`
	ProcessCount   int       `json:"processCount"`
	ServiceCount   int       `json:"serviceCount"`
	Hits           []Hit     `json:"hits"`
	Errors         []string  `json:"errors,omitempty"`
}

// Options tunes a scan.
type Options struct {
	Timeout time.Duration // bound on service enumeration; 0 means 30s
}

// Scan observes the host once and matches the observation against the
// dictionary. The dictionary is read-only and shared safely.
func Scan(ctx context.Context, dict *avdict.Dictionary, opts Options) Report {
	start := time.Now()
	report := Report{CollectedAt: start.UTC()}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		snap     *processSnapshot
		services []svclist.ServiceInfo
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				mu.Lock()
				report.Errors = append(report.Errors, fmt.Sprintf("process snapshot panic: %v", r))
				mu.Unlock()
				log.Error("panic in process snapshot", "error", r)
			}
		}()
		s, err := newProcessSnapshot()
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			report.Errors = append(report.Errors, "process snapshot: "+err.Error())
			return
		}
		snap = s
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				mu.Lock()
				report.Errors = append(report.Errors, fmt.Sprintf("service enumeration panic: %v", r))
				mu.Unlock()
				log.Error("panic in service enumeration", "error", r)
			}
		}()
		svcs, err := svclist.List(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			report.Errors = append(report.Errors, "service enumeration: "+err.Error())
			return
		}
		services = svcs
	}()

	wg.Wait()

	if snap != nil {
		report.ProcessCount = snap.count()
		report.Hits = append(report.Hits, matchProcesses(dict, snap)...)
	}
	report.ServiceCount = len(services)
	report.Hits = append(report.Hits, matchServices(dict, services)...)
	report.Hits = dedupeHits(report.Hits)

	report.ScanDurationMs = time.Since(start).Milliseconds()
	log.Info("presence scan complete",
		"duration_ms", report.ScanDurationMs,
		"hits", len(report.Hits),
		"errors", len(report.Errors))

	return report
}

// matchProcesses checks running process names against the executable
// index.
func matchProcesses(dict *avdict.Dictionary, snap *processSnapshot) []Hit {
	var hits []Hit
	for _, name := range snap.observedNames() {
		for _, e := range dict.MatchExecutable(name) {
			hits = append(hits, newHit(e, SourceProcess, StatusActive, name))
		}
	}
	return hits
}

// matchServices checks registered service names and display names
// against the SvcName index. Stopped services still count: an installed
// product's service is present whether or not it is running.
func matchServices(dict *avdict.Dictionary, services []svclist.ServiceInfo) []Hit {
	var hits []Hit
	for _, svc := range services {
		status := StatusInstalled
		if svc.IsActive() {
			status = StatusActive
		}
		for _, e := range dict.MatchService(svc.Name) {
			hits = append(hits, newHit(e, SourceService, status, svc.Name))
		}
		if svc.DisplayName != "" && svc.DisplayName != svc.Name {
			for _, e := range dict.MatchService(svc.DisplayName) {
				hits = append(hits, newHit(e, SourceService, status, svc.DisplayName))
			}
		}
	}
	return hits
}

func newHit(e avdict.Entry, source Source, status Status, observed string) Hit {
	return Hit{
		Vendor:      e.Vendor,
		SvcName:     e.Service.SvcName,
		Executable:  e.Service.Executable,
		Description: e.Service.Description,
		Source:      source,
		Status:      status,
		Observed:    observed,
	}
}

// dedupeHits collapses duplicate observations while keeping one hit per
// dictionary entry: an executable shared by several SvcNames must yield
// a hit for each of them.
func dedupeHits(hits []Hit) []Hit {
	seen := make(map[Hit]bool, len(hits))
	out := hits[:0]
	for _, h := range hits {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Vendor != out[j].Vendor {
			return out[i].Vendor < out[j].Vendor
		}
		if out[i].SvcName != out[j].SvcName {
			return out[i].SvcName < out[j].SvcName
		}
		return out[i].Observed < out[j].Observed
	})
	if len(out) == 0 {
		return nil
	}
	return out
}
