package hostscan

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// processSnapshot caches the names of all running processes, lowercased,
// for batch matching against the dictionary.
type processSnapshot struct {
	names map[string]bool
}

func newProcessSnapshot() (*processSnapshot, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(procs))
	skipped := 0
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || name == "" {
			skipped++
			continue
		}
		names[strings.ToLower(name)] = true
	}

	if skipped > 0 {
		log.Debug("process snapshot skipped processes", "skipped", skipped, "total", len(procs))
	}

	return &processSnapshot{names: names}, nil
}

// observedNames returns the snapshot contents as a plain list.
func (s *processSnapshot) observedNames() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	return names
}

func (s *processSnapshot) count() int {
	return len(s.names)
}
