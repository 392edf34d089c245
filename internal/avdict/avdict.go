// Package avdict holds the vendor/service reference dictionary used to
// recognize installed endpoint-security products, and the pure lookup
// operations over it. A Dictionary is immutable once built and safe to
// share across goroutines.
package avdict

import (
	"sort"
	"strings"
)

// Service is one known Windows service shipped by a security vendor.
type Service struct {
	SvcName     string `json:"SvcName"`
	Executable  string `json:"Executable"`
	Description string `json:"Description"`
}

// Vendor is a security-product maker together with its known services,
// in source-document order.
type Vendor struct {
	Name     string    `json:"name"`
	Services []Service `json:"services"`
}

// Entry is a (vendor, service) pair, the unit of lookup results.
// Executable names are not unique across entries, so lookups always
// return slices.
type Entry struct {
	Vendor  string  `json:"vendor"`
	Service Service `json:"service"`
}

// Field identifies which dictionary field an observed name matched.
type Field string

const (
	FieldExecutable Field = "executable"
	FieldSvcName    Field = "svcName"
)

// Match pairs an observed name with one dictionary entry it matched.
type Match struct {
	Observed  string `json:"observed"`
	MatchedOn Field  `json:"matchedOn"`
	Entry     Entry  `json:"entry"`
}

// Dictionary is the loaded reference table: vendors in sorted order plus
// lowercase reverse indexes for executables and service names.
type Dictionary struct {
	vendors      []Vendor
	byExecutable map[string][]Entry
	bySvcName    map[string][]Entry
	numServices  int
}

// Vendors returns the vendors in sorted-by-name order. The returned
// slice is a copy; the backing records must not be mutated.
func (d *Dictionary) Vendors() []Vendor {
	out := make([]Vendor, len(d.vendors))
	copy(out, d.vendors)
	return out
}

// VendorNames returns the sorted vendor names.
func (d *Dictionary) VendorNames() []string {
	names := make([]string, len(d.vendors))
	for i, v := range d.vendors {
		names[i] = v.Name
	}
	return names
}

// NumVendors returns the number of vendors in the dictionary.
func (d *Dictionary) NumVendors() int { return len(d.vendors) }

// NumServices returns the total number of service records.
func (d *Dictionary) NumServices() int { return d.numServices }

// MatchExecutable returns every entry whose Executable has the given
// base file name, case-insensitively. Directory prefixes on either side
// are ignored, so the observed name "mcshield.exe" matches a dictionary
// entry recorded as `x86\McShield.exe`.
func (d *Dictionary) MatchExecutable(name string) []Entry {
	return copyEntries(d.byExecutable[executableKey(name)])
}

// MatchService returns every entry whose SvcName equals the given name,
// case-insensitively.
func (d *Dictionary) MatchService(name string) []Entry {
	return copyEntries(d.bySvcName[strings.ToLower(strings.TrimSpace(name))])
}

// Match runs the presence check for a list of observed executable or
// service names. Each observed token is looked up against both indexes;
// every matching entry is reported, including distinct SvcNames that
// share one executable. Tokens matching nothing contribute nothing: an
// empty result is a normal outcome, never an error.
func (d *Dictionary) Match(observed []string) []Match {
	var matches []Match
	for _, obs := range observed {
		seen := make(map[Entry]bool)
		for _, e := range d.MatchExecutable(obs) {
			if !seen[e] {
				seen[e] = true
				matches = append(matches, Match{Observed: obs, MatchedOn: FieldExecutable, Entry: e})
			}
		}
		for _, e := range d.MatchService(obs) {
			if !seen[e] {
				seen[e] = true
				matches = append(matches, Match{Observed: obs, MatchedOn: FieldSvcName, Entry: e})
			}
		}
	}
	return matches
}

// executableKey normalizes an executable reference to its lowercase base
// name. Dictionary entries occasionally carry a relative subdirectory
// and observed process lists sometimes carry full paths.
func executableKey(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `\/`); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

func copyEntries(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// build assembles a Dictionary from validated vendor records.
func build(vendors []Vendor) *Dictionary {
	sort.Slice(vendors, func(i, j int) bool {
		return vendors[i].Name < vendors[j].Name
	})

	d := &Dictionary{
		vendors:      vendors,
		byExecutable: make(map[string][]Entry),
		bySvcName:    make(map[string][]Entry),
	}
	for _, v := range vendors {
		for _, s := range v.Services {
			e := Entry{Vendor: v.Name, Service: s}
			exeKey := executableKey(s.Executable)
			d.byExecutable[exeKey] = append(d.byExecutable[exeKey], e)
			svcKey := strings.ToLower(s.SvcName)
			d.bySvcName[svcKey] = append(d.bySvcName[svcKey], e)
			d.numServices++
		}
	}
	return d
}
