package avdict

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError reports a dictionary document that does not conform to the
// expected shape. Loading is all-or-nothing: when a ParseError is
// returned, no partial dictionary exists.
type ParseError struct {
	Vendor string // vendor whose block was malformed, if known
	Field  string // offending field, if known
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Vendor != "" && e.Field != "":
		return fmt.Sprintf("avdict: vendor %q: field %q: %v", e.Vendor, e.Field, e.Err)
	case e.Vendor != "":
		return fmt.Sprintf("avdict: vendor %q: %v", e.Vendor, e.Err)
	default:
		return fmt.Sprintf("avdict: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// document mirrors the source shape: top-level keys are vendor names,
// each mapping to an object with a single "Services" sequence.
type vendorDoc struct {
	Services *[]serviceDoc `json:"Services" yaml:"Services"`
}

// serviceDoc uses pointer fields so a missing key can be told apart
// from an empty string.
type serviceDoc struct {
	SvcName     *string `json:"SvcName" yaml:"SvcName"`
	Executable  *string `json:"Executable" yaml:"Executable"`
	Description *string `json:"Description" yaml:"Description"`
}

// Load reads and parses a dictionary file. Files ending in .yaml or
// .yml are parsed as YAML; everything else as JSON.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("avdict: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// Parse builds a Dictionary from a JSON document. Any shape violation,
// including unknown service fields, returns a *ParseError and no
// dictionary.
func Parse(data []byte) (*Dictionary, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc map[string]vendorDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	// A well-formed dictionary is exactly one JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: fmt.Errorf("trailing data after dictionary document")}
	}
	return fromDoc(doc)
}

// ParseYAML builds a Dictionary from a YAML document with the same
// shape and the same all-or-nothing contract as Parse.
func ParseYAML(data []byte) (*Dictionary, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc map[string]vendorDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: fmt.Errorf("trailing document after dictionary")}
	}
	return fromDoc(doc)
}

func fromDoc(doc map[string]vendorDoc) (*Dictionary, error) {
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	vendors := make([]Vendor, 0, len(names))
	for _, name := range names {
		vd := doc[name]
		if vd.Services == nil {
			return nil, &ParseError{Vendor: name, Field: "Services", Err: fmt.Errorf("missing required key")}
		}
		v := Vendor{Name: name, Services: make([]Service, 0, len(*vd.Services))}
		for i, sd := range *vd.Services {
			svc, err := sd.toService(name, i)
			if err != nil {
				return nil, err
			}
			v.Services = append(v.Services, svc)
		}
		vendors = append(vendors, v)
	}
	return build(vendors), nil
}

func (sd serviceDoc) toService(vendor string, index int) (Service, error) {
	missing := func(field string) error {
		return &ParseError{Vendor: vendor, Field: field,
			Err: fmt.Errorf("service %d: missing required key", index)}
	}
	empty := func(field string) error {
		return &ParseError{Vendor: vendor, Field: field,
			Err: fmt.Errorf("service %d: must be a non-empty string", index)}
	}

	switch {
	case sd.SvcName == nil:
		return Service{}, missing("SvcName")
	case sd.Executable == nil:
		return Service{}, missing("Executable")
	case sd.Description == nil:
		return Service{}, missing("Description")
	case strings.TrimSpace(*sd.SvcName) == "":
		return Service{}, empty("SvcName")
	case strings.TrimSpace(*sd.Executable) == "":
		return Service{}, empty("Executable")
	}

	// Canonicalize here so index keys and stored records agree; a padded
	// SvcName would otherwise be indexed under a key no lookup can produce.
	return Service{
		SvcName:     strings.TrimSpace(*sd.SvcName),
		Executable:  strings.TrimSpace(*sd.Executable),
		Description: strings.TrimSpace(*sd.Description),
	}, nil
}
