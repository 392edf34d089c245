// Package report renders scan and check results for the CLI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/avwatch/avwatch/internal/avdict"
	"github.com/avwatch/avwatch/internal/hostscan"
)

// WriteJSON writes any result as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteScanText renders a host scan report as a table.
func WriteScanText(w io.Writer, r hostscan.Report) error {
	fmt.Fprintf(w, "Scanned %d processes and %d services in %dms\n",
		r.ProcessCount, r.ServiceCount, r.ScanDurationMs)

	if len(r.Hits) == 0 {
		fmt.Fprintln(w, "No known security-vendor services detected.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VENDOR\tSERVICE\tEXECUTABLE\tSTATUS\tSOURCE\tOBSERVED")
		for _, h := range r.Hits {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				h.Vendor, h.SvcName, h.Executable, h.Status, h.Source, h.Observed)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	for _, e := range r.Errors {
		fmt.Fprintf(w, "warning: %s\n", e)
	}
	return nil
}

// WriteMatchesText renders offline check results as a table.
func WriteMatchesText(w io.Writer, matches []avdict.Match) error {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OBSERVED\tMATCHED ON\tVENDOR\tSERVICE\tEXECUTABLE")
	for _, m := range matches {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			m.Observed, m.MatchedOn, m.Entry.Vendor, m.Entry.Service.SvcName, m.Entry.Service.Executable)
	}
	return tw.Flush()
}

// WriteVendorsText lists the dictionary contents.
func WriteVendorsText(w io.Writer, d *avdict.Dictionary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, v := range d.Vendors() {
		fmt.Fprintf(tw, "%s\t(%d services)\n", v.Name, len(v.Services))
		for _, s := range v.Services {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", s.SvcName, s.Executable, s.Description)
		}
	}
	return tw.Flush()
}
