//go:build linux

package svclist

import "testing"

func TestParseUnitFileStates(t *testing.T) {
	output := `
cron.service                 enabled         enabled
ssh.service                  enabled-runtime enabled
apparmor.service             static          -
bluetooth.service            disabled        enabled
systemd-fsck@.service        static          -
not-a-service.timer          enabled         -
`
	states := parseUnitFileStates(output)

	cases := map[string]string{
		"cron.service":      "automatic",
		"ssh.service":       "automatic",
		"apparmor.service":  "manual",
		"bluetooth.service": "disabled",
	}
	for unit, want := range cases {
		if got := states[unit]; got != want {
			t.Errorf("%s = %q, want %q", unit, got, want)
		}
	}
	if _, ok := states["not-a-service.timer"]; ok {
		t.Error("non-service units should be skipped")
	}
}

func TestParseRuntimeStates(t *testing.T) {
	output := `
cron.service        loaded active   running Regular background program processing daemon
ssh.service         loaded inactive dead    OpenBSD Secure Shell server
apport.service      loaded failed   failed  automatic crash report generation
slow.service        loaded activating start Slow starter
`
	states := parseRuntimeStates(output)

	cases := map[string]string{
		"cron.service":   StatusRunning,
		"ssh.service":    StatusStopped,
		"apport.service": StatusFailed,
		"slow.service":   StatusStarting,
	}
	for unit, want := range cases {
		if got := states[unit]; got != want {
			t.Errorf("%s = %q, want %q", unit, got, want)
		}
	}
}
