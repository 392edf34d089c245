// Package svclist enumerates the system services registered on the
// local host. Each platform backend returns the full service table; the
// scanner intersects it against the security-product dictionary.
package svclist

import "context"

// Status constants for ServiceInfo.Status.
const (
	StatusRunning  = "running"
	StatusStopped  = "stopped"
	StatusFailed   = "failed"
	StatusUnknown  = "unknown"
	StatusStarting = "starting"
	StatusStopping = "stopping"
)

// ServiceInfo describes one registered system service.
type ServiceInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Status      string `json:"status"`
	StartType   string `json:"startType,omitempty"`
	BinaryPath  string `json:"binaryPath,omitempty"`
}

// IsActive returns true if the service is currently running.
func (s ServiceInfo) IsActive() bool {
	return s.Status == StatusRunning || s.Status == StatusStarting
}

// List returns every service registered on this host. The context bounds
// any external commands the platform backend shells out to.
func List(ctx context.Context) ([]ServiceInfo, error) {
	return listServices(ctx)
}
