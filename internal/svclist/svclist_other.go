//go:build !windows && !darwin && !linux

package svclist

import (
	"context"
	"fmt"
	"runtime"
)

func listServices(ctx context.Context) ([]ServiceInfo, error) {
	return nil, fmt.Errorf("svclist: not implemented on %s", runtime.GOOS)
}
