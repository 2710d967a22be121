// Package version exposes the build version as a semver triple.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// raw is overridden at build time:
//
//	go build -ldflags "-X github.com/chefos/platform/internal/version.raw=1.2.3"
var raw = "1.0.0"

// Version is a parsed semantic version.
type Version struct {
	Major   int    `json:"major"`
	Minor   int    `json:"minor"`
	Patch   int    `json:"patch"`
	Version string `json:"version"`
}

// Current parses the build version. The fallback for an unparseable build
// string is 0.0.0 with the raw string preserved.
func Current() Version {
	v, err := Parse(raw)
	if err != nil {
		return Version{Version: raw}
	}
	return v
}

// Parse splits a MAJOR.MINOR.PATCH string.
func Parse(s string) (Version, error) {
	parts := strings.SplitN(strings.TrimPrefix(s, "v"), ".", 3)
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
		nums[i] = n
	}
	return Version{
		Major:   nums[0],
		Minor:   nums[1],
		Patch:   nums[2],
		Version: fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2]),
	}, nil
}
