// Package inputkit is a text input core for immediate-mode and entity based
// UIs. The packages below it hold the pieces: buffer for text, selection and
// history, editor for key handling and the per-frame cycle, layout for line
// layout, clipboard and config for host integration.
package inputkit

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the library version in SemVer form, without the `v`.
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns the git tag form of Version.
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// Semver is a parsed SemVer 2.0.0 version.
type Semver struct {
	Major, Minor, Patch int
	Pre, Build          string
}

func (s Semver) String() string {
	v := fmt.Sprintf("%d.%d.%d", s.Major, s.Minor, s.Patch)
	if s.Pre != "" {
		v += "-" + s.Pre
	}
	if s.Build != "" {
		v += "+" + s.Build
	}
	return v
}

// ParseVersion parses v, which must not carry a `v` prefix.
func ParseVersion(v string) (Semver, error) {
	m := semverRE.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return Semver{}, fmt.Errorf("inputkit: %q is not a semver", v)
	}
	var s Semver
	var err error
	for i, dst := range []*int{&s.Major, &s.Minor, &s.Patch} {
		if *dst, err = strconv.Atoi(m[i+1]); err != nil {
			return Semver{}, fmt.Errorf("inputkit: %q: %w", v, err)
		}
	}
	s.Pre, s.Build = m[4], m[5]
	return s, nil
}
