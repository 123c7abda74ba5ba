// Copyright 2026 Antrea Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openflow

import (
	"fmt"
	"strings"
)

// VersionSet is a bitmap of OpenFlow wire versions, bit N standing for
// version N, as in the HELLO version bitmap element.
type VersionSet uint32

// DefaultVersions are the versions offered in HELLO when none are configured.
var DefaultVersions = NewVersionSet(Version10, Version11, Version12, Version13, Version14, Version15)

var versionNames = map[uint8]string{
	Version10: "OpenFlow10",
	Version11: "OpenFlow11",
	Version12: "OpenFlow12",
	Version13: "OpenFlow13",
	Version14: "OpenFlow14",
	Version15: "OpenFlow15",
}

func NewVersionSet(versions ...uint8) VersionSet {
	var s VersionSet
	for _, v := range versions {
		s |= 1 << v
	}
	return s
}

func (s VersionSet) Has(version uint8) bool {
	return version < 32 && s&(1<<version) != 0
}

func (s VersionSet) Intersect(o VersionSet) VersionSet {
	return s & o
}

// Highest returns the highest version in the set, or 0 if the set is empty.
func (s VersionSet) Highest() uint8 {
	for v := 31; v > 0; v-- {
		if s.Has(uint8(v)) {
			return uint8(v)
		}
	}
	return 0
}

func (s VersionSet) String() string {
	var names []string
	for v := uint8(1); v < 32; v++ {
		if !s.Has(v) {
			continue
		}
		names = append(names, VersionString(v))
	}
	return strings.Join(names, ",")
}

// VersionString returns the name of an OpenFlow wire version.
func VersionString(version uint8) string {
	if name, ok := versionNames[version]; ok {
		return name
	}
	return fmt.Sprintf("0x%02x", version)
}

// ParseVersions parses a comma-separated list of version names such as
// "OpenFlow10,OpenFlow13".
func ParseVersions(s string) (VersionSet, error) {
	var set VersionSet
	for _, name := range strings.FieldsFunc(s, isListSeparator) {
		found := false
		for v, vName := range versionNames {
			if strings.EqualFold(name, vName) {
				set |= NewVersionSet(v)
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%s: unknown OpenFlow version", name)
		}
	}
	if set == 0 {
		return 0, fmt.Errorf("%q: no OpenFlow version specified", s)
	}
	return set, nil
}
