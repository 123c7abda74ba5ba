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
	"math/bits"
	"strings"

	"antrea.io/libOpenflow/openflow13"
	"antrea.io/libOpenflow/openflow15"
)

// OpenFlow wire versions, as carried in the version field of every header.
const (
	Version10 uint8 = 0x01
	Version11 uint8 = 0x02
	Version12 uint8 = 0x03
	Version13 uint8 = openflow13.VERSION
	Version14 uint8 = 0x05
	Version15 uint8 = openflow15.VERSION
)

// Protocol is a single flow-format dialect that a switch may speak on a
// channel. Every Protocol has exactly one bit set.
type Protocol uint16

const (
	// OpenFlow 1.0 with standard matches, with or without the table_id
	// extension for flow_mods.
	ProtocolOF10Std Protocol = 1 << iota
	ProtocolOF10StdTID
	// OpenFlow 1.0 with the Nicira extended match (NXM).
	ProtocolOF10NXM
	ProtocolOF10NXMTID
	ProtocolOF11Std
	ProtocolOF12OXM
	ProtocolOF13OXM
	ProtocolOF14OXM
	ProtocolOF15OXM

	// NumProtocols is the number of representable protocols.
	NumProtocols = 9
)

// ProtocolSet is a set of Protocols.
type ProtocolSet uint16

var (
	ProtocolsOF10Std = NewProtocolSet(ProtocolOF10Std, ProtocolOF10StdTID)
	ProtocolsOF10NXM = NewProtocolSet(ProtocolOF10NXM, ProtocolOF10NXMTID)
	ProtocolsOXM     = NewProtocolSet(ProtocolOF12OXM, ProtocolOF13OXM, ProtocolOF14OXM, ProtocolOF15OXM)
	// ProtocolsNXMOrOF11Up are the protocols able to carry a cookie in a flow
	// stats request.
	ProtocolsNXMOrOF11Up = ProtocolsOF10NXM.Union(NewProtocolSet(ProtocolOF11Std)).Union(ProtocolsOXM)
	ProtocolsAny         = ProtocolSet(1<<NumProtocols - 1)
)

// FlowDumpProtocols lists the protocols usable for flow stats requests, in
// order of preference.
var FlowDumpProtocols = []Protocol{
	ProtocolOF15OXM,
	ProtocolOF14OXM,
	ProtocolOF13OXM,
	ProtocolOF12OXM,
	ProtocolOF11Std,
	ProtocolOF10NXM,
	ProtocolOF10Std,
}

var protocolNames = map[Protocol]string{
	ProtocolOF10Std:    "OpenFlow10-table_id",
	ProtocolOF10StdTID: "OpenFlow10+table_id",
	ProtocolOF10NXM:    "NXM-table_id",
	ProtocolOF10NXMTID: "NXM+table_id",
	ProtocolOF11Std:    "OpenFlow11",
	ProtocolOF12OXM:    "OXM-OpenFlow12",
	ProtocolOF13OXM:    "OXM-OpenFlow13",
	ProtocolOF14OXM:    "OXM-OpenFlow14",
	ProtocolOF15OXM:    "OXM-OpenFlow15",
}

// Abbreviations are tried in order when formatting a set, so that "any" wins
// over its parts.
var protocolAbbrevs = []struct {
	name string
	set  ProtocolSet
}{
	{"any", ProtocolsAny},
	{"OpenFlow10", ProtocolsOF10Std},
	{"NXM", ProtocolsOF10NXM},
	{"OXM", ProtocolsOXM},
}

func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Protocol(0x%x)", uint16(p))
}

// Version returns the OpenFlow wire version the protocol is spoken over.
func (p Protocol) Version() uint8 {
	switch p {
	case ProtocolOF10Std, ProtocolOF10StdTID, ProtocolOF10NXM, ProtocolOF10NXMTID:
		return Version10
	case ProtocolOF11Std:
		return Version11
	case ProtocolOF12OXM:
		return Version12
	case ProtocolOF13OXM:
		return Version13
	case ProtocolOF14OXM:
		return Version14
	case ProtocolOF15OXM:
		return Version15
	}
	return 0
}

// HasTID reports whether flow_mods in this protocol may carry a table id.
// Every protocol after OpenFlow 1.0 does.
func (p Protocol) HasTID() bool {
	return p != ProtocolOF10Std && p != ProtocolOF10NXM
}

// Base returns the protocol with the table_id extension removed.
func (p Protocol) Base() Protocol {
	switch p {
	case ProtocolOF10StdTID:
		return ProtocolOF10Std
	case ProtocolOF10NXMTID:
		return ProtocolOF10NXM
	}
	return p
}

// WithTID returns the protocol with the table_id extension enabled or
// disabled. Protocols that cannot toggle it are returned unchanged.
func (p Protocol) WithTID(enable bool) Protocol {
	switch p.Base() {
	case ProtocolOF10Std:
		if enable {
			return ProtocolOF10StdTID
		}
		return ProtocolOF10Std
	case ProtocolOF10NXM:
		if enable {
			return ProtocolOF10NXMTID
		}
		return ProtocolOF10NXM
	}
	return p
}

// WithBase returns the protocol that uses base's match format and keeps the
// table_id setting of p.
func (p Protocol) WithBase(base Protocol) Protocol {
	return base.Base().WithTID(p.HasTID())
}

// ProtocolFromVersion returns the protocol a freshly connected channel speaks
// for the given wire version.
func ProtocolFromVersion(version uint8) (Protocol, bool) {
	switch version {
	case Version10:
		return ProtocolOF10Std, true
	case Version11:
		return ProtocolOF11Std, true
	case Version12:
		return ProtocolOF12OXM, true
	case Version13:
		return ProtocolOF13OXM, true
	case Version14:
		return ProtocolOF14OXM, true
	case Version15:
		return ProtocolOF15OXM, true
	}
	return 0, false
}

// ProtocolsForVersions returns the protocols spoken on the given wire versions.
func ProtocolsForVersions(versions VersionSet) ProtocolSet {
	var s ProtocolSet
	for i := 0; i < NumProtocols; i++ {
		if p := Protocol(1 << i); versions.Has(p.Version()) {
			s |= ProtocolSet(p)
		}
	}
	return s
}

func NewProtocolSet(protocols ...Protocol) ProtocolSet {
	var s ProtocolSet
	for _, p := range protocols {
		s |= ProtocolSet(p)
	}
	return s
}

func (s ProtocolSet) Has(p Protocol) bool {
	return p != 0 && s&ProtocolSet(p) == ProtocolSet(p)
}

func (s ProtocolSet) Union(o ProtocolSet) ProtocolSet {
	return s | o
}

func (s ProtocolSet) Intersect(o ProtocolSet) ProtocolSet {
	return s & o
}

func (s ProtocolSet) IsEmpty() bool {
	return s&ProtocolsAny == 0
}

func (s ProtocolSet) Len() int {
	return bits.OnesCount16(uint16(s & ProtocolsAny))
}

// Protocols returns the members of the set in ascending bit order.
func (s ProtocolSet) Protocols() []Protocol {
	var protocols []Protocol
	for i := 0; i < NumProtocols; i++ {
		if p := Protocol(1 << i); s.Has(p) {
			protocols = append(protocols, p)
		}
	}
	return protocols
}

func (s ProtocolSet) String() string {
	s &= ProtocolsAny
	if s == 0 {
		return "none"
	}
	var names []string
	for _, abbrev := range protocolAbbrevs {
		if s&abbrev.set == abbrev.set {
			names = append(names, abbrev.name)
			s &^= abbrev.set
		}
	}
	for _, p := range s.Protocols() {
		names = append(names, p.String())
	}
	return strings.Join(names, ",")
}

// ParseProtocols parses a comma- or space-separated list of protocol names and
// abbreviations, as produced by ProtocolSet.String.
func ParseProtocols(s string) (ProtocolSet, error) {
	var set ProtocolSet
	for _, name := range strings.FieldsFunc(s, isListSeparator) {
		p, err := parseProtocol(name)
		if err != nil {
			return 0, err
		}
		set |= p
	}
	if set == 0 {
		return 0, fmt.Errorf("%q: no flow protocol specified", s)
	}
	return set, nil
}

func parseProtocol(name string) (ProtocolSet, error) {
	for _, abbrev := range protocolAbbrevs {
		if strings.EqualFold(name, abbrev.name) {
			return abbrev.set, nil
		}
	}
	for p, pName := range protocolNames {
		if strings.EqualFold(name, pName) {
			return ProtocolSet(p), nil
		}
	}
	return 0, fmt.Errorf("%s: unknown flow protocol", name)
}

func isListSeparator(r rune) bool {
	return r == ',' || r == ' ' || r == '\t'
}
