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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolSetString(t *testing.T) {
	tests := []struct {
		name string
		set  ProtocolSet
		want string
	}{
		{name: "empty", set: 0, want: "none"},
		{name: "any", set: ProtocolsAny, want: "any"},
		{name: "oxm", set: ProtocolsOXM, want: "OXM"},
		{
			name: "abbreviation and single protocol",
			set:  ProtocolsOF10Std.Union(NewProtocolSet(ProtocolOF13OXM)),
			want: "OpenFlow10,OXM-OpenFlow13",
		},
		{
			name: "single protocols in ascending order",
			set:  NewProtocolSet(ProtocolOF15OXM, ProtocolOF10NXM),
			want: "NXM-table_id,OXM-OpenFlow15",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.String())
		})
	}
}

func TestParseProtocols(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      ProtocolSet
		expectErr bool
	}{
		{name: "abbreviations", input: "OpenFlow10,NXM", want: ProtocolsOF10Std.Union(ProtocolsOF10NXM)},
		{name: "case insensitive", input: "oxm-openflow13", want: NewProtocolSet(ProtocolOF13OXM)},
		{name: "space separated", input: "OpenFlow11 OXM-OpenFlow12", want: NewProtocolSet(ProtocolOF11Std, ProtocolOF12OXM)},
		{name: "any", input: "any", want: ProtocolsAny},
		{name: "unknown", input: "OpenFlow10,bogus", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProtocols(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseProtocolsRoundTrip(t *testing.T) {
	for _, set := range []ProtocolSet{
		ProtocolsAny,
		ProtocolsNXMOrOF11Up,
		NewProtocolSet(ProtocolOF10StdTID, ProtocolOF14OXM),
	} {
		got, err := ParseProtocols(set.String())
		require.NoError(t, err)
		assert.Equal(t, set, got)
	}
}

func TestProtocolTransitions(t *testing.T) {
	assert.Equal(t, ProtocolOF10StdTID, ProtocolOF10Std.WithTID(true))
	assert.Equal(t, ProtocolOF10NXM, ProtocolOF10NXMTID.WithTID(false))
	assert.Equal(t, ProtocolOF13OXM, ProtocolOF13OXM.WithTID(false))
	assert.Equal(t, ProtocolOF10NXMTID, ProtocolOF10StdTID.WithBase(ProtocolOF10NXM))
	assert.Equal(t, ProtocolOF10Std, ProtocolOF10NXM.WithBase(ProtocolOF10StdTID))
	assert.False(t, ProtocolOF10Std.HasTID())
	assert.True(t, ProtocolOF11Std.HasTID())
	assert.Equal(t, Version10, ProtocolOF10NXMTID.Version())
	assert.Equal(t, Version14, ProtocolOF14OXM.Version())
}

func TestProtocolFromVersion(t *testing.T) {
	for version, want := range map[uint8]Protocol{
		Version10: ProtocolOF10Std,
		Version11: ProtocolOF11Std,
		Version12: ProtocolOF12OXM,
		Version13: ProtocolOF13OXM,
		Version14: ProtocolOF14OXM,
		Version15: ProtocolOF15OXM,
	} {
		got, ok := ProtocolFromVersion(version)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := ProtocolFromVersion(0x07)
	assert.False(t, ok)
}

func TestProtocolSetMembership(t *testing.T) {
	usable := ProtocolsNXMOrOF11Up
	assert.False(t, usable.Has(ProtocolOF10Std))
	assert.True(t, usable.Has(ProtocolOF10NXMTID))
	assert.Equal(t, 7, usable.Len())
	assert.True(t, usable.Intersect(ProtocolsOF10Std).IsEmpty())
	assert.Equal(t, []Protocol{ProtocolOF10Std, ProtocolOF10StdTID}, ProtocolsOF10Std.Protocols())
}

func TestVersions(t *testing.T) {
	set, err := ParseVersions("OpenFlow10, OpenFlow13")
	require.NoError(t, err)
	assert.True(t, set.Has(Version10))
	assert.False(t, set.Has(Version11))
	assert.Equal(t, Version13, set.Highest())
	assert.Equal(t, "OpenFlow10,OpenFlow13", set.String())
	assert.Equal(t, Version10, set.Intersect(NewVersionSet(Version10, Version15)).Highest())
	assert.Equal(t, uint8(0), set.Intersect(NewVersionSet(Version14)).Highest())

	_, err = ParseVersions("OpenFlow99")
	assert.Error(t, err)
}

func TestProtocolsForVersions(t *testing.T) {
	assert.Equal(t, ProtocolsOF10Std.Union(ProtocolsOF10NXM), ProtocolsForVersions(NewVersionSet(Version10)))
	assert.Equal(t, NewProtocolSet(ProtocolOF11Std, ProtocolOF15OXM), ProtocolsForVersions(NewVersionSet(Version11, Version15)))
	assert.Equal(t, ProtocolsAny, ProtocolsForVersions(DefaultVersions))
	assert.True(t, ProtocolsForVersions(NewVersionSet()).IsEmpty())
}
