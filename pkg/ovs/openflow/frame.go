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
	"encoding/binary"
	"fmt"

	"antrea.io/libOpenflow/common"
)

// Frame is one OpenFlow message received from a switch.
type Frame struct {
	Header common.Header
	Raw    Raw
	// Flags of a statistics reply, zero for other messages.
	Flags uint16
	// Data holds the whole message, header included.
	Data []byte
}

// DecodeFrame classifies a received message. Only the header and the fields
// needed to tell message kinds apart are decoded.
func DecodeFrame(data []byte) (*Frame, error) {
	f := &Frame{Data: data}
	if len(data) < headerLen {
		return nil, fmt.Errorf("OpenFlow message too short: %d bytes", len(data))
	}
	if err := f.Header.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	if int(f.Header.Length) != len(data) {
		return nil, fmt.Errorf("OpenFlow message length %d does not match %d received bytes", f.Header.Length, len(data))
	}
	f.Raw = Raw{Version: f.Header.Version, Type: f.Header.Type}

	body := data[headerLen:]
	switch {
	case f.Raw.Type == typeExperimenter:
		if len(body) >= 8 {
			f.Raw.Vendor = binary.BigEndian.Uint32(body[0:])
			f.Raw.Subtype = binary.BigEndian.Uint32(body[4:])
		}
	case f.isStats():
		if len(body) < 4 {
			return nil, fmt.Errorf("statistics message too short: %d bytes", len(data))
		}
		f.Raw.Stats = binary.BigEndian.Uint16(body[0:])
		f.Flags = binary.BigEndian.Uint16(body[2:])
		if f.Raw.Stats != statsVendor {
			break
		}
		// The vendor id follows the flags in OpenFlow 1.0 and the padding
		// after them in later versions.
		off := 4
		if f.Raw.Version != Version10 {
			off = 8
		}
		if len(body) >= off+8 {
			f.Raw.Vendor = binary.BigEndian.Uint32(body[off:])
			f.Raw.Subtype = binary.BigEndian.Uint32(body[off+4:])
		}
	}
	return f, nil
}

func (f *Frame) Xid() uint32 {
	return f.Header.Xid
}

func (f *Frame) IsError() bool {
	return f.Raw.Type == typeError
}

// IsMore reports whether the frame is a statistics reply fragment that is
// followed by more fragments.
func (f *Frame) IsMore() bool {
	return f.isStatsReply() && f.Flags&statsReplyMore != 0
}

func (f *Frame) isStats() bool {
	if f.Raw.Version == Version10 {
		return f.Raw.Type == typeOF10StatsRequest || f.Raw.Type == typeOF10StatsReply
	}
	return f.Raw.Type == typeMultipartRequest || f.Raw.Type == typeMultipartReply
}

func (f *Frame) isStatsReply() bool {
	if f.Raw.Version == Version10 {
		return f.Raw.Type == typeOF10StatsReply
	}
	return f.Raw.Type == typeMultipartReply
}

// statsBody returns the statistics payload following the statistics header.
func (f *Frame) statsBody() []byte {
	off := headerLen + 8
	switch {
	case f.Raw.Version == Version10 && f.Raw.Stats == statsVendor:
		off = headerLen + 16
	case f.Raw.Version == Version10:
		off = headerLen + 4
	case f.Raw.Stats == statsVendor:
		off = headerLen + 16
	}
	if off > len(f.Data) {
		return nil
	}
	return f.Data[off:]
}
