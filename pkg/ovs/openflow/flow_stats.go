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
	"strconv"
	"strings"

	"antrea.io/libOpenflow/openflow13"
)

// FlowStatsRequest selects the flows reported by a flow or aggregate stats
// request.
type FlowStatsRequest struct {
	Aggregate  bool
	TableID    uint8
	OutPort    uint32
	Cookie     uint64
	CookieMask uint64
}

// ParseFlowStatsRequest parses a flow selection such as
// "table=3,cookie=0x10/0xff,out_port=2" and returns the request together with
// the protocols able to express it. An empty string selects every flow.
func ParseFlowStatsRequest(s string, aggregate bool) (*FlowStatsRequest, ProtocolSet, error) {
	fsr := &FlowStatsRequest{
		Aggregate: aggregate,
		TableID:   TableAll,
		OutPort:   PortAny,
	}
	usable := ProtocolsAny
	for _, field := range strings.FieldsFunc(s, isListSeparator) {
		name, value, ok := strings.Cut(field, "=")
		if !ok {
			return nil, 0, fmt.Errorf("field %s missing value", name)
		}
		switch name {
		case "table":
			if value == "all" {
				fsr.TableID = TableAll
				break
			}
			table, err := strconv.ParseUint(value, 0, 8)
			if err != nil || table >= uint64(TableAll) {
				return nil, 0, fmt.Errorf("invalid table %q", value)
			}
			fsr.TableID = uint8(table)
		case "out_port":
			if value == "any" || value == "none" {
				fsr.OutPort = PortAny
				break
			}
			port, err := strconv.ParseUint(value, 0, 32)
			if err != nil {
				return nil, 0, fmt.Errorf("invalid out_port %q", value)
			}
			fsr.OutPort = uint32(port)
		case "cookie":
			cookieStr, maskStr, hasMask := strings.Cut(value, "/")
			cookie, err := strconv.ParseUint(cookieStr, 0, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("invalid cookie %q", value)
			}
			mask := uint64(0xffffffffffffffff)
			if hasMask {
				if mask, err = strconv.ParseUint(maskStr, 0, 64); err != nil {
					return nil, 0, fmt.Errorf("invalid cookie mask %q", value)
				}
			}
			fsr.Cookie, fsr.CookieMask = cookie&mask, mask
			// OpenFlow 1.0 has no cookie in its flow stats request.
			usable = usable.Intersect(ProtocolsNXMOrOF11Up)
		default:
			return nil, 0, fmt.Errorf("unknown keyword %s", name)
		}
	}
	return fsr, usable, nil
}

func (r *FlowStatsRequest) statsType() uint16 {
	if r.Aggregate {
		return statsAggregate
	}
	return statsFlow
}

// of10FlowStatsBody is ofp10_stats_msg followed by ofp10_flow_stats_request,
// with a match that wildcards every field.
type of10FlowStatsBody struct {
	req     *FlowStatsRequest
	outPort uint16
}

const of10WildcardAll uint32 = 1<<22 - 1

func (b *of10FlowStatsBody) Len() uint16 {
	return 4 + 40 + 4
}

func (b *of10FlowStatsBody) MarshalBinary() ([]byte, error) {
	data := make([]byte, b.Len())
	binary.BigEndian.PutUint16(data[0:], b.req.statsType())
	binary.BigEndian.PutUint32(data[4:], of10WildcardAll)
	data[44] = b.req.TableID
	binary.BigEndian.PutUint16(data[46:], b.outPort)
	return data, nil
}

func (b *of10FlowStatsBody) UnmarshalBinary(data []byte) error {
	return fmt.Errorf("decoding OpenFlow 1.0 flow stats requests is not supported")
}

// nxFlowStatsBody is nicira10_stats_msg followed by nx_flow_stats_request.
// The NXM match holds the cookie when one is requested.
type nxFlowStatsBody struct {
	req     *FlowStatsRequest
	outPort uint16
}

// NXM_NX_COOKIE_W: class 0x0001, field 30, masked, 16 bytes.
const nxmNXCookieW uint32 = 0x0001<<16 | 30<<9 | 1<<8 | 16

func (b *nxFlowStatsBody) matchLen() uint16 {
	if b.req.CookieMask == 0 {
		return 0
	}
	return 4 + 16
}

func (b *nxFlowStatsBody) Len() uint16 {
	return 16 + 8 + pad8(b.matchLen())
}

func (b *nxFlowStatsBody) MarshalBinary() ([]byte, error) {
	data := make([]byte, b.Len())
	binary.BigEndian.PutUint16(data[0:], statsVendor)
	binary.BigEndian.PutUint32(data[4:], nxVendorID)
	subtype := nxstFlow
	if b.req.Aggregate {
		subtype = nxstAggregate
	}
	binary.BigEndian.PutUint32(data[8:], subtype)
	binary.BigEndian.PutUint16(data[16:], b.outPort)
	binary.BigEndian.PutUint16(data[18:], b.matchLen())
	data[20] = b.req.TableID
	if b.matchLen() > 0 {
		binary.BigEndian.PutUint32(data[24:], nxmNXCookieW)
		binary.BigEndian.PutUint64(data[28:], b.req.Cookie)
		binary.BigEndian.PutUint64(data[36:], b.req.CookieMask)
	}
	return data, nil
}

func (b *nxFlowStatsBody) UnmarshalBinary(data []byte) error {
	return fmt.Errorf("decoding NXM flow stats requests is not supported")
}

// of11FlowStatsBody is ofp11_stats_msg followed by ofp11_flow_stats_request
// and an ofp11_match with every field wildcarded.
type of11FlowStatsBody struct {
	req *FlowStatsRequest
}

const (
	of11MatchLen       = 88
	of11WildcardAll    = 1<<10 - 1
	flowStatsReqFixLen = 32
)

func (b *of11FlowStatsBody) Len() uint16 {
	return 8 + flowStatsReqFixLen + of11MatchLen
}

func (b *of11FlowStatsBody) MarshalBinary() ([]byte, error) {
	data := make([]byte, b.Len())
	binary.BigEndian.PutUint16(data[0:], b.req.statsType())
	req := data[8:]
	req[0] = b.req.TableID
	binary.BigEndian.PutUint32(req[4:], b.req.OutPort)
	binary.BigEndian.PutUint32(req[8:], groupAny)
	binary.BigEndian.PutUint64(req[16:], b.req.Cookie)
	binary.BigEndian.PutUint64(req[24:], b.req.CookieMask)
	match := req[flowStatsReqFixLen:]
	binary.BigEndian.PutUint16(match[2:], of11MatchLen)
	binary.BigEndian.PutUint32(match[8:], of11WildcardAll)
	// A set mask bit means "don't care" in OpenFlow 1.1.
	for _, r := range [][2]int{{18, 24}, {30, 36}, {48, 52}, {56, 60}, {80, 88}} {
		for i := r[0]; i < r[1]; i++ {
			match[i] = 0xff
		}
	}
	return data, nil
}

func (b *of11FlowStatsBody) UnmarshalBinary(data []byte) error {
	return fmt.Errorf("decoding OpenFlow 1.1 flow stats requests is not supported")
}

// oxmFlowStatsRequest builds a flow or aggregate stats request with an empty
// OXM match. OpenFlow 1.2 to 1.5 encode it identically apart from the header
// version, which the caller sets.
func oxmFlowStatsRequest(fsr *FlowStatsRequest) *openflow13.MultipartRequest {
	stats := openflow13.NewFlowStatsRequest()
	stats.TableId = fsr.TableID
	stats.OutPort = fsr.OutPort
	stats.Cookie = fsr.Cookie
	stats.CookieMask = fsr.CookieMask
	return &openflow13.MultipartRequest{
		Type: fsr.statsType(),
		Body: stats,
	}
}

func pad8(n uint16) uint16 {
	return (n + 7) &^ 7
}
