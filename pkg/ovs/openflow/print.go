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
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"antrea.io/libOpenflow/openflow13"
)

// ErrorReply is the content of an OFPT_ERROR message.
type ErrorReply struct {
	Type uint16
	Code uint16
	// Data holds at least the first bytes of the offending request.
	Data []byte
}

func (e *ErrorReply) String() string {
	typeName, ok := errorTypeNames[e.Type]
	if !ok {
		return fmt.Sprintf("***decode error: type=%d, code=%d***", e.Type, e.Code)
	}
	if e.Type == errorTypeBadRequest {
		if codeName, ok := badRequestCodeNames[e.Code]; ok {
			return codeName
		}
	}
	return fmt.Sprintf("%s code=%d", typeName, e.Code)
}

const errorTypeBadRequest uint16 = 1

var errorTypeNames = map[uint16]string{
	0: "OFPET_HELLO_FAILED",
	1: "OFPET_BAD_REQUEST",
	2: "OFPET_BAD_ACTION",
}

var badRequestCodeNames = map[uint16]string{
	0: "OFPBRC_BAD_VERSION",
	1: "OFPBRC_BAD_TYPE",
	2: "OFPBRC_BAD_STAT",
	3: "OFPBRC_BAD_VENDOR",
	4: "OFPBRC_BAD_SUBTYPE",
	5: "OFPBRC_EPERM",
	6: "OFPBRC_BAD_LEN",
}

// DecodeErrorReply decodes the body of an error frame.
func DecodeErrorReply(f *Frame) (*ErrorReply, error) {
	if !f.IsError() {
		return nil, fmt.Errorf("%s is not an error message", rawName(f.Raw))
	}
	if len(f.Data) < headerLen+4 {
		return nil, fmt.Errorf("error message too short: %d bytes", len(f.Data))
	}
	msg := openflow13.NewErrorMsg()
	if err := msg.UnmarshalBinary(f.Data); err != nil {
		return nil, err
	}
	return &ErrorReply{
		Type: msg.Type,
		Code: msg.Code,
		Data: bytes.Clone(msg.Data.Bytes()),
	}, nil
}

// Render formats a frame the way ovs-ofctl prints it: a line naming the
// message, followed by its decoded content.
func Render(f *Frame, verbosity int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (OF1.%d) (xid=0x%x):", rawName(f.Raw), f.Raw.Version-1, f.Xid())
	switch {
	case f.IsError():
		if e, err := DecodeErrorReply(f); err != nil {
			fmt.Fprintf(&b, " %v", err)
		} else {
			fmt.Fprintf(&b, " %s", e)
		}
	case f.isStatsReply() && f.Raw.Stats == statsFlow:
		renderFlowStats(&b, f, f.Raw.Version)
	case f.isStatsReply() && f.Raw.Vendor == nxVendorID && f.Raw.Subtype == nxstFlow:
		renderFlowStats(&b, f, 0)
	case f.isStatsReply() && (f.Raw.Stats == statsAggregate || f.Raw.Vendor == nxVendorID && f.Raw.Subtype == nxstAggregate):
		renderAggregateStats(&b, f)
	}
	if f.IsMore() {
		b.WriteString(" flags=[more]")
	}
	b.WriteString("\n")
	if verbosity > 1 {
		b.WriteString(hex.Dump(f.Data))
	}
	return b.String()
}

// flowEntry holds the fields of one flow stats entry that are rendered.
// Counters are absent from OpenFlow 1.5 entries.
type flowEntry struct {
	Cookie       uint64
	DurationSec  uint32
	DurationNSec uint32
	TableID      uint8
	Priority     uint16
	PacketCount  uint64
	ByteCount    uint64
	hasCounters  bool
}

// Offsets of the fields in the flow stats entries libOpenflow has no decoder
// for. layout 0 is the Nicira nx_flow_stats; the others are per OpenFlow
// version.
type flowStatsLayout struct {
	fixedLen int
	table    int
	duration int
	priority int
	cookie   int
	packets  int
}

func layoutFor(version uint8) flowStatsLayout {
	switch version {
	case Version10:
		return flowStatsLayout{fixedLen: 88, table: 2, duration: 44, priority: 52, cookie: 64, packets: 72}
	case Version15:
		// Counters are carried as OXS stats, which are not decoded.
		return flowStatsLayout{fixedLen: 24, table: 4, duration: -1, priority: 6, cookie: 16, packets: -1}
	}
	// nx_flow_stats and ofp11_flow_stats share the counter offsets.
	return flowStatsLayout{fixedLen: 48, table: 2, duration: 4, priority: 12, cookie: 24, packets: 32}
}

// minFlowEntryLen is the shortest flow stats entry of a version: the fixed
// part plus, for OXM versions, an empty padded match.
func minFlowEntryLen(version uint8) int {
	switch version {
	case Version12, Version13, Version14:
		return 48 + 8
	}
	return layoutFor(version).fixedLen
}

func decodeFlowEntry(entry []byte, version uint8) (*flowEntry, error) {
	switch version {
	case Version12, Version13, Version14:
		// ofp12_flow_stats and its successors only differ in padding.
		stats := new(openflow13.FlowStats)
		if err := stats.UnmarshalBinary(entry); err != nil {
			return nil, err
		}
		return &flowEntry{
			Cookie:       stats.Cookie,
			DurationSec:  stats.DurationSec,
			DurationNSec: stats.DurationNSec,
			TableID:      stats.TableId,
			Priority:     stats.Priority,
			PacketCount:  stats.PacketCount,
			ByteCount:    stats.ByteCount,
			hasCounters:  true,
		}, nil
	}
	layout := layoutFor(version)
	e := &flowEntry{
		Cookie:   binary.BigEndian.Uint64(entry[layout.cookie:]),
		TableID:  entry[layout.table],
		Priority: binary.BigEndian.Uint16(entry[layout.priority:]),
	}
	if layout.duration >= 0 {
		e.DurationSec = binary.BigEndian.Uint32(entry[layout.duration:])
		e.DurationNSec = binary.BigEndian.Uint32(entry[layout.duration+4:])
	}
	if layout.packets >= 0 {
		e.PacketCount = binary.BigEndian.Uint64(entry[layout.packets:])
		e.ByteCount = binary.BigEndian.Uint64(entry[layout.packets+8:])
		e.hasCounters = true
	}
	return e, nil
}

func renderFlowStats(b *strings.Builder, f *Frame, version uint8) {
	minLen := minFlowEntryLen(version)
	body := f.statsBody()
	for len(body) > 0 {
		if len(body) < 2 {
			fmt.Fprintf(b, "\n ***%d leftover bytes***", len(body))
			return
		}
		length := int(binary.BigEndian.Uint16(body))
		if length < minLen || length > len(body) {
			fmt.Fprintf(b, "\n ***bad flow stats entry length %d***", length)
			return
		}
		e, err := decodeFlowEntry(body[:length], version)
		body = body[length:]
		if err != nil {
			fmt.Fprintf(b, "\n ***decode error: %v***", err)
			continue
		}
		fmt.Fprintf(b, "\n cookie=0x%x,", e.Cookie)
		if e.hasCounters {
			fmt.Fprintf(b, " duration=%d.%03ds,", e.DurationSec, e.DurationNSec/1000000)
		}
		fmt.Fprintf(b, " table=%d,", e.TableID)
		if e.hasCounters {
			fmt.Fprintf(b, " n_packets=%d, n_bytes=%d,", e.PacketCount, e.ByteCount)
		}
		fmt.Fprintf(b, " priority=%d", e.Priority)
	}
}

// Every version before 1.5, and the Nicira extension, lays out the aggregate
// counters like ofp_aggregate_stats_reply.
const aggregateStatsLen = 24

func renderAggregateStats(b *strings.Builder, f *Frame) {
	body := f.statsBody()
	if f.Raw.Version == Version15 || len(body) < aggregateStatsLen {
		fmt.Fprintf(b, " %d bytes of aggregate stats", len(body))
		return
	}
	stats := new(openflow13.AggregateStats)
	if err := stats.UnmarshalBinary(body); err != nil {
		fmt.Fprintf(b, " ***decode error: %v***", err)
		return
	}
	fmt.Fprintf(b, " packet_count=%d byte_count=%d flow_count=%d", stats.PacketCount, stats.ByteCount, stats.FlowCount)
}

var nxtNames = map[uint32]string{
	nxtSetFlowFormat:           "NXT_SET_FLOW_FORMAT",
	nxtFlowModTableID:          "NXT_FLOW_MOD_TABLE_ID",
	nxtCheckpointRollback:      "NXT_CHECKPOINT_ROLLBACK",
	nxtCheckpointRollbackReply: "NXT_CHECKPOINT_ROLLBACK_REPLY",
}

func rawName(r Raw) string {
	f := Frame{Raw: r}
	switch {
	case r.Type == typeHello:
		return "OFPT_HELLO"
	case r.Type == typeError:
		return "OFPT_ERROR"
	case r.Type == typeExperimenter:
		if name, ok := nxtNames[r.Subtype]; ok && r.Vendor == nxVendorID {
			return name
		}
		if r.Version == Version10 {
			return "OFPT_VENDOR"
		}
		return "OFPT_EXPERIMENTER"
	case f.isStats():
		suffix := " request"
		if f.isStatsReply() {
			suffix = " reply"
		}
		switch {
		case r.Stats == statsFlow:
			return "OFPST_FLOW" + suffix
		case r.Stats == statsAggregate:
			return "OFPST_AGGREGATE" + suffix
		case r.Stats == statsVendor && r.Vendor == nxVendorID && r.Subtype == nxstFlow:
			return "NXST_FLOW" + suffix
		case r.Stats == statsVendor && r.Vendor == nxVendorID && r.Subtype == nxstAggregate:
			return "NXST_AGGREGATE" + suffix
		}
		return fmt.Sprintf("OFPST_%d%s", r.Stats, suffix)
	case r.Version == Version10 && r.Type == typeOF10BarrierRequest,
		r.Version != Version10 && r.Type == typeBarrierRequest:
		return "OFPT_BARRIER_REQUEST"
	case r.Version == Version10 && r.Type == typeOF10BarrierReply,
		r.Version != Version10 && r.Type == typeBarrierReply:
		return "OFPT_BARRIER_REPLY"
	}
	return fmt.Sprintf("OFPT_%d", r.Type)
}
