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

	"antrea.io/libOpenflow/util"
)

// Codec encodes the requests sent by the checkpoint client and decodes the
// replies it receives.
type Codec interface {
	// EncodeFlowStatsRequest encodes a flow or aggregate stats request in the
	// given protocol.
	EncodeFlowStatsRequest(fsr *FlowStatsRequest, protocol Protocol) (*Request, error)
	// EncodeSetProtocol returns the request that moves a channel speaking cur
	// one step closer to want, and the protocol the channel speaks once the
	// switch accepted it. needed is false when no request can get closer,
	// either because cur is already want or because the two differ in wire
	// version.
	EncodeSetProtocol(cur, want Protocol) (req *Request, next Protocol, needed bool)
	// EncodeBarrier encodes a barrier request for the given wire version.
	EncodeBarrier(version uint8) *Request
	// EncodeCheckpoint encodes a checkpoint, rollback or rollback-prepare
	// request.
	EncodeCheckpoint(cr *CheckpointRequest, protocol Protocol) (*Request, error)
	// DecodeFrame classifies a received message.
	DecodeFrame(data []byte) (*Frame, error)
	// ReplyTypeFor returns the kind of message a switch answers req with.
	ReplyTypeFor(req *Request) Raw
	// Render formats a frame for humans. Verbosity above 1 appends a hex dump.
	Render(f *Frame, verbosity int) string
	// ProtocolFromVersion maps a negotiated wire version to the protocol a
	// fresh channel speaks.
	ProtocolFromVersion(version uint8) (Protocol, bool)
}

// OFCodec implements Codec for OpenFlow 1.0 through 1.5 with the Nicira
// extensions used by Open vSwitch.
type OFCodec struct{}

var _ Codec = &OFCodec{}

func NewCodec() *OFCodec {
	return &OFCodec{}
}

func (c *OFCodec) EncodeFlowStatsRequest(fsr *FlowStatsRequest, protocol Protocol) (*Request, error) {
	version := protocol.Version()
	switch protocol.Base() {
	case ProtocolOF10Std:
		if fsr.CookieMask != 0 {
			return nil, fmt.Errorf("%s cannot match on cookie", protocol)
		}
		outPort, err := of10Port(fsr.OutPort)
		if err != nil {
			return nil, err
		}
		return newRequest(Raw{Version: version, Type: typeOF10StatsRequest, Stats: fsr.statsType()},
			&of10FlowStatsBody{req: fsr, outPort: outPort})
	case ProtocolOF10NXM:
		outPort, err := of10Port(fsr.OutPort)
		if err != nil {
			return nil, err
		}
		subtype := nxstFlow
		if fsr.Aggregate {
			subtype = nxstAggregate
		}
		return newRequest(Raw{Version: version, Type: typeOF10StatsRequest, Stats: statsVendor, Vendor: nxVendorID, Subtype: subtype},
			&nxFlowStatsBody{req: fsr, outPort: outPort})
	case ProtocolOF11Std:
		return newRequest(Raw{Version: version, Type: typeMultipartRequest, Stats: fsr.statsType()},
			&of11FlowStatsBody{req: fsr})
	case ProtocolOF12OXM, ProtocolOF13OXM, ProtocolOF14OXM, ProtocolOF15OXM:
		// The multipart flow and aggregate requests are laid out alike from
		// OpenFlow 1.2 on, only the header version differs.
		mp := oxmFlowStatsRequest(fsr)
		return encodeRequest(Raw{Version: version, Type: typeMultipartRequest, Stats: fsr.statsType()}, &mp.Header, mp)
	}
	return nil, fmt.Errorf("unsupported protocol %s", protocol)
}

func (c *OFCodec) EncodeSetProtocol(cur, want Protocol) (*Request, Protocol, bool) {
	if cur.Version() != want.Version() {
		// The wire version is fixed at HELLO time.
		return nil, cur, false
	}
	if cur.Base() != want.Base() {
		format := nxffNXM
		if want.Base() == ProtocolOF10Std {
			format = nxffOpenFlow10
		}
		req, err := c.encodeNiciraMessage(cur.Version(), nxtSetFlowFormat, &flowFormatBody{Format: format})
		if err != nil {
			return nil, cur, false
		}
		return req, cur.WithBase(want), true
	}
	if cur.HasTID() != want.HasTID() {
		req, err := c.encodeNiciraMessage(cur.Version(), nxtFlowModTableID, &tableIDBody{Set: want.HasTID()})
		if err != nil {
			return nil, cur, false
		}
		return req, cur.WithTID(want.HasTID()), true
	}
	return nil, cur, false
}

func (c *OFCodec) EncodeBarrier(version uint8) *Request {
	raw := Raw{Version: version, Type: typeBarrierRequest}
	if version == Version10 {
		raw.Type = typeOF10BarrierRequest
	}
	// A header-only message cannot fail to encode.
	req, _ := newRequest(raw, nil)
	return req
}

func (c *OFCodec) EncodeCheckpoint(cr *CheckpointRequest, protocol Protocol) (*Request, error) {
	if protocol.Version() == 0 {
		return nil, fmt.Errorf("unsupported protocol %s", protocol)
	}
	return c.encodeNiciraMessage(protocol.Version(), nxtCheckpointRollback, &checkpointBody{Type: cr.Type, FileName: cr.FileName})
}

func (c *OFCodec) encodeNiciraMessage(version uint8, subtype uint32, data util.Message) (*Request, error) {
	return newRequest(Raw{Version: version, Type: typeExperimenter, Vendor: nxVendorID, Subtype: subtype},
		&vendorBody{Vendor: nxVendorID, Subtype: subtype, Data: data})
}

func (c *OFCodec) DecodeFrame(data []byte) (*Frame, error) {
	return DecodeFrame(data)
}

func (c *OFCodec) ReplyTypeFor(req *Request) Raw {
	raw := req.Raw()
	if raw.Type == typeExperimenter {
		if raw.Vendor == nxVendorID && raw.Subtype == nxtCheckpointRollback {
			raw.Subtype = nxtCheckpointRollbackReply
		}
		return raw
	}
	if raw.Version == Version10 {
		switch raw.Type {
		case typeOF10StatsRequest:
			raw.Type = typeOF10StatsReply
		case typeOF10BarrierRequest:
			raw.Type = typeOF10BarrierReply
		}
		return raw
	}
	switch raw.Type {
	case typeMultipartRequest:
		raw.Type = typeMultipartReply
	case typeBarrierRequest:
		raw.Type = typeBarrierReply
	}
	return raw
}

func (c *OFCodec) Render(f *Frame, verbosity int) string {
	return Render(f, verbosity)
}

func (c *OFCodec) ProtocolFromVersion(version uint8) (Protocol, bool) {
	return ProtocolFromVersion(version)
}

// of10Port converts an OpenFlow 1.1+ port number to OpenFlow 1.0, where the
// reserved ports start at 0xff00 instead of 0xffffff00.
func of10Port(port uint32) (uint16, error) {
	switch {
	case port == PortAny:
		return portOF10None, nil
	case port >= 0xffffff00:
		return uint16(port - 0xffff0000), nil
	case port >= 0xff00:
		return 0, fmt.Errorf("port %d cannot be represented in OpenFlow 1.0", port)
	}
	return uint16(port), nil
}
