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
	"sync/atomic"

	"antrea.io/libOpenflow/common"
	"antrea.io/libOpenflow/openflow13"
	"antrea.io/libOpenflow/util"
)

const headerLen = 8

// Message types. OpenFlow 1.0 numbers its statistics and barrier messages
// differently from later versions; the rest are shared.
const (
	typeHello        uint8 = 0
	typeError        uint8 = openflow13.Type_Error
	typeExperimenter uint8 = openflow13.Type_Experimenter

	typeOF10StatsRequest   uint8 = 16
	typeOF10StatsReply     uint8 = 17
	typeOF10BarrierRequest uint8 = 18
	typeOF10BarrierReply   uint8 = 19

	typeMultipartRequest uint8 = openflow13.Type_MultiPart
	typeMultipartReply   uint8 = openflow13.Type_MultiPartReply
	typeBarrierRequest   uint8 = openflow13.Type_BarrierRequest
	typeBarrierReply     uint8 = openflow13.Type_BarrierReply
)

const (
	statsFlow      uint16 = 1
	statsAggregate uint16 = 2
	statsVendor    uint16 = 0xffff

	// Set in the flags of a statistics reply when more fragments follow.
	statsReplyMore uint16 = 1 << 0
)

// Nicira vendor extension.
const (
	nxVendorID uint32 = 0x00002320

	nxtSetFlowFormat  uint32 = 12
	nxtFlowModTableID uint32 = 15
	// Checkpoint requests are a private extension of the switch; the reply
	// echoes the request's xid.
	nxtCheckpointRollback      uint32 = 0x8000
	nxtCheckpointRollbackReply uint32 = 0x8001

	nxstFlow      uint32 = 0
	nxstAggregate uint32 = 1

	nxffOpenFlow10 uint32 = 0
	nxffNXM        uint32 = 2
)

const (
	// TableAll selects every flow table in a flow stats request.
	TableAll uint8 = 0xff
	// PortAny disables out_port filtering in a flow stats request.
	PortAny uint32 = 0xffffffff

	portOF10None uint16 = 0xffff
	groupAny     uint32 = 0xffffffff
)

// Raw identifies a message kind more precisely than the header type: for
// statistics and vendor messages it also carries the statistics type and the
// vendor subtype. Two messages of the same kind compare equal.
type Raw struct {
	Version uint8
	Type    uint8
	Stats   uint16
	Vendor  uint32
	Subtype uint32
}

// CheckpointType selects what a CheckpointRequest asks the switch to do.
type CheckpointType uint8

const (
	CheckpointTypeCheckpoint CheckpointType = iota
	CheckpointTypeRollback
	CheckpointTypeRollbackPrepare
)

func (t CheckpointType) String() string {
	switch t {
	case CheckpointTypeCheckpoint:
		return "checkpoint"
	case CheckpointTypeRollback:
		return "rollback"
	case CheckpointTypeRollbackPrepare:
		return "rollback-prepare"
	}
	return fmt.Sprintf("CheckpointType(%d)", uint8(t))
}

// CheckpointFileNameLen is the size of the NUL-padded file name field of a
// checkpoint request.
const CheckpointFileNameLen = 256

// CheckpointRequest asks the switch to save its flow table to, restore it
// from, or prepare restoring it from the named file in its private storage.
type CheckpointRequest struct {
	Type     CheckpointType
	FileName string
}

var lastXid atomic.Uint32

func nextXid() uint32 {
	return lastXid.Add(1)
}

// message is a complete OpenFlow message: a header followed by a body.
type message struct {
	common.Header
	Body util.Message
}

func (m *message) Len() uint16 {
	n := uint16(headerLen)
	if m.Body != nil {
		n += m.Body.Len()
	}
	return n
}

func (m *message) MarshalBinary() ([]byte, error) {
	m.Header.Length = m.Len()
	data, err := m.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if m.Body == nil {
		return data, nil
	}
	body, err := m.Body.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(data, body...), nil
}

func (m *message) UnmarshalBinary(data []byte) error {
	return fmt.Errorf("decoding requests is not supported")
}

// vendorBody is the body of a Nicira vendor message (OpenFlow 1.0) or
// experimenter message (later versions), which share one layout.
type vendorBody struct {
	Vendor  uint32
	Subtype uint32
	Data    util.Message
}

func (b *vendorBody) Len() uint16 {
	n := uint16(8)
	if b.Data != nil {
		n += b.Data.Len()
	}
	return n
}

func (b *vendorBody) MarshalBinary() ([]byte, error) {
	data := make([]byte, 8, b.Len())
	binary.BigEndian.PutUint32(data[0:], b.Vendor)
	binary.BigEndian.PutUint32(data[4:], b.Subtype)
	if b.Data == nil {
		return data, nil
	}
	payload, err := b.Data.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(data, payload...), nil
}

func (b *vendorBody) UnmarshalBinary(data []byte) error {
	return fmt.Errorf("decoding vendor messages is not supported")
}

// flowFormatBody is the payload of NXT_SET_FLOW_FORMAT.
type flowFormatBody struct {
	Format uint32
}

func (b *flowFormatBody) Len() uint16 {
	return 4
}

func (b *flowFormatBody) MarshalBinary() ([]byte, error) {
	return binary.BigEndian.AppendUint32(nil, b.Format), nil
}

func (b *flowFormatBody) UnmarshalBinary(data []byte) error {
	return fmt.Errorf("decoding set flow format messages is not supported")
}

// tableIDBody is the payload of NXT_FLOW_MOD_TABLE_ID.
type tableIDBody struct {
	Set bool
}

func (b *tableIDBody) Len() uint16 {
	return 8
}

func (b *tableIDBody) MarshalBinary() ([]byte, error) {
	data := make([]byte, 8)
	if b.Set {
		data[0] = 1
	}
	return data, nil
}

func (b *tableIDBody) UnmarshalBinary(data []byte) error {
	return fmt.Errorf("decoding flow_mod_table_id messages is not supported")
}

// checkpointBody is the payload of a checkpoint request.
type checkpointBody struct {
	Type     CheckpointType
	FileName string
}

func (b *checkpointBody) Len() uint16 {
	return 8 + CheckpointFileNameLen
}

func (b *checkpointBody) MarshalBinary() ([]byte, error) {
	if len(b.FileName) >= CheckpointFileNameLen {
		return nil, fmt.Errorf("file name %q is longer than %d bytes", b.FileName, CheckpointFileNameLen-1)
	}
	data := make([]byte, b.Len())
	data[0] = uint8(b.Type)
	copy(data[8:], b.FileName)
	return data, nil
}

func (b *checkpointBody) UnmarshalBinary(data []byte) error {
	return fmt.Errorf("decoding checkpoint requests is not supported")
}

// Request is an encoded OpenFlow request ready to be sent on a channel.
type Request struct {
	raw  Raw
	data []byte
}

func newRequest(raw Raw, body util.Message) (*Request, error) {
	msg := &message{Body: body}
	return encodeRequest(raw, &msg.Header, msg)
}

// encodeRequest fills header, which msg embeds, from raw and a fresh xid and
// marshals msg.
func encodeRequest(raw Raw, header *common.Header, msg util.Message) (*Request, error) {
	*header = common.Header{Version: raw.Version, Type: raw.Type, Xid: nextXid()}
	data, err := msg.MarshalBinary()
	if err != nil {
		return nil, err
	}
	req := &Request{raw: raw, data: data}
	req.UpdateLength()
	return req, nil
}

func (r *Request) Raw() Raw {
	return r.raw
}

func (r *Request) Xid() uint32 {
	return binary.BigEndian.Uint32(r.data[4:])
}

func (r *Request) Version() uint8 {
	return r.data[0]
}

func (r *Request) Bytes() []byte {
	return r.data
}

// UpdateLength rewrites the header length field from the size of the buffer.
func (r *Request) UpdateLength() {
	binary.BigEndian.PutUint16(r.data[2:], uint16(len(r.data)))
}
