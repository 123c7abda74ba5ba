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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMessage(version, msgType uint8, xid uint32, body []byte) []byte {
	data := make([]byte, headerLen, headerLen+len(body))
	data[0] = version
	data[1] = msgType
	binary.BigEndian.PutUint16(data[2:], uint16(headerLen+len(body)))
	binary.BigEndian.PutUint32(data[4:], xid)
	return append(data, body...)
}

func of13FlowEntry(table uint8, priority uint16, cookie, packets, bytes uint64) []byte {
	entry := make([]byte, 56)
	binary.BigEndian.PutUint16(entry[0:], uint16(len(entry)))
	entry[2] = table
	binary.BigEndian.PutUint32(entry[4:], 12)
	binary.BigEndian.PutUint32(entry[8:], 500000000)
	binary.BigEndian.PutUint16(entry[12:], priority)
	binary.BigEndian.PutUint64(entry[24:], cookie)
	binary.BigEndian.PutUint64(entry[32:], packets)
	binary.BigEndian.PutUint64(entry[40:], bytes)
	binary.BigEndian.PutUint16(entry[48:], 1)
	binary.BigEndian.PutUint16(entry[50:], 4)
	return entry
}

func TestDecodeFrame(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		_, err := DecodeFrame([]byte{Version13, typeBarrierReply, 0})
		assert.Error(t, err)
	})

	t.Run("length mismatch", func(t *testing.T) {
		data := buildMessage(Version13, typeBarrierReply, 1, nil)
		data = append(data, 0)
		_, err := DecodeFrame(data)
		assert.Error(t, err)
	})

	t.Run("multipart reply", func(t *testing.T) {
		body := []byte{0, byte(statsFlow), 0, byte(statsReplyMore), 0, 0, 0, 0}
		f, err := DecodeFrame(buildMessage(Version13, typeMultipartReply, 7, body))
		require.NoError(t, err)
		assert.Equal(t, uint32(7), f.Xid())
		assert.Equal(t, Raw{Version: Version13, Type: typeMultipartReply, Stats: statsFlow}, f.Raw)
		assert.True(t, f.IsMore())
		assert.False(t, f.IsError())
	})

	t.Run("Nicira stats reply", func(t *testing.T) {
		body := make([]byte, 16)
		binary.BigEndian.PutUint16(body[0:], statsVendor)
		binary.BigEndian.PutUint32(body[4:], nxVendorID)
		binary.BigEndian.PutUint32(body[8:], nxstAggregate)
		f, err := DecodeFrame(buildMessage(Version10, typeOF10StatsReply, 3, body))
		require.NoError(t, err)
		assert.Equal(t, Raw{Version: Version10, Type: typeOF10StatsReply, Stats: statsVendor, Vendor: nxVendorID, Subtype: nxstAggregate}, f.Raw)
		assert.False(t, f.IsMore())
	})

	t.Run("checkpoint reply", func(t *testing.T) {
		body := make([]byte, 8)
		binary.BigEndian.PutUint32(body[0:], nxVendorID)
		binary.BigEndian.PutUint32(body[4:], nxtCheckpointRollbackReply)
		f, err := DecodeFrame(buildMessage(Version13, typeExperimenter, 9, body))
		require.NoError(t, err)
		assert.Equal(t, Raw{Version: Version13, Type: typeExperimenter, Vendor: nxVendorID, Subtype: nxtCheckpointRollbackReply}, f.Raw)
	})
}

func TestRender(t *testing.T) {
	flowReplyBody := append([]byte{0, byte(statsFlow), 0, byte(statsReplyMore), 0, 0, 0, 0},
		of13FlowEntry(2, 100, 0x1f, 5, 420)...)
	aggregateBody := make([]byte, 16+24)
	binary.BigEndian.PutUint16(aggregateBody[0:], statsVendor)
	binary.BigEndian.PutUint32(aggregateBody[4:], nxVendorID)
	binary.BigEndian.PutUint32(aggregateBody[8:], nxstAggregate)
	binary.BigEndian.PutUint64(aggregateBody[16:], 10)
	binary.BigEndian.PutUint64(aggregateBody[24:], 20)
	binary.BigEndian.PutUint32(aggregateBody[32:], 3)
	of10Entry := make([]byte, 88)
	binary.BigEndian.PutUint16(of10Entry[0:], 88)
	of10Entry[2] = 4
	binary.BigEndian.PutUint32(of10Entry[44:], 3)
	binary.BigEndian.PutUint32(of10Entry[48:], 7000000)
	binary.BigEndian.PutUint16(of10Entry[52:], 0x8000)
	binary.BigEndian.PutUint64(of10Entry[64:], 0xa)
	binary.BigEndian.PutUint64(of10Entry[72:], 1)
	binary.BigEndian.PutUint64(of10Entry[80:], 60)
	of13Aggregate := make([]byte, 8+24)
	binary.BigEndian.PutUint16(of13Aggregate[0:], statsAggregate)
	binary.BigEndian.PutUint64(of13Aggregate[8:], 4)
	binary.BigEndian.PutUint64(of13Aggregate[16:], 256)
	binary.BigEndian.PutUint32(of13Aggregate[24:], 2)

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "flow stats",
			data: buildMessage(Version13, typeMultipartReply, 7, flowReplyBody),
			want: "OFPST_FLOW reply (OF1.3) (xid=0x7):\n cookie=0x1f, duration=12.500s, table=2, n_packets=5, n_bytes=420, priority=100 flags=[more]\n",
		},
		{
			name: "OpenFlow 1.0 flow stats",
			data: buildMessage(Version10, typeOF10StatsReply, 5, append([]byte{0, byte(statsFlow), 0, 0}, of10Entry...)),
			want: "OFPST_FLOW reply (OF1.0) (xid=0x5):\n cookie=0xa, duration=3.007s, table=4, n_packets=1, n_bytes=60, priority=32768\n",
		},
		{
			name: "truncated flow stats entry",
			data: buildMessage(Version13, typeMultipartReply, 6, append([]byte{0, byte(statsFlow), 0, 0, 0, 0, 0, 0}, 0, 40, 0, 0)),
			want: "OFPST_FLOW reply (OF1.3) (xid=0x6):\n ***bad flow stats entry length 40***\n",
		},
		{
			name: "aggregate stats",
			data: buildMessage(Version13, typeMultipartReply, 8, of13Aggregate),
			want: "OFPST_AGGREGATE reply (OF1.3) (xid=0x8): packet_count=4 byte_count=256 flow_count=2\n",
		},
		{
			name: "OpenFlow 1.5 aggregate stats",
			data: buildMessage(Version15, typeMultipartReply, 8, of13Aggregate),
			want: "OFPST_AGGREGATE reply (OF1.5) (xid=0x8): 24 bytes of aggregate stats\n",
		},
		{
			name: "Nicira aggregate stats",
			data: buildMessage(Version10, typeOF10StatsReply, 3, aggregateBody),
			want: "NXST_AGGREGATE reply (OF1.0) (xid=0x3): packet_count=10 byte_count=20 flow_count=3\n",
		},
		{
			name: "error",
			data: buildMessage(Version10, typeError, 9, []byte{0, 1, 0, 4, 1, 4, 0, 8}),
			want: "OFPT_ERROR (OF1.0) (xid=0x9): OFPBRC_BAD_SUBTYPE\n",
		},
		{
			name: "unknown error type",
			data: buildMessage(Version13, typeError, 9, []byte{0, 9, 0, 2}),
			want: "OFPT_ERROR (OF1.3) (xid=0x9): ***decode error: type=9, code=2***\n",
		},
		{
			name: "barrier reply",
			data: buildMessage(Version13, typeBarrierReply, 0x20, nil),
			want: "OFPT_BARRIER_REPLY (OF1.3) (xid=0x20):\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := DecodeFrame(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Render(f, 1))
		})
	}
}

func TestRenderHexDump(t *testing.T) {
	f, err := DecodeFrame(buildMessage(Version13, typeBarrierReply, 1, nil))
	require.NoError(t, err)
	out := NewCodec().Render(f, 2)
	assert.Contains(t, out, "OFPT_BARRIER_REPLY (OF1.3) (xid=0x1):\n")
	assert.Contains(t, out, "00000000  04 15 00 08 00 00 00 01")
}

func TestDecodeErrorReply(t *testing.T) {
	f, err := DecodeFrame(buildMessage(Version13, typeError, 4, []byte{0, 1, 0, 3, 0xaa}))
	require.NoError(t, err)
	e, err := DecodeErrorReply(f)
	require.NoError(t, err)
	assert.Equal(t, &ErrorReply{Type: 1, Code: 3, Data: []byte{0xaa}}, e)

	f, err = DecodeFrame(buildMessage(Version13, typeBarrierReply, 4, nil))
	require.NoError(t, err)
	_, err = DecodeErrorReply(f)
	assert.Error(t, err)
}
