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

package ofctl

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"io/fs"

	"antrea.io/ofcheckpoint/pkg/ovs/vconn"
)

const (
	testRunDir = "/run/ovs"

	of10 uint8 = 0x01
	of13 uint8 = 0x04

	typeError        uint8 = 1
	typeExperimenter uint8 = 4

	nxVendor                   uint32 = 0x2320
	nxtSetFlowFormat           uint32 = 12
	nxtFlowModTableID          uint32 = 15
	nxtCheckpointRollback      uint32 = 0x8000
	nxtCheckpointRollbackReply uint32 = 0x8001
)

func message(version, msgType uint8, xid uint32, body []byte) []byte {
	msg := make([]byte, 8, 8+len(body))
	msg[0] = version
	msg[1] = msgType
	binary.BigEndian.PutUint16(msg[2:], uint16(8+len(body)))
	binary.BigEndian.PutUint32(msg[4:], xid)
	return append(msg, body...)
}

func xidOf(msg []byte) uint32 {
	return binary.BigEndian.Uint32(msg[4:])
}

func nxSubtype(msg []byte) uint32 {
	if msg[1] != typeExperimenter || len(msg) < 16 || binary.BigEndian.Uint32(msg[8:]) != nxVendor {
		return 0
	}
	return binary.BigEndian.Uint32(msg[12:])
}

func barrierTypes(version uint8) (request, reply uint8) {
	if version == of10 {
		return 18, 19
	}
	return 20, 21
}

func statsReplyType(version uint8) uint8 {
	if version == of10 {
		return 17
	}
	return 19
}

// flowStatsReply is an empty flow stats reply fragment.
func flowStatsReply(version uint8, xid uint32, more bool) []byte {
	body := []byte{0, 1, 0, 0, 0, 0, 0, 0}
	if more {
		body[3] = 1
	}
	if version == of10 {
		body = body[:4]
	}
	return message(version, statsReplyType(version), xid, body)
}

func errorReply(version uint8, request []byte) []byte {
	body := append([]byte{0, 1, 0, 4}, request[:8]...)
	return message(version, typeError, xidOf(request), body)
}

func checkpointReply(version uint8, xid uint32) []byte {
	body := make([]byte, 8)
	binary.BigEndian.PutUint32(body[0:], nxVendor)
	binary.BigEndian.PutUint32(body[4:], nxtCheckpointRollbackReply)
	return message(version, typeExperimenter, xid, body)
}

func barrierReply(version uint8, xid uint32) []byte {
	_, reply := barrierTypes(version)
	return message(version, reply, xid, nil)
}

// fakeSwitch answers barriers and protocol changes like Open vSwitch does.
// Other requests are answered by respond.
type fakeSwitch struct {
	rejectFormats map[uint32]bool
	rejectTableID bool
	respond       func(req []byte) [][]byte

	// setProtocolRequests counts the protocol changes attempted.
	setProtocolRequests int
}

func (s *fakeSwitch) handle(msg []byte) [][]byte {
	version := msg[0]
	barrier, _ := barrierTypes(version)
	switch {
	case msg[1] == barrier:
		return [][]byte{barrierReply(version, xidOf(msg))}
	case nxSubtype(msg) == nxtSetFlowFormat:
		s.setProtocolRequests++
		if s.rejectFormats[binary.BigEndian.Uint32(msg[16:])] {
			return [][]byte{errorReply(version, msg)}
		}
		return nil
	case nxSubtype(msg) == nxtFlowModTableID:
		s.setProtocolRequests++
		if s.rejectTableID {
			return [][]byte{errorReply(version, msg)}
		}
		return nil
	case s.respond != nil:
		return s.respond(msg)
	}
	return nil
}

// fakeConn is an in-memory connection to a fakeSwitch.
type fakeConn struct {
	name    string
	version uint8
	sw      *fakeSwitch

	connectErr error
	sendErr    error
	recvErr    error
	closeErr   error

	pending    [][]byte
	sent       [][]byte
	recvAny    bool
	closeCount int
}

func newFakeConn(name string, version uint8, sw *fakeSwitch) *fakeConn {
	if sw == nil {
		sw = &fakeSwitch{}
	}
	return &fakeConn{name: name, version: version, sw: sw}
}

func (c *fakeConn) Name() string {
	return c.name
}

func (c *fakeConn) Connect(ctx context.Context) error {
	return c.connectErr
}

func (c *fakeConn) Version() uint8 {
	return c.version
}

func (c *fakeConn) SetRecvAnyVersion(enable bool) {
	c.recvAny = enable
}

func (c *fakeConn) Send(ctx context.Context, msg []byte) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, bytes.Clone(msg))
	c.pending = append(c.pending, c.sw.handle(msg)...)
	return nil
}

func (c *fakeConn) Recv(ctx context.Context) ([]byte, error) {
	if c.recvErr != nil {
		return nil, c.recvErr
	}
	if len(c.pending) == 0 {
		return nil, io.EOF
	}
	msg := c.pending[0]
	c.pending = c.pending[1:]
	return msg, nil
}

func (c *fakeConn) Close() error {
	c.closeCount++
	return c.closeErr
}

// fakeDialer serves fakeConns by address or socket path. Missing sockets are
// reported as not existing unless errs says otherwise.
type fakeDialer struct {
	conns    map[string]*fakeConn
	errs     map[string]error
	attempts []string
}

func newFakeDialer(conns map[string]*fakeConn) *fakeDialer {
	return &fakeDialer{conns: conns, errs: map[string]error{}}
}

func (d *fakeDialer) Open(ctx context.Context, address string) (vconn.Conn, error) {
	d.attempts = append(d.attempts, address)
	if conn, ok := d.conns[address]; ok {
		return conn, nil
	}
	return nil, errors.New("connection refused")
}

func (d *fakeDialer) OpenSocket(ctx context.Context, path string) (vconn.Conn, error) {
	d.attempts = append(d.attempts, path)
	if conn, ok := d.conns[path]; ok {
		return conn, nil
	}
	if err, ok := d.errs[path]; ok {
		return nil, err
	}
	return nil, &fs.PathError{Op: "dial", Path: path, Err: fs.ErrNotExist}
}

// newTestClient returns a client for a single bridge "br0" served by conn.
func newTestClient(conn *fakeConn, config Config) (*Client, *fakeDialer) {
	dialer := newFakeDialer(map[string]*fakeConn{testRunDir + "/br0.mgmt": conn})
	config.RunDir = testRunDir
	if config.Console == nil {
		config.Console = io.Discard
	}
	return NewClient(dialer, config), dialer
}
