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

package vconn

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/bits"
	"net"
	"strings"
	"sync"
	"time"

	"antrea.io/libOpenflow/common"
	"k8s.io/klog/v2"

	"antrea.io/ofcheckpoint/pkg/ovs/openflow"
)

const (
	// DefaultPort is the IANA-assigned OpenFlow port.
	DefaultPort = "6653"

	headerLen = 8

	typeHello       uint8 = 0
	typeError       uint8 = 1
	typeEchoRequest uint8 = 2
	typeEchoReply   uint8 = 3

	helloElemVersionBitmap uint16 = 1
)

// IsNotExist reports whether err means that the socket to connect to does
// not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

type netDialer struct {
	versions openflow.VersionSet
}

// NewDialer returns a Dialer whose connections offer the given wire versions
// during the HELLO exchange.
func NewDialer(versions openflow.VersionSet) Dialer {
	return &netDialer{versions: versions}
}

func (d *netDialer) Open(ctx context.Context, address string) (Conn, error) {
	network, target, ok := strings.Cut(address, ":")
	if !ok {
		return nil, fmt.Errorf("%s: missing connection type", address)
	}
	switch network {
	case "tcp":
		if _, _, err := net.SplitHostPort(target); err != nil {
			target = net.JoinHostPort(target, DefaultPort)
		}
	case "unix":
	default:
		return nil, fmt.Errorf("%s: unknown connection type %q", address, network)
	}
	return d.dial(ctx, address, network, target)
}

func (d *netDialer) OpenSocket(ctx context.Context, path string) (Conn, error) {
	return d.dial(ctx, "unix:"+path, "unix", path)
}

func (d *netDialer) dial(ctx context.Context, name, network, address string) (Conn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}
	klog.V(4).InfoS("Opened OpenFlow connection", "name", name)
	return NewConn(name, conn, d.versions), nil
}

type netConn struct {
	name     string
	conn     net.Conn
	versions openflow.VersionSet
	version  uint8
	recvAny  bool

	closeOnce sync.Once
	closeErr  error
}

// NewConn wraps an established stream connection.
func NewConn(name string, conn net.Conn, versions openflow.VersionSet) Conn {
	return &netConn{name: name, conn: conn, versions: versions}
}

func (c *netConn) Name() string {
	return c.name
}

func (c *netConn) Version() uint8 {
	return c.version
}

func (c *netConn) SetRecvAnyVersion(enable bool) {
	c.recvAny = enable
}

func (c *netConn) Connect(ctx context.Context) error {
	if c.version != 0 {
		return nil
	}
	hello, err := encodeHello(c.versions)
	if err != nil {
		return fmt.Errorf("failed to encode HELLO: %w", err)
	}
	if err := c.withContext(ctx, func() error { return c.write(hello) }); err != nil {
		return fmt.Errorf("failed to send HELLO: %w", err)
	}
	var msg []byte
	err = c.withContext(ctx, func() error {
		var err error
		msg, err = c.read()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to receive HELLO: %w", err)
	}
	if msg[1] != typeHello {
		return fmt.Errorf("received message of type %d instead of HELLO", msg[1])
	}
	peer := helloVersions(msg)
	shared := c.versions.Intersect(peer)
	if shared.Highest() == 0 {
		return fmt.Errorf("version negotiation failed (we support version(s) %s, peer supports %s)", c.versions, peer)
	}
	c.version = shared.Highest()
	klog.V(2).InfoS("Negotiated OpenFlow version", "name", c.name, "version", openflow.VersionString(c.version))
	return nil
}

func (c *netConn) Send(ctx context.Context, msg []byte) error {
	if c.version == 0 {
		return fmt.Errorf("%s: not connected", c.name)
	}
	return c.withContext(ctx, func() error { return c.write(msg) })
}

func (c *netConn) Recv(ctx context.Context) ([]byte, error) {
	if c.version == 0 {
		return nil, fmt.Errorf("%s: not connected", c.name)
	}
	var msg []byte
	err := c.withContext(ctx, func() error {
		for {
			var err error
			if msg, err = c.read(); err != nil {
				return err
			}
			if !c.recvAny && msg[0] != c.version && !versionIndependent(msg[1]) {
				return fmt.Errorf("received OpenFlow version 0x%02x != expected 0x%02x", msg[0], c.version)
			}
			if msg[1] != typeEchoRequest {
				return nil
			}
			// Keep the connection alive while waiting for a slow reply.
			reply := append([]byte(nil), msg...)
			reply[1] = typeEchoReply
			if err := c.write(reply); err != nil {
				return err
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// versionIndependent reports whether a message type is accepted whatever its
// version. Open vSwitch passes HELLO, ERROR and ECHO through so that a peer
// may report a version problem in its own version.
func versionIndependent(msgType uint8) bool {
	switch msgType {
	case typeHello, typeError, typeEchoRequest, typeEchoReply:
		return true
	}
	return false
}

func (c *netConn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
		klog.V(4).InfoS("Closed OpenFlow connection", "name", c.name)
	})
	return c.closeErr
}

// withContext runs fn with the connection's deadline bound to ctx. Cancelling
// ctx unblocks any pending read or write.
func (c *netConn) withContext(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetDeadline(deadline)
		defer c.conn.SetDeadline(time.Time{})
	}
	stop := context.AfterFunc(ctx, func() {
		c.conn.SetDeadline(time.Unix(1, 0))
	})
	err := fn()
	if !stop() {
		// The deadline was forced into the past.
		c.conn.SetDeadline(time.Time{})
	}
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (c *netConn) write(msg []byte) error {
	_, err := c.conn.Write(msg)
	return err
}

func (c *netConn) read() ([]byte, error) {
	var header common.Header
	buf := make([]byte, headerLen)
	if _, err := io.ReadFull(c.conn, buf); err != nil {
		return nil, err
	}
	if err := header.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	if header.Length < headerLen {
		return nil, fmt.Errorf("received too-short OpenFlow message (%d bytes)", header.Length)
	}
	msg := make([]byte, header.Length)
	copy(msg, buf)
	if _, err := io.ReadFull(c.conn, msg[headerLen:]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return msg, nil
}

// encodeHello builds a HELLO carrying the highest offered version in its
// header. As in Open vSwitch, a version bitmap element is added only when
// the offered versions are not exactly 1.0 up to that version.
func encodeHello(versions openflow.VersionSet) ([]byte, error) {
	hello := &common.Hello{
		Header: common.Header{Version: versions.Highest(), Type: typeHello},
	}
	if bitmap := uint32(versions); bits.OnesCount32(bitmap>>1+1) != 1 {
		hello.Elements = append(hello.Elements, &common.HelloElemVersionBitmap{
			HelloElemHeader: common.HelloElemHeader{Type: helloElemVersionBitmap, Length: 8},
			Bitmaps:         []uint32{bitmap},
		})
	}
	data, err := hello.MarshalBinary()
	if err != nil {
		return nil, err
	}
	binary.BigEndian.PutUint16(data[2:], uint16(len(data)))
	return data, nil
}

// helloVersions returns the versions a peer offers in its HELLO.
func helloVersions(msg []byte) openflow.VersionSet {
	elems := msg[headerLen:]
	for len(elems) >= 4 {
		var header common.HelloElemHeader
		if err := header.UnmarshalBinary(elems); err != nil {
			break
		}
		elemLen := int(header.Length)
		if elemLen < 4 || elemLen > len(elems) {
			break
		}
		if header.Type == helloElemVersionBitmap && elemLen >= 8 {
			var elem common.HelloElemVersionBitmap
			if err := elem.UnmarshalBinary(elems[:elemLen]); err == nil && len(elem.Bitmaps) > 0 {
				return openflow.VersionSet(elem.Bitmaps[0])
			}
			break
		}
		if padded := (elemLen + 7) &^ 7; padded < len(elems) {
			elems = elems[padded:]
		} else {
			break
		}
	}
	// Without a bitmap the peer supports every version up to its own.
	var set openflow.VersionSet
	for v := uint8(1); v <= msg[0] && v < 32; v++ {
		set |= openflow.NewVersionSet(v)
	}
	return set
}
