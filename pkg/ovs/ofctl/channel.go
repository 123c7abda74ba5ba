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
	"context"
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"antrea.io/ofcheckpoint/pkg/ovs/openflow"
	"antrea.io/ofcheckpoint/pkg/ovs/vconn"
)

// Target selects the kind of local socket a switch name is resolved to.
type Target int

const (
	// MgmtTarget is the switch's management socket, which accepts requests.
	MgmtTarget Target = iota
	// SnoopTarget is the socket that mirrors the switch's controller traffic.
	SnoopTarget
)

func (t Target) suffix() string {
	if t == SnoopTarget {
		return "snoop"
	}
	return "mgmt"
}

// channel is a connected, version-negotiated control connection together with
// the protocol it currently speaks. It is used by one request at a time.
type channel struct {
	conn     vconn.Conn
	codec    openflow.Codec
	protocol openflow.Protocol
	closed   bool
}

func (ch *channel) name() string {
	return ch.conn.Name()
}

func (ch *channel) version() uint8 {
	return ch.conn.Version()
}

func (ch *channel) send(ctx context.Context, req *openflow.Request) error {
	if err := ch.conn.Send(ctx, req.Bytes()); err != nil {
		return newError(TransportError, ch.name(), "failed to send packet to switch: %w", err)
	}
	return nil
}

func (ch *channel) recv(ctx context.Context) (*openflow.Frame, error) {
	data, err := ch.conn.Recv(ctx)
	if err != nil {
		return nil, newError(TransportError, ch.name(), "OpenFlow packet receive failed: %w", err)
	}
	frame, err := ch.codec.DecodeFrame(data)
	if err != nil {
		return nil, newError(ProtocolError, ch.name(), "received malformed message: %w", err)
	}
	return frame, nil
}

// close closes the connection the first time it is called.
func (ch *channel) close() error {
	if ch.closed {
		return nil
	}
	ch.closed = true
	if err := ch.conn.Close(); err != nil {
		return newError(TransportError, ch.name(), "failed to close connection: %w", err)
	}
	return nil
}

// release closes ch and merges a close failure into err.
func release(ch *channel, err error) error {
	closeErr := ch.close()
	if closeErr == nil {
		return err
	}
	if err == nil {
		return closeErr
	}
	return utilerrors.NewAggregate([]error{err, closeErr})
}

func (ch *channel) String() string {
	return fmt.Sprintf("%s (%s)", ch.name(), ch.protocol)
}
