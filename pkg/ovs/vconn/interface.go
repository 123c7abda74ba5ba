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
)

// Conn is an OpenFlow control connection to a switch. Every message sent or
// received is one complete OpenFlow message, header included.
type Conn interface {
	// Name returns the address the connection was opened with.
	Name() string
	// Connect performs the HELLO exchange and negotiates the wire version.
	// It must succeed before Send or Recv are used.
	Connect(ctx context.Context) error
	// Version returns the negotiated wire version, or 0 before Connect.
	Version() uint8
	// SetRecvAnyVersion disables the check that received messages carry the
	// negotiated version.
	SetRecvAnyVersion(enable bool)
	Send(ctx context.Context, msg []byte) error
	// Recv blocks until one message is received.
	Recv(ctx context.Context) ([]byte, error)
	// Close releases the connection. Calling it more than once is harmless.
	Close() error
}

// Dialer opens control connections.
type Dialer interface {
	// Open connects to an explicit address: "tcp:HOST[:PORT]" or "unix:PATH".
	Open(ctx context.Context, address string) (Conn, error)
	// OpenSocket connects to a local unix domain socket. A missing socket
	// is reported with an error for which IsNotExist returns true.
	OpenSocket(ctx context.Context, path string) (Conn, error)
}
