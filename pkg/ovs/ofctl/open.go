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
	"path/filepath"
	"strings"

	"k8s.io/klog/v2"

	"antrea.io/ofcheckpoint/pkg/ovs/vconn"
)

// open resolves name to a control connection, performs the HELLO exchange and
// returns a channel speaking the default protocol of the negotiated version.
func (c *Client) open(ctx context.Context, name string, target Target) (*channel, error) {
	conn, err := c.openConn(ctx, name, target)
	if err != nil {
		return nil, err
	}
	ch := &channel{conn: conn, codec: c.codec}
	if err := conn.Connect(ctx); err != nil {
		return nil, release(ch, newError(TransportError, name, "failed to connect to socket (%w)", err))
	}
	protocol, ok := c.codec.ProtocolFromVersion(conn.Version())
	if !ok {
		return nil, release(ch, newError(ConfigError, name, "unsupported OpenFlow version 0x%02x", conn.Version()))
	}
	ch.protocol = protocol
	if target == SnoopTarget {
		conn.SetRecvAnyVersion(true)
	}
	klog.V(2).InfoS("Opened control channel", "channel", ch)
	return ch, nil
}

// openConn connects to name directly when it is an address such as
// "tcp:127.0.0.1:6653". Otherwise name is taken as a socket path, then as a
// bridge name and finally as a datapath name, and the first socket that
// exists is used.
func (c *Client) openConn(ctx context.Context, name string, target Target) (vconn.Conn, error) {
	if strings.Contains(name, ":") {
		conn, err := c.dialer.Open(ctx, name)
		if err != nil {
			return nil, newError(TransportError, name, "failed to open socket (%w)", err)
		}
		return conn, nil
	}

	suffix := target.suffix()
	candidates := []string{
		name,
		filepath.Join(c.runDir, name+"."+suffix),
		filepath.Join(c.runDir, datapathName(name)+"."+suffix),
	}
	for _, path := range candidates {
		conn, err := c.dialer.OpenSocket(ctx, path)
		if err == nil {
			return conn, nil
		}
		if !vconn.IsNotExist(err) {
			return nil, newError(TransportError, path, "failed to open socket (%w)", err)
		}
		klog.V(4).InfoS("Socket does not exist", "path", path)
	}
	return nil, newError(ConfigError, "", "%s is not a bridge or a socket", name)
}

// datapathName strips a "@type" qualifier such as in "br0@netdev".
func datapathName(name string) string {
	datapath, _, _ := strings.Cut(name, "@")
	return datapath
}
