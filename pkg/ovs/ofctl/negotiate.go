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
	"strings"

	"k8s.io/klog/v2"

	"antrea.io/ofcheckpoint/pkg/ovs/openflow"
)

// trySetProtocol moves ch to the protocol want, one Nicira request at a time.
// It returns false without error when the switch rejects a step or when want
// cannot be reached on this channel at all, e.g. because it needs another
// wire version.
func (c *Client) trySetProtocol(ctx context.Context, ch *channel, want openflow.Protocol) (bool, error) {
	for i := 0; i < openflow.NumProtocols; i++ {
		req, next, needed := c.codec.EncodeSetProtocol(ch.protocol, want)
		if !needed {
			return ch.protocol == want, nil
		}
		reply, err := c.transactNoReply(ctx, ch, req)
		if err != nil {
			return false, err
		}
		if reply != nil {
			klog.V(2).InfoS("Failed to set protocol, switch replied", "switch", ch.name(), "protocol", want,
				"reply", strings.TrimSpace(c.codec.Render(reply, 2)))
			return false, nil
		}
		klog.V(4).InfoS("Switched protocol", "switch", ch.name(), "from", ch.protocol, "to", next)
		ch.protocol = next
	}
	return false, newError(ProtocolError, ch.name(), "protocol %s not reached after %d steps from %s", want, openflow.NumProtocols, ch.protocol)
}

// setProtocolForFlowDump tries the protocols able to express a flow stats
// request in order of preference. Protocols outside that list are never
// tried, even when usable and allowed.
func (c *Client) setProtocolForFlowDump(ctx context.Context, ch *channel, usable openflow.ProtocolSet) (openflow.Protocol, error) {
	candidates := usable.Intersect(c.allowed)
	if candidates.IsEmpty() {
		return 0, c.noAllowedProtocolError(ch.name(), usable)
	}
	for _, p := range openflow.FlowDumpProtocols {
		if !candidates.Has(p) {
			continue
		}
		ok, err := c.trySetProtocol(ctx, ch, p)
		if err != nil {
			return 0, err
		}
		if ok {
			return p, nil
		}
	}
	return 0, newError(ConfigError, ch.name(), "switch does not support any of the usable flow formats (%s)", usable)
}

// openForFlowMod opens a channel and keeps its initial protocol when usable,
// otherwise it tries every usable and allowed protocol in bit order. The
// channel is closed when no protocol is accepted.
func (c *Client) openForFlowMod(ctx context.Context, name string, usable openflow.ProtocolSet) (*channel, error) {
	candidates := usable.Intersect(c.allowed)
	if candidates.IsEmpty() {
		return nil, c.noAllowedProtocolError(name, usable)
	}
	ch, err := c.open(ctx, name, MgmtTarget)
	if err != nil {
		return nil, err
	}
	initial := ch.protocol
	if candidates.Has(initial) {
		return ch, nil
	}
	for _, p := range candidates.Protocols() {
		if p == initial {
			continue
		}
		ok, err := c.trySetProtocol(ctx, ch, p)
		if err != nil {
			return nil, release(ch, err)
		}
		if ok {
			return ch, nil
		}
	}
	return nil, release(ch, newError(ConfigError, name, "switch does not support any of the usable flow formats (%s)", usable))
}

func (c *Client) noAllowedProtocolError(name string, usable openflow.ProtocolSet) error {
	return newError(ConfigError, name, "none of the usable flow formats (%s) is among the allowed flow formats (%s)", usable, c.allowed)
}
