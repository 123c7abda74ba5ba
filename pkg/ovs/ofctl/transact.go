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
	"io"
	"strings"

	"k8s.io/klog/v2"

	"antrea.io/ofcheckpoint/pkg/ovs/openflow"
)

type replyMode int

const (
	// singleReply ends the transaction with the first reply.
	singleReply replyMode = iota
	// multipartReply ends the transaction with the first reply fragment that
	// has no more fragments following it.
	multipartReply
)

// Result describes the replies received for one request.
type Result struct {
	// Frames is the number of replies written to the output.
	Frames int
	// Error is set when the switch answered with an error message.
	Error *openflow.ErrorReply
}

// transact sends req on ch and writes every reply to out until the request is
// answered. Replies to other requests are skipped.
func (c *Client) transact(ctx context.Context, ch *channel, req *openflow.Request, out io.Writer, mode replyMode) (*Result, error) {
	req.UpdateLength()
	if err := ch.send(ctx, req); err != nil {
		return nil, err
	}
	expected := c.codec.ReplyTypeFor(req)
	result := &Result{}
	for {
		frame, err := ch.recv(ctx)
		if err != nil {
			return result, err
		}
		if frame.Xid() != req.Xid() {
			klog.V(4).InfoS(fmt.Sprintf("Received reply with xid %08x != expected %08x", frame.Xid(), req.Xid()), "switch", ch.name())
			continue
		}

		done := true
		switch {
		case frame.IsError():
			errorReply, err := openflow.DecodeErrorReply(frame)
			if err != nil {
				return result, newError(ProtocolError, ch.name(), "received malformed error reply: %w", err)
			}
			result.Error = errorReply
		case mode == multipartReply && frame.Raw == expected:
			done = !frame.IsMore()
		case mode == singleReply && (!c.strictReplyType || frame.Raw == expected):
		default:
			return result, newError(ProtocolError, ch.name(), "received bad reply: %s", strings.TrimSpace(c.codec.Render(frame, 1)))
		}
		if _, err := io.WriteString(out, c.codec.Render(frame, c.verbosity)); err != nil {
			return result, newError(OutputError, ch.name(), "failed to write reply: %w", err)
		}
		result.Frames++
		if done {
			return result, nil
		}
	}
}

// transactNoReply sends req followed by a barrier. It returns the switch's
// reply to req if there is one before the barrier is answered, or nil if the
// request was accepted silently.
func (c *Client) transactNoReply(ctx context.Context, ch *channel, req *openflow.Request) (*openflow.Frame, error) {
	barrier := c.codec.EncodeBarrier(ch.version())
	req.UpdateLength()
	if err := ch.send(ctx, req); err != nil {
		return nil, err
	}
	if err := ch.send(ctx, barrier); err != nil {
		return nil, err
	}
	for {
		frame, err := ch.recv(ctx)
		if err != nil {
			return nil, err
		}
		switch frame.Xid() {
		case req.Xid():
			return frame, nil
		case barrier.Xid():
			return nil, nil
		}
		klog.V(4).InfoS(fmt.Sprintf("Received reply with xid %08x != expected %08x", frame.Xid(), req.Xid()), "switch", ch.name())
	}
}
