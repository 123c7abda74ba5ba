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
	"io"
	"os"

	"k8s.io/klog/v2"

	"antrea.io/ofcheckpoint/pkg/ovs/openflow"
	"antrea.io/ofcheckpoint/pkg/ovs/ovsconfig"
	"antrea.io/ofcheckpoint/pkg/ovs/vconn"
)

type Config struct {
	// RunDir holds the bridge sockets. Defaults to ovsconfig.RunDir("").
	RunDir string
	// AllowedProtocols limits the protocols the client negotiates. Zero
	// allows every protocol.
	AllowedProtocols openflow.ProtocolSet
	// StrictReplyType rejects replies to checkpoint requests whose type is not
	// the expected reply type.
	StrictReplyType bool
	// Console receives the replies to checkpoint requests. Defaults to
	// os.Stdout.
	Console io.Writer
	// Verbosity of the rendered replies; 2 adds a hex dump.
	Verbosity int
}

type Client struct {
	dialer          vconn.Dialer
	codec           openflow.Codec
	runDir          string
	allowed         openflow.ProtocolSet
	strictReplyType bool
	console         io.Writer
	verbosity       int
}

var _ CheckpointClient = &Client{}

// DumpOptions selects what DumpFlows reports.
type DumpOptions struct {
	// Match restricts the dump, e.g. "table=0,cookie=0x1/0xff,out_port=3".
	Match string
	// Aggregate requests a single aggregate stats reply instead of one entry
	// per flow.
	Aggregate bool
}

func NewClient(dialer vconn.Dialer, config Config) *Client {
	c := &Client{
		dialer:          dialer,
		codec:           openflow.NewCodec(),
		runDir:          ovsconfig.RunDir(config.RunDir),
		allowed:         config.AllowedProtocols,
		strictReplyType: config.StrictReplyType,
		console:         config.Console,
		verbosity:       config.Verbosity,
	}
	if c.allowed.IsEmpty() {
		c.allowed = openflow.ProtocolsAny
	}
	if c.console == nil {
		c.console = os.Stdout
	}
	if c.verbosity < 1 {
		c.verbosity = 1
	}
	return c
}

func (c *Client) DumpFlows(ctx context.Context, bridge string, opts DumpOptions, out io.Writer) (result *Result, err error) {
	fsr, usable, err := openflow.ParseFlowStatsRequest(opts.Match, opts.Aggregate)
	if err != nil {
		return nil, &Error{Kind: ConfigError, Op: bridge, Err: err}
	}
	ch, err := c.open(ctx, bridge, MgmtTarget)
	if err != nil {
		return nil, err
	}
	defer func() { err = release(ch, err) }()

	protocol, err := c.setProtocolForFlowDump(ctx, ch, usable)
	if err != nil {
		return nil, err
	}
	req, err := c.codec.EncodeFlowStatsRequest(fsr, protocol)
	if err != nil {
		return nil, &Error{Kind: ConfigError, Op: bridge, Err: err}
	}
	klog.V(2).InfoS("Dumping flows", "switch", bridge, "protocol", protocol, "match", opts.Match, "aggregate", opts.Aggregate)
	return c.transact(ctx, ch, req, out, multipartReply)
}

func (c *Client) Checkpoint(ctx context.Context, bridge, file string) (*Result, error) {
	return c.checkpointRequest(ctx, bridge, &openflow.CheckpointRequest{Type: openflow.CheckpointTypeCheckpoint, FileName: file})
}

func (c *Client) Rollback(ctx context.Context, bridge, file string) (*Result, error) {
	return c.checkpointRequest(ctx, bridge, &openflow.CheckpointRequest{Type: openflow.CheckpointTypeRollback, FileName: file})
}

func (c *Client) SyncRollback(ctx context.Context, bridge, file string) (*Result, error) {
	return c.checkpointRequest(ctx, bridge, &openflow.CheckpointRequest{Type: openflow.CheckpointTypeRollbackPrepare, FileName: file})
}

func (c *Client) checkpointRequest(ctx context.Context, bridge string, cr *openflow.CheckpointRequest) (result *Result, err error) {
	if len(cr.FileName) >= openflow.CheckpointFileNameLen {
		return nil, newError(ConfigError, bridge, "file name %q is longer than %d bytes", cr.FileName, openflow.CheckpointFileNameLen-1)
	}
	ch, err := c.open(ctx, bridge, MgmtTarget)
	if err != nil {
		return nil, err
	}
	defer func() { err = release(ch, err) }()

	// Checkpoint requests can be expressed in any protocol.
	protocol, err := c.setProtocolForFlowDump(ctx, ch, openflow.ProtocolsAny)
	if err != nil {
		return nil, err
	}
	req, err := c.codec.EncodeCheckpoint(cr, protocol)
	if err != nil {
		return nil, &Error{Kind: ConfigError, Op: bridge, Err: err}
	}
	klog.V(2).InfoS("Sending checkpoint request", "switch", bridge, "type", cr.Type, "file", cr.FileName, "protocol", protocol)
	return c.transact(ctx, ch, req, c.console, singleReply)
}

func (c *Client) FlowModProtocol(ctx context.Context, bridge string, usable openflow.ProtocolSet) (openflow.Protocol, error) {
	ch, err := c.openForFlowMod(ctx, bridge, usable)
	if err != nil {
		return 0, err
	}
	protocol := ch.protocol
	if err := release(ch, nil); err != nil {
		return 0, err
	}
	return protocol, nil
}
