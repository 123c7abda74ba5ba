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

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"k8s.io/klog/v2"

	"antrea.io/ofcheckpoint/pkg/ovs/ofctl"
	"antrea.io/ofcheckpoint/pkg/ovs/vconn"
	"antrea.io/ofcheckpoint/pkg/signals"
)

// requestCommand is a subcommand sending one request to a switch. Every
// subcommand takes the switch and a file name.
type requestCommand struct {
	name  string
	short string
	run   func(ctx context.Context, o *Options, client ofctl.CheckpointClient, bridge, file string) (*ofctl.Result, error)
}

var requestCommands = []requestCommand{
	{
		name:  "dumpRequest",
		short: "Write the flows of SWITCH to FILE",
		run:   dumpFlows,
	},
	{
		name:  "recoverRequest",
		short: "Ask SWITCH to restore its flow table from checkpoint FILE",
		run: func(ctx context.Context, _ *Options, client ofctl.CheckpointClient, bridge, file string) (*ofctl.Result, error) {
			return client.Rollback(ctx, bridge, file)
		},
	},
	{
		name:  "syncRequest",
		short: "Ask SWITCH to prepare restoring its flow table from checkpoint FILE",
		run: func(ctx context.Context, _ *Options, client ofctl.CheckpointClient, bridge, file string) (*ofctl.Result, error) {
			return client.SyncRollback(ctx, bridge, file)
		},
	},
	{
		name:  "checkpointRequest",
		short: "Ask SWITCH to save its flow table to checkpoint FILE",
		run: func(ctx context.Context, _ *Options, client ofctl.CheckpointClient, bridge, file string) (*ofctl.Result, error) {
			return client.Checkpoint(ctx, bridge, file)
		},
	},
}

// newCheckpointClient is replaced with a mock in tests.
var newCheckpointClient = func(o *Options, console io.Writer) ofctl.CheckpointClient {
	return ofctl.NewClient(vconn.NewDialer(o.versions), ofctl.Config{
		RunDir:           o.config.OVSRunDir,
		AllowedProtocols: o.allowed,
		StrictReplyType:  o.config.StrictReplyType,
		Console:          console,
		Verbosity:        1 + o.more,
	})
}

// dumpFlows writes the flow stats replies of bridge to file, replacing its
// content.
func dumpFlows(ctx context.Context, o *Options, client ofctl.CheckpointClient, bridge, file string) (*ofctl.Result, error) {
	f, err := defaultFs.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump file: %w", err)
	}
	result, err := client.DumpFlows(ctx, bridge, ofctl.DumpOptions{Match: o.match, Aggregate: o.aggregate}, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		return nil, fmt.Errorf("failed to write dump file: %w", closeErr)
	}
	return result, err
}

// requestContext returns the context bounding a request: it is cancelled on
// SIGINT or SIGTERM and after the configured timeout.
func (o *Options) requestContext() (context.Context, context.CancelFunc) {
	ctx, cancel := signals.WithStopSignal(context.Background(), signals.RegisterSignalHandlers())
	if o.timeout == 0 {
		return ctx, cancel
	}
	ctx, cancelTimeout := context.WithTimeout(ctx, o.timeout)
	return ctx, func() {
		cancelTimeout()
		cancel()
	}
}

func (o *Options) runRequest(ctx context.Context, rc requestCommand, console io.Writer, bridge, file string) error {
	client := newCheckpointClient(o, console)
	klog.V(2).InfoS("Sending request", "request", rc.name, "switch", bridge, "file", file)
	result, err := rc.run(ctx, o, client, bridge, file)
	if err != nil {
		return fmt.Errorf("%s failed: %w", rc.name, err)
	}
	if result.Error != nil {
		// The switch processed the request and refused it; the reply has
		// already been printed.
		klog.InfoS("Switch replied with an error", "request", rc.name, "switch", bridge, "error", result.Error)
	}
	klog.V(2).InfoS("Request completed", "request", rc.name, "switch", bridge, "replies", result.Frames)
	return nil
}
