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

	"antrea.io/ofcheckpoint/pkg/ovs/openflow"
)

// CheckpointClient sends flow table requests to Open vSwitch bridges. Each
// call opens its own control channel and closes it before returning.
type CheckpointClient interface {
	// DumpFlows writes the flow or aggregate stats replies of the bridge to out.
	DumpFlows(ctx context.Context, bridge string, opts DumpOptions, out io.Writer) (*Result, error)
	// Checkpoint asks the bridge to save its flow table to file.
	Checkpoint(ctx context.Context, bridge, file string) (*Result, error)
	// Rollback asks the bridge to restore its flow table from file.
	Rollback(ctx context.Context, bridge, file string) (*Result, error)
	// SyncRollback asks the bridge to prepare a rollback from file.
	SyncRollback(ctx context.Context, bridge, file string) (*Result, error)
	// FlowModProtocol returns the protocol that flow modifications expressible
	// in usable would be sent in.
	FlowModProtocol(ctx context.Context, bridge string, usable openflow.ProtocolSet) (openflow.Protocol, error)
}
