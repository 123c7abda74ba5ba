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

package checkpoint

type CheckpointConfig struct {
	// Runtime data directory used by OpenVSwitch, where the bridge management
	// sockets are found.
	// Default value:
	// - On Linux platform: /var/run/openvswitch
	// - On Windows platform: C:\openvswitch\var\run\openvswitch
	// The OVS_RUNDIR environment variable takes precedence over the default.
	OVSRunDir string `yaml:"ovsRunDir,omitempty"`
	// OpenFlow versions offered to the switch during the HELLO exchange, as a
	// comma-separated list such as "OpenFlow10,OpenFlow13". Defaults to
	// OpenFlow10 through OpenFlow15.
	Protocols string `yaml:"protocols,omitempty"`
	// Flow formats the client may switch the connection to, as a
	// comma-separated list of names such as "OXM,NXM" or "OpenFlow10+table_id".
	// Defaults to "any".
	FlowFormats string `yaml:"flowFormats,omitempty"`
	// Time limit for a whole request, including connecting to the switch, in
	// Go duration format, e.g. "10s". "0s" means no limit, which is the
	// default.
	Timeout string `yaml:"timeout,omitempty"`
	// Fail when the switch answers a checkpoint request with a message that is
	// not the checkpoint reply. By default any reply with the request's xid
	// completes the request.
	StrictReplyType bool `yaml:"strictReplyType,omitempty"`
	// Log verbosity, as accepted by the -v flag. The -v flag takes precedence.
	LogVerbosity string `yaml:"logVerbosity,omitempty"`
}
