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

import (
	"antrea.io/ofcheckpoint/pkg/ovs/ovsconfig"
)

const (
	DefaultProtocols   = "OpenFlow10,OpenFlow11,OpenFlow12,OpenFlow13,OpenFlow14,OpenFlow15"
	DefaultFlowFormats = "any"
	DefaultTimeout     = "0s"
)

func SetConfigDefaults(checkpointConf *CheckpointConfig) {
	if checkpointConf.OVSRunDir == "" {
		checkpointConf.OVSRunDir = ovsconfig.RunDir("")
	}
	if checkpointConf.Protocols == "" {
		checkpointConf.Protocols = DefaultProtocols
	}
	if checkpointConf.FlowFormats == "" {
		checkpointConf.FlowFormats = DefaultFlowFormats
	}
	if checkpointConf.Timeout == "" {
		checkpointConf.Timeout = DefaultTimeout
	}
}
