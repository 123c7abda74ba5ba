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
	"testing"

	"github.com/stretchr/testify/assert"

	"antrea.io/ofcheckpoint/pkg/ovs/ovsconfig"
)

func TestSetConfigDefaults(t *testing.T) {
	t.Setenv(ovsconfig.RunDirEnv, "")
	tests := []struct {
		name     string
		config   CheckpointConfig
		expected CheckpointConfig
	}{
		{
			name: "empty",
			expected: CheckpointConfig{
				OVSRunDir:   ovsconfig.DefaultOVSRunDir,
				Protocols:   DefaultProtocols,
				FlowFormats: DefaultFlowFormats,
				Timeout:     DefaultTimeout,
			},
		},
		{
			name: "configured values are kept",
			config: CheckpointConfig{
				OVSRunDir:       "/run/ovs",
				Protocols:       "OpenFlow13",
				FlowFormats:     "OXM",
				Timeout:         "5s",
				StrictReplyType: true,
				LogVerbosity:    "2",
			},
			expected: CheckpointConfig{
				OVSRunDir:       "/run/ovs",
				Protocols:       "OpenFlow13",
				FlowFormats:     "OXM",
				Timeout:         "5s",
				StrictReplyType: true,
				LogVerbosity:    "2",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetConfigDefaults(&tt.config)
			assert.Equal(t, tt.expected, tt.config)
		})
	}
}

func TestSetConfigDefaultsRunDirFromEnv(t *testing.T) {
	t.Setenv(ovsconfig.RunDirEnv, "/tmp/ovs")
	var c CheckpointConfig
	SetConfigDefaults(&c)
	assert.Equal(t, "/tmp/ovs", c.OVSRunDir)
}
