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

package ovsconfig

import (
	"os"
)

// RunDirEnv overrides the default directory holding the Open vSwitch sockets,
// as it does for the Open vSwitch utilities.
const RunDirEnv = "OVS_RUNDIR"

// RunDir returns the directory in which the management and snoop sockets of
// the bridges are looked up. A configured directory takes precedence over
// RunDirEnv, which takes precedence over DefaultOVSRunDir.
func RunDir(configured string) string {
	if configured != "" {
		return configured
	}
	if dir := os.Getenv(RunDirEnv); dir != "" {
		return dir
	}
	return DefaultOVSRunDir
}
