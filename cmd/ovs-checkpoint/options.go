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
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"
	"k8s.io/klog/v2"

	checkpointconfig "antrea.io/ofcheckpoint/pkg/config/checkpoint"
	"antrea.io/ofcheckpoint/pkg/log"
	"antrea.io/ofcheckpoint/pkg/ovs/openflow"
	"antrea.io/ofcheckpoint/pkg/ovs/ovsconfig"
)

const (
	ovsRunDirFlag  = "ovs-run-dir"
	protocolsFlag  = "protocols"
	flowFormatFlag = "flow-format"
	timeoutFlag    = "timeout"
	strictFlag     = "strict"
	logLevelFlag   = "v"
)

// defaultFs is swapped for an in-memory filesystem in tests.
var defaultFs = afero.NewOsFs()

type Options struct {
	// The path of configuration file.
	configFile string
	// The configuration object
	config *checkpointconfig.CheckpointConfig
	// Values of the flags that override the configuration file.
	flags checkpointconfig.CheckpointConfig
	// Number of -m flags; each one adds detail to the printed replies.
	more int
	// dumpRequest flags.
	match     string
	aggregate bool

	// Set by validate.
	versions openflow.VersionSet
	allowed  openflow.ProtocolSet
	timeout  time.Duration
}

func newOptions() *Options {
	return &Options{
		config: new(checkpointconfig.CheckpointConfig),
	}
}

// addFlags adds flags to fs and binds them to options.
func (o *Options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configFile, "config", o.configFile, "The path to the configuration file")
	fs.StringVar(&o.flags.OVSRunDir, ovsRunDirFlag, "", "Directory holding the bridge management sockets (default: $OVS_RUNDIR or "+ovsconfig.DefaultOVSRunDir+")")
	fs.StringVarP(&o.flags.Protocols, protocolsFlag, "O", "", "Comma-separated OpenFlow versions to offer to the switch, e.g. OpenFlow10,OpenFlow13")
	fs.StringVarP(&o.flags.FlowFormats, flowFormatFlag, "F", "", "Comma-separated flow formats the connection may use, e.g. OXM,NXM")
	fs.StringVar(&o.flags.Timeout, timeoutFlag, "", "Time limit for the request, e.g. 10s; 0s means no limit")
	fs.BoolVar(&o.flags.StrictReplyType, strictFlag, false, "Fail when a checkpoint request is answered by a message other than the checkpoint reply")
	fs.CountVarP(&o.more, "more", "m", "Print more details of the replies; use twice for a hex dump")
}

func (o *Options) addDumpFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.match, "match", "", "Restrict the dump to matching flows, e.g. table=0,cookie=0x10/0xff,out_port=2")
	fs.BoolVar(&o.aggregate, "aggregate", false, "Print aggregate statistics of the matching flows instead of the flows")
}

// complete loads the configuration file, applies the flags that were set on
// the command line and fills in the defaults.
func (o *Options) complete(fs *pflag.FlagSet) error {
	if len(o.configFile) > 0 {
		c, err := o.loadConfigFromFile(o.configFile)
		if err != nil {
			return err
		}
		o.config = c
	}
	if fs.Changed(ovsRunDirFlag) {
		o.config.OVSRunDir = o.flags.OVSRunDir
	}
	if fs.Changed(protocolsFlag) {
		o.config.Protocols = o.flags.Protocols
	}
	if fs.Changed(flowFormatFlag) {
		o.config.FlowFormats = o.flags.FlowFormats
	}
	if fs.Changed(timeoutFlag) {
		o.config.Timeout = o.flags.Timeout
	}
	if fs.Changed(strictFlag) {
		o.config.StrictReplyType = o.flags.StrictReplyType
	}
	if o.config.LogVerbosity != "" && !fs.Changed(logLevelFlag) {
		if err := log.SetLogLevel(o.config.LogVerbosity); err != nil {
			return fmt.Errorf("invalid logVerbosity %q: %v", o.config.LogVerbosity, err)
		}
	}
	checkpointconfig.SetConfigDefaults(o.config)
	return nil
}

// validate validates all the required options. It must be called after complete.
func (o *Options) validate() error {
	var err error
	if o.versions, err = openflow.ParseVersions(o.config.Protocols); err != nil {
		return fmt.Errorf("invalid protocols: %v", err)
	}
	if o.allowed, err = openflow.ParseProtocols(o.config.FlowFormats); err != nil {
		return fmt.Errorf("invalid flow formats: %v", err)
	}
	usable := o.allowed.Intersect(openflow.ProtocolsForVersions(o.versions))
	if usable.IsEmpty() {
		return fmt.Errorf("none of the enabled OpenFlow versions (%s) supports any of the enabled flow formats (%s)", o.versions, o.allowed)
	}
	o.allowed = usable
	if o.timeout, err = time.ParseDuration(o.config.Timeout); err != nil {
		return fmt.Errorf("timeout is not provided in right format: %v", err)
	}
	if o.timeout < 0 {
		return fmt.Errorf("timeout %s must not be negative", o.config.Timeout)
	}
	if _, _, err := openflow.ParseFlowStatsRequest(o.match, o.aggregate); err != nil {
		return fmt.Errorf("invalid match %q: %v", o.match, err)
	}
	klog.V(2).InfoS("Validated options", "ovsRunDir", o.config.OVSRunDir, "versions", o.versions, "flowFormats", o.allowed, "timeout", o.timeout)
	return nil
}

func (o *Options) loadConfigFromFile(file string) (*checkpointconfig.CheckpointConfig, error) {
	data, err := afero.ReadFile(defaultFs, file)
	if err != nil {
		return nil, err
	}

	var c checkpointconfig.CheckpointConfig
	err = yaml.UnmarshalStrict(data, &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
