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

// Package log installs the klog flags on a pflag.FlagSet and enforces the
// maximum log file size and maximum log file number limits.
package log

import (
	"flag"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

var klogFlags = flag.NewFlagSet("logging", flag.ContinueOnError)

func init() {
	klog.InitFlags(klogFlags)
}

func addKlogFlags(fs *pflag.FlagSet) {
	klogFlags.VisitAll(func(f *flag.Flag) {
		pf := pflag.PFlagFromGoFlag(f)
		fs.AddFlag(pf)
	})
}

func AddFlags(fs *pflag.FlagSet) {
	addKlogFlags(fs)
	fs.Uint16Var(&maxNumArg, maxNumFlag, maxNumArg, "Maximum number of log files per severity level to be kept. Value 0 means unlimited.")
}

func FlushLogs() {
	klog.Flush()
}
