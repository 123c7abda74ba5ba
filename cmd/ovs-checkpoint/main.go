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

// Package main under directory cmd parses and validates user input,
// instantiates and initializes objects imported from pkg, and runs
// the process.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/component-base/logs"
	"k8s.io/klog/v2"

	"antrea.io/ofcheckpoint/pkg/log"
	"antrea.io/ofcheckpoint/pkg/version"
)

func main() {
	logs.InitLogs()
	log.RedirectLogrus()
	defer logs.FlushLogs()

	command := newCheckpointCommand()
	if err := command.Execute(); err != nil {
		klog.ErrorS(err, "Error running ovs-checkpoint")
		logs.FlushLogs()
		os.Exit(1)
	}
}

func newCheckpointCommand() *cobra.Command {
	opts := newOptions()

	cmd := &cobra.Command{
		Use:   "ovs-checkpoint",
		Short: "Open vSwitch checkpoint utility",
		Long: "ovs-checkpoint asks an Open vSwitch bridge to save its flow table to a checkpoint file, " +
			"to restore it from one, or dumps the flows of the bridge to a file. SWITCH is a bridge name, " +
			"a datapath name, the path of a management socket or an address such as tcp:127.0.0.1:6653.",
		// Anything but a known request prints the usage.
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Usage()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.GetFullVersionWithRuntimeInfo(),
	}
	cmd.SetOut(os.Stdout)
	// An unknown option prints the usage and exits successfully, like any
	// other malformed request. Subcommands inherit this.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		klog.V(2).InfoS("Ignoring invalid command line", "err", err)
		return c.Root().Usage()
	})

	flags := cmd.PersistentFlags()
	opts.addFlags(flags)
	log.AddFlags(flags)

	for _, rc := range requestCommands {
		cmd.AddCommand(newRequestCommand(opts, rc))
	}
	return cmd
}

func newRequestCommand(opts *Options, rc requestCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   rc.name + " SWITCH FILE",
		Short: rc.short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return cmd.Root().Usage()
			}
			log.InitLogFileLimits(cmd.Flags())
			log.PruneLogFiles()
			if err := opts.complete(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to complete: %w", err)
			}
			if err := opts.validate(); err != nil {
				return fmt.Errorf("failed to validate: %w", err)
			}
			ctx, cancel := opts.requestContext()
			defer cancel()
			return opts.runRequest(ctx, rc, cmd.OutOrStdout(), args[0], args[1])
		},
	}
	if rc.name == "dumpRequest" {
		opts.addDumpFlags(cmd.Flags())
	}
	return cmd
}
