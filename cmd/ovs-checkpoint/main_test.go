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
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"antrea.io/ofcheckpoint/pkg/ovs/ofctl"
	ofctltesting "antrea.io/ofcheckpoint/pkg/ovs/ofctl/testing"
	"antrea.io/ofcheckpoint/pkg/ovs/openflow"
)

// useMockClient makes the command use client, and records the options the
// client was created with.
func useMockClient(t *testing.T, client ofctl.CheckpointClient) **Options {
	oldNewClient := newCheckpointClient
	t.Cleanup(func() { newCheckpointClient = oldNewClient })
	var created *Options
	newCheckpointClient = func(o *Options, console io.Writer) ofctl.CheckpointClient {
		created = o
		return client
	}
	return &created
}

func execute(args ...string) (string, error) {
	cmd := newCheckpointCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		// A nil slice makes cobra parse os.Args.
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestUsage(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"dumpRequest"},
		{"recoverRequest", "br0"},
		{"syncRequest", "br0", "flows.ckpt", "extra"},
		{"restoreRequest", "br0", "flows.ckpt"},
		{"--bogus"},
		{"dumpRequest", "br0", "flows.txt", "--no-such-flag"},
	} {
		ctrl := gomock.NewController(t)
		useMockClient(t, ofctltesting.NewMockCheckpointClient(ctrl))
		out, err := execute(args...)
		require.NoError(t, err, "args %v", args)
		assert.Contains(t, out, "Usage:", "args %v", args)
		assert.Contains(t, out, "dumpRequest", "args %v", args)
		assert.Contains(t, out, "checkpointRequest", "args %v", args)
	}
}

func TestCheckpointRequests(t *testing.T) {
	tests := []struct {
		name   string
		expect func(client *ofctltesting.MockCheckpointClientMockRecorder)
	}{
		{
			name: "recoverRequest",
			expect: func(client *ofctltesting.MockCheckpointClientMockRecorder) {
				client.Rollback(gomock.Any(), "br0", "flows.ckpt").Return(&ofctl.Result{Frames: 1}, nil)
			},
		},
		{
			name: "syncRequest",
			expect: func(client *ofctltesting.MockCheckpointClientMockRecorder) {
				client.SyncRollback(gomock.Any(), "br0", "flows.ckpt").Return(&ofctl.Result{Frames: 1}, nil)
			},
		},
		{
			name: "checkpointRequest",
			expect: func(client *ofctltesting.MockCheckpointClientMockRecorder) {
				client.Checkpoint(gomock.Any(), "br0", "flows.ckpt").Return(&ofctl.Result{Frames: 1}, nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := ofctltesting.NewMockCheckpointClient(ctrl)
			tt.expect(client.EXPECT())
			created := useMockClient(t, client)
			_, err := execute(tt.name, "br0", "flows.ckpt", "--ovs-run-dir=/run/ovs", "-O", "OpenFlow13", "--strict", "-mm")
			require.NoError(t, err)
			require.NotNil(t, *created)
			o := *created
			assert.Equal(t, "/run/ovs", o.config.OVSRunDir)
			assert.Equal(t, openflow.NewVersionSet(openflow.Version13), o.versions)
			assert.True(t, o.config.StrictReplyType)
			assert.Equal(t, 2, o.more)
		})
	}
}

func TestDumpRequest(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/tmp/flows.txt", []byte("stale content that is longer than the dump\n"), 0644))
	ctrl := gomock.NewController(t)
	client := ofctltesting.NewMockCheckpointClient(ctrl)
	client.EXPECT().DumpFlows(gomock.Any(), "br0", ofctl.DumpOptions{Match: "table=0", Aggregate: true}, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ ofctl.DumpOptions, out io.Writer) (*ofctl.Result, error) {
			_, err := io.WriteString(out, "OFPST_AGGREGATE reply (OF1.3) (xid=0x2):\n")
			return &ofctl.Result{Frames: 1}, err
		})
	useMockClient(t, client)

	_, err := execute("dumpRequest", "br0", "/tmp/flows.txt", "--match", "table=0", "--aggregate")
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, "/tmp/flows.txt")
	require.NoError(t, err)
	assert.Equal(t, "OFPST_AGGREGATE reply (OF1.3) (xid=0x2):\n", string(data))
}

func TestRequestErrors(t *testing.T) {
	t.Run("request failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := ofctltesting.NewMockCheckpointClient(ctrl)
		client.EXPECT().Rollback(gomock.Any(), "br1", "flows.ckpt").Return(nil,
			&ofctl.Error{Kind: ofctl.ConfigError, Err: errors.New("br1 is not a bridge or a socket")})
		useMockClient(t, client)
		_, err := execute("recoverRequest", "br1", "flows.ckpt")
		require.Error(t, err)
		assert.EqualError(t, err, "recoverRequest failed: br1 is not a bridge or a socket")
		assert.True(t, ofctl.IsKind(err, ofctl.ConfigError))
	})

	t.Run("error reply is not a failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := ofctltesting.NewMockCheckpointClient(ctrl)
		client.EXPECT().SyncRollback(gomock.Any(), "br0", "flows.ckpt").Return(
			&ofctl.Result{Frames: 1, Error: &openflow.ErrorReply{Type: 1, Code: 4}}, nil)
		useMockClient(t, client)
		_, err := execute("syncRequest", "br0", "flows.ckpt")
		require.NoError(t, err)
	})

	t.Run("invalid options", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		useMockClient(t, ofctltesting.NewMockCheckpointClient(ctrl))
		_, err := execute("checkpointRequest", "br0", "flows.ckpt", "-F", "XXM")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to validate: invalid flow formats")
	})

	t.Run("dump file cannot be created", func(t *testing.T) {
		useMemFs(t)
		defaultFs = afero.NewReadOnlyFs(defaultFs)
		ctrl := gomock.NewController(t)
		useMockClient(t, ofctltesting.NewMockCheckpointClient(ctrl))
		_, err := execute("dumpRequest", "br0", "/tmp/flows.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dumpRequest failed: failed to open dump file")
	})
}
