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

package log

import (
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	"k8s.io/klog/v2"
)

// logrusCallDepth skips the hook and the logrus frames between the caller of
// logrus and klog.
const logrusCallDepth = 7

// klogHook forwards logrus entries to klog, so that the messages of libOpenflow
// end up in the same place and format as ours. Info entries are logged at
// verbosity 2 and debug entries at verbosity 4.
type klogHook struct{}

func (h klogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h klogHook) Fire(entry *logrus.Entry) error {
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kvs := make([]interface{}, 0, 2*len(keys))
	for _, k := range keys {
		kvs = append(kvs, k, entry.Data[k])
	}

	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		klog.ErrorSDepth(logrusCallDepth, nil, entry.Message, kvs...)
	case logrus.WarnLevel:
		klog.InfoSDepth(logrusCallDepth, entry.Message, kvs...)
	case logrus.InfoLevel:
		klog.V(2).InfoSDepth(logrusCallDepth, entry.Message, kvs...)
	default:
		klog.V(4).InfoSDepth(logrusCallDepth, entry.Message, kvs...)
	}
	return nil
}

// RedirectLogrus sends everything logged through the logrus standard logger
// to klog instead of stderr.
func RedirectLogrus() {
	logrus.SetOutput(io.Discard)
	logrus.SetLevel(logrus.DebugLevel)
	logrus.AddHook(klogHook{})
}
