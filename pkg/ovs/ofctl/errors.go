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
	"errors"
	"fmt"
)

type ErrorKind int

const (
	// ConfigError means the request cannot be carried out with the given
	// switch name or protocol settings. Retrying does not help.
	ConfigError ErrorKind = iota
	// TransportError means the connection to the switch failed.
	TransportError
	// ProtocolError means the switch answered with something unexpected.
	ProtocolError
	// OutputError means the replies could not be written to the output.
	OutputError
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case TransportError:
		return "TransportError"
	case ProtocolError:
		return "ProtocolError"
	case OutputError:
		return "OutputError"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned by every CheckpointClient operation that fails.
type Error struct {
	Kind ErrorKind
	// Op is usually the switch or socket the error relates to.
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, op string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
