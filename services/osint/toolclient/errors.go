// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package toolclient

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed tool call.
type ErrorKind int

const (
	// KindNetwork means the call never reached a server: dial failure,
	// DNS error, context cancellation mid-flight.
	KindNetwork ErrorKind = iota

	// KindHTTP means the server answered with a non-2xx status.
	KindHTTP

	// KindShape means the response body did not match the expected
	// contract (unparseable or structurally wrong JSON).
	KindShape
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindShape:
		return "shape"
	default:
		return "unknown"
	}
}

// CallError is the single error type surfaced by tool calls. The owning
// task records Error() verbatim; callers that care about the class use
// errors.As and inspect Kind.
type CallError struct {
	Kind   ErrorKind
	Tool   string // request path, for log correlation
	Status int    // HTTP status code; zero unless Kind is KindHTTP
	Msg    string
	Err    error
}

func (e *CallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("toolclient: %s: %s (HTTP %d)", e.Tool, e.Msg, e.Status)
	}
	return fmt.Sprintf("toolclient: %s: %s", e.Tool, e.Msg)
}

func (e *CallError) Unwrap() error { return e.Err }

// KindOf returns the ErrorKind of err and true when err wraps a
// CallError, zero and false otherwise.
func KindOf(err error) (ErrorKind, bool) {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}
