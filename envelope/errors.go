// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

// Package envelope implements the SignedMessage wire wrapper: sealing a
// business message with Ed25519, unsealing and verifying an incoming one,
// and the transport-level error taxonomy that maps straight to HTTP
// status codes.
package envelope

import "fmt"

// TransportError is returned when a SignedMessage could not even be
// accepted for processing — the fault lies with the envelope itself, not
// with the business message it carries. Every TransportError maps to a
// fixed HTTP status code.
type TransportError struct {
	status  int
	message string
}

func (e *TransportError) Error() string { return e.message }

// Status returns the HTTP status code the receiving service should
// respond with.
func (e *TransportError) Status() int { return e.status }

// ErrMissingContentLength is returned when an inbound request has no
// Content-Length header.
func ErrMissingContentLength() error {
	return &TransportError{status: 411, message: "missing Content-Length header"}
}

// ErrInvalidContentType is returned when Content-Type is not text/xml, or
// names a charset other than utf-8.
func ErrInvalidContentType(got string) error {
	return &TransportError{status: 400, message: fmt.Sprintf("invalid Content-Type: %q", got)}
}

// ErrTooManyRequests is returned when the sender has exceeded the rate
// limit applied to its originating address.
func ErrTooManyRequests() error {
	return &TransportError{status: 429, message: "too many requests"}
}

// ErrSchema is returned when the sealed body cannot be parsed into a
// known message kind, or fails the kind's own structural validation.
func ErrSchema(reason string) error {
	return &TransportError{status: 400, message: fmt.Sprintf("schema violation: %s", reason)}
}

// ErrAuthenticationTimeout is returned when the sender's public key could
// not be resolved via DNS or configuration.
func ErrAuthenticationTimeout(reason string) error {
	return &TransportError{status: 419, message: fmt.Sprintf("authentication timeout: %s", reason)}
}

// ErrInvalidSignature is returned when a SignedMessage's body does not
// verify against the resolved public key.
func ErrInvalidSignature() error {
	return &TransportError{status: 401, message: "invalid signature"}
}
