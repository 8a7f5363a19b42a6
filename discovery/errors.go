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

package discovery

import "fmt"

// Error is raised when a DNS lookup for a peer's version or endpoint
// fails outright (NXDOMAIN) or the network is unable to reach a
// nameserver (SERVFAIL). Unlike a bad key record, this is not mapped to
// an HTTP status by the service endpoint — it surfaces as a plain error
// to whichever caller triggered the resolution (an outbound send, or an
// operator-facing health check). Grounded on
// original_source/.../exceptions.py:ServiceDiscoveryException.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

func errorf(format string, args ...interface{}) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}
