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

package message

import (
	"fmt"
	"regexp"
)

var (
	versionPattern         = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	domainPattern          = regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*\.)+[a-z]{2,}$`)
	timestampPattern       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{1,9})?([+-]\d{2}:\d{2}|Z)$`)
	uuidPattern            = regexp.MustCompile(`^[0-9A-Fa-f]{8}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{12}$`)
	ispDurationPattern     = regexp.MustCompile(`^PT\d+M$`)
	timeZonePattern        = regexp.MustCompile(`^(Africa|America|Australia|Europe|Pacific)/[a-zA-Z0-9_/]{3,}$`)
	congestionPointPattern = regexp.MustCompile(`^(ea1\.[0-9]{4}-[0-9]{2}\..{1,244}:.{1,244}|ean\.[0-9]{12,34})$`)
	entityAddressPattern   = congestionPointPattern
	eanPattern             = regexp.MustCompile(`^[Ee][0-9]{16}$`)
)

// ValidateRegex reports an error naming the field if value does not match
// pattern. Empty values are never checked here — callers decide whether
// emptiness itself is an error (mirrors the framework filling in
// sender_domain/time_stamp/message_id/conversation_id after construction).
func ValidateRegex(name, value string, pattern *regexp.Regexp) error {
	if value == "" {
		return nil
	}
	if !pattern.MatchString(value) {
		return fmt.Errorf("%s has an invalid value: %q", name, value)
	}
	return nil
}

// ValidateDecimal validates that value is numeric and returns it quantised
// to digits fraction digits. Mirrors validations.py:validate_decimal.
func ValidateDecimal(name string, value interface{}, digits int) (Decimal, error) {
	d, err := NewDecimal(value, digits)
	if err != nil {
		return Decimal{}, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

// ValidateList validates that items has at least minLen elements. Go's
// type system already guarantees homogeneity of a typed slice, so unlike
// validations.py:validate_list there is no separate element-type check.
func ValidateList[T any](name string, items []T, minLen int) error {
	if len(items) < minLen {
		return fmt.Errorf("length of list '%s' must be %d or greater, not %d", name, minLen, len(items))
	}
	return nil
}
