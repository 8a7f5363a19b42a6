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

package envelope

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// ToXML renders a SignedMessage as the wire-level XML document POSTed
// between participants, with Body carried as base64 (encoding/xml's
// default []byte attribute encoding).
func ToXML(sm *SignedMessage) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	start := xml.StartElement{Name: xml.Name{Local: "SignedMessage"}}
	if err := enc.EncodeElement(sm, start); err != nil {
		return nil, fmt.Errorf("marshal SignedMessage: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromXML parses a wire-level SignedMessage document. A Schema
// TransportError is returned on any parse failure, ready to be written
// straight back as an HTTP response by the service endpoint.
func FromXML(data []byte) (*SignedMessage, error) {
	sm := &SignedMessage{}
	if err := xml.Unmarshal(data, sm); err != nil {
		return nil, ErrSchema(fmt.Sprintf("could not parse SignedMessage: %v", err))
	}
	return sm, nil
}
