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
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
)

// ToXML renders a business message as a standalone XML document, using
// the registered wire element name as the root (so a DPrognosis value
// is emitted as <D-Prognosis ...>...</D-Prognosis>).
func ToXML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	start := xml.StartElement{Name: xml.Name{Local: KindOf(v)}}
	if err := enc.EncodeElement(v, start); err != nil {
		return nil, fmt.Errorf("marshal %s: %w", start.Name.Local, err)
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromXML reads the root element of data to determine which registered
// message kind it carries, then decodes into a fresh instance of that
// type. The returned value is always a pointer.
func FromXML(data []byte) (interface{}, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("xml document has no root element")
			}
			return nil, fmt.Errorf("scan for root element: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		out := NewByKind(start.Name.Local)
		if out == nil {
			return nil, fmt.Errorf("unknown message kind %q", start.Name.Local)
		}
		if err := dec.DecodeElement(out, &start); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", start.Name.Local, err)
		}
		return out, nil
	}
}

// ToJSON renders a business message as JSON, tagging it with its wire
// kind name so FromJSON can reconstruct the right Go type.
func ToJSON(v interface{}) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	envelope := struct {
		Kind string          `json:"kind"`
		Body json.RawMessage `json:"body"`
	}{Kind: KindOf(v), Body: body}
	return json.Marshal(envelope)
}

// FromJSON is the inverse of ToJSON.
func FromJSON(data []byte) (interface{}, error) {
	var envelope struct {
		Kind string          `json:"kind"`
		Body json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	out := NewByKind(envelope.Kind)
	if out == nil {
		return nil, fmt.Errorf("unknown message kind %q", envelope.Kind)
	}
	if err := json.Unmarshal(envelope.Body, out); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", envelope.Kind, err)
	}
	return out, nil
}
