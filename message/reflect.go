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
	"reflect"
)

var (
	payloadMessageType         = reflect.TypeOf(PayloadMessage{})
	payloadMessageResponseType = reflect.TypeOf(PayloadMessageResponse{})
)

// indirect dereferences a pointer down to the struct it points at.
func indirect(v interface{}) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return rv, true
}

// frameValue locates the embedded PayloadMessage within v, which may embed
// it directly, or one level removed via FlexMessage or
// PayloadMessageResponse (both of which embed PayloadMessage themselves).
func frameValue(v interface{}) (reflect.Value, bool) {
	rv, ok := indirect(v)
	if !ok {
		return reflect.Value{}, false
	}
	if rv.Type() == payloadMessageType {
		return rv, true
	}
	if f := rv.FieldByName("PayloadMessage"); f.IsValid() && f.Type() == payloadMessageType {
		return f, true
	}
	for i := 0; i < rv.NumField(); i++ {
		sf := rv.Type().Field(i)
		if !sf.Anonymous || rv.Field(i).Kind() != reflect.Struct {
			continue
		}
		inner := rv.Field(i)
		if f := inner.FieldByName("PayloadMessage"); f.IsValid() && f.Type() == payloadMessageType {
			return f, true
		}
	}
	return reflect.Value{}, false
}

// Frame extracts the common PayloadMessage metadata from any registered
// message kind, whether passed by value or by pointer.
func Frame(v interface{}) (PayloadMessage, bool) {
	fv, ok := frameValue(v)
	if !ok {
		return PayloadMessage{}, false
	}
	return fv.Interface().(PayloadMessage), true
}

// SetFrame overwrites the common PayloadMessage fields on v in place. v
// must be a pointer to a registered message kind. Version, SenderDomain
// and RecipientDomain are applied unconditionally; TimeStamp, MessageID
// and ConversationID are applied only when not already set — mirroring
// original_source/.../client/base_client.py's "field = field or default"
// fill-in behaviour.
func SetFrame(v interface{}, version, senderDomain, recipientDomain, timeStamp, messageID, conversationID string) bool {
	fv, ok := frameValue(v)
	if !ok || !fv.CanSet() {
		return false
	}
	frame := fv.Interface().(PayloadMessage)
	frame.Version = version
	frame.SenderDomain = senderDomain
	frame.RecipientDomain = recipientDomain
	if frame.TimeStamp == "" {
		frame.TimeStamp = timeStamp
	}
	if frame.MessageID == "" {
		frame.MessageID = messageID
	}
	if frame.ConversationID == "" {
		frame.ConversationID = conversationID
	}
	fv.Set(reflect.ValueOf(frame))
	return true
}

// responseFrameValue locates the embedded PayloadMessageResponse within v,
// which every concrete response kind embeds directly.
func responseFrameValue(v interface{}) (reflect.Value, bool) {
	rv, ok := indirect(v)
	if !ok {
		return reflect.Value{}, false
	}
	if f := rv.FieldByName("PayloadMessageResponse"); f.IsValid() && f.Type() == payloadMessageResponseType {
		return f, true
	}
	return reflect.Value{}, false
}

// SetResponseFrame overwrites the common PayloadMessageResponse fields
// (Result, RejectionReason, and the embedded PayloadMessage frame) on v,
// a pointer to a registered response kind.
func SetResponseFrame(v interface{}, frame PayloadMessage, result Result, rejectionReason string) bool {
	fv, ok := responseFrameValue(v)
	if !ok || !fv.CanSet() {
		return false
	}
	resp := fv.Interface().(PayloadMessageResponse)
	resp.PayloadMessage = frame
	resp.Result = result
	resp.RejectionReason = rejectionReason
	fv.Set(reflect.ValueOf(resp))
	return true
}

// SetStringField sets a single exported string field on v by name. It is
// used to populate the dynamically-named "<RequestKind>MessageID" field
// that every concrete response kind carries (e.g. DPrognosisResponse's
// DPrognosisMessageID), since the field name depends on the request kind.
func SetStringField(v interface{}, name, value string) error {
	rv, ok := indirect(v)
	if !ok {
		return fmt.Errorf("SetStringField: %T is not a pointer to a struct", v)
	}
	f := rv.FieldByName(name)
	if !f.IsValid() {
		return fmt.Errorf("SetStringField: no field %q on %s", name, rv.Type())
	}
	if f.Kind() != reflect.String || !f.CanSet() {
		return fmt.Errorf("SetStringField: field %q on %s is not a settable string", name, rv.Type())
	}
	f.SetString(value)
	return nil
}

// TypeName returns the bare Go type name of a registered message value,
// e.g. "DPrognosis" for a *DPrognosis or DPrognosis value. This is the
// name used to build the "<TypeName>MessageID" reference field on the
// kind's response type.
func TypeName(v interface{}) string {
	rv, ok := indirect(v)
	if !ok {
		return ""
	}
	return rv.Type().Name()
}
