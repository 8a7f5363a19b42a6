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

package service

import (
	"fmt"

	"github.com/usef-uftp/shapeshifter-go/message"
	"github.com/usef-uftp/shapeshifter-go/routing"
)

// buildRejection constructs the asynchronous functional-rejection
// response for request, addressed back to the domain it came from, the
// same shape _reject_message assembles by hand from request_response_map
// and a "<kind>_message_id" field name.
func buildRejection(senderDomain string, request interface{}, reason string) (interface{}, error) {
	requestKind := message.KindOf(request)
	responseKind, ok := routing.ResponseKindFor(requestKind)
	if !ok {
		return nil, fmt.Errorf("service: no response kind registered for %s", requestKind)
	}

	response := message.NewByKind(responseKind)
	if response == nil {
		return nil, fmt.Errorf("service: response kind %s is not registered", responseKind)
	}

	requestFrame, ok := message.Frame(request)
	if !ok {
		return nil, fmt.Errorf("service: %s does not carry a PayloadMessage frame", requestKind)
	}

	frame := message.PayloadMessage{
		Version:         requestFrame.Version,
		SenderDomain:    requestFrame.RecipientDomain,
		RecipientDomain: senderDomain,
		ConversationID:  requestFrame.ConversationID,
	}
	if !message.SetResponseFrame(response, frame, message.ResultRejected, reason) {
		return nil, fmt.Errorf("service: %s is not a response kind", responseKind)
	}

	referenceField := message.TypeName(request) + "MessageID"
	if err := message.SetStringField(response, referenceField, requestFrame.MessageID); err != nil {
		return nil, fmt.Errorf("service: building rejection for %s: %w", requestKind, err)
	}

	return response, nil
}
