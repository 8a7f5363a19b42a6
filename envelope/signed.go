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

import "github.com/usef-uftp/shapeshifter-go/message"

// SignedMessage is the secure wrapper that carries a sealed business
// message from one participant's outbound queue to another's inbound
// endpoint. Unlike a PayloadMessage, the sender/recipient metadata here is
// minimal: just enough for the recipient to look up the cryptographic
// scheme and key it needs to unseal Body.
type SignedMessage struct {
	SenderDomain string       `xml:"SenderDomain,attr" json:"sender_domain"`
	SenderRole   message.Role `xml:"SenderRole,attr" json:"sender_role"`
	Body         []byte       `xml:"Body,attr" json:"body"`
}
