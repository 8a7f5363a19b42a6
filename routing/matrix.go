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

// Package routing is the static map of who may send what to whom: which
// message kinds travel over each (sender role, recipient role) pair, which
// kinds an inbound service of a given role will accept, and which request
// kind expects which response kind.
package routing

import "github.com/usef-uftp/shapeshifter-go/message"

// RolePair identifies one direction of the six AGR/DSO/CRO communication
// channels.
type RolePair struct {
	Sender    message.Role
	Recipient message.Role
}

// clientKinds lists, for each RolePair, the wire kind names that an
// outbound client acting as Sender may address to Recipient. Grounded on
// the send_* methods of the six concrete ShapeshifterClient subclasses.
var clientKinds = map[RolePair][]string{
	{Sender: message.RoleAGR, Recipient: message.RoleCRO}: {
		"AGRPortfolioUpdate", "AGRPortfolioQuery",
	},
	{Sender: message.RoleAGR, Recipient: message.RoleDSO}: {
		"D-Prognosis", "FlexRequestResponse", "FlexOffer", "FlexOfferRevocation",
		"FlexOrderResponse", "FlexSettlementResponse", "FlexReservationUpdateResponse", "Metering",
	},
	{Sender: message.RoleCRO, Recipient: message.RoleAGR}: {
		"AGRPortfolioUpdateResponse", "AGRPortfolioQueryResponse",
	},
	{Sender: message.RoleCRO, Recipient: message.RoleDSO}: {
		"DSOPortfolioUpdateResponse", "DSOPortfolioQueryResponse",
	},
	{Sender: message.RoleDSO, Recipient: message.RoleAGR}: {
		"D-PrognosisResponse", "FlexRequest", "FlexOfferResponse", "FlexOrder",
		"FlexReservationUpdate", "FlexSettlement", "FlexOfferRevocationResponse", "MeteringResponse",
	},
	{Sender: message.RoleDSO, Recipient: message.RoleCRO}: {
		"DSOPortfolioUpdate", "DSOPortfolioQuery",
	},
}

// acceptableMessages lists, for each service role, the wire kind names an
// inbound endpoint of that role accepts from any sender. Grounded on the
// acceptable_messages class attribute of ShapeshifterAgrService,
// ShapeshifterDsoService and ShapeshifterCroService.
var acceptableMessages = map[message.Role][]string{
	message.RoleAGR: {
		"AGRPortfolioQueryResponse", "AGRPortfolioUpdateResponse", "D-PrognosisResponse",
		"FlexOfferResponse", "FlexOfferRevocationResponse", "FlexOrder", "FlexRequest",
		"FlexReservationUpdate", "FlexSettlement", "MeteringResponse",
	},
	message.RoleDSO: {
		"D-Prognosis", "DSOPortfolioQueryResponse", "DSOPortfolioUpdateResponse", "FlexOffer",
		"FlexOfferRevocation", "FlexOrderResponse", "FlexRequestResponse",
		"FlexReservationUpdateResponse", "FlexSettlementResponse", "Metering",
	},
	message.RoleCRO: {
		"DSOPortfolioQuery", "DSOPortfolioUpdate", "AGRPortfolioQuery", "AGRPortfolioUpdate",
	},
}

// requestResponseMap pairs every request kind with the response kind it
// expects back, used both by a client awaiting a reply and by a service
// constructing an asynchronous functional rejection.
var requestResponseMap = map[string]string{
	"AGRPortfolioQuery":      "AGRPortfolioQueryResponse",
	"AGRPortfolioUpdate":     "AGRPortfolioUpdateResponse",
	"DSOPortfolioQuery":      "DSOPortfolioQueryResponse",
	"DSOPortfolioUpdate":     "DSOPortfolioUpdateResponse",
	"D-Prognosis":            "D-PrognosisResponse",
	"FlexRequest":            "FlexRequestResponse",
	"FlexOffer":              "FlexOfferResponse",
	"FlexOfferRevocation":    "FlexOfferRevocationResponse",
	"FlexOrder":              "FlexOrderResponse",
	"FlexReservationUpdate":  "FlexReservationUpdateResponse",
	"FlexSettlement":         "FlexSettlementResponse",
	"Metering":               "MeteringResponse",
}

// CanSend reports whether a sender of role `from` is permitted to address
// a message of the given wire kind to a recipient of role `to`.
func CanSend(from, to message.Role, kind string) bool {
	for _, k := range clientKinds[RolePair{Sender: from, Recipient: to}] {
		if k == kind {
			return true
		}
	}
	return false
}

// Acceptable reports whether an inbound service acting as role will
// accept a message of the given wire kind.
func Acceptable(role message.Role, kind string) bool {
	for _, k := range acceptableMessages[role] {
		if k == kind {
			return true
		}
	}
	return false
}

// AcceptableKinds returns the full list of wire kinds role accepts.
func AcceptableKinds(role message.Role) []string {
	return append([]string(nil), acceptableMessages[role]...)
}

// ResponseKindFor returns the response wire kind expected for a given
// request kind, and whether one is registered at all (FlexSettlement's
// response notwithstanding, every request kind in this protocol has one).
func ResponseKindFor(requestKind string) (string, bool) {
	k, ok := requestResponseMap[requestKind]
	return k, ok
}
