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
	"regexp"
	"strings"
)

// kindName maps a Go message type to the XML/log element name used on the
// wire, mirroring the dataclass `Meta.name` overrides in
// shapeshifter_uftp/uftp/messages/*.py (most types keep their class name;
// a handful such as D-Prognosis* insert a hyphen).
var kindName = map[reflect.Type]string{}

// kindType is the reverse mapping, used by FromXML to pick a concrete Go
// type to decode into once the root element name is known.
var kindType = map[string]reflect.Type{}

func register(name string, sample interface{}) {
	t := reflect.TypeOf(sample)
	kindName[t] = name
	kindType[name] = t
}

func init() {
	register("AGRPortfolioQuery", AgrPortfolioQuery{})
	register("AGRPortfolioQueryResponse", AgrPortfolioQueryResponse{})
	register("AGRPortfolioUpdate", AgrPortfolioUpdate{})
	register("AGRPortfolioUpdateResponse", AgrPortfolioUpdateResponse{})
	register("DSOPortfolioQuery", DsoPortfolioQuery{})
	register("DSOPortfolioQueryResponse", DsoPortfolioQueryResponse{})
	register("DSOPortfolioUpdate", DsoPortfolioUpdate{})
	register("DSOPortfolioUpdateResponse", DsoPortfolioUpdateResponse{})
	register("D-Prognosis", DPrognosis{})
	register("D-PrognosisResponse", DPrognosisResponse{})
	register("FlexRequest", FlexRequest{})
	register("FlexRequestResponse", FlexRequestResponse{})
	register("FlexOffer", FlexOffer{})
	register("FlexOfferResponse", FlexOfferResponse{})
	register("FlexOfferRevocation", FlexOfferRevocation{})
	register("FlexOfferRevocationResponse", FlexOfferRevocationResponse{})
	register("FlexOrder", FlexOrder{})
	register("FlexOrderResponse", FlexOrderResponse{})
	register("FlexReservationUpdate", FlexReservationUpdate{})
	register("FlexReservationUpdateResponse", FlexReservationUpdateResponse{})
	register("FlexSettlement", FlexSettlement{})
	register("FlexSettlementResponse", FlexSettlementResponse{})
	register("Metering", Metering{})
	register("MeteringResponse", MeteringResponse{})
}

// KindOf returns the wire element name for a message value, e.g. a
// DPrognosis value returns "D-Prognosis". It panics if v's type was never
// registered — every concrete message kind must be, so this signals a
// programming error rather than a runtime condition to recover from.
func KindOf(v interface{}) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name, ok := kindName[t]
	if !ok {
		panic(fmt.Sprintf("message: type %s was never registered", t))
	}
	return name
}

// NewByKind allocates a zero-valued pointer to the concrete type
// registered under name, or nil if name is unknown.
func NewByKind(name string) interface{} {
	t, ok := kindType[name]
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

var snakeCasePattern = regexp.MustCompile(`(.)([A-Z][a-z])`)

// SnakeCase converts a Go type name such as "DPrognosis" to
// "d_prognosis", the same way shapeshifter_uftp's snake_case() turns a
// class name into a `process_<name>` handler method name.
func SnakeCase(text string) string {
	return strings.ToLower(snakeCasePattern.ReplaceAllString(text, "${1}_${2}"))
}
