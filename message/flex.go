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

import "fmt"

// -- D-Prognosis --------------------------------------------------------

// DPrognosisISP is one power forecast row of a D-Prognosis message.
type DPrognosisISP struct {
	Power    int `xml:"Power,attr" json:"power"`
	Start    int `xml:"Start,attr" json:"start"`
	Duration int `xml:"Duration,attr" json:"duration"`
}

func (i DPrognosisISP) ISPStart() int    { return i.Start }
func (i DPrognosisISP) ISPDuration() int { return ISP{Start: i.Start, Duration: i.Duration}.EffectiveDuration() }

// FlexOrderStatus reports the validation state of one ordered FlexOrder
// referenced from a D-PrognosisResponse.
type FlexOrderStatus struct {
	FlexOrderMessageID string `xml:"FlexOrderMessageID,attr" json:"flex_order_message_id"`
	IsValidated         bool   `xml:"IsValidated,attr" json:"is_validated"`
}

// DPrognosis is sent by an AGR to forecast the power profile behind a
// congestion point for a given Period.
type DPrognosis struct {
	FlexMessage
	ISPs     []DPrognosisISP `xml:"ISP" json:"isps"`
	Revision int             `xml:"Revision,attr" json:"revision"`
}

func rowsOf[T ISPRow](items []T) []ISPRow {
	out := make([]ISPRow, len(items))
	for i, v := range items {
		out[i] = v
	}
	return out
}

// Validate checks framing, required attributes and ISP non-overlap.
func (m DPrognosis) Validate() error {
	if err := m.FlexMessage.ValidateFrame(); err != nil {
		return err
	}
	if err := ValidateISPs("isps", rowsOf(m.ISPs)); err != nil {
		return err
	}
	return nil
}

// DPrognosisResponse acknowledges or rejects a D-Prognosis, optionally
// reporting the validation status of FlexOrders based on it.
type DPrognosisResponse struct {
	PayloadMessageResponse
	DPrognosisMessageID string            `xml:"D-PrognosisMessageID,attr" json:"d_prognosis_message_id"`
	FlexOrderStatuses    []FlexOrderStatus `xml:"FlexOrderStatus" json:"flex_order_statuses,omitempty"`
}

func (m DPrognosisResponse) Validate() error {
	return m.PayloadMessageResponse.ValidateFrame()
}

// -- FlexRequest ----------------------------------------------------------

// FlexRequestISP is one power band requested for a single ISP.
type FlexRequestISP struct {
	Disposition Disposition `xml:"Disposition,attr,omitempty" json:"disposition,omitempty"`
	MinPower    int         `xml:"MinPower,attr" json:"min_power"`
	MaxPower    int         `xml:"MaxPower,attr" json:"max_power"`
	Start       int         `xml:"Start,attr" json:"start"`
	Duration    int         `xml:"Duration,attr" json:"duration"`
}

func (i FlexRequestISP) ISPStart() int    { return i.Start }
func (i FlexRequestISP) ISPDuration() int { return ISP{Start: i.Start, Duration: i.Duration}.EffectiveDuration() }

// FlexRequest is sent by a DSO soliciting flexibility for a congestion point.
type FlexRequest struct {
	FlexMessage
	ISPs               []FlexRequestISP `xml:"ISP" json:"isps"`
	Revision           int              `xml:"Revision,attr" json:"revision"`
	ExpirationDateTime string           `xml:"ExpirationDateTime,attr" json:"expiration_date_time"`
	ContractID         string           `xml:"ContractID,attr,omitempty" json:"contract_id,omitempty"`
	ServiceType        string           `xml:"ServiceType,attr,omitempty" json:"service_type,omitempty"`
}

func (m FlexRequest) Validate() error {
	if err := m.FlexMessage.ValidateFrame(); err != nil {
		return err
	}
	if err := ValidateRegex("expiration_date_time", m.ExpirationDateTime, timestampPattern); err != nil {
		return err
	}
	return ValidateISPs("isps", rowsOf(m.ISPs))
}

// FlexRequestResponse acknowledges or rejects a FlexRequest.
type FlexRequestResponse struct {
	PayloadMessageResponse
	FlexRequestMessageID string `xml:"FlexRequestMessageID,attr" json:"flex_request_message_id"`
}

func (m FlexRequestResponse) Validate() error { return m.PayloadMessageResponse.ValidateFrame() }

// -- FlexOffer --------------------------------------------------------------

// FlexOfferOptionISP is one power row within a FlexOfferOption.
type FlexOfferOptionISP struct {
	Power    int `xml:"Power,attr" json:"power"`
	Start    int `xml:"Start,attr" json:"start"`
	Duration int `xml:"Duration,attr" json:"duration"`
}

func (i FlexOfferOptionISP) ISPStart() int { return i.Start }
func (i FlexOfferOptionISP) ISPDuration() int {
	return ISP{Start: i.Start, Duration: i.Duration}.EffectiveDuration()
}

// FlexOfferOption is one priced alternative within a FlexOffer.
type FlexOfferOption struct {
	ISPs                []FlexOfferOptionISP `xml:"ISP" json:"isps"`
	OptionReference     string               `xml:"OptionReference,attr" json:"option_reference"`
	Price               Decimal              `xml:"Price,attr" json:"price"`
	MinActivationFactor Decimal              `xml:"MinActivationFactor,attr" json:"min_activation_factor"`
}

func (o FlexOfferOption) Validate() error {
	if err := ValidateISPs("isps", rowsOf(o.ISPs)); err != nil {
		return err
	}
	factor := o.MinActivationFactor
	if factor.rat == nil {
		factor, _ = NewDecimal(DefaultActivationFactor, 2)
	}
	if inRange, err := factor.InRange("0.01", "1.00"); err != nil {
		return err
	} else if !inRange {
		return fmt.Errorf("min_activation_factor must be between 0.01 and 1.00")
	}
	return nil
}

// DefaultActivationFactor is the activation factor Validate assumes when
// one is omitted (left at its zero value).
const DefaultActivationFactor = "1.00"

// FlexOffer is sent by an AGR in response to a FlexRequest (or
// unsolicited) offering one or more priced options.
type FlexOffer struct {
	FlexMessage
	OfferOptions        []FlexOfferOption `xml:"OfferOption" json:"offer_options"`
	ExpirationDateTime  string            `xml:"ExpirationDateTime,attr" json:"expiration_date_time"`
	FlexRequestMessageID string           `xml:"FlexRequestMessageID,attr,omitempty" json:"flex_request_message_id,omitempty"`
	ContractID          string            `xml:"ContractID,attr,omitempty" json:"contract_id,omitempty"`
	DPrognosisMessageID string            `xml:"D-PrognosisMessageID,attr,omitempty" json:"d_prognosis_message_id,omitempty"`
	BaselineReference   string            `xml:"BaselineReference,attr,omitempty" json:"baseline_reference,omitempty"`
	Currency            string            `xml:"Currency,attr" json:"currency"`
}

func (m FlexOffer) Validate() error {
	if err := m.FlexMessage.ValidateFrame(); err != nil {
		return err
	}
	if err := ValidateRegex("expiration_date_time", m.ExpirationDateTime, timestampPattern); err != nil {
		return err
	}
	if err := ValidateList("offer_options", m.OfferOptions, 1); err != nil {
		return err
	}
	for _, o := range m.OfferOptions {
		if err := o.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FlexOfferResponse acknowledges or rejects a FlexOffer.
type FlexOfferResponse struct {
	PayloadMessageResponse
	FlexOfferMessageID string `xml:"FlexOfferMessageID,attr" json:"flex_offer_message_id"`
}

func (m FlexOfferResponse) Validate() error { return m.PayloadMessageResponse.ValidateFrame() }

// -- FlexOfferRevocation -----------------------------------------------------

// FlexOfferRevocation withdraws a previously accepted FlexOffer.
type FlexOfferRevocation struct {
	PayloadMessage
	FlexOfferMessageID string `xml:"FlexOfferMessageID,attr" json:"flex_offer_message_id"`
}

func (m FlexOfferRevocation) Validate() error {
	if err := m.PayloadMessage.ValidateFrame(); err != nil {
		return err
	}
	return ValidateRegex("flex_offer_message_id", m.FlexOfferMessageID, uuidPattern)
}

// FlexOfferRevocationResponse acknowledges or rejects a FlexOfferRevocation.
type FlexOfferRevocationResponse struct {
	PayloadMessageResponse
	FlexOfferRevocationMessageID string `xml:"FlexOfferRevocationMessageID,attr" json:"flex_offer_revocation_message_id"`
}

func (m FlexOfferRevocationResponse) Validate() error {
	return m.PayloadMessageResponse.ValidateFrame()
}

// -- FlexOrder ----------------------------------------------------------

// FlexOrderISP is one ordered power row.
type FlexOrderISP struct {
	Power    int `xml:"Power,attr" json:"power"`
	Start    int `xml:"Start,attr" json:"start"`
	Duration int `xml:"Duration,attr" json:"duration"`
}

func (i FlexOrderISP) ISPStart() int { return i.Start }
func (i FlexOrderISP) ISPDuration() int {
	return ISP{Start: i.Start, Duration: i.Duration}.EffectiveDuration()
}

// FlexOrder is sent by a DSO to accept a FlexOfferOption.
type FlexOrder struct {
	FlexMessage
	ISPs                []FlexOrderISP `xml:"ISP" json:"isps"`
	FlexOfferMessageID  string         `xml:"FlexOfferMessageID,attr" json:"flex_offer_message_id"`
	ContractID          string         `xml:"ContractID,attr,omitempty" json:"contract_id,omitempty"`
	DPrognosisMessageID string         `xml:"D-PrognosisMessageID,attr,omitempty" json:"d_prognosis_message_id,omitempty"`
	BaselineReference   string         `xml:"BaselineReference,attr,omitempty" json:"baseline_reference,omitempty"`
	Price               Decimal        `xml:"Price,attr" json:"price"`
	Currency            string         `xml:"Currency,attr" json:"currency"`
	OrderReference      string         `xml:"OrderReference,attr" json:"order_reference"`
	OptionReference     string         `xml:"OptionReference,attr,omitempty" json:"option_reference,omitempty"`
	ActivationFactor    Decimal        `xml:"ActivationFactor,attr" json:"activation_factor"`
}

func (m FlexOrder) Validate() error {
	if err := m.FlexMessage.ValidateFrame(); err != nil {
		return err
	}
	if err := ValidateISPs("isps", rowsOf(m.ISPs)); err != nil {
		return err
	}
	factor := m.ActivationFactor
	if factor.rat == nil {
		factor, _ = NewDecimal(DefaultActivationFactor, 2)
	}
	if inRange, err := factor.InRange("0.01", "1.00"); err != nil {
		return err
	} else if !inRange {
		return fmt.Errorf("activation_factor must be between 0.01 and 1.00")
	}
	return nil
}

// FlexOrderResponse acknowledges or rejects a FlexOrder.
type FlexOrderResponse struct {
	PayloadMessageResponse
	FlexOrderMessageID string `xml:"FlexOrderMessageID,attr" json:"flex_order_message_id"`
}

func (m FlexOrderResponse) Validate() error { return m.PayloadMessageResponse.ValidateFrame() }

// -- FlexReservationUpdate ---------------------------------------------------

// FlexReservationUpdateISP is one remaining-reservation row.
type FlexReservationUpdateISP struct {
	Power    int `xml:"Power,attr" json:"power"`
	Start    int `xml:"Start,attr" json:"start"`
	Duration int `xml:"Duration,attr" json:"duration"`
}

func (i FlexReservationUpdateISP) ISPStart() int { return i.Start }
func (i FlexReservationUpdateISP) ISPDuration() int {
	return ISP{Start: i.Start, Duration: i.Duration}.EffectiveDuration()
}

// FlexReservationUpdate tells an AGR how much of a bilateral contract's
// reservation remains after releases.
type FlexReservationUpdate struct {
	FlexMessage
	ISPs       []FlexReservationUpdateISP `xml:"ISP" json:"isps"`
	ContractID string                     `xml:"ContractID,attr" json:"contract_id"`
	Reference  string                     `xml:"Reference,attr" json:"reference"`
}

func (m FlexReservationUpdate) Validate() error {
	if err := m.FlexMessage.ValidateFrame(); err != nil {
		return err
	}
	return ValidateISPs("isps", rowsOf(m.ISPs))
}

// FlexReservationUpdateResponse acknowledges or rejects a FlexReservationUpdate.
type FlexReservationUpdateResponse struct {
	PayloadMessageResponse
	FlexReservationUpdateMessageID string `xml:"FlexReservationUpdateMessageID,attr" json:"flex_reservation_update_message_id"`
}

func (m FlexReservationUpdateResponse) Validate() error {
	return m.PayloadMessageResponse.ValidateFrame()
}

// -- FlexSettlement -----------------------------------------------------

// ContractSettlementISP reports reserved/requested/available/offered/ordered
// power for one ISP of a bilateral contract's settlement.
type ContractSettlementISP struct {
	Start          int  `xml:"Start,attr" json:"start"`
	Duration       int  `xml:"Duration,attr" json:"duration"`
	ReservedPower  int  `xml:"ReservedPower,attr" json:"reserved_power"`
	RequestedPower *int `xml:"RequestedPower,attr,omitempty" json:"requested_power,omitempty"`
	AvailablePower *int `xml:"AvailablePower,attr,omitempty" json:"available_power,omitempty"`
	OfferedPower   *int `xml:"OfferedPower,attr,omitempty" json:"offered_power,omitempty"`
	OrderedPower   *int `xml:"OrderedPower,attr,omitempty" json:"ordered_power,omitempty"`
}

// ContractSettlementPeriod groups the ISPs of a bilateral contract's
// settlement for a single day.
type ContractSettlementPeriod struct {
	ISPs   []ContractSettlementISP `xml:"ISP" json:"isps"`
	Period string                  `xml:"Period,attr" json:"period"`
}

// ContractSettlement settles one bilateral contract over one or more periods.
type ContractSettlement struct {
	Periods    []ContractSettlementPeriod `xml:"Period" json:"periods"`
	ContractID string                     `xml:"ContractID,attr,omitempty" json:"contract_id,omitempty"`
}

func (c ContractSettlement) Validate() error {
	return ValidateList("periods", c.Periods, 1)
}

// FlexOrderSettlementStatus reports whether an AGR accepts or disputes a
// FlexOrderSettlement entry.
type FlexOrderSettlementStatus struct {
	OrderReference string                `xml:"OrderReference,attr,omitempty" json:"order_reference,omitempty"`
	Disposition    SettlementDisposition `xml:"Disposition,attr" json:"disposition"`
	DisputeReason  string                `xml:"DisputeReason,attr,omitempty" json:"dispute_reason,omitempty"`
}

// FlexOrderSettlementISP reconciles baseline, ordered, actual and delivered
// power for one ISP of an ordered settlement.
type FlexOrderSettlementISP struct {
	Start              int `xml:"Start,attr" json:"start"`
	Duration           int `xml:"Duration,attr" json:"duration"`
	BaselinePower      int `xml:"BaselinePower,attr" json:"baseline_power"`
	OrderedFlexPower   int `xml:"OrderedFlexPower,attr" json:"ordered_flex_power"`
	ActualPower        int `xml:"ActualPower,attr" json:"actual_power"`
	DeliveredFlexPower int `xml:"DeliveredFlexPower,attr" json:"delivered_flex_power"`
	PowerDeficiency    int `xml:"PowerDeficiency,attr" json:"power_deficiency"`
}

// FlexOrderSettlement settles one FlexOrder, pricing the net amount owed.
type FlexOrderSettlement struct {
	ISPs                []FlexOrderSettlementISP `xml:"ISP" json:"isps"`
	OrderReference      string                   `xml:"OrderReference,attr,omitempty" json:"order_reference,omitempty"`
	Period              string                   `xml:"Period,attr" json:"period"`
	ContractID          string                   `xml:"ContractID,attr,omitempty" json:"contract_id,omitempty"`
	DPrognosisMessageID string                   `xml:"D-PrognosisMessageID,attr,omitempty" json:"d_prognosis_message_id,omitempty"`
	BaselineReference   string                   `xml:"BaselineReference,attr,omitempty" json:"baseline_reference,omitempty"`
	CongestionPoint     string                   `xml:"CongestionPoint,attr" json:"congestion_point"`
	Price               Decimal                  `xml:"Price,attr" json:"price"`
	Penalty             Decimal                  `xml:"Penalty,attr" json:"penalty"`
	NetSettlement       Decimal                  `xml:"NetSettlement,attr" json:"net_settlement"`
}

func (s FlexOrderSettlement) Validate() error {
	if err := ValidateList("isps", s.ISPs, 1); err != nil {
		return err
	}
	return ValidateRegex("congestion_point", s.CongestionPoint, congestionPointPattern)
}

// FlexSettlementResponse acknowledges a FlexSettlement and carries the
// AGR's per-order accept/dispute decisions.
type FlexSettlementResponse struct {
	PayloadMessageResponse
	FlexSettlementMessageID      string                      `xml:"FlexSettlementMessageID,attr" json:"flex_settlement_message_id"`
	FlexOrderSettlementStatuses []FlexOrderSettlementStatus `xml:"FlexOrderSettlementStatus" json:"flex_order_settlement_statuses"`
}

func (m FlexSettlementResponse) Validate() error {
	if err := m.PayloadMessageResponse.ValidateFrame(); err != nil {
		return err
	}
	return ValidateList("flex_order_settlement_statuses", m.FlexOrderSettlementStatuses, 1)
}

// FlexSettlement is sent by a DSO proposing the settlement of a period's
// FlexOrders and bilateral contracts. Unlike the other Flex trading kinds
// it embeds PayloadMessageResponse rather than FlexMessage, so it carries
// a Result and RejectionReason even though it opens the exchange; Result
// is not defaulted and may be left empty. The AGR's own verdict on the
// settlement travels back separately in FlexSettlementResponse.
type FlexSettlement struct {
	PayloadMessageResponse
	FlexOrderSettlements []FlexOrderSettlement `xml:"FlexOrderSettlement" json:"flex_order_settlements"`
	ContractSettlements  []ContractSettlement   `xml:"ContractSettlement" json:"contract_settlements"`
	PeriodStart          string                 `xml:"PeriodStart,attr" json:"period_start"`
	PeriodEnd            string                 `xml:"PeriodEnd,attr" json:"period_end"`
	Currency             string                 `xml:"Currency,attr" json:"currency"`
}

func (m FlexSettlement) Validate() error {
	if err := m.PayloadMessageResponse.ValidateFrame(); err != nil {
		return err
	}
	if err := ValidateList("flex_order_settlements", m.FlexOrderSettlements, 1); err != nil {
		return err
	}
	if err := ValidateList("contract_settlements", m.ContractSettlements, 1); err != nil {
		return err
	}
	for _, s := range m.FlexOrderSettlements {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, c := range m.ContractSettlements {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// -- Metering -----------------------------------------------------------

// MeteringISP is one reading within a MeteringProfile.
type MeteringISP struct {
	Start int     `xml:"Start,attr" json:"start"`
	Value Decimal `xml:"Value,attr" json:"value"`
}

// MeteringProfile carries one sequence of readings of a single kind
// (power, import/export energy or meter reading) for a metering point.
type MeteringProfile struct {
	ISPs        []MeteringISP       `xml:"ISP" json:"isps"`
	ProfileType MeteringProfileType `xml:"ProfileType,attr" json:"profile_type"`
	Unit        MeteringUnit        `xml:"Unit,attr" json:"unit"`
}

func (p MeteringProfile) Validate() error {
	return ValidateList("isps", p.ISPs, 1)
}

// Metering reports measured power/energy for a metering point, grouped
// into one or more profiles.
type Metering struct {
	PayloadMessage
	Profiles   []MeteringProfile `xml:"Profile" json:"profiles"`
	Revision   int               `xml:"Revision,attr" json:"revision"`
	ISPDuration string           `xml:"ISP-Duration,attr" json:"isp_duration"`
	TimeZone   string            `xml:"TimeZone,attr" json:"time_zone"`
	Currency   string            `xml:"Currency,attr,omitempty" json:"currency,omitempty"`
	Period     string            `xml:"Period,attr" json:"period"`
	EAN        string            `xml:"EAN,attr" json:"ean"`
}

func (m Metering) Validate() error {
	if err := m.PayloadMessage.ValidateFrame(); err != nil {
		return err
	}
	if err := ValidateRegex("isp_duration", m.ISPDuration, ispDurationPattern); err != nil {
		return err
	}
	if err := ValidateRegex("time_zone", m.TimeZone, timeZonePattern); err != nil {
		return err
	}
	if err := ValidateRegex("ean", m.EAN, eanPattern); err != nil {
		return err
	}
	return ValidateList("profiles", m.Profiles, 1)
}

// MeteringResponse acknowledges or rejects a Metering message.
type MeteringResponse struct {
	PayloadMessageResponse
	MeteringMessageID string `xml:"MeteringMessageID,attr" json:"metering_message_id"`
}

func (m MeteringResponse) Validate() error { return m.PayloadMessageResponse.ValidateFrame() }
