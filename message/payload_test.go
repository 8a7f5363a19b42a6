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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFrame() PayloadMessage {
	return PayloadMessage{
		Version:         "3.0.0",
		SenderDomain:    "agr.example.com",
		RecipientDomain: "dso.example.com",
		TimeStamp:       "2026-07-31T10:00:00Z",
		MessageID:       "123e4567-e89b-12d3-a456-426614174000",
		ConversationID:  "123e4567-e89b-12d3-a456-426614174001",
	}
}

func TestPayloadMessage_ValidateFrame(t *testing.T) {
	assert.NoError(t, validFrame().ValidateFrame())

	bad := validFrame()
	bad.MessageID = "not-a-uuid"
	assert.Error(t, bad.ValidateFrame())
}

func TestFlexMessage_ValidateFrame(t *testing.T) {
	f := FlexMessage{
		PayloadMessage:  validFrame(),
		ISPDuration:     "PT15M",
		TimeZone:        "Europe/Amsterdam",
		Period:          "2026-07-31",
		CongestionPoint: "ea1.2007-11.net.grid:1",
	}
	assert.NoError(t, f.ValidateFrame())

	bad := f
	bad.ISPDuration = "15 minutes"
	assert.Error(t, bad.ValidateFrame())

	bad2 := f
	bad2.CongestionPoint = ""
	assert.Error(t, bad2.ValidateFrame())
}

func TestDPrognosis_Validate(t *testing.T) {
	base := FlexMessage{
		PayloadMessage:  validFrame(),
		ISPDuration:     "PT15M",
		TimeZone:        "Europe/Amsterdam",
		Period:          "2026-07-31",
		CongestionPoint: "ea1.2007-11.net.grid:1",
	}
	m := DPrognosis{
		FlexMessage: base,
		ISPs: []DPrognosisISP{
			{Power: 100, Start: 1, Duration: 4},
			{Power: 200, Start: 5, Duration: 4},
		},
		Revision: 1,
	}
	require.NoError(t, m.Validate())

	overlapping := m
	overlapping.ISPs = []DPrognosisISP{
		{Power: 100, Start: 1, Duration: 4},
		{Power: 200, Start: 4, Duration: 4},
	}
	assert.Error(t, overlapping.Validate())

	empty := m
	empty.ISPs = nil
	assert.Error(t, empty.Validate())
}

func TestFlexSettlement_CarriesResultField(t *testing.T) {
	m := FlexSettlement{
		PayloadMessageResponse: PayloadMessageResponse{
			PayloadMessage: validFrame(),
			Result:         ResultAccepted,
		},
		FlexOrderSettlements: []FlexOrderSettlement{{
			ISPs:            []FlexOrderSettlementISP{{Start: 1, BaselinePower: 100, OrderedFlexPower: 50, ActualPower: 90, DeliveredFlexPower: 40}},
			Period:          "2026-07-31",
			CongestionPoint: "ea1.2007-11.net.grid:1",
			Price:           mustDecimal(t, "10.0000", 4),
			NetSettlement:   mustDecimal(t, "10.0000", 4),
		}},
		ContractSettlements: []ContractSettlement{{
			Periods: []ContractSettlementPeriod{{
				ISPs:   []ContractSettlementISP{{Start: 1, ReservedPower: 100}},
				Period: "2026-07-31",
			}},
		}},
		PeriodStart: "2026-07-31",
		PeriodEnd:   "2026-07-31",
		Currency:    "EUR",
	}
	assert.NoError(t, m.Validate())
}

func mustDecimal(t *testing.T, value string, digits int) Decimal {
	t.Helper()
	d, err := NewDecimal(value, digits)
	require.NoError(t, err)
	return d
}
