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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usef-uftp/shapeshifter-go/message"
)

func TestBuildRejectionPopulatesReferenceFieldAndFrame(t *testing.T) {
	req := &message.FlexOffer{
		FlexMessage: message.FlexMessage{
			PayloadMessage: message.PayloadMessage{
				Version:         message.DefaultVersion,
				SenderDomain:    "agr.example.com",
				RecipientDomain: "dso.example.com",
				MessageID:       "123e4567-e89b-12d3-a456-426614174000",
				ConversationID:  "123e4567-e89b-12d3-a456-426614174001",
			},
		},
	}

	resp, err := buildRejection("agr.example.com", req, "ISP Conflict")
	require.NoError(t, err)

	flexResp, ok := resp.(*message.FlexOfferResponse)
	require.True(t, ok)
	assert.Equal(t, "dso.example.com", flexResp.SenderDomain)
	assert.Equal(t, "agr.example.com", flexResp.RecipientDomain)
	assert.Equal(t, req.ConversationID, flexResp.ConversationID)
	assert.Equal(t, message.ResultRejected, flexResp.Result)
	assert.Equal(t, "ISP Conflict", flexResp.RejectionReason)
	assert.Equal(t, req.MessageID, flexResp.FlexOfferMessageID)
}

func TestBuildRejectionUnknownResponseKind(t *testing.T) {
	// A response kind itself has no further response registered in
	// requestResponseMap.
	req := &message.AgrPortfolioUpdateResponse{}
	_, err := buildRejection("agr.example.com", req, "Unauthorized")
	assert.Error(t, err)
}
