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
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usef-uftp/shapeshifter-go/message"
)

func testMessage() message.FlexOfferRevocation {
	return message.FlexOfferRevocation{
		PayloadMessage: message.PayloadMessage{
			Version:         "3.0.0",
			SenderDomain:    "agr.example.com",
			RecipientDomain: "dso.example.com",
			TimeStamp:       "2026-07-31T10:00:00Z",
			MessageID:       "123e4567-e89b-12d3-a456-426614174000",
			ConversationID:  "123e4567-e89b-12d3-a456-426614174001",
		},
		FlexOfferMessageID: "123e4567-e89b-12d3-a456-426614174002",
	}
}

func TestSealUnseal_RoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	msg := testMessage()
	sealed, err := Seal(msg, "agr.example.com", message.RoleAGR, priv)
	require.NoError(t, err)
	assert.Equal(t, "agr.example.com", sealed.SenderDomain)
	assert.Equal(t, message.RoleAGR, sealed.SenderRole)

	unsealed, err := Unseal(sealed, pub)
	require.NoError(t, err)
	got, ok := unsealed.(*message.FlexOfferRevocation)
	require.True(t, ok)
	assert.Equal(t, msg.MessageID, got.MessageID)
}

func TestUnseal_InvalidSignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	_ = pub

	msg := testMessage()
	sealed, err := Seal(msg, "agr.example.com", message.RoleAGR, priv)
	require.NoError(t, err)

	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	_, err = Unseal(sealed, otherPub)
	require.Error(t, err)
	tErr, ok := err.(*TransportError)
	require.True(t, ok)
	assert.Equal(t, 401, tErr.Status())
}

func TestUnseal_TruncatedBody(t *testing.T) {
	sm := &SignedMessage{SenderDomain: "agr.example.com", SenderRole: message.RoleAGR, Body: []byte("short")}
	_, err := Unseal(sm, make([]byte, ed25519.PublicKeySize))
	require.Error(t, err)
	tErr, ok := err.(*TransportError)
	require.True(t, ok)
	assert.Equal(t, 400, tErr.Status())
}

func TestUnseal_NoPublicKey(t *testing.T) {
	sm := &SignedMessage{SenderDomain: "agr.example.com", SenderRole: message.RoleAGR, Body: []byte("anything")}
	_, err := Unseal(sm, nil)
	require.Error(t, err)
	tErr, ok := err.(*TransportError)
	require.True(t, ok)
	assert.Equal(t, 419, tErr.Status())
}
