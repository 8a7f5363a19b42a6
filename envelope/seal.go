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
	"fmt"

	"github.com/usef-uftp/shapeshifter-go/message"
)

// sigLen is the length, in bytes, of an Ed25519 signature prepended to
// the signed payload — the same "signature || message" framing used by
// libsodium's crypto_sign/crypto_sign_open, which the reference
// implementation builds on.
const sigLen = ed25519.SignatureSize

// Seal signs a business message with the sender's Ed25519 private key and
// wraps it in a SignedMessage ready to be sent over the wire. senderRole
// identifies the USEF role under which the message is being sent.
func Seal(msg interface{}, senderDomain string, senderRole message.Role, privateKey ed25519.PrivateKey) (*SignedMessage, error) {
	xmlBody, err := message.ToXML(msg)
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}

	signature := ed25519.Sign(privateKey, xmlBody)
	sealed := make([]byte, 0, len(signature)+len(xmlBody))
	sealed = append(sealed, signature...)
	sealed = append(sealed, xmlBody...)

	return &SignedMessage{
		SenderDomain: senderDomain,
		SenderRole:   senderRole,
		Body:         sealed,
	}, nil
}

// Unseal verifies the signature on a SignedMessage's Body against the
// given public key and, if it checks out, parses the inner XML into the
// concrete business message it carries.
//
// Unseal never returns a bare error for a bad signature or malformed
// body — both map to a *TransportError so the caller (an HTTP handler)
// can respond with the correct status code directly.
func Unseal(sm *SignedMessage, publicKey ed25519.PublicKey) (interface{}, error) {
	if len(publicKey) == 0 {
		return nil, ErrAuthenticationTimeout("no public key available for sender")
	}
	if len(sm.Body) < sigLen {
		return nil, ErrSchema("sealed body shorter than an Ed25519 signature")
	}

	signature := sm.Body[:sigLen]
	xmlBody := sm.Body[sigLen:]

	if !ed25519.Verify(publicKey, xmlBody, signature) {
		return nil, ErrInvalidSignature()
	}

	msg, err := message.FromXML(xmlBody)
	if err != nil {
		return nil, ErrSchema(err.Error())
	}
	return msg, nil
}
