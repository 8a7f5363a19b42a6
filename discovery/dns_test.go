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

package discovery

import (
	"crypto/ed25519"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNxdomainToServiceDiscoveryWrapsPlainErrors(t *testing.T) {
	err := nxdomainToServiceDiscovery("_usef.example.com", assert.AnError)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "_usef.example.com")
}

func TestKeysDecodeSigningOnly(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	record := "cs1." + base64.StdEncoding.EncodeToString(pub)

	const prefix = "cs1."
	require.True(t, len(record) > len(prefix))
	combined, err := base64.StdEncoding.DecodeString(record[len(prefix):])
	require.NoError(t, err)
	assert.Len(t, combined, ed25519.PublicKeySize)
}

func TestVersionRecordPatternAcceptsSemver(t *testing.T) {
	assert.True(t, versionRecordPattern.MatchString("3.0.0"))
	assert.True(t, versionRecordPattern.MatchString("3.1.2-something"))
	assert.False(t, versionRecordPattern.MatchString("v3.0.0"))
	assert.False(t, versionRecordPattern.MatchString("three.zero.zero"))
}
