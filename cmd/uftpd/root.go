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

package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "uftpd",
	Short: "uftpd runs a single USEF role Shapeshifter participant service",
	Long: `uftpd wires a DNS discovery resolver, an OAuth2 client-credentials
manager, an outbound retry queue, and an inbound HTTP endpoint into one
of the three USEF role facades (AGR, DSO, CRO), for local smoke-testing
of the wire protocol. Real deployments embed the participant package
directly and supply their own message handlers; uftpd's handlers only
log receipt.`,
}
