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
)

func TestValidateRegex(t *testing.T) {
	assert.NoError(t, ValidateRegex("version", "3.0.0", versionPattern))
	assert.Error(t, ValidateRegex("version", "3.0", versionPattern))
	assert.NoError(t, ValidateRegex("version", "", versionPattern), "blank values are skipped")

	assert.NoError(t, ValidateRegex("domain", "example.com", domainPattern))
	assert.Error(t, ValidateRegex("domain", "EXAMPLE", domainPattern))
}

func TestValidateList(t *testing.T) {
	assert.NoError(t, ValidateList("isps", []int{1, 2}, 1))
	assert.Error(t, ValidateList("isps", []int{}, 1))

	type row struct{ X int }
	assert.NoError(t, ValidateList("rows", []row{{X: 1}}, 1))
}

func TestValidateISPs(t *testing.T) {
	ok := []ISPRow{ISP{Start: 1, Duration: 2}, ISP{Start: 3, Duration: 1}}
	assert.NoError(t, ValidateISPs("isps", ok))

	overlap := []ISPRow{ISP{Start: 1, Duration: 2}, ISP{Start: 2, Duration: 1}}
	assert.Error(t, ValidateISPs("isps", overlap))

	assert.Error(t, ValidateISPs("isps", nil), "must contain at least one ISP")

	badStart := []ISPRow{ISP{Start: 0}}
	assert.Error(t, ValidateISPs("isps", badStart))
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"DPrognosis":         "d_prognosis",
		"FlexOffer":          "flex_offer",
		"AGRPortfolioQuery":  "agr_portfolio_query",
		"FlexOrderResponse":  "flex_order_response",
	}
	for in, want := range cases {
		assert.Equal(t, want, SnakeCase(in), in)
	}
}
