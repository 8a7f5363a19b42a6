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

func TestAgrPortfolioQueryResponse_Validate(t *testing.T) {
	resp := AgrPortfolioQueryResponse{
		PayloadMessageResponse: PayloadMessageResponse{
			PayloadMessage: validFrame(),
			Result:         ResultAccepted,
		},
		AgrPortfolioQueryMessageID: "123e4567-e89b-12d3-a456-426614174003",
		DSOViews: []AgrPortfolioQueryResponseDSOView{{
			DSOPortfolios: []AgrPortfolioQueryResponseDSOPortfolio{{
				CongestionPoints: []AgrPortfolioQueryResponseCongestionPoint{{
					Connections:          []AgrPortfolioQueryResponseConnection{{EntityAddress: "ean.123456789012"}},
					EntityAddress:        "ea1.2007-11.net.grid:1",
					MutexOffersSupported: true,
					DayAheadRedispatchBy: RedispatchByDSO,
				}},
				DSODomain: "dso.example.com",
			}},
		}},
		TimeZone: "Europe/Amsterdam",
		Period:   "2026-07-31",
	}
	assert.NoError(t, resp.Validate())

	empty := resp
	empty.DSOViews = nil
	assert.Error(t, empty.Validate())
}

func TestDsoPortfolioUpdate_Validate(t *testing.T) {
	u := DsoPortfolioUpdate{
		PayloadMessage: validFrame(),
		CongestionPoints: []DsoPortfolioUpdateCongestionPoint{{
			Connections:          []DsoPortfolioUpdateConnection{{EntityAddress: "ean.123456789012", StartPeriod: "2026-01-01"}},
			EntityAddress:        "ea1.2007-11.net.grid:1",
			StartPeriod:          "2026-01-01",
			MutexOffersSupported: false,
			DayAheadRedispatchBy: RedispatchByAGR,
		}},
		TimeZone: "Europe/Amsterdam",
	}
	assert.NoError(t, u.Validate())

	bad := u
	bad.CongestionPoints[0].Connections = nil
	assert.Error(t, bad.Validate())
}
