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

package participant

import (
	"context"

	"github.com/usef-uftp/shapeshifter-go/client"
	"github.com/usef-uftp/shapeshifter-go/config"
	"github.com/usef-uftp/shapeshifter-go/message"
	"github.com/usef-uftp/shapeshifter-go/oauth"
)

// DsoHandlers is the set of message-processing callbacks a DSO
// participant must supply, one per kind routing.AcceptableKinds(RoleDSO)
// names. Grounded on service/dso_service.py's abstract process_* methods.
type DsoHandlers struct {
	ProcessDPrognosis                   func(context.Context, *message.DPrognosis) error
	ProcessDsoPortfolioQueryResponse     func(context.Context, *message.DsoPortfolioQueryResponse) error
	ProcessDsoPortfolioUpdateResponse    func(context.Context, *message.DsoPortfolioUpdateResponse) error
	ProcessFlexOffer                     func(context.Context, *message.FlexOffer) error
	ProcessFlexOfferRevocation           func(context.Context, *message.FlexOfferRevocation) error
	ProcessFlexOrderResponse             func(context.Context, *message.FlexOrderResponse) error
	ProcessFlexRequestResponse           func(context.Context, *message.FlexRequestResponse) error
	ProcessFlexReservationUpdateResponse func(context.Context, *message.FlexReservationUpdateResponse) error
	ProcessFlexSettlementResponse        func(context.Context, *message.FlexSettlementResponse) error
	ProcessMetering                      func(context.Context, *message.Metering) error
}

func (h DsoHandlers) toSet() HandlerSet {
	return HandlerSet{
		"D-Prognosis":                   typed(h.ProcessDPrognosis),
		"DSOPortfolioQueryResponse":     typed(h.ProcessDsoPortfolioQueryResponse),
		"DSOPortfolioUpdateResponse":    typed(h.ProcessDsoPortfolioUpdateResponse),
		"FlexOffer":                     typed(h.ProcessFlexOffer),
		"FlexOfferRevocation":           typed(h.ProcessFlexOfferRevocation),
		"FlexOrderResponse":             typed(h.ProcessFlexOrderResponse),
		"FlexRequestResponse":           typed(h.ProcessFlexRequestResponse),
		"FlexReservationUpdateResponse": typed(h.ProcessFlexReservationUpdateResponse),
		"FlexSettlementResponse":        typed(h.ProcessFlexSettlementResponse),
		"Metering":                      typed(h.ProcessMetering),
	}
}

// Dso is a Distribution System Operator participant: it receives the
// ten kinds above (the two DSOPortfolio responses from the CRO, the rest
// from an Aggregator), and addresses outbound messages to
// both an Aggregator and the CRO via the role-pair clients it exposes.
type Dso struct {
	*Participant
	AgrClient *client.DsoAgrClient
	CroClient *client.DsoCroClient
}

// NewDso builds a Dso participant. cfg.Role must be message.RoleDSO.
func NewDso(cfg *config.Config, handlers DsoHandlers, oauthResolve oauth.Resolver) (*Dso, error) {
	if cfg.Role != message.RoleDSO {
		return nil, roleMismatch(message.RoleDSO, cfg.Role)
	}
	p, err := New(cfg, handlers.toSet(), oauthResolve)
	if err != nil {
		return nil, err
	}
	return &Dso{
		Participant: p,
		AgrClient:   client.NewDsoAgrClient(p.Base),
		CroClient:   client.NewDsoCroClient(p.Base),
	}, nil
}
