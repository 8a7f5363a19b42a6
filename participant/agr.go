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

// AgrHandlers is the set of message-processing callbacks an Aggregator
// participant must supply, one per kind routing.AcceptableKinds(RoleAGR)
// names. Grounded on service/agr_service.py's ten abstract process_*
// methods.
type AgrHandlers struct {
	ProcessAgrPortfolioQueryResponse   func(context.Context, *message.AgrPortfolioQueryResponse) error
	ProcessAgrPortfolioUpdateResponse  func(context.Context, *message.AgrPortfolioUpdateResponse) error
	ProcessDPrognosisResponse          func(context.Context, *message.DPrognosisResponse) error
	ProcessFlexOfferResponse           func(context.Context, *message.FlexOfferResponse) error
	ProcessFlexOfferRevocationResponse func(context.Context, *message.FlexOfferRevocationResponse) error
	ProcessFlexOrder                   func(context.Context, *message.FlexOrder) error
	ProcessFlexRequest                 func(context.Context, *message.FlexRequest) error
	ProcessFlexReservationUpdate       func(context.Context, *message.FlexReservationUpdate) error
	ProcessFlexSettlement              func(context.Context, *message.FlexSettlement) error
	ProcessMeteringResponse            func(context.Context, *message.MeteringResponse) error
}

func (h AgrHandlers) toSet() HandlerSet {
	return HandlerSet{
		"AGRPortfolioQueryResponse":      typed(h.ProcessAgrPortfolioQueryResponse),
		"AGRPortfolioUpdateResponse":     typed(h.ProcessAgrPortfolioUpdateResponse),
		"D-PrognosisResponse":            typed(h.ProcessDPrognosisResponse),
		"FlexOfferResponse":              typed(h.ProcessFlexOfferResponse),
		"FlexOfferRevocationResponse":    typed(h.ProcessFlexOfferRevocationResponse),
		"FlexOrder":                      typed(h.ProcessFlexOrder),
		"FlexRequest":                    typed(h.ProcessFlexRequest),
		"FlexReservationUpdate":          typed(h.ProcessFlexReservationUpdate),
		"FlexSettlement":                 typed(h.ProcessFlexSettlement),
		"MeteringResponse":               typed(h.ProcessMeteringResponse),
	}
}

// Agr is an Aggregator participant: it can receive the ten kinds above
// (the two AGRPortfolio responses from the CRO, the rest from a DSO),
// and it addresses outbound messages to both a CRO and a
// DSO via the role-pair clients it exposes.
type Agr struct {
	*Participant
	CroClient *client.AgrCroClient
	DsoClient *client.AgrDsoClient
}

// NewAgr builds an Agr participant. cfg.Role must be message.RoleAGR.
func NewAgr(cfg *config.Config, handlers AgrHandlers, oauthResolve oauth.Resolver) (*Agr, error) {
	if cfg.Role != message.RoleAGR {
		return nil, roleMismatch(message.RoleAGR, cfg.Role)
	}
	p, err := New(cfg, handlers.toSet(), oauthResolve)
	if err != nil {
		return nil, err
	}
	return &Agr{
		Participant: p,
		CroClient:   client.NewAgrCroClient(p.Base),
		DsoClient:   client.NewAgrDsoClient(p.Base),
	}, nil
}
