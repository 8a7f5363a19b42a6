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

// CroHandlers is the set of message-processing callbacks a Central
// Registration Operator participant must supply, one per kind
// routing.AcceptableKinds(RoleCRO) names. Grounded on
// service/cro_service.py's four abstract process_* methods.
type CroHandlers struct {
	ProcessDsoPortfolioQuery  func(context.Context, *message.DsoPortfolioQuery) error
	ProcessDsoPortfolioUpdate func(context.Context, *message.DsoPortfolioUpdate) error
	ProcessAgrPortfolioQuery  func(context.Context, *message.AgrPortfolioQuery) error
	ProcessAgrPortfolioUpdate func(context.Context, *message.AgrPortfolioUpdate) error
}

func (h CroHandlers) toSet() HandlerSet {
	return HandlerSet{
		"DSOPortfolioQuery":  typed(h.ProcessDsoPortfolioQuery),
		"DSOPortfolioUpdate": typed(h.ProcessDsoPortfolioUpdate),
		"AGRPortfolioQuery":  typed(h.ProcessAgrPortfolioQuery),
		"AGRPortfolioUpdate": typed(h.ProcessAgrPortfolioUpdate),
	}
}

// Cro is the Central Registration Operator participant: it receives
// portfolio query/update messages from both Aggregators and DSOs, and
// addresses outbound messages to each via the role-pair clients it
// exposes.
type Cro struct {
	*Participant
	AgrClient *client.CroAgrClient
	DsoClient *client.CroDsoClient
}

// NewCro builds a Cro participant. cfg.Role must be message.RoleCRO.
func NewCro(cfg *config.Config, handlers CroHandlers, oauthResolve oauth.Resolver) (*Cro, error) {
	if cfg.Role != message.RoleCRO {
		return nil, roleMismatch(message.RoleCRO, cfg.Role)
	}
	p, err := New(cfg, handlers.toSet(), oauthResolve)
	if err != nil {
		return nil, err
	}
	return &Cro{
		Participant: p,
		AgrClient:   client.NewCroAgrClient(p.Base),
		DsoClient:   client.NewCroDsoClient(p.Base),
	}, nil
}
