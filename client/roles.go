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

package client

import (
	"context"

	"github.com/usef-uftp/shapeshifter-go/message"
)

// AgrCroClient lets an Aggregator address the CRO, grounded on
// original_source/.../client/agr_cro_client.py.
type AgrCroClient struct{ *Base }

func NewAgrCroClient(base *Base) *AgrCroClient { return &AgrCroClient{base} }

func (c *AgrCroClient) SendAgrPortfolioUpdate(ctx context.Context, peer Peer, msg *message.AgrPortfolioUpdate) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *AgrCroClient) SendAgrPortfolioQuery(ctx context.Context, peer Peer, msg *message.AgrPortfolioQuery) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

// AgrDsoClient lets an Aggregator address a DSO, grounded on
// original_source/.../client/agr_dso_client.py.
type AgrDsoClient struct{ *Base }

func NewAgrDsoClient(base *Base) *AgrDsoClient { return &AgrDsoClient{base} }

func (c *AgrDsoClient) SendDPrognosis(ctx context.Context, peer Peer, msg *message.DPrognosis) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *AgrDsoClient) SendFlexRequestResponse(ctx context.Context, peer Peer, msg *message.FlexRequestResponse) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *AgrDsoClient) SendFlexOffer(ctx context.Context, peer Peer, msg *message.FlexOffer) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *AgrDsoClient) SendFlexOfferRevocation(ctx context.Context, peer Peer, msg *message.FlexOfferRevocation) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *AgrDsoClient) SendFlexOrderResponse(ctx context.Context, peer Peer, msg *message.FlexOrderResponse) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *AgrDsoClient) SendFlexSettlementResponse(ctx context.Context, peer Peer, msg *message.FlexSettlementResponse) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *AgrDsoClient) SendFlexReservationUpdateResponse(ctx context.Context, peer Peer, msg *message.FlexReservationUpdateResponse) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *AgrDsoClient) SendMetering(ctx context.Context, peer Peer, msg *message.Metering) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

// CroAgrClient lets the CRO address an Aggregator, grounded on
// original_source/.../client/cro_agr_client.py.
type CroAgrClient struct{ *Base }

func NewCroAgrClient(base *Base) *CroAgrClient { return &CroAgrClient{base} }

func (c *CroAgrClient) SendAgrPortfolioUpdateResponse(ctx context.Context, peer Peer, msg *message.AgrPortfolioUpdateResponse) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *CroAgrClient) SendAgrPortfolioQueryResponse(ctx context.Context, peer Peer, msg *message.AgrPortfolioQueryResponse) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

// CroDsoClient lets the CRO address a DSO, grounded on
// original_source/.../client/cro_dso_client.py.
type CroDsoClient struct{ *Base }

func NewCroDsoClient(base *Base) *CroDsoClient { return &CroDsoClient{base} }

func (c *CroDsoClient) SendDsoPortfolioUpdateResponse(ctx context.Context, peer Peer, msg *message.DsoPortfolioUpdateResponse) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *CroDsoClient) SendDsoPortfolioQueryResponse(ctx context.Context, peer Peer, msg *message.DsoPortfolioQueryResponse) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

// DsoAgrClient lets a DSO address an Aggregator, grounded on
// original_source/.../client/dso_agr_client.py.
type DsoAgrClient struct{ *Base }

func NewDsoAgrClient(base *Base) *DsoAgrClient { return &DsoAgrClient{base} }

func (c *DsoAgrClient) SendDPrognosisResponse(ctx context.Context, peer Peer, msg *message.DPrognosisResponse) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *DsoAgrClient) SendFlexRequest(ctx context.Context, peer Peer, msg *message.FlexRequest) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *DsoAgrClient) SendFlexOfferResponse(ctx context.Context, peer Peer, msg *message.FlexOfferResponse) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *DsoAgrClient) SendFlexOrder(ctx context.Context, peer Peer, msg *message.FlexOrder) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *DsoAgrClient) SendFlexReservationUpdate(ctx context.Context, peer Peer, msg *message.FlexReservationUpdate) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *DsoAgrClient) SendFlexSettlement(ctx context.Context, peer Peer, msg *message.FlexSettlement) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *DsoAgrClient) SendFlexOfferRevocationResponse(ctx context.Context, peer Peer, msg *message.FlexOfferRevocationResponse) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *DsoAgrClient) SendMeteringResponse(ctx context.Context, peer Peer, msg *message.MeteringResponse) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

// DsoCroClient lets a DSO address the CRO, grounded on
// original_source/.../client/dso_cro_client.py.
type DsoCroClient struct{ *Base }

func NewDsoCroClient(base *Base) *DsoCroClient { return &DsoCroClient{base} }

func (c *DsoCroClient) SendDsoPortfolioUpdate(ctx context.Context, peer Peer, msg *message.DsoPortfolioUpdate) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}

func (c *DsoCroClient) SendDsoPortfolioQuery(ctx context.Context, peer Peer, msg *message.DsoPortfolioQuery) (interface{}, error) {
	return c.Send(ctx, peer, msg)
}
