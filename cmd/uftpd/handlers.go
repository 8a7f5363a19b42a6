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
	"context"

	"github.com/usef-uftp/shapeshifter-go/internal/logger"
	"github.com/usef-uftp/shapeshifter-go/message"
	"github.com/usef-uftp/shapeshifter-go/participant"
)

// logOnly builds a handler that logs receipt of a message and accepts it,
// standing in for real business logic a deployed participant would supply.
// uftpd is a smoke-testing daemon, not a reference business implementation.
func logOnly(log logger.Logger, kind string) func(context.Context, interface{}) error {
	return func(ctx context.Context, msg interface{}) error {
		log.Info("received message", logger.String("kind", kind))
		return nil
	}
}

func loggingAgrHandlers(log logger.Logger) participant.AgrHandlers {
	return participant.AgrHandlers{
		ProcessAgrPortfolioQueryResponse:   typedLog[message.AgrPortfolioQueryResponse](log, "AGRPortfolioQueryResponse"),
		ProcessAgrPortfolioUpdateResponse:  typedLog[message.AgrPortfolioUpdateResponse](log, "AGRPortfolioUpdateResponse"),
		ProcessDPrognosisResponse:          typedLog[message.DPrognosisResponse](log, "D-PrognosisResponse"),
		ProcessFlexOfferResponse:           typedLog[message.FlexOfferResponse](log, "FlexOfferResponse"),
		ProcessFlexOfferRevocationResponse: typedLog[message.FlexOfferRevocationResponse](log, "FlexOfferRevocationResponse"),
		ProcessFlexOrder:                   typedLog[message.FlexOrder](log, "FlexOrder"),
		ProcessFlexRequest:                 typedLog[message.FlexRequest](log, "FlexRequest"),
		ProcessFlexReservationUpdate:       typedLog[message.FlexReservationUpdate](log, "FlexReservationUpdate"),
		ProcessFlexSettlement:              typedLog[message.FlexSettlement](log, "FlexSettlement"),
		ProcessMeteringResponse:            typedLog[message.MeteringResponse](log, "MeteringResponse"),
	}
}

func loggingDsoHandlers(log logger.Logger) participant.DsoHandlers {
	return participant.DsoHandlers{
		ProcessDPrognosis:                    typedLog[message.DPrognosis](log, "D-Prognosis"),
		ProcessDsoPortfolioQueryResponse:     typedLog[message.DsoPortfolioQueryResponse](log, "DSOPortfolioQueryResponse"),
		ProcessDsoPortfolioUpdateResponse:    typedLog[message.DsoPortfolioUpdateResponse](log, "DSOPortfolioUpdateResponse"),
		ProcessFlexOffer:                     typedLog[message.FlexOffer](log, "FlexOffer"),
		ProcessFlexOfferRevocation:           typedLog[message.FlexOfferRevocation](log, "FlexOfferRevocation"),
		ProcessFlexOrderResponse:             typedLog[message.FlexOrderResponse](log, "FlexOrderResponse"),
		ProcessFlexRequestResponse:           typedLog[message.FlexRequestResponse](log, "FlexRequestResponse"),
		ProcessFlexReservationUpdateResponse: typedLog[message.FlexReservationUpdateResponse](log, "FlexReservationUpdateResponse"),
		ProcessFlexSettlementResponse:        typedLog[message.FlexSettlementResponse](log, "FlexSettlementResponse"),
		ProcessMetering:                      typedLog[message.Metering](log, "Metering"),
	}
}

func loggingCroHandlers(log logger.Logger) participant.CroHandlers {
	return participant.CroHandlers{
		ProcessDsoPortfolioQuery:  typedLog[message.DsoPortfolioQuery](log, "DSOPortfolioQuery"),
		ProcessDsoPortfolioUpdate: typedLog[message.DsoPortfolioUpdate](log, "DSOPortfolioUpdate"),
		ProcessAgrPortfolioQuery:  typedLog[message.AgrPortfolioQuery](log, "AGRPortfolioQuery"),
		ProcessAgrPortfolioUpdate: typedLog[message.AgrPortfolioUpdate](log, "AGRPortfolioUpdate"),
	}
}

// typedLog adapts logOnly to the concrete *T signature each Handlers
// struct field expects.
func typedLog[T any](log logger.Logger, kind string) func(context.Context, *T) error {
	fn := logOnly(log, kind)
	return func(ctx context.Context, msg *T) error { return fn(ctx, msg) }
}
