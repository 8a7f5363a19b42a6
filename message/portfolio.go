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

// -- AGR portfolio query --------------------------------------------------

// AgrPortfolioQuery is sent by an AGR to ask a CRO for the portfolio
// information it holds for a given Period.
type AgrPortfolioQuery struct {
	PayloadMessage
	TimeZone string `xml:"TimeZone,attr" json:"time_zone"`
	Period   string `xml:"Period,attr" json:"period"`
}

func (m AgrPortfolioQuery) Validate() error {
	if err := m.PayloadMessage.ValidateFrame(); err != nil {
		return err
	}
	tz := m.TimeZone
	if tz == "" {
		tz = DefaultTimeZone
	}
	return ValidateRegex("time_zone", tz, timeZonePattern)
}

// AgrPortfolioQueryResponseConnection names one Connection entity under a
// congestion point as seen from the AGR's view.
type AgrPortfolioQueryResponseConnection struct {
	EntityAddress string `xml:"EntityAddress,attr" json:"entity_address"`
}

// AgrPortfolioQueryResponseCongestionPoint describes one congestion point
// and the redispatch rules that apply to it.
type AgrPortfolioQueryResponseCongestionPoint struct {
	Connections           []AgrPortfolioQueryResponseConnection `xml:"Connection" json:"connections"`
	EntityAddress          string                                `xml:"EntityAddress,attr" json:"entity_address"`
	MutexOffersSupported   bool                                  `xml:"MutexOffersSupported,attr" json:"mutex_offers_supported"`
	DayAheadRedispatchBy   RedispatchBy                          `xml:"DayAheadRedispatchBy,attr" json:"day_ahead_redispatch_by"`
	IntradayRedispatchBy   RedispatchBy                          `xml:"IntradayRedispatchBy,attr,omitempty" json:"intraday_redispatch_by,omitempty"`
}

func (c AgrPortfolioQueryResponseCongestionPoint) Validate() error {
	return ValidateList("connections", c.Connections, 1)
}

// AgrPortfolioQueryResponseDSOPortfolio groups the congestion points owned
// by a single DSO.
type AgrPortfolioQueryResponseDSOPortfolio struct {
	CongestionPoints []AgrPortfolioQueryResponseCongestionPoint `xml:"CongestionPoint" json:"congestion_points"`
	DSODomain        string                                      `xml:"DSO-Domain,attr" json:"dso_domain"`
}

func (p AgrPortfolioQueryResponseDSOPortfolio) Validate() error {
	return ValidateList("congestion_points", p.CongestionPoints, 1)
}

// AgrPortfolioQueryResponseDSOView groups the portfolios of every DSO
// the AGR deals with, plus any connections not tied to a congestion point.
type AgrPortfolioQueryResponseDSOView struct {
	DSOPortfolios []AgrPortfolioQueryResponseDSOPortfolio `xml:"DSO-Portfolio" json:"dso_portfolios"`
	Connections    []AgrPortfolioQueryResponseConnection    `xml:"Connection" json:"connections,omitempty"`
}

func (v AgrPortfolioQueryResponseDSOView) Validate() error {
	return ValidateList("dso_portfolios", v.DSOPortfolios, 1)
}

// AgrPortfolioQueryResponse answers an AgrPortfolioQuery with the full
// portfolio the CRO holds for the AGR.
type AgrPortfolioQueryResponse struct {
	PayloadMessageResponse
	AgrPortfolioQueryMessageID string                            `xml:"AGRPortfolioQueryMessageID,attr" json:"agr_portfolio_query_message_id"`
	DSOViews                    []AgrPortfolioQueryResponseDSOView `xml:"DSO-View" json:"dso_views"`
	TimeZone                    string                              `xml:"TimeZone,attr" json:"time_zone"`
	Period                      string                              `xml:"Period,attr" json:"period"`
}

func (m AgrPortfolioQueryResponse) Validate() error {
	if err := m.PayloadMessageResponse.ValidateFrame(); err != nil {
		return err
	}
	if err := ValidateList("dso_views", m.DSOViews, 1); err != nil {
		return err
	}
	for _, v := range m.DSOViews {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// -- AGR portfolio update --------------------------------------------------

// AgrPortfolioUpdateConnection tells a CRO that an AGR represents the
// prosumer at this Connection for the given period range.
type AgrPortfolioUpdateConnection struct {
	EntityAddress string `xml:"EntityAddress,attr" json:"entity_address"`
	StartPeriod   string `xml:"StartPeriod,attr" json:"start_period"`
	EndPeriod     string `xml:"EndPeriod,attr,omitempty" json:"end_period,omitempty"`
}

// AgrPortfolioUpdate notifies a CRO of changes to the set of Connections
// an AGR represents.
type AgrPortfolioUpdate struct {
	PayloadMessage
	Connections []AgrPortfolioUpdateConnection `xml:"Connection" json:"connections"`
	TimeZone    string                         `xml:"TimeZone,attr" json:"time_zone"`
}

func (m AgrPortfolioUpdate) Validate() error {
	if err := m.PayloadMessage.ValidateFrame(); err != nil {
		return err
	}
	return ValidateList("connections", m.Connections, 1)
}

// AgrPortfolioUpdateResponse acknowledges or rejects an AgrPortfolioUpdate.
type AgrPortfolioUpdateResponse struct {
	PayloadMessageResponse
	AgrPortfolioUpdateMessageID string `xml:"AGRPortfolioUpdateMessageID,attr" json:"agr_portfolio_update_message_id"`
}

func (m AgrPortfolioUpdateResponse) Validate() error { return m.PayloadMessageResponse.ValidateFrame() }

// -- DSO portfolio query --------------------------------------------------

// DsoPortfolioQueryConnection names a Connection within a congestion point
// as seen from the DSO's view, with the representing AGR if any.
type DsoPortfolioQueryConnection struct {
	EntityAddress string `xml:"EntityAddress,attr" json:"entity_address"`
	AGRDomain     string `xml:"AGR-Domain,attr,omitempty" json:"agr_domain,omitempty"`
}

// DsoPortfolioQueryCongestionPoint groups the connections that belong to
// one congestion point.
type DsoPortfolioQueryCongestionPoint struct {
	Connections   []DsoPortfolioQueryConnection `xml:"Connection" json:"connections"`
	EntityAddress string                        `xml:"EntityAddress,attr" json:"entity_address"`
}

func (c DsoPortfolioQueryCongestionPoint) Validate() error {
	return ValidateList("connections", c.Connections, 1)
}

// DsoPortfolioQuery is sent by a DSO to ask a CRO for the connections
// registered under a congestion point for a given Period.
type DsoPortfolioQuery struct {
	PayloadMessage
	TimeZone      string `xml:"TimeZone,attr" json:"time_zone"`
	Period        string `xml:"Period,attr" json:"period"`
	EntityAddress string `xml:"EntityAddress,attr" json:"entity_address"`
}

func (m DsoPortfolioQuery) Validate() error {
	if err := m.PayloadMessage.ValidateFrame(); err != nil {
		return err
	}
	return ValidateRegex("entity_address", m.EntityAddress, entityAddressPattern)
}

// DsoPortfolioQueryResponse answers a DsoPortfolioQuery.
type DsoPortfolioQueryResponse struct {
	PayloadMessageResponse
	DsoPortfolioQueryMessageID string                             `xml:"DSOPortfolioQueryMessageID,attr" json:"dso_portfolio_query_message_id"`
	CongestionPoint             *DsoPortfolioQueryCongestionPoint `xml:"CongestionPoint,omitempty" json:"congestion_point,omitempty"`
	TimeZone                    string                             `xml:"TimeZone,attr" json:"time_zone"`
	Period                      string                             `xml:"Period,attr" json:"period"`
}

func (m DsoPortfolioQueryResponse) Validate() error {
	if err := m.PayloadMessageResponse.ValidateFrame(); err != nil {
		return err
	}
	if m.CongestionPoint != nil {
		return m.CongestionPoint.Validate()
	}
	return nil
}

// -- DSO portfolio update --------------------------------------------------

// DsoPortfolioUpdateConnection tells a CRO a Connection's membership of a
// congestion point for the given period range.
type DsoPortfolioUpdateConnection struct {
	EntityAddress string `xml:"EntityAddress,attr" json:"entity_address"`
	StartPeriod   string `xml:"StartPeriod,attr" json:"start_period"`
	EndPeriod     string `xml:"EndPeriod,attr,omitempty" json:"end_period,omitempty"`
}

// DsoPortfolioUpdateCongestionPoint describes a congestion point and its
// member connections, as asserted by the owning DSO.
type DsoPortfolioUpdateCongestionPoint struct {
	Connections          []DsoPortfolioUpdateConnection `xml:"Connection" json:"connections"`
	EntityAddress        string                          `xml:"EntityAddress,attr" json:"entity_address"`
	StartPeriod          string                          `xml:"StartPeriod,attr" json:"start_period"`
	EndPeriod            string                          `xml:"EndPeriod,attr,omitempty" json:"end_period,omitempty"`
	MutexOffersSupported bool                            `xml:"MutexOffersSupported,attr" json:"mutex_offers_supported"`
	DayAheadRedispatchBy RedispatchBy                    `xml:"DayAheadRedispatchBy,attr" json:"day_ahead_redispatch_by"`
	IntradayRedispatchBy RedispatchBy                    `xml:"IntradayRedispatchBy,attr,omitempty" json:"intraday_redispatch_by,omitempty"`
}

func (c DsoPortfolioUpdateCongestionPoint) Validate() error {
	return ValidateList("connections", c.Connections, 1)
}

// DsoPortfolioUpdate notifies a CRO of changes to a DSO's congestion
// points and their member connections.
type DsoPortfolioUpdate struct {
	PayloadMessage
	CongestionPoints []DsoPortfolioUpdateCongestionPoint `xml:"CongestionPoint" json:"congestion_points"`
	TimeZone         string                               `xml:"TimeZone,attr" json:"time_zone"`
}

func (m DsoPortfolioUpdate) Validate() error {
	if err := m.PayloadMessage.ValidateFrame(); err != nil {
		return err
	}
	if err := ValidateList("congestion_points", m.CongestionPoints, 1); err != nil {
		return err
	}
	for _, c := range m.CongestionPoints {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DsoPortfolioUpdateResponse acknowledges or rejects a DsoPortfolioUpdate.
type DsoPortfolioUpdateResponse struct {
	PayloadMessageResponse
	DsoPortfolioUpdateMessageID string `xml:"DSOPortfolioUpdateResponseMessageID,attr" json:"dso_portfolio_update_message_id"`
}

func (m DsoPortfolioUpdateResponse) Validate() error { return m.PayloadMessageResponse.ValidateFrame() }
