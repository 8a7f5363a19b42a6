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

// Package service hosts the inbound half of a Shapeshifter participant:
// the HTTP endpoint that accepts a SignedMessage, the asynchronous
// functional-rejection model, and the bounded worker pool that runs
// message handlers outside the request/response cycle. Grounded on
// original_source/.../service/base_service.py's ShapeshifterService.
package service

// FunctionalError is raised while a message passes the structural and
// business checks that happen after a SignedMessage has already been
// accepted and unsealed successfully. Unlike envelope.TransportError it
// never turns into an HTTP error status: the endpoint still answers with
// 200 and the rejection is delivered later as an asynchronous response
// carrying RejectionReason, grounded on exceptions.py's FunctionalException
// hierarchy.
type FunctionalError struct {
	reason string
}

func (e *FunctionalError) Error() string          { return e.reason }
func (e *FunctionalError) RejectionReason() string { return e.reason }

// ErrInvalidMessage is raised when an inbound message's kind is not one
// the receiving role accepts, mirroring InvalidMessageException's
// dynamically-formatted reason.
func ErrInvalidMessage(kind string) *FunctionalError {
	return &FunctionalError{reason: "Invalid Message: '" + kind + "'"}
}

// ErrInvalidSender is raised when the sender_domain carried by the
// SignedMessage envelope does not match the sender_domain of the inner
// PayloadMessage.
func ErrInvalidSender() *FunctionalError {
	return &FunctionalError{reason: "Invalid Sender"}
}

// ErrUnknownRecipient is raised when recipient_domain does not identify
// this participant.
func ErrUnknownRecipient() *FunctionalError {
	return &FunctionalError{reason: "Unknown Recipient"}
}

// ErrBarredSender is raised when the sender is known but not authorized
// to communicate with this participant.
func ErrBarredSender() *FunctionalError {
	return &FunctionalError{reason: "Barred Sender"}
}

// ErrDuplicateIdentifier is raised when message_id has already been seen
// from this sender.
func ErrDuplicateIdentifier() *FunctionalError {
	return &FunctionalError{reason: "Duplicate Identifier"}
}

// ErrAlreadySubmitted is raised when a message referencing the same
// contract or reservation has already been accepted.
func ErrAlreadySubmitted() *FunctionalError {
	return &FunctionalError{reason: "Already Submitted"}
}

// ErrISPDurationRejected is raised when isp_duration does not match the
// value agreed for this connection.
func ErrISPDurationRejected() *FunctionalError {
	return &FunctionalError{reason: "ISP Duration Rejected"}
}

// ErrTimeZoneRejected is raised when time_zone is not one this
// participant supports.
func ErrTimeZoneRejected() *FunctionalError {
	return &FunctionalError{reason: "TimeZone Rejected"}
}

// ErrInvalidCongestionPoint is raised when congestion_point does not
// identify a known connection.
func ErrInvalidCongestionPoint() *FunctionalError {
	return &FunctionalError{reason: "Invalid Congestion Point"}
}

// ErrUnknownReference is raised when a message references another
// message_id that this participant never issued or received.
func ErrUnknownReference() *FunctionalError {
	return &FunctionalError{reason: "Unknown Reference"}
}

// ErrReferencePeriodMismatch is raised when a referenced message's
// period does not match the period of this message.
func ErrReferencePeriodMismatch() *FunctionalError {
	return &FunctionalError{reason: "Reference Period Mismatch"}
}

// ErrReferenceMessageExpired is raised when a referenced message's
// expiration_date_time has already passed.
func ErrReferenceMessageExpired() *FunctionalError {
	return &FunctionalError{reason: "Reference Message Expired"}
}

// ErrReferenceMessageRevoked is raised when a referenced message has
// already been revoked.
func ErrReferenceMessageRevoked() *FunctionalError {
	return &FunctionalError{reason: "Reference Message Revoked"}
}

// ErrISPsOutOfBounds is raised when an ISP list references ISPs outside
// the period's valid range.
func ErrISPsOutOfBounds() *FunctionalError {
	return &FunctionalError{reason: "ISPs Out Of Bounds"}
}

// ErrISPConflict is raised when two ISP rows in the same message overlap.
func ErrISPConflict() *FunctionalError {
	return &FunctionalError{reason: "ISP Conflict"}
}

// ErrPeriodOutOfBounds is raised when period falls outside the window
// this participant is willing to accept messages for.
func ErrPeriodOutOfBounds() *FunctionalError {
	return &FunctionalError{reason: "Period Out Of Bounds"}
}

// ErrExpirationDateTimeOutOfBounds is raised when expiration_date_time
// falls outside the bounds allowed for the referenced period.
func ErrExpirationDateTimeOutOfBounds() *FunctionalError {
	return &FunctionalError{reason: "Expiration DateTime Out Of Bounds"}
}

// ErrUnauthorized is raised when the sender is authenticated but not
// authorized to perform the action the message requests.
func ErrUnauthorized() *FunctionalError {
	return &FunctionalError{reason: "Unauthorized"}
}

// ErrConnectionConflict is raised when connectionEntityAddress is already
// associated with a different congestion point than
// congestionPointEntityAddress, mirroring ConnectionConflictException's
// dynamically-formatted reason.
func ErrConnectionConflict(connectionEntityAddress, congestionPointEntityAddress string) *FunctionalError {
	return &FunctionalError{reason: "Connection conflict: " + connectionEntityAddress + " at " + congestionPointEntityAddress}
}

// ErrSubordinateSequenceNumber is raised when a message's sequence
// number is not greater than one already processed for the same
// conversation.
func ErrSubordinateSequenceNumber() *FunctionalError {
	return &FunctionalError{reason: "Subordinate Sequence Number"}
}
