package httputils

import (
	"net/http"

	"quadvote.io/quadvote/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "text/event-stream" {
		return true
	}
	return false
}

var (
	ErrorsToStatus = map[uint]int{
		errors.StorageRecordAlreadyExists.Code: 409,
		errors.StorageRecordDoesNotExist.Code:  404,
		errors.StorageCoreError.Code:           500,
		errors.NoPermission.Code:               403,
		errors.VoterNotRegistered.Code:         403,
		errors.ProposalDoesNotExist.Code:       404,
		errors.ClaimDoesNotExist.Code:          404,
		errors.AccountDoesNotExist.Code:        404,
		errors.AlreadyStarted.Code:             400,
		errors.AlreadyEnded.Code:               400,
		errors.NotStartedYet.Code:              400,
		errors.NotEndedYet.Code:                400,
		errors.CannotStartInPast.Code:          400,
		errors.CannotFinishBeforeStart.Code:    400,
		errors.StartTooFarAway.Code:            400,
		errors.DurationTooShort.Code:           400,
		errors.DurationTooLong.Code:            400,
		errors.ProposalNotClosed.Code:          400,
		errors.IdenticalVote.Code:              400,
		errors.InsufficientBalance.Code:        400,
		errors.AmountOverflow.Code:             400,
		errors.AmountUnderflow.Code:            400,
		errors.OffchainDataTooLong.Code:        400,
		errors.AccountListTooLong.Code:         400,
		errors.BadRequestParameter.Code:        400,
	}
)

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, ok := ErrorsToStatus[e.Code]; ok {
			return status
		}
		return 400
	}
	return 500
}
