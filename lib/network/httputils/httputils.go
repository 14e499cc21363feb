package httputils

import (
	"net/http"

	"boscoin.io/announcer/lib/errors"
)

// ErrorsToStatus maps error codes to the response status. Unlisted codes
// are internal errors.
var ErrorsToStatus = map[uint]int{
	errors.Unauthorized.Code:  http.StatusForbidden,
	errors.NotFound.Code:      http.StatusNotFound,
	errors.AlreadyExists.Code: http.StatusConflict,
	errors.InUse.Code:         http.StatusConflict,
	errors.InvalidInput.Code:  http.StatusBadRequest,

	errors.ContractNotInstantiated.Code: http.StatusServiceUnavailable,

	errors.BadPublicAddress.Code:         http.StatusBadRequest,
	errors.InvalidSignature.Code:         http.StatusBadRequest,
	errors.HashDoesNotMatch.Code:         http.StatusBadRequest,
	errors.UnknownOperationType.Code:     http.StatusBadRequest,
	errors.InvalidOperation.Code:         http.StatusBadRequest,
	errors.TransactionAlreadyExists.Code: http.StatusConflict,
	errors.InvalidMessage.Code:           http.StatusBadRequest,
	errors.TransactionNotFound.Code:      http.StatusNotFound,

	errors.BadRequestParameter.Code: http.StatusBadRequest,
	errors.TooManyRequests.Code:     http.StatusTooManyRequests,
}

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
	}
	return http.StatusInternalServerError
}
