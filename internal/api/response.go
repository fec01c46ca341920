package api

import (
	"net/http"

	"moneymap/pkg/ledger"
)

// writeLedgerError translates a ledger error into an HTTP response. Permission
// failures stay distinct from not-found: the resource exists, the caller may
// not touch it.
func writeLedgerError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if lerr, ok := err.(*ledger.Error); ok {
		status = mapErrorCodeToHTTPStatus(lerr.Code)
	}
	writeError(w, status, err.Error())
}

// mapErrorCodeToHTTPStatus maps business error codes to HTTP status codes.
func mapErrorCodeToHTTPStatus(code ledger.ErrorCode) int {
	switch code {
	case ledger.ErrCodeNotFound:
		return http.StatusNotFound
	case ledger.ErrCodePermissionDenied:
		return http.StatusForbidden
	case ledger.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ledger.ErrCodeInvariant:
		return http.StatusUnprocessableEntity
	case ledger.ErrCodeDatabase:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
