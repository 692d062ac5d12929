package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhis0101/ShareIT/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeMissingUserHeader  = "missing_user_header"
	codeInvalidTimestamp   = "invalid_timestamp"
	codeInvalidInterval    = "invalid_interval"
	codeInvalidPaging      = "invalid_paging"
	codeUnknownState       = "unknown_state"
	codeUserNameRequired   = "user_name_required"
	codeInvalidEmail       = "invalid_email"
	codeEmailExists        = "email_exists"
	codeItemNameRequired   = "item_name_required"
	codeTextRequired       = "text_required"
	codeItemUnavailable    = "item_unavailable"
	codeBookingDecided     = "booking_already_decided"
	codeCommentNotAllowed  = "comment_not_allowed"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps service errors onto the wire. Authorization
// failures arrive here already folded into the not-found sentinels, so
// the split is only not-found vs invalid-request vs conflict.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrItemUnavailable):
		writeError(w, http.StatusBadRequest, codeItemUnavailable, err.Error())
	case errors.Is(err, domain.ErrBookingDecided):
		writeError(w, http.StatusBadRequest, codeBookingDecided, err.Error())
	case errors.Is(err, domain.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, codeUnknownState, err.Error())
	case errors.Is(err, domain.ErrCommentNotAllowed):
		writeError(w, http.StatusBadRequest, codeCommentNotAllowed, err.Error())
	case errors.Is(err, domain.ErrInvalidPaging):
		writeError(w, http.StatusBadRequest, codeInvalidPaging, err.Error())
	case errors.Is(err, domain.ErrEmailExists):
		writeError(w, http.StatusConflict, codeEmailExists, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
