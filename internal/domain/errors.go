package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrEmailExists       = errors.New("email already in use")
	ErrItemUnavailable   = errors.New("item is not available for booking")
	ErrBookingDecided    = errors.New("booking already decided")
	ErrUnknownCategory   = errors.New("Unknown state") // capitalization is part of the wire contract
	ErrCommentNotAllowed = errors.New("item was never booked by this user")
	ErrInvalidPaging     = errors.New("invalid paging parameters")
	ErrInvalidID         = errors.New("invalid id")
)
