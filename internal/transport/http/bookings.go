package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/abhis0101/ShareIT/internal/app"
	"github.com/abhis0101/ShareIT/internal/domain"
)

// BookingLifecycle is the minimal interface for the booking write path.
type BookingLifecycle interface {
	CreateBooking(ctx context.Context, in app.CreateBookingInput) (domain.Booking, error)
	DecideBooking(ctx context.Context, in app.DecideBookingInput) (domain.Booking, error)
	GetBooking(ctx context.Context, bookingID, viewerID string) (domain.Booking, error)
}

// BookingLister is the minimal interface for the category listings.
type BookingLister interface {
	ListForBooker(ctx context.Context, in app.ListBookingsInput) ([]domain.Booking, error)
	ListForOwner(ctx context.Context, in app.ListBookingsInput) ([]domain.Booking, error)
}

// HandleBookings serves the /bookings collection: POST creates a booking
// for the requester, GET lists the requester's bookings by category.
func HandleBookings(lifecycle BookingLifecycle, lister BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			handleCreateBooking(lifecycle, w, r)
		case http.MethodGet:
			handleListBookings(lister.ListForBooker, w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleBookingByID serves /bookings/{id} (GET for either party, PATCH
// for the owner's decision) and /bookings/owner (the owner-side
// listing).
func HandleBookingByID(lifecycle BookingLifecycle, lister BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest, ok := parseBookingPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if rest == "owner" {
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			handleListBookings(lister.ListForOwner, w, r)
			return
		}

		switch r.Method {
		case http.MethodGet:
			handleGetBooking(lifecycle, rest, w, r)
		case http.MethodPatch:
			handleDecideBooking(lifecycle, rest, w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func handleCreateBooking(lifecycle BookingLifecycle, w http.ResponseWriter, r *http.Request) {
	userID, ok := requireRequester(w, r)
	if !ok {
		return
	}

	var req createBookingRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "item_id is required")
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidTimestamp, "invalid start_at format")
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidTimestamp, "invalid end_at format")
		return
	}
	if !start.Before(end) {
		writeError(w, http.StatusBadRequest, codeInvalidInterval, "start_at must precede end_at")
		return
	}

	booking, err := lifecycle.CreateBooking(r.Context(), app.CreateBookingInput{
		BookerID: userID,
		ItemID:   req.ItemID,
		Start:    start,
		End:      end,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toBookingResponse(booking))
}

func handleDecideBooking(lifecycle BookingLifecycle, bookingID string, w http.ResponseWriter, r *http.Request) {
	userID, ok := requireRequester(w, r)
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "approved query parameter must be true or false")
		return
	}

	booking, err := lifecycle.DecideBooking(r.Context(), app.DecideBookingInput{
		BookingID:    bookingID,
		ActingUserID: userID,
		Approved:     approved,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toBookingResponse(booking))
}

func handleGetBooking(lifecycle BookingLifecycle, bookingID string, w http.ResponseWriter, r *http.Request) {
	userID, ok := requireRequester(w, r)
	if !ok {
		return
	}

	booking, err := lifecycle.GetBooking(r.Context(), bookingID, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toBookingResponse(booking))
}

func handleListBookings(list func(ctx context.Context, in app.ListBookingsInput) ([]domain.Booking, error), w http.ResponseWriter, r *http.Request) {
	userID, ok := requireRequester(w, r)
	if !ok {
		return
	}

	category, from, size, err := parseListParams(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	bookings, err := list(r.Context(), app.ListBookingsInput{
		UserID:   userID,
		Category: category,
		From:     from,
		Size:     size,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingResponse(b))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// parseListParams reads state/from/size with the defaults ALL/0/10.
// Offsets that are not a multiple of size are served from the start of
// the enclosing page; callers wanting contiguous slices must keep from
// aligned to size.
func parseListParams(r *http.Request) (domain.Category, int, int, error) {
	q := r.URL.Query()

	state := q.Get("state")
	if state == "" {
		state = "ALL"
	}
	category, err := domain.ParseCategory(state)
	if err != nil {
		return 0, 0, 0, err
	}

	from := 0
	if raw := q.Get("from"); raw != "" {
		from, err = strconv.Atoi(raw)
		if err != nil || from < 0 {
			return 0, 0, 0, domain.ErrInvalidPaging
		}
	}

	size := 10
	if raw := q.Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 1 {
			return 0, 0, 0, domain.ErrInvalidPaging
		}
	}

	return category, from, size, nil
}

func parseBookingPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "bookings" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type createBookingRequest struct {
	ItemID string `json:"item_id"`
	Start  string `json:"start_at"`
	End    string `json:"end_at"`
}

type bookingResponse struct {
	ID       string    `json:"id"`
	ItemID   string    `json:"item_id"`
	ItemName string    `json:"item_name"`
	BookerID string    `json:"booker_id"`
	Start    time.Time `json:"start_at"`
	End      time.Time `json:"end_at"`
	Status   string    `json:"status"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:       b.ID,
		ItemID:   b.ItemID,
		ItemName: b.ItemName,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
		Status:   string(b.Status),
	}
}
