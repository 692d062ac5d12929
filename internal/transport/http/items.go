package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/abhis0101/ShareIT/internal/app"
	"github.com/abhis0101/ShareIT/internal/domain"
)

// ItemManager is the minimal interface behind the /items endpoints.
type ItemManager interface {
	CreateItem(ctx context.Context, in app.CreateItemInput) (domain.Item, error)
	UpdateItem(ctx context.Context, in app.UpdateItemInput) (domain.Item, error)
	GetItem(ctx context.Context, itemID, viewerID string) (app.ItemDetails, error)
	ListItems(ctx context.Context, ownerID string) ([]app.ItemDetails, error)
	SearchItems(ctx context.Context, text string) ([]domain.Item, error)
	AddComment(ctx context.Context, in app.AddCommentInput) (domain.Comment, error)
}

// HandleItems serves the /items collection: POST lists a new item for
// the requester, GET returns the requester's own items.
func HandleItems(svc ItemManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireRequester(w, r)
		if !ok {
			return
		}

		switch r.Method {
		case http.MethodPost:
			var req createItemRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if strings.TrimSpace(req.Name) == "" {
				writeError(w, http.StatusBadRequest, codeItemNameRequired, "name is required")
				return
			}
			if req.Available == nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "available is required")
				return
			}

			item, err := svc.CreateItem(r.Context(), app.CreateItemInput{
				OwnerID:     userID,
				Name:        req.Name,
				Description: req.Description,
				Available:   *req.Available,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toItemResponse(item))
		case http.MethodGet:
			details, err := svc.ListItems(r.Context(), userID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]itemDetailsResponse, 0, len(details))
			for _, d := range details {
				resp = append(resp, toItemDetailsResponse(d))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleItemSubtree serves /items/search, /items/{id} and
// /items/{id}/comment.
func HandleItemSubtree(svc ItemManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || parts[0] != "items" || parts[1] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch {
		case len(parts) == 2 && parts[1] == "search":
			handleSearchItems(svc, w, r)
		case len(parts) == 2:
			handleItemByID(svc, parts[1], w, r)
		case len(parts) == 3 && parts[2] == "comment":
			handleAddComment(svc, parts[1], w, r)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func handleSearchItems(svc ItemManager, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	items, err := svc.SearchItems(r.Context(), r.URL.Query().Get("text"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := make([]itemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toItemResponse(item))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func handleItemByID(svc ItemManager, itemID string, w http.ResponseWriter, r *http.Request) {
	userID, ok := requireRequester(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		details, err := svc.GetItem(r.Context(), itemID, userID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toItemDetailsResponse(details))
	case http.MethodPatch:
		var req updateItemRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
			writeError(w, http.StatusBadRequest, codeItemNameRequired, "name must not be blank")
			return
		}

		item, err := svc.UpdateItem(r.Context(), app.UpdateItemInput{
			ItemID:      itemID,
			ActorID:     userID,
			Name:        req.Name,
			Description: req.Description,
			Available:   req.Available,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toItemResponse(item))
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

func handleAddComment(svc ItemManager, itemID string, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	userID, ok := requireRequester(w, r)
	if !ok {
		return
	}

	var req addCommentRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, codeTextRequired, "text is required")
		return
	}

	comment, err := svc.AddComment(r.Context(), app.AddCommentInput{
		ItemID:   itemID,
		AuthorID: userID,
		Text:     req.Text,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toCommentResponse(comment))
}

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type addCommentRequest struct {
	Text string `json:"text"`
}

type itemResponse struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

type bookingRefResponse struct {
	ID       string `json:"id"`
	BookerID string `json:"booker_id"`
}

type commentResponse struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type itemDetailsResponse struct {
	itemResponse
	LastBooking *bookingRefResponse `json:"last_booking"`
	NextBooking *bookingRefResponse `json:"next_booking"`
	Comments    []commentResponse   `json:"comments"`
}

func toItemResponse(i domain.Item) itemResponse {
	return itemResponse{
		ID:          i.ID,
		OwnerID:     i.OwnerID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
	}
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{
		ID:         c.ID,
		AuthorName: c.AuthorName,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}

func toItemDetailsResponse(d app.ItemDetails) itemDetailsResponse {
	resp := itemDetailsResponse{
		itemResponse: toItemResponse(d.Item),
		Comments:     make([]commentResponse, 0, len(d.Comments)),
	}
	if d.LastBooking != nil {
		resp.LastBooking = &bookingRefResponse{ID: d.LastBooking.ID, BookerID: d.LastBooking.BookerID}
	}
	if d.NextBooking != nil {
		resp.NextBooking = &bookingRefResponse{ID: d.NextBooking.ID, BookerID: d.NextBooking.BookerID}
	}
	for _, c := range d.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(c))
	}
	return resp
}
