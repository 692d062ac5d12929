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

// UserManager is the minimal interface behind the /users endpoints.
type UserManager interface {
	CreateUser(ctx context.Context, in app.CreateUserInput) (domain.User, error)
	UpdateUser(ctx context.Context, in app.UpdateUserInput) (domain.User, error)
	GetUser(ctx context.Context, userID string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// HandleUsers serves the /users collection.
func HandleUsers(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			users, err := svc.ListUsers(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]userResponse, 0, len(users))
			for _, u := range users {
				resp = append(resp, toUserResponse(u))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			var req createUserRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if strings.TrimSpace(req.Name) == "" {
				writeError(w, http.StatusBadRequest, codeUserNameRequired, "name is required")
				return
			}
			if !validEmail(req.Email) {
				writeError(w, http.StatusBadRequest, codeInvalidEmail, "a well-formed email is required")
				return
			}

			user, err := svc.CreateUser(r.Context(), app.CreateUserInput{
				Name:  req.Name,
				Email: req.Email,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toUserResponse(user))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleUserByID serves /users/{id}: GET, PATCH (partial) and DELETE.
func HandleUserByID(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parseUserPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			user, err := svc.GetUser(r.Context(), userID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toUserResponse(user))
		case http.MethodPatch:
			var req updateUserRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
				writeError(w, http.StatusBadRequest, codeUserNameRequired, "name must not be blank")
				return
			}
			if req.Email != nil && !validEmail(*req.Email) {
				writeError(w, http.StatusBadRequest, codeInvalidEmail, "a well-formed email is required")
				return
			}

			user, err := svc.UpdateUser(r.Context(), app.UpdateUserInput{
				UserID: userID,
				Name:   req.Name,
				Email:  req.Email,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toUserResponse(user))
		case http.MethodDelete:
			if err := svc.DeleteUser(r.Context(), userID); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func parseUserPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "users" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
