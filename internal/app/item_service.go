package app

import (
	"context"
	"strings"
	"time"

	"github.com/abhis0101/ShareIT/internal/clock"
	"github.com/abhis0101/ShareIT/internal/domain"
)

type ItemRepository interface {
	CreateItem(ctx context.Context, item domain.Item) error
	UpdateItem(ctx context.Context, item domain.Item) error
	GetItem(ctx context.Context, itemID string) (domain.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID string) ([]domain.Item, error)
	SearchItems(ctx context.Context, text string) ([]domain.Item, error)
}

// ItemBookingIndex is the read-only view of the booking store the item
// service needs for owner enrichment and comment eligibility.
type ItemBookingIndex interface {
	LastApprovedBooking(ctx context.Context, itemID string, now time.Time) (*domain.BookingRef, error)
	NextApprovedBooking(ctx context.Context, itemID string, now time.Time) (*domain.BookingRef, error)
	HasFinishedApprovedBooking(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment domain.Comment) error
	ListCommentsByItem(ctx context.Context, itemID string) ([]domain.Comment, error)
}

// ItemDetails is an item with its comments and, for the owner, the
// adjacent approved bookings.
type ItemDetails struct {
	Item        domain.Item
	LastBooking *domain.BookingRef
	NextBooking *domain.BookingRef
	Comments    []domain.Comment
}

// ItemService manages the item catalog and comment attachment.
type ItemService struct {
	repo     ItemRepository
	bookings ItemBookingIndex
	comments CommentRepository
	users    UserDirectory
	clock    clock.Clock
}

func NewItemService(repo ItemRepository, bookings ItemBookingIndex, comments CommentRepository, users UserDirectory, clk clock.Clock) *ItemService {
	return &ItemService{
		repo:     repo,
		bookings: bookings,
		comments: comments,
		users:    users,
		clock:    clk,
	}
}

type CreateItemInput struct {
	OwnerID     string
	Name        string
	Description string
	Available   bool
}

func (s *ItemService) CreateItem(ctx context.Context, in CreateItemInput) (domain.Item, error) {
	if _, err := s.users.GetUser(ctx, in.OwnerID); err != nil {
		return domain.Item{}, err
	}
	item := domain.Item{
		ID:          newUUID(),
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

type UpdateItemInput struct {
	ItemID      string
	ActorID     string
	Name        *string
	Description *string
	Available   *bool
}

// UpdateItem applies a partial update. A non-owner gets ErrItemNotFound,
// the same answer as for an item that does not exist.
func (s *ItemService) UpdateItem(ctx context.Context, in UpdateItemInput) (domain.Item, error) {
	item, err := s.repo.GetItem(ctx, in.ItemID)
	if err != nil {
		return domain.Item{}, err
	}
	if item.OwnerID != in.ActorID {
		return domain.Item{}, domain.ErrItemNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

// GetItem returns the item with its comments. When the viewer owns the
// item the result also carries the last finished and next upcoming
// approved bookings.
func (s *ItemService) GetItem(ctx context.Context, itemID, viewerID string) (ItemDetails, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return ItemDetails{}, err
	}
	return s.describe(ctx, item, viewerID)
}

// ListItems returns every item owned by the user, each with the owner
// enrichment.
func (s *ItemService) ListItems(ctx context.Context, ownerID string) ([]ItemDetails, error) {
	items, err := s.repo.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]ItemDetails, 0, len(items))
	for _, item := range items {
		details, err := s.describe(ctx, item, ownerID)
		if err != nil {
			return nil, err
		}
		out = append(out, details)
	}
	return out, nil
}

// SearchItems matches text against name and description of available
// items. A blank query yields an empty list, not an error.
func (s *ItemService) SearchItems(ctx context.Context, text string) ([]domain.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.Item{}, nil
	}
	return s.repo.SearchItems(ctx, text)
}

type AddCommentInput struct {
	ItemID   string
	AuthorID string
	Text     string
}

// AddComment attaches a comment to an item. Only users with an approved
// booking of the item that already ended may comment.
func (s *ItemService) AddComment(ctx context.Context, in AddCommentInput) (domain.Comment, error) {
	if _, err := s.repo.GetItem(ctx, in.ItemID); err != nil {
		return domain.Comment{}, err
	}
	author, err := s.users.GetUser(ctx, in.AuthorID)
	if err != nil {
		return domain.Comment{}, err
	}

	ok, err := s.bookings.HasFinishedApprovedBooking(ctx, in.ItemID, in.AuthorID, s.clock.Now())
	if err != nil {
		return domain.Comment{}, err
	}
	if !ok {
		return domain.Comment{}, domain.ErrCommentNotAllowed
	}

	comment := domain.Comment{
		ID:         newUUID(),
		ItemID:     in.ItemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Text:       in.Text,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func (s *ItemService) describe(ctx context.Context, item domain.Item, viewerID string) (ItemDetails, error) {
	details := ItemDetails{Item: item}

	if item.OwnerID == viewerID {
		now := s.clock.Now()
		last, err := s.bookings.LastApprovedBooking(ctx, item.ID, now)
		if err != nil {
			return ItemDetails{}, err
		}
		next, err := s.bookings.NextApprovedBooking(ctx, item.ID, now)
		if err != nil {
			return ItemDetails{}, err
		}
		details.LastBooking = last
		details.NextBooking = next
	}

	comments, err := s.comments.ListCommentsByItem(ctx, item.ID)
	if err != nil {
		return ItemDetails{}, err
	}
	details.Comments = comments
	return details, nil
}
