package query

import (
	"fmt"

	membershipdomain "github.com/tastebook/tastebook/internal/membership/domain"
	recipedomain "github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/internal/recipe/view"
	"github.com/tastebook/tastebook/internal/user/domain"
)

// ListSubscriptionsQuery lists the authors the user follows, each with a
// capped preview of their recipes. RecipesLimit 0 means no cap.
type ListSubscriptionsQuery struct {
	UserID       uint
	RecipesLimit int
}

// ListSubscriptionsHandler composes subscriptions from the membership set,
// the followed profiles and each author's latest recipes.
type ListSubscriptionsHandler struct {
	memberships membershipdomain.Repository
	users       domain.UserRepository
	recipes     recipedomain.RecipeRepository
	assembler   *view.Assembler
}

// NewListSubscriptionsHandler creates a new list subscriptions handler
func NewListSubscriptionsHandler(
	memberships membershipdomain.Repository,
	users domain.UserRepository,
	recipes recipedomain.RecipeRepository,
	assembler *view.Assembler,
) *ListSubscriptionsHandler {
	return &ListSubscriptionsHandler{
		memberships: memberships,
		users:       users,
		recipes:     recipes,
		assembler:   assembler,
	}
}

// Handle executes the list subscriptions query
func (h *ListSubscriptionsHandler) Handle(q ListSubscriptionsQuery) ([]view.SubscriptionView, error) {
	authorIDs, err := h.memberships.TargetIDs(q.UserID, membershipdomain.KindSubscription)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	if len(authorIDs) == 0 {
		return []view.SubscriptionView{}, nil
	}

	authors, err := h.users.FindByIDs(authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load followed authors: %w", err)
	}

	// preserve the membership insertion order
	byID := make(map[uint]*domain.User, len(authors))
	for i := range authors {
		byID[authors[i].ID] = &authors[i]
	}

	views := make([]view.SubscriptionView, 0, len(authorIDs))
	for _, id := range authorIDs {
		author, ok := byID[id]
		if !ok {
			continue
		}

		profile, err := h.assembler.Author(author, q.UserID)
		if err != nil {
			return nil, err
		}

		recipes, err := h.recipes.FindByAuthor(author.ID, q.RecipesLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to load recipes for author %d: %w", author.ID, err)
		}
		count, err := h.recipes.CountByAuthor(author.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count recipes for author %d: %w", author.ID, err)
		}

		views = append(views, view.SubscriptionView{
			AuthorView:   profile,
			Recipes:      view.Shorts(recipes),
			RecipesCount: count,
		})
	}
	return views, nil
}
