package query

import (
	"fmt"

	"github.com/tastebook/tastebook/internal/catalog/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
)

// ListTagsQuery represents the query to list all tags
type ListTagsQuery struct{}

// ListTagsHandler handles the list tags query
type ListTagsHandler struct {
	repo domain.TagRepository
}

// NewListTagsHandler creates a new list tags handler
func NewListTagsHandler(repo domain.TagRepository) *ListTagsHandler {
	return &ListTagsHandler{repo: repo}
}

// Handle executes the list tags query
func (h *ListTagsHandler) Handle(ListTagsQuery) ([]domain.Tag, error) {
	tags, err := h.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// GetTagQuery represents the query to get one tag
type GetTagQuery struct {
	ID uint
}

// GetTagHandler handles the get tag query
type GetTagHandler struct {
	repo domain.TagRepository
}

// NewGetTagHandler creates a new get tag handler
func NewGetTagHandler(repo domain.TagRepository) *GetTagHandler {
	return &GetTagHandler{repo: repo}
}

// Handle executes the get tag query
func (h *GetTagHandler) Handle(q GetTagQuery) (*domain.Tag, error) {
	if q.ID == 0 {
		return nil, apperrors.NotFoundf("tag %d", q.ID)
	}
	return h.repo.FindByID(q.ID)
}
