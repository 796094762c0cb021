package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tastebook/tastebook/internal/catalog/domain"
	"github.com/tastebook/tastebook/internal/catalog/usecase/query"
	"github.com/tastebook/tastebook/pkg/logger"
)

// CatalogHandler serves the read-only ingredient and tag reference data
type CatalogHandler struct {
	listIngredients *query.ListIngredientsHandler
	getIngredient   *query.GetIngredientHandler
	listTags        *query.ListTagsHandler
	getTag          *query.GetTagHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(ingredients domain.IngredientRepository, tags domain.TagRepository) *CatalogHandler {
	return &CatalogHandler{
		listIngredients: query.NewListIngredientsHandler(ingredients),
		getIngredient:   query.NewGetIngredientHandler(ingredients),
		listTags:        query.NewListTagsHandler(tags),
		getTag:          query.NewGetTagHandler(tags),
	}
}

// RegisterRoutes registers catalog routes on the router
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/ingredients", h.ListIngredients).Methods("GET")
	router.HandleFunc("/api/ingredients/{id}", h.GetIngredient).Methods("GET")
	router.HandleFunc("/api/tags", h.ListTags).Methods("GET")
	router.HandleFunc("/api/tags/{id}", h.GetTag).Methods("GET")
}

// ListIngredients handles GET /api/ingredients?name=<prefix>
func (h *CatalogHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	q := query.ListIngredientsQuery{Name: r.URL.Query().Get("name")}

	ingredients, err := h.listIngredients.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list ingredients")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"errors": "failed to list ingredients"})
		return
	}

	respondJSON(w, http.StatusOK, ingredients)
}

// GetIngredient handles GET /api/ingredients/{id}
func (h *CatalogHandler) GetIngredient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"errors": "invalid ingredient id"})
		return
	}

	ingredient, err := h.getIngredient.Handle(query.GetIngredientQuery{ID: uint(id)})
	if err != nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"errors": "ingredient not found"})
		return
	}

	respondJSON(w, http.StatusOK, ingredient)
}

// ListTags handles GET /api/tags
func (h *CatalogHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.listTags.Handle(query.ListTagsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list tags")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"errors": "failed to list tags"})
		return
	}

	respondJSON(w, http.StatusOK, tags)
}

// GetTag handles GET /api/tags/{id}
func (h *CatalogHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"errors": "invalid tag id"})
		return
	}

	tag, err := h.getTag.Handle(query.GetTagQuery{ID: uint(id)})
	if err != nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"errors": "tag not found"})
		return
	}

	respondJSON(w, http.StatusOK, tag)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
