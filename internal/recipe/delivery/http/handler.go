package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalogdomain "github.com/tastebook/tastebook/internal/catalog/domain"
	membershipdomain "github.com/tastebook/tastebook/internal/membership/domain"
	membershipcommand "github.com/tastebook/tastebook/internal/membership/usecase/command"
	"github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/internal/recipe/shortlink"
	"github.com/tastebook/tastebook/internal/recipe/usecase/command"
	"github.com/tastebook/tastebook/internal/recipe/usecase/query"
	"github.com/tastebook/tastebook/internal/recipe/view"
	userhttp "github.com/tastebook/tastebook/internal/user/delivery/http"
	"github.com/tastebook/tastebook/kafka"
	"github.com/tastebook/tastebook/pkg/apperrors"
	"github.com/tastebook/tastebook/pkg/imagestore"
	"github.com/tastebook/tastebook/pkg/logger"
)

// RecipeHandler handles HTTP requests for recipes, favorites and the
// shopping cart
type RecipeHandler struct {
	// Command handlers
	createHandler *command.CreateRecipeHandler
	updateHandler *command.UpdateRecipeHandler
	deleteHandler *command.DeleteRecipeHandler
	addHandler    *membershipcommand.AddMembershipHandler
	removeHandler *membershipcommand.RemoveMembershipHandler

	// Query handlers
	getHandler          *query.GetRecipeHandler
	listHandler         *query.ListRecipesHandler
	shoppingListHandler *query.ShoppingListHandler

	recipes   domain.RecipeRepository
	assembler *view.Assembler

	// optional collaborators, nil when the backing service is not configured
	publisher  *kafka.Publisher
	shortlinks *shortlink.Store
	baseURL    string

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewRecipeHandler creates a new recipe handler. publisher and shortlinks
// may be nil; the affected endpoints degrade instead of failing.
func NewRecipeHandler(
	recipes domain.RecipeRepository,
	ingredients catalogdomain.IngredientRepository,
	tags catalogdomain.TagRepository,
	memberships membershipdomain.Repository,
	images *imagestore.Store,
	publisher *kafka.Publisher,
	shortlinks *shortlink.Store,
	baseURL string,
) *RecipeHandler {
	assembler := view.NewAssembler(memberships)

	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_api_requests_total",
			Help: "Total number of requests to the recipe API",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_api_request_duration_seconds",
			Help:    "Duration of recipe API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &RecipeHandler{
		createHandler:       command.NewCreateRecipeHandler(recipes, ingredients, tags, images),
		updateHandler:       command.NewUpdateRecipeHandler(recipes, ingredients, tags, images),
		deleteHandler:       command.NewDeleteRecipeHandler(recipes, images),
		addHandler:          membershipcommand.NewAddMembershipHandler(memberships),
		removeHandler:       membershipcommand.NewRemoveMembershipHandler(memberships),
		getHandler:          query.NewGetRecipeHandler(recipes, assembler),
		listHandler:         query.NewListRecipesHandler(recipes, assembler),
		shoppingListHandler: query.NewShoppingListHandler(recipes),
		recipes:             recipes,
		assembler:           assembler,
		publisher:           publisher,
		shortlinks:          shortlinks,
		baseURL:             baseURL,
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *RecipeHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// recipeRequest is the write payload shared by create and update
type recipeRequest struct {
	Name        string `json:"name"`
	Text        string `json:"text"`
	CookingTime int    `json:"cooking_time"`
	Image       string `json:"image"`
	Tags        []uint `json:"tags"`
	Ingredients []struct {
		ID     uint `json:"id"`
		Amount int  `json:"amount"`
	} `json:"ingredients"`
}

func (req *recipeRequest) ingredientAmounts() []command.IngredientAmount {
	out := make([]command.IngredientAmount, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		out = append(out, command.IngredientAmount{ID: ing.ID, Amount: ing.Amount})
	}
	return out
}

// CreateRecipe handles POST /api/recipes
func (h *RecipeHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	authorID := userhttp.ViewerID(r)
	cmd := command.CreateRecipeCommand{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       req.Image,
		Tags:        req.Tags,
		Ingredients: req.ingredientAmounts(),
	}

	recipe, err := h.createHandler.Handle(cmd)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.publishActivity(r, kafka.EventTypeRecipeCreated, recipe, authorID)

	v, err := h.assembler.Recipe(recipe, authorID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusCreated, v)
}

// GetRecipe handles GET /api/recipes/{id}
func (h *RecipeHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	v, err := h.getHandler.Handle(query.GetRecipeQuery{RecipeID: id, ViewerID: userhttp.ViewerID(r)})
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, v)
}

// ListRecipes handles GET /api/recipes
func (h *RecipeHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	authorID, _ := strconv.ParseUint(params.Get("author"), 10, 32)

	q := query.ListRecipesQuery{
		ViewerID:      userhttp.ViewerID(r),
		TagSlugs:      params["tags"],
		AuthorID:      uint(authorID),
		OnlyFavorited: params.Get("is_favorited") == "1",
		OnlyInCart:    params.Get("is_in_shopping_cart") == "1",
	}

	views, err := h.listHandler.Handle(q)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, views)
}

// UpdateRecipe handles PATCH /api/recipes/{id}
func (h *RecipeHandler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	viewerID := userhttp.ViewerID(r)
	existing, err := h.recipes.FindByID(id)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	if existing.AuthorID != viewerID {
		h.respondError(w, http.StatusForbidden, "Only the author can edit this recipe")
		return
	}

	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateRecipeCommand{
		RecipeID:    id,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       req.Image,
		Tags:        req.Tags,
		Ingredients: req.ingredientAmounts(),
	}

	recipe, err := h.updateHandler.Handle(cmd)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.publishActivity(r, kafka.EventTypeRecipeUpdated, recipe, viewerID)

	v, err := h.assembler.Recipe(recipe, viewerID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, v)
}

// DeleteRecipe handles DELETE /api/recipes/{id}
func (h *RecipeHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	viewerID := userhttp.ViewerID(r)
	existing, err := h.recipes.FindByID(id)
	if err != nil {
		h.respondAppError(w, err)
		return
	}
	if existing.AuthorID != viewerID {
		h.respondError(w, http.StatusForbidden, "Only the author can delete this recipe")
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteRecipeCommand{RecipeID: id}); err != nil {
		h.respondAppError(w, err)
		return
	}

	h.publishActivity(r, kafka.EventTypeRecipeDeleted, existing, viewerID)

	w.WriteHeader(http.StatusNoContent)
}

// AddFavorite handles POST /api/recipes/{id}/favorite
func (h *RecipeHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	h.addToSet(w, r, membershipdomain.KindFavorite)
}

// RemoveFavorite handles DELETE /api/recipes/{id}/favorite
func (h *RecipeHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.removeFromSet(w, r, membershipdomain.KindFavorite)
}

// AddToCart handles POST /api/recipes/{id}/shopping_cart
func (h *RecipeHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	h.addToSet(w, r, membershipdomain.KindShoppingCart)
}

// RemoveFromCart handles DELETE /api/recipes/{id}/shopping_cart
func (h *RecipeHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	h.removeFromSet(w, r, membershipdomain.KindShoppingCart)
}

// addToSet links the caller to a recipe and responds with the short view
func (h *RecipeHandler) addToSet(w http.ResponseWriter, r *http.Request, kind membershipdomain.Kind) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}
	viewerID := userhttp.ViewerID(r)

	recipe, err := h.recipes.FindByID(id)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	cmd := membershipcommand.AddMembershipCommand{UserID: viewerID, TargetID: id, Kind: kind}
	if err := h.addHandler.Handle(cmd); err != nil {
		h.respondAppError(w, err)
		return
	}

	if kind == membershipdomain.KindFavorite {
		h.publishActivity(r, kafka.EventTypeFavoriteAdded, recipe, viewerID)
	}

	h.respondJSON(w, http.StatusCreated, view.Short(recipe))
}

// removeFromSet unlinks the caller from a recipe
func (h *RecipeHandler) removeFromSet(w http.ResponseWriter, r *http.Request, kind membershipdomain.Kind) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}
	viewerID := userhttp.ViewerID(r)

	cmd := membershipcommand.RemoveMembershipCommand{UserID: viewerID, TargetID: id, Kind: kind}
	if err := h.removeHandler.Handle(cmd); err != nil {
		h.respondAppError(w, err)
		return
	}

	if kind == membershipdomain.KindFavorite {
		if recipe, err := h.recipes.FindByID(id); err == nil {
			h.publishActivity(r, kafka.EventTypeFavoriteRemoved, recipe, viewerID)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart
func (h *RecipeHandler) DownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	body, err := h.shoppingListHandler.Handle(query.ShoppingListQuery{UserID: userhttp.ViewerID(r)})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

// GetShortLink handles GET /api/recipes/{id}/get-link
func (h *RecipeHandler) GetShortLink(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid recipe ID")
		return
	}

	if _, err := h.recipes.FindByID(id); err != nil {
		h.respondAppError(w, err)
		return
	}

	// fall back to the canonical URL when the shortlink store is down
	link := fmt.Sprintf("%s/recipes/%d", h.baseURL, id)
	if h.shortlinks != nil {
		code, err := h.shortlinks.CodeFor(r.Context(), id)
		if err != nil {
			logger.Logger.Warn().Err(err).Uint("recipe_id", id).Msg("Short link unavailable, using canonical URL")
		} else {
			link = fmt.Sprintf("%s/s/%s", h.baseURL, code)
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"short-link": link})
}

// ResolveShortLink handles GET /s/{code}
func (h *RecipeHandler) ResolveShortLink(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	if h.shortlinks == nil {
		h.respondError(w, http.StatusNotFound, "Short links are not enabled")
		return
	}

	id, err := h.shortlinks.Resolve(r.Context(), code)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if id == 0 {
		h.respondError(w, http.StatusNotFound, "Unknown short link")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s/recipes/%d", h.baseURL, id), http.StatusFound)
}

// publishActivity emits a recipe activity event when a publisher is wired
func (h *RecipeHandler) publishActivity(r *http.Request, eventType string, recipe *domain.Recipe, actorID uint) {
	if h.publisher == nil {
		return
	}

	event := kafka.RecipeActivityEvent{
		RecipeID:   recipe.ID,
		RecipeName: recipe.Name,
		AuthorID:   recipe.AuthorID,
		ActorID:    actorID,
	}
	if err := h.publisher.PublishRecipeActivity(r.Context(), eventType, event); err != nil {
		logger.Logger.Error().
			Err(err).
			Str("event_type", eventType).
			Uint("recipe_id", recipe.ID).
			Msg("Failed to publish recipe activity")
	}
}

// pathID parses the {id} path variable
func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func (h *RecipeHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *RecipeHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"errors": message})
}

// respondAppError maps domain errors to HTTP statuses
func (h *RecipeHandler) respondAppError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err), apperrors.IsConflict(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case apperrors.IsNotFound(err):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// RegisterRoutes registers all recipe routes
func (h *RecipeHandler) RegisterRoutes(router *mux.Router) {
	// Fixed paths go before the {id} wildcard
	router.HandleFunc("/api/recipes/download_shopping_cart", h.metricsMiddleware("/api/recipes/download_shopping_cart", userhttp.AuthMiddleware(h.DownloadShoppingCart))).Methods("GET")

	router.HandleFunc("/api/recipes", h.metricsMiddleware("/api/recipes", userhttp.OptionalAuthMiddleware(h.ListRecipes))).Methods("GET")
	router.HandleFunc("/api/recipes", h.metricsMiddleware("/api/recipes", userhttp.AuthMiddleware(h.CreateRecipe))).Methods("POST")
	router.HandleFunc("/api/recipes/{id}", h.metricsMiddleware("/api/recipes/{id}", userhttp.OptionalAuthMiddleware(h.GetRecipe))).Methods("GET")
	router.HandleFunc("/api/recipes/{id}", h.metricsMiddleware("/api/recipes/{id}", userhttp.AuthMiddleware(h.UpdateRecipe))).Methods("PUT", "PATCH")
	router.HandleFunc("/api/recipes/{id}", h.metricsMiddleware("/api/recipes/{id}", userhttp.AuthMiddleware(h.DeleteRecipe))).Methods("DELETE")

	router.HandleFunc("/api/recipes/{id}/favorite", h.metricsMiddleware("/api/recipes/{id}/favorite", userhttp.AuthMiddleware(h.AddFavorite))).Methods("POST")
	router.HandleFunc("/api/recipes/{id}/favorite", h.metricsMiddleware("/api/recipes/{id}/favorite", userhttp.AuthMiddleware(h.RemoveFavorite))).Methods("DELETE")
	router.HandleFunc("/api/recipes/{id}/shopping_cart", h.metricsMiddleware("/api/recipes/{id}/shopping_cart", userhttp.AuthMiddleware(h.AddToCart))).Methods("POST")
	router.HandleFunc("/api/recipes/{id}/shopping_cart", h.metricsMiddleware("/api/recipes/{id}/shopping_cart", userhttp.AuthMiddleware(h.RemoveFromCart))).Methods("DELETE")
	router.HandleFunc("/api/recipes/{id}/get-link", h.metricsMiddleware("/api/recipes/{id}/get-link", userhttp.OptionalAuthMiddleware(h.GetShortLink))).Methods("GET")

	router.HandleFunc("/s/{code}", h.metricsMiddleware("/s/{code}", h.ResolveShortLink)).Methods("GET")
}
