package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	membershipdomain "github.com/tastebook/tastebook/internal/membership/domain"
	membershipcommand "github.com/tastebook/tastebook/internal/membership/usecase/command"
	recipedomain "github.com/tastebook/tastebook/internal/recipe/domain"
	"github.com/tastebook/tastebook/internal/recipe/view"
	"github.com/tastebook/tastebook/internal/user/domain"
	"github.com/tastebook/tastebook/internal/user/usecase/command"
	"github.com/tastebook/tastebook/internal/user/usecase/query"
	"github.com/tastebook/tastebook/pkg/apperrors"
	"github.com/tastebook/tastebook/pkg/imagestore"
)

// UserHandler handles HTTP requests for accounts and subscriptions
type UserHandler struct {
	// Command handlers
	registerHandler     *command.RegisterUserHandler
	loginHandler        *command.LoginUserHandler
	setPasswordHandler  *command.SetPasswordHandler
	setAvatarHandler    *command.SetAvatarHandler
	deleteAvatarHandler *command.DeleteAvatarHandler
	subscribeHandler    *membershipcommand.AddMembershipHandler
	unsubscribeHandler  *membershipcommand.RemoveMembershipHandler

	// Query handlers
	getUserHandler           *query.GetUserHandler
	listHandler              *query.ListUsersHandler
	listSubscriptionsHandler *query.ListSubscriptionsHandler

	users     domain.UserRepository
	recipes   recipedomain.RecipeRepository
	assembler *view.Assembler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	users domain.UserRepository,
	memberships membershipdomain.Repository,
	recipes recipedomain.RecipeRepository,
	images *imagestore.Store,
) *UserHandler {
	assembler := view.NewAssembler(memberships)

	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_api_requests_total",
			Help: "Total number of requests to the user API",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_api_request_duration_seconds",
			Help:    "Duration of user API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &UserHandler{
		registerHandler:          command.NewRegisterUserHandler(users),
		loginHandler:             command.NewLoginUserHandler(users),
		setPasswordHandler:       command.NewSetPasswordHandler(users),
		setAvatarHandler:         command.NewSetAvatarHandler(users, images),
		deleteAvatarHandler:      command.NewDeleteAvatarHandler(users, images),
		subscribeHandler:         membershipcommand.NewAddMembershipHandler(memberships),
		unsubscribeHandler:       membershipcommand.NewRemoveMembershipHandler(memberships),
		getUserHandler:           query.NewGetUserHandler(users, assembler),
		listHandler:              query.NewListUsersHandler(users, assembler),
		listSubscriptionsHandler: query.NewListSubscriptionsHandler(memberships, users, recipes, assembler),
		users:                    users,
		recipes:                  recipes,
		assembler:                assembler,
		requestCounter:           requestCounter,
		requestLatency:           requestLatency,
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
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Register handles POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RegisterUserCommand{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	user, err := h.registerHandler.Handle(cmd)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/token/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	}

	response, err := h.loginHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, response)
}

// Logout handles POST /api/auth/token/logout. Tokens are stateless, so the
// server has nothing to revoke; clients drop the token.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// GetProfile handles GET /api/users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := ViewerID(r)

	profile, err := h.getUserHandler.Handle(query.GetUserQuery{UserID: userID, ViewerID: userID})
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, profile)
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	profile, err := h.getUserHandler.Handle(query.GetUserQuery{UserID: id, ViewerID: ViewerID(r)})
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, profile)
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	profiles, err := h.listHandler.Handle(query.ListUsersQuery{
		ViewerID: ViewerID(r),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, profiles)
}

// SetPassword handles POST /api/users/set_password
func (h *UserHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.SetPasswordCommand{
		UserID:          ViewerID(r),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}

	if err := h.setPasswordHandler.Handle(cmd); err != nil {
		h.respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetAvatar handles PUT /api/users/me/avatar
func (h *UserHandler) SetAvatar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Avatar string `json:"avatar"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	path, err := h.setAvatarHandler.Handle(command.SetAvatarCommand{
		UserID: ViewerID(r),
		Avatar: req.Avatar,
	})
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"avatar": path})
}

// DeleteAvatar handles DELETE /api/users/me/avatar
func (h *UserHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	if err := h.deleteAvatarHandler.Handle(command.DeleteAvatarCommand{UserID: ViewerID(r)}); err != nil {
		h.respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Subscribe handles POST /api/users/{id}/subscribe
func (h *UserHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	viewerID := ViewerID(r)

	// the author must exist before a subscription can point at them
	author, err := h.users.FindByID(authorID)
	if err != nil {
		h.respondAppError(w, err)
		return
	}

	cmd := membershipcommand.AddMembershipCommand{
		UserID:   viewerID,
		TargetID: authorID,
		Kind:     membershipdomain.KindSubscription,
	}
	if err := h.subscribeHandler.Handle(cmd); err != nil {
		h.respondAppError(w, err)
		return
	}

	sub, err := h.subscriptionView(author, viewerID, recipesLimit(r))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, sub)
}

// Unsubscribe handles DELETE /api/users/{id}/subscribe
func (h *UserHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	authorID, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	cmd := membershipcommand.RemoveMembershipCommand{
		UserID:   ViewerID(r),
		TargetID: authorID,
		Kind:     membershipdomain.KindSubscription,
	}
	if err := h.unsubscribeHandler.Handle(cmd); err != nil {
		h.respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSubscriptions handles GET /api/users/subscriptions
func (h *UserHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.listSubscriptionsHandler.Handle(query.ListSubscriptionsQuery{
		UserID:       ViewerID(r),
		RecipesLimit: recipesLimit(r),
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, subs)
}

// subscriptionView annotates a single followed author with their recipes
func (h *UserHandler) subscriptionView(author *domain.User, viewerID uint, limit int) (*view.SubscriptionView, error) {
	profile, err := h.assembler.Author(author, viewerID)
	if err != nil {
		return nil, err
	}

	recipes, err := h.recipes.FindByAuthor(author.ID, limit)
	if err != nil {
		return nil, err
	}
	count, err := h.recipes.CountByAuthor(author.ID)
	if err != nil {
		return nil, err
	}

	return &view.SubscriptionView{
		AuthorView:   profile,
		Recipes:      view.Shorts(recipes),
		RecipesCount: count,
	}, nil
}

// recipesLimit parses the recipes_limit query parameter; 0 means unlimited
func recipesLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("recipes_limit"))
	if limit < 0 {
		return 0
	}
	return limit
}

// pathID parses the {id} path variable
func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func (h *UserHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *UserHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"errors": message})
}

// respondAppError maps domain errors to HTTP statuses
func (h *UserHandler) respondAppError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err), apperrors.IsConflict(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case apperrors.IsNotFound(err):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/api/users", h.metricsMiddleware("/api/users", h.Register)).Methods("POST")
	router.HandleFunc("/api/auth/token/login", h.metricsMiddleware("/api/auth/token/login", h.Login)).Methods("POST")
	router.HandleFunc("/api/auth/token/logout", h.metricsMiddleware("/api/auth/token/logout", AuthMiddleware(h.Logout))).Methods("POST")

	// Fixed paths go before the {id} wildcard
	router.HandleFunc("/api/users/subscriptions", h.metricsMiddleware("/api/users/subscriptions", AuthMiddleware(h.ListSubscriptions))).Methods("GET")
	router.HandleFunc("/api/users/set_password", h.metricsMiddleware("/api/users/set_password", AuthMiddleware(h.SetPassword))).Methods("POST")
	router.HandleFunc("/api/users/me", h.metricsMiddleware("/api/users/me", AuthMiddleware(h.GetProfile))).Methods("GET")
	router.HandleFunc("/api/users/me/avatar", h.metricsMiddleware("/api/users/me/avatar", AuthMiddleware(h.SetAvatar))).Methods("PUT")
	router.HandleFunc("/api/users/me/avatar", h.metricsMiddleware("/api/users/me/avatar", AuthMiddleware(h.DeleteAvatar))).Methods("DELETE")

	router.HandleFunc("/api/users", h.metricsMiddleware("/api/users", OptionalAuthMiddleware(h.ListUsers))).Methods("GET")
	router.HandleFunc("/api/users/{id}", h.metricsMiddleware("/api/users/{id}", OptionalAuthMiddleware(h.GetUser))).Methods("GET")
	router.HandleFunc("/api/users/{id}/subscribe", h.metricsMiddleware("/api/users/{id}/subscribe", AuthMiddleware(h.Subscribe))).Methods("POST")
	router.HandleFunc("/api/users/{id}/subscribe", h.metricsMiddleware("/api/users/{id}/subscribe", AuthMiddleware(h.Unsubscribe))).Methods("DELETE")
}
