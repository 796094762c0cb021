package http

// Register godoc
// @Summary Register a new user
// @Description Create a new user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,first_name=string,last_name=string} true "User registration data"
// @Success 201 {object} object{id=int,username=string,email=string,first_name=string,last_name=string}
// @Failure 400 {object} object{errors=string}
// @Router /api/users [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary User login
// @Description Authenticate by email and get a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{auth_token=string,user=object}
// @Failure 401 {object} object{errors=string}
// @Router /api/auth/token/login [post]
func (h *UserHandler) LoginDoc() {}

// GetProfile godoc
// @Summary Get current user profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{id=int,username=string,email=string,first_name=string,last_name=string,avatar=string,is_subscribed=bool}
// @Failure 401 {object} object{errors=string}
// @Router /api/users/me [get]
func (h *UserHandler) GetProfileDoc() {}

// SetAvatar godoc
// @Summary Set the caller's avatar
// @Description Upload a base64 encoded avatar image
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{avatar=string} true "Base64 image payload"
// @Success 200 {object} object{avatar=string}
// @Failure 400 {object} object{errors=string}
// @Router /api/users/me/avatar [put]
func (h *UserHandler) SetAvatarDoc() {}

// Subscribe godoc
// @Summary Subscribe to an author
// @Description Follow an author; responds with their profile, recipes and recipe count
// @Tags Subscriptions
// @Security BearerAuth
// @Produce json
// @Param id path int true "Author ID"
// @Param recipes_limit query int false "Cap on nested recipes"
// @Success 201 {object} object{id=int,username=string,is_subscribed=bool,recipes=[]object,recipes_count=int}
// @Failure 400 {object} object{errors=string}
// @Router /api/users/{id}/subscribe [post]
func (h *UserHandler) SubscribeDoc() {}

// ListSubscriptions godoc
// @Summary List followed authors
// @Tags Subscriptions
// @Security BearerAuth
// @Produce json
// @Param recipes_limit query int false "Cap on nested recipes"
// @Success 200 {array} object{id=int,username=string,recipes=[]object,recipes_count=int}
// @Router /api/users/subscriptions [get]
func (h *UserHandler) ListSubscriptionsDoc() {}
