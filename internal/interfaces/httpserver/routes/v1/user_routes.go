package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"user-api/internal/domain/user"
	"user-api/internal/infrastructure/auth"
	"user-api/internal/interfaces/httpserver/handlers/authhandler"
	"user-api/internal/interfaces/httpserver/handlers/userhandler"
	"user-api/internal/utils/platformerrors"
)

type userResponse struct {
	ID        uint      `json:"id" example:"1"`
	Email     string    `json:"email" example:"admin@example.com"`
	Role      string    `json:"role" example:"viewer"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type" example:"bearer"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func newUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		Disabled:  u.Disabled,
		CreatedAt: u.CreatedAt,
	}
}

// register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} userResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 409 {object} platformerrors.HTTPErrorResponse
// @Router /v1/auth/register [post]
func (r *Routes) register(c *gin.Context) {
	var req authhandler.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.writeValidation(c, err)
		return
	}

	created, err := r.handlers.Auth.Register(c.Request.Context(), req)
	if err != nil {
		platformerrors.WriteError(c, err, r.log)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(created))
}

// login godoc
// @Summary Exchange credentials for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} tokenResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Router /v1/auth/login [post]
func (r *Routes) login(c *gin.Context) {
	var req authhandler.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.writeValidation(c, err)
		return
	}

	_, token, err := r.handlers.Auth.Login(c.Request.Context(), req)
	if err != nil {
		platformerrors.WriteError(c, err, r.log)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   token.ExpiresAt,
	})
}

// createUser godoc
// @Summary Create a user with an explicit role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} userResponse
// @Router /v1/users [post]
func (r *Routes) createUser(c *gin.Context) {
	var req userhandler.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.writeValidation(c, err)
		return
	}

	created, err := r.handlers.Users.Create(c.Request.Context(), req)
	if err != nil {
		platformerrors.WriteError(c, err, r.log)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(created))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} userResponse
// @Router /v1/users [get]
func (r *Routes) listUsers(c *gin.Context) {
	users, err := r.handlers.Users.List(c.Request.Context())
	if err != nil {
		platformerrors.WriteError(c, err, r.log)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

// getUser godoc
// @Summary Fetch a user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Router /v1/users/{id} [get]
func (r *Routes) getUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		r.writeValidation(c, err)
		return
	}

	usr, err := r.handlers.Users.Get(c.Request.Context(), uint(id))
	if err != nil {
		platformerrors.WriteError(c, err, r.log)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(usr))
}

// me godoc
// @Summary Fetch the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Router /v1/auth/me [get]
func (r *Routes) me(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	usr, err := r.handlers.Users.Get(c.Request.Context(), principal.UserID)
	if err != nil {
		platformerrors.WriteError(c, err, r.log)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(usr))
}

func (r *Routes) writeValidation(c *gin.Context, err error) {
	platformerrors.WriteError(c, platformerrors.NewError(c.Request.Context(),
		platformerrors.LayerRoute, platformerrors.ErrorTypeValidation,
		"invalid request payload", err, ""), r.log)
}
