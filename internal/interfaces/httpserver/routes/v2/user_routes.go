package v2

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

// envelope is the v2 response wrapper. Total is only set on list responses.
type envelope struct {
	Data  any  `json:"data"`
	Total *int `json:"total,omitempty"`
}

type userResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
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
	c.JSON(http.StatusCreated, envelope{Data: newUserResponse(created)})
}

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
	c.JSON(http.StatusOK, envelope{Data: tokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   token.ExpiresAt,
	}})
}

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
	c.JSON(http.StatusCreated, envelope{Data: newUserResponse(created)})
}

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
	total := len(out)
	c.JSON(http.StatusOK, envelope{Data: out, Total: &total})
}

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
	c.JSON(http.StatusOK, envelope{Data: newUserResponse(usr)})
}

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
	c.JSON(http.StatusOK, envelope{Data: newUserResponse(usr)})
}

func (r *Routes) writeValidation(c *gin.Context, err error) {
	platformerrors.WriteError(c, platformerrors.NewError(c.Request.Context(),
		platformerrors.LayerRoute, platformerrors.ErrorTypeValidation,
		"invalid request payload", err, ""), r.log)
}
