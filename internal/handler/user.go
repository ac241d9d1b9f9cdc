package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aagmanpal/Intervyo/internal/repository"
	"github.com/aagmanpal/Intervyo/pkg"
	"github.com/aagmanpal/Intervyo/pkg/model"
	"github.com/aagmanpal/Intervyo/pkg/response"
)

func (h *Application) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hash, err := pkg.HashPassword(req.Password)
	if err != nil {
		h.Logger.Sugar().Errorw("password hash failed", "err", err)
		response.InternalError(c, "")
		return
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.Conflict(c, "email already registered")
			return
		}
		h.Logger.Sugar().Errorw("user create failed", "err", err)
		response.InternalError(c, "")
		return
	}

	h.issueToken(c, user, true)
}

func (h *Application) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Unauthorized(c, "invalid email or password")
		return
	}
	if err := pkg.ComparePassword(user.PasswordHash, req.Password); err != nil {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	h.issueToken(c, user, false)
}

func (h *Application) Me(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	user, err := h.Users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Unauthorized(c, "")
		return
	}
	response.OK(c, model.UserResponse{UserID: user.ID, Name: user.Name, Email: user.Email})
}

func (h *Application) issueToken(c *gin.Context, user *model.User, created bool) {
	token, claims, err := h.TokenMaker.CreateToken(user.ID, user.Email, h.TokenTTL)
	if err != nil {
		h.Logger.Sugar().Errorw("token create failed", "err", err)
		response.InternalError(c, "")
		return
	}
	body := model.TokenResponse{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Unix(),
		User:        model.UserResponse{UserID: user.ID, Name: user.Name, Email: user.Email},
	}
	if created {
		response.Created(c, body)
		return
	}
	response.OK(c, body)
}
