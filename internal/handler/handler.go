package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aagmanpal/Intervyo/internal/analytics"
	"github.com/aagmanpal/Intervyo/internal/auth"
	"github.com/aagmanpal/Intervyo/internal/service"
	"github.com/aagmanpal/Intervyo/pkg/model"
	"github.com/aagmanpal/Intervyo/pkg/response"
)

// UserStore is the slice of the user gateway the handlers need.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type ResourceLister interface {
	List(ctx context.Context, category, tag string, limit int64) ([]model.CareerResource, error)
}

type JobSource interface {
	Fetch(keyword, userAgent string, limit int) ([]model.JobListing, error)
}

type Application struct {
	Logger      *zap.Logger
	Interviews  *service.InterviewService
	Progress    *analytics.ProgressService
	Leaderboard *analytics.LeaderboardService
	Users       UserStore
	Resources   ResourceLister
	Jobs        JobSource
	TokenMaker  *auth.JWTMaker
	TokenTTL    time.Duration
}

// GetClaimsFromContext retrieves the verified claims set by the auth middleware.
func (h *Application) GetClaimsFromContext(c *gin.Context) *auth.UserClaims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.UserClaims)
	if !ok {
		return nil
	}
	return claims
}

// serviceError maps classified service errors onto HTTP responses. Anything
// unclassified is a server fault and is hidden from the caller.
func (h *Application) serviceError(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindValidation:
		response.BadRequest(c, err.Error())
	case service.KindNotFound:
		response.NotFound(c, err.Error())
	case service.KindInvalidState:
		response.Conflict(c, err.Error())
	default:
		h.Logger.Sugar().Errorw("request failed", "path", c.Request.URL.Path, "err", err)
		response.InternalError(c, "")
	}
}
