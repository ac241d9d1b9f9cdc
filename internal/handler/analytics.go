package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/aagmanpal/Intervyo/pkg/response"
)

func (h *Application) GetProgress(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	progress, err := h.Progress.Progress(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Sugar().Errorw("progress analytics failed", "user_id", claims.UserID, "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, progress)
}

func (h *Application) GetReadiness(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	report, err := h.Progress.Readiness(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Sugar().Errorw("readiness report failed", "user_id", claims.UserID, "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, report)
}

func (h *Application) GetLeaderboard(c *gin.Context) {
	entries, err := h.Leaderboard.Top(c.Request.Context())
	if err != nil {
		h.Logger.Sugar().Errorw("leaderboard failed", "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"entries": entries, "total": len(entries)})
}
