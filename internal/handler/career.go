package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aagmanpal/Intervyo/pkg/response"
)

// ListResources returns curated career resources, optionally filtered by
// category and tag.
func (h *Application) ListResources(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	resources, err := h.Resources.List(c.Request.Context(), c.Query("category"), c.Query("tag"), limit)
	if err != nil {
		h.Logger.Sugar().Errorw("resource list failed", "err", err)
		response.InternalError(c, "")
		return
	}
	response.OK(c, gin.H{"resources": resources, "total": len(resources)})
}

// ListJobs fetches live listings from the configured job board.
func (h *Application) ListJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	jobs, err := h.Jobs.Fetch(c.Query("q"), c.Request.UserAgent(), limit)
	if err != nil {
		h.Logger.Sugar().Warnw("job fetch failed", "err", err)
		response.InternalError(c, "job board is currently unavailable")
		return
	}
	response.OK(c, gin.H{"jobs": jobs, "total": len(jobs)})
}
