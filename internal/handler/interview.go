package handler

import (
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aagmanpal/Intervyo/internal/service"
	"github.com/aagmanpal/Intervyo/pkg/model"
	"github.com/aagmanpal/Intervyo/pkg/response"
)

// maxResumeSize caps resume uploads at 5 MB.
const maxResumeSize = 5 << 20

// CreateInterview schedules a new interview from a multipart form. The
// resume file is the only mandatory upload.
func (h *Application) CreateInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	duration, _ := strconv.Atoi(c.PostForm("duration_minutes"))

	var scheduledAt time.Time
	if raw := c.PostForm("scheduled_at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(c, "scheduled_at must be a valid RFC3339 timestamp")
			return
		}
		scheduledAt = parsed
	}

	params := service.CreateParams{
		UserID:          claims.UserID,
		Role:            c.PostForm("role"),
		Difficulty:      model.Difficulty(c.PostForm("difficulty")),
		DurationMinutes: duration,
		ScheduledAt:     scheduledAt,
	}

	if fh, err := c.FormFile("resume"); err == nil {
		if fh.Size > maxResumeSize {
			response.BadRequest(c, "resume file exceeds the 5MB limit")
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(c, "could not read resume file")
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			response.BadRequest(c, "could not read resume file")
			return
		}
		params.Resume = &service.ResumeUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	iv, err := h.Interviews.Create(c.Request.Context(), params)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	response.Created(c, iv)
}

func (h *Application) ListInterviews(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	ivs, err := h.Interviews.List(c.Request.Context(), claims.UserID)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	response.OK(c, ivs)
}

func (h *Application) GetInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	iv, err := h.Interviews.Get(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	response.OK(c, iv)
}

// StartInterview transitions a scheduled interview to in-progress and
// returns the record together with the new session id.
func (h *Application) StartInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	iv, sessionID, err := h.Interviews.Start(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	response.OK(c, gin.H{"interview": iv, "session_id": sessionID})
}

func (h *Application) GetInterviewSession(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	sess, err := h.Interviews.GetSession(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	response.OK(c, sess)
}

type endInterviewReq struct {
	OverallScore float64                `json:"overall_score"`
	Dimensions   *model.DimensionScores `json:"dimensions"`
	Feedback     *model.Feedback        `json:"feedback"`
	Turns        []model.Turn           `json:"turns"`
	Evaluations  []model.Evaluation     `json:"evaluations"`
}

// EndInterview completes an in-progress interview with its final scores and
// any trailing transcript entries.
func (h *Application) EndInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	var req endInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	iv, err := h.Interviews.End(c.Request.Context(), service.EndParams{
		InterviewID:  c.Param("id"),
		UserID:       claims.UserID,
		OverallScore: req.OverallScore,
		Dimensions:   req.Dimensions,
		Feedback:     req.Feedback,
		Turns:        req.Turns,
		Evaluations:  req.Evaluations,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}
	response.OK(c, iv)
}

func (h *Application) DeleteInterview(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	if err := h.Interviews.Delete(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		h.serviceError(c, err)
		return
	}
	response.Message(c, "interview deleted successfully")
}

// GetInterviewResults returns the results bundle for a completed interview.
// An interview that has not finished yet is a client error, not a conflict.
func (h *Application) GetInterviewResults(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	res, err := h.Interviews.GetResults(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		if service.IsKind(err, service.KindInvalidState) {
			response.BadRequest(c, err.Error())
			return
		}
		h.serviceError(c, err)
		return
	}
	response.OK(c, res)
}
