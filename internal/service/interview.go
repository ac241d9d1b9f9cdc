package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aagmanpal/Intervyo/internal/repository"
	"github.com/aagmanpal/Intervyo/internal/storage"
	"github.com/aagmanpal/Intervyo/pkg/model"
)

const greetingMessage = "Hello! I'm your interviewer today. Whenever you're ready, tell me a little about yourself and we'll get started."

// InterviewStore is the persistence gateway for interview records. The
// concrete implementation lives in internal/repository.
type InterviewStore interface {
	Create(ctx context.Context, iv *model.Interview) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*model.Interview, error)
	Update(ctx context.Context, iv *model.Interview) error
	ListByUser(ctx context.Context, userID string) ([]model.Interview, error)
	DeleteByIDAndUser(ctx context.Context, id, userID string) (*model.Interview, error)
}

// SessionStore is the persistence gateway for session/transcript records.
type SessionStore interface {
	Create(ctx context.Context, s *model.InterviewSession) error
	GetByInterviewID(ctx context.Context, interviewID string) (*model.InterviewSession, error)
	Update(ctx context.Context, s *model.InterviewSession) error
	DeleteByInterviewID(ctx context.Context, interviewID string) error
}

// FeedbackGenerator produces a structured feedback summary from the
// per-question evaluations, typically backed by an AI chat model.
type FeedbackGenerator interface {
	GenerateFeedback(ctx context.Context, role string, evals []model.Evaluation) (*model.Feedback, error)
}

// InterviewService is the session lifecycle controller: the only component
// that mutates interview and session state. All failures leave as classified
// *Error values.
type InterviewService struct {
	interviews InterviewStore
	sessions   SessionStore
	uploader   storage.Uploader
	feedback   FeedbackGenerator // optional
	logger     *zap.Logger
	now        func() time.Time
}

func NewInterviewService(interviews InterviewStore, sessions SessionStore, uploader storage.Uploader, feedback FeedbackGenerator, logger *zap.Logger) *InterviewService {
	return &InterviewService{
		interviews: interviews,
		sessions:   sessions,
		uploader:   uploader,
		feedback:   feedback,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type ResumeUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CreateParams struct {
	UserID          string
	Role            string
	Difficulty      model.Difficulty
	DurationMinutes int
	ScheduledAt     time.Time
	Resume          *ResumeUpload
}

// Create schedules a new interview. The resume is uploaded before the record
// is persisted; if the upload fails no record is created.
func (s *InterviewService) Create(ctx context.Context, p CreateParams) (*model.Interview, error) {
	if p.Resume == nil || len(p.Resume.Data) == 0 {
		return nil, Errf(KindValidation, "resume file is required")
	}

	iv := &model.Interview{
		ID:              uuid.NewString(),
		UserID:          p.UserID,
		Role:            p.Role,
		Difficulty:      p.Difficulty,
		ScheduledAt:     p.ScheduledAt,
		DurationMinutes: p.DurationMinutes,
		Status:          model.StatusScheduled,
	}
	if err := iv.ValidateForCreate(); err != nil {
		return nil, wrap(KindValidation, err, err.Error())
	}
	if iv.ScheduledAt.Before(s.now()) {
		return nil, Errf(KindValidation, "scheduled_at must not be in the past")
	}

	key := fmt.Sprintf("resumes/%s/%s%s", p.UserID, iv.ID, path.Ext(p.Resume.Filename))
	url, err := s.uploader.Upload(ctx, key, p.Resume.Data, p.Resume.ContentType)
	if err != nil {
		return nil, wrap(KindUpload, err, "resume upload failed")
	}
	iv.ResumeURL = url

	if err := s.interviews.Create(ctx, iv); err != nil {
		return nil, wrap(KindPersistence, err, "failed to save interview")
	}
	return iv, nil
}

func (s *InterviewService) Get(ctx context.Context, id, userID string) (*model.Interview, error) {
	iv, err := s.interviews.GetByIDAndUser(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Errf(KindNotFound, "interview not found")
	}
	if err != nil {
		return nil, wrap(KindPersistence, err, "failed to load interview")
	}
	return iv, nil
}

func (s *InterviewService) List(ctx context.Context, userID string) ([]model.Interview, error) {
	out, err := s.interviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrap(KindPersistence, err, "failed to list interviews")
	}
	return out, nil
}

// Start moves a scheduled interview to in-progress and creates its session
// record seeded with one greeting turn. The status check runs on the record
// read immediately before the write; a concurrent Start that loses the race
// fails the check here with an invalid-state error.
//
// The session create is best-effort coupled to the interview save. When it
// fails after the save committed, the interview stays in-progress with no
// session; that partial failure is logged for operators and the primary
// result is still returned.
func (s *InterviewService) Start(ctx context.Context, id, userID string) (*model.Interview, string, error) {
	iv, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, "", err
	}
	if !iv.Status.CanTransitionTo(model.StatusInProgress) {
		return nil, "", Errf(KindInvalidState, "interview is %s, only a scheduled interview can be started", iv.Status)
	}

	now := s.now()
	iv.Status = model.StatusInProgress
	iv.StartedAt = &now
	if err := s.interviews.Update(ctx, iv); err != nil {
		return nil, "", wrap(KindPersistence, err, "failed to start interview")
	}

	sess := &model.InterviewSession{
		ID:          uuid.NewString(),
		InterviewID: iv.ID,
		UserID:      userID,
		Status:      model.StatusInProgress,
		Turns: []model.Turn{{
			Speaker:   model.SpeakerAI,
			Type:      model.TurnGreeting,
			Message:   greetingMessage,
			Timestamp: now,
		}},
		Evaluations: []model.Evaluation{},
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		pf := wrap(KindPartialFailure, err, "interview started but session creation failed")
		s.logger.Error("partial failure on interview start",
			zap.String("interview_id", iv.ID),
			zap.String("user_id", userID),
			zap.Error(pf))
		return iv, "", nil
	}
	return iv, sess.ID, nil
}

// GetSession returns the transcript record for an interview. Ownership is
// checked here as well; a session belonging to another user reads as absent.
func (s *InterviewService) GetSession(ctx context.Context, interviewID, userID string) (*model.InterviewSession, error) {
	sess, err := s.sessions.GetByInterviewID(ctx, interviewID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, Errf(KindNotFound, "session not found")
	}
	if err != nil {
		return nil, wrap(KindPersistence, err, "failed to load session")
	}
	if sess.UserID != userID {
		return nil, Errf(KindNotFound, "session not found")
	}
	return sess, nil
}

type EndParams struct {
	InterviewID  string
	UserID       string
	OverallScore float64
	Dimensions   *model.DimensionScores
	Feedback     *model.Feedback
	Turns        []model.Turn
	Evaluations  []model.Evaluation
}

// End completes an in-progress interview: copies the final scores and
// feedback onto the interview record, merges trailing transcript entries into
// the session, and marks both completed. Calling End on an already-completed
// interview fails instead of re-applying scores.
func (s *InterviewService) End(ctx context.Context, p EndParams) (*model.Interview, error) {
	iv, err := s.Get(ctx, p.InterviewID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !iv.Status.CanTransitionTo(model.StatusCompleted) {
		return nil, Errf(KindInvalidState, "interview is %s, only an in-progress interview can be ended", iv.Status)
	}

	now := s.now()
	iv.Status = model.StatusCompleted
	iv.EndedAt = &now
	iv.OverallScore = p.OverallScore
	iv.Dimensions = p.Dimensions
	iv.SkillScores = skillAverages(p.Evaluations)
	iv.Feedback = s.resolveFeedback(ctx, iv.Role, p)

	if err := s.interviews.Update(ctx, iv); err != nil {
		return nil, wrap(KindPersistence, err, "failed to complete interview")
	}

	if err := s.finalizeSession(ctx, iv, p, now); err != nil {
		pf := wrap(KindPartialFailure, err, "interview completed but session finalize failed")
		s.logger.Error("partial failure on interview end",
			zap.String("interview_id", iv.ID),
			zap.String("user_id", p.UserID),
			zap.Error(pf))
	}
	return iv, nil
}

func (s *InterviewService) finalizeSession(ctx context.Context, iv *model.Interview, p EndParams, now time.Time) error {
	sess, err := s.sessions.GetByInterviewID(ctx, iv.ID)
	if err != nil {
		return err
	}
	sess.AppendTurns(p.Turns, now)
	sess.Evaluations = append(sess.Evaluations, p.Evaluations...)
	sess.Status = model.StatusCompleted
	sess.OverallScore = iv.OverallScore
	sess.Dimensions = iv.Dimensions
	return s.sessions.Update(ctx, sess)
}

// resolveFeedback prefers caller-provided feedback; without it, the AI
// generator fills the gap. Generator failures fall back to an empty summary
// rather than blocking completion.
func (s *InterviewService) resolveFeedback(ctx context.Context, role string, p EndParams) *model.Feedback {
	if p.Feedback != nil {
		return p.Feedback
	}
	if s.feedback == nil {
		return &model.Feedback{}
	}
	fb, err := s.feedback.GenerateFeedback(ctx, role, p.Evaluations)
	if err != nil {
		s.logger.Warn("feedback generation failed",
			zap.String("interview_id", p.InterviewID),
			zap.Error(err))
		return &model.Feedback{}
	}
	return fb
}

// Delete removes the interview and cascades to its session and resume
// artifact. The cascade is best-effort: cleanup failures are logged, the
// delete still succeeds for the caller.
func (s *InterviewService) Delete(ctx context.Context, id, userID string) error {
	iv, err := s.interviews.DeleteByIDAndUser(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return Errf(KindNotFound, "interview not found")
	}
	if err != nil {
		return wrap(KindPersistence, err, "failed to delete interview")
	}

	if err := s.sessions.DeleteByInterviewID(ctx, id); err != nil {
		pf := wrap(KindPartialFailure, err, "interview deleted but session cleanup failed")
		s.logger.Error("partial failure on interview delete",
			zap.String("interview_id", id),
			zap.Error(pf))
	}
	if iv.ResumeURL != "" {
		if err := s.uploader.Delete(ctx, iv.ResumeURL); err != nil {
			s.logger.Warn("resume cleanup failed",
				zap.String("interview_id", id),
				zap.String("url", iv.ResumeURL),
				zap.Error(err))
		}
	}
	return nil
}

// ResultsFeedback is the summary block of the results bundle.
type ResultsFeedback struct {
	OverallScore float64                `json:"overall_score"`
	Dimensions   *model.DimensionScores `json:"dimensions,omitempty"`
	Summary      string                 `json:"summary"`
	Strengths    []string               `json:"strengths"`
	Improvements []string               `json:"improvements"`
}

// Results bundles the interview's summary scores with the full transcript.
type Results struct {
	InterviewID string                  `json:"interview_id"`
	Role        string                  `json:"role"`
	Difficulty  model.Difficulty        `json:"difficulty"`
	Feedback    ResultsFeedback         `json:"feedback"`
	Session     *model.InterviewSession `json:"session"`
}

// GetResults returns the results bundle for a completed interview.
func (s *InterviewService) GetResults(ctx context.Context, id, userID string) (*Results, error) {
	iv, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if iv.Status != model.StatusCompleted {
		return nil, Errf(KindInvalidState, "interview not yet completed")
	}
	sess, err := s.GetSession(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	res := &Results{
		InterviewID: iv.ID,
		Role:        iv.Role,
		Difficulty:  iv.Difficulty,
		Feedback: ResultsFeedback{
			OverallScore: iv.OverallScore,
			Dimensions:   iv.Dimensions,
		},
		Session: sess,
	}
	if iv.Feedback != nil {
		res.Feedback.Summary = iv.Feedback.Summary
		res.Feedback.Strengths = iv.Feedback.Strengths
		res.Feedback.Improvements = iv.Feedback.Improvements
	}
	return res, nil
}

// skillAverages folds per-question evaluations into a per-skill mean map.
func skillAverages(evals []model.Evaluation) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, e := range evals {
		if e.Skill == "" {
			continue
		}
		sums[e.Skill] += e.Score
		counts[e.Skill]++
	}
	if len(sums) == 0 {
		return nil
	}
	out := make(map[string]float64, len(sums))
	for skill, sum := range sums {
		out[skill] = sum / float64(counts[skill])
	}
	return out
}
