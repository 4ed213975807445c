package service

import (
	"time"

	"chat-powered-ecommerce/backend/internal/models"
	"chat-powered-ecommerce/backend/internal/repository"
	"chat-powered-ecommerce/backend/pkg/logger"
)

// SessionService owns the open/closed lifecycle of login sessions. A user
// moves from no session to open on login and from open to closed on logout;
// a closed session is never reopened, a fresh login inserts a new row.
type SessionService struct {
	repo repository.SessionRepository
	log  *logger.Logger
}

// NewSessionService creates a new session service
func NewSessionService(repo repository.SessionRepository, log *logger.Logger) *SessionService {
	if log == nil {
		log = logger.GetGlobal()
	}
	return &SessionService{repo: repo, log: log}
}

// Open starts a new session for the user. It deliberately does not close or
// reject an already-open session; whether stale open sessions should be
// reaped at login is unresolved, so the overlap is only logged.
func (s *SessionService) Open(userID uint) (*models.Session, error) {
	if open, err := s.repo.OpenCount(userID); err == nil && open > 0 {
		s.log.Warn("opening session while another is still open",
			"user_id", userID,
			"open_sessions", open,
		)
	}

	session := &models.Session{
		UserID:    userID,
		StartedAt: time.Now(),
	}
	if err := s.repo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetOpen returns the user's current open session, newest first when several
// overlap. Returns repository.ErrNoOpenSession when none is open.
func (s *SessionService) GetOpen(userID uint) (*models.Session, error) {
	return s.repo.OpenByUser(userID)
}

// Close ends the user's newest open session. Closing when nothing is open is
// a no-op, not an error.
func (s *SessionService) Close(userID uint) error {
	affected, err := s.repo.CloseOpen(userID, time.Now())
	if err != nil {
		return err
	}
	if affected == 0 {
		s.log.Debug("logout with no open session", "user_id", userID)
	}
	return nil
}
