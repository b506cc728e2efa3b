package application

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/hitbridge/traffic-exchange/internal/domain/entity"
	repo "github.com/hitbridge/traffic-exchange/internal/domain/repository"
)

var (
	// ErrNotFound means the identifier has no matching record.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the record exists but belongs to another user.
	// Handlers must keep it distinguishable from ErrNotFound.
	ErrForbidden = errors.New("not authorized")
)

// DefaultHitReward is the points credited per registered hit unless
// overridden in configuration.
const DefaultHitReward = 2

// ExchangeService owns sessions, URLs, stats and the hit-registration
// protocol.
type ExchangeService struct {
	Users    repo.UserRepository
	Sessions repo.SessionRepository
	Urls     repo.UrlRepository

	// Reward is the points-per-hit policy value.
	Reward int

	Restarter *Restarter
	Logger    *logrus.Logger
}

func NewExchangeService(users repo.UserRepository, sessions repo.SessionRepository, urls repo.UrlRepository, reward int, restarter *Restarter, logger *logrus.Logger) *ExchangeService {
	if reward <= 0 {
		reward = DefaultHitReward
	}
	return &ExchangeService{
		Users:     users,
		Sessions:  sessions,
		Urls:      urls,
		Reward:    reward,
		Restarter: restarter,
		Logger:    logger,
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ownedSession loads a session and enforces ownership. Absence and foreign
// ownership stay distinct errors.
func (s *ExchangeService) ownedSession(userID, id int) (*entity.Session, error) {
	sess, err := s.Sessions.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if sess.UserID != userID {
		return nil, ErrForbidden
	}
	return sess, nil
}

func (s *ExchangeService) ownedUrl(userID, id int) (*entity.Url, error) {
	u, err := s.Urls.GetByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if u.UserID != userID {
		return nil, ErrForbidden
	}
	return u, nil
}

// --- Sessions ---

func (s *ExchangeService) ListSessions(userID int) ([]*entity.Session, error) {
	return s.Sessions.ListByUser(userID)
}

type CreateSessionInput struct {
	Proxy       string
	ProxyConfig string
	Note        string
}

// CreateSession creates a session for the user; the client identifier is
// copied from the owner.
func (s *ExchangeService) CreateSession(userID int, in CreateSessionInput) (*entity.Session, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	sess := &entity.Session{
		UserID:      u.ID,
		ClientID:    u.ClientID,
		Proxy:       in.Proxy,
		ProxyConfig: in.ProxyConfig,
		Note:        in.Note,
	}
	if err := s.Sessions.Create(sess); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"session_id": sess.ID, "user_id": u.ID}).Info("session created")
	}
	return sess, nil
}

// SetSessionStatus writes an arbitrary status. It does not touch the active
// flag, so callers can leave a session with status Ready while inactive.
func (s *ExchangeService) SetSessionStatus(userID, id int, status string) error {
	if _, err := s.ownedSession(userID, id); err != nil {
		return err
	}
	return mapNotFound(s.Sessions.SetStatus(id, status))
}

// SetSessionActive toggles exchange mode. A pending restart for the session
// is cancelled first so it cannot overwrite the new state later.
func (s *ExchangeService) SetSessionActive(userID, id int, active bool) error {
	if _, err := s.ownedSession(userID, id); err != nil {
		return err
	}
	if s.Restarter != nil {
		s.Restarter.Cancel(id)
	}
	return mapNotFound(s.Sessions.SetActive(id, active))
}

// RestartSession marks the session Restarting and schedules the settle back
// to its pre-restart activity state.
func (s *ExchangeService) RestartSession(userID, id int) error {
	sess, err := s.ownedSession(userID, id)
	if err != nil {
		return err
	}
	if err := s.Sessions.SetStatus(id, entity.StatusRestarting); err != nil {
		return mapNotFound(err)
	}
	if s.Restarter != nil {
		s.Restarter.Schedule(id, sess.Active)
	}
	return nil
}

// --- URLs ---

func (s *ExchangeService) ListUrls(userID int) ([]*entity.Url, error) {
	return s.Urls.ListByUser(userID)
}

// CreateUrl registers an exchange target. Input shape is validated at the
// API boundary; the store applies the minVisitTime default.
func (s *ExchangeService) CreateUrl(userID int, rawURL string, minVisitTime int) (*entity.Url, error) {
	u := &entity.Url{
		UserID:       userID,
		URL:          rawURL,
		MinVisitTime: minVisitTime,
	}
	if err := s.Urls.Create(u); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"url_id": u.ID, "user_id": userID}).Info("url created")
	}
	return u, nil
}

func (s *ExchangeService) SetUrlActive(userID, id int, active bool) error {
	if _, err := s.ownedUrl(userID, id); err != nil {
		return err
	}
	return mapNotFound(s.Urls.SetActive(id, active))
}

func (s *ExchangeService) DeleteUrl(userID, id int) error {
	if _, err := s.ownedUrl(userID, id); err != nil {
		return err
	}
	return mapNotFound(s.Urls.Delete(id))
}

// --- Stats ---

type Stats struct {
	TotalHits       int `json:"totalHits"`
	AvailablePoints int `json:"availablePoints"`
	ActiveSessions  int `json:"activeSessions"`
	ActiveUrls      int `json:"activeUrls"`
}

func (s *ExchangeService) GetStats(userID int) (*Stats, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	sessions, err := s.Sessions.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	urls, err := s.Urls.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	st := &Stats{TotalHits: u.Hits, AvailablePoints: u.Points}
	for _, sess := range sessions {
		if sess.Active {
			st.ActiveSessions++
		}
	}
	for _, url := range urls {
		if url.Active {
			st.ActiveUrls++
		}
	}
	return st, nil
}

// --- Hit registration ---

// RegisterHit records one simulated visit linking a session and a URL and
// moves the reward from the URL's point budget to the visiting user.
//
// The caller's ownership of the session is enforced; URL ownership is
// deliberately not re-verified. Both records must exist before any counter
// moves, so a failed lookup mutates nothing. The increments themselves are
// independent atomic store operations with no cross-entity rollback.
func (s *ExchangeService) RegisterHit(userID, sessionID, urlID int) (int, error) {
	sess, err := s.Sessions.GetByID(sessionID)
	if err != nil {
		return 0, mapNotFound(err)
	}
	if sess.UserID != userID {
		return 0, ErrForbidden
	}
	url, err := s.Urls.GetByID(urlID)
	if err != nil {
		return 0, mapNotFound(err)
	}

	if err := s.Sessions.AddHits(sess.ID, 1); err != nil {
		return 0, err
	}
	if err := s.Urls.AddHits(url.ID, 1); err != nil {
		return 0, err
	}
	if err := s.Urls.AddTodayHits(url.ID, 1); err != nil {
		return 0, err
	}
	if err := s.Users.AddHits(userID, 1); err != nil {
		return 0, err
	}

	reward := s.Reward
	if err := s.Sessions.AddPoints(sess.ID, reward); err != nil {
		return 0, err
	}
	if err := s.Users.AddPoints(userID, reward); err != nil {
		return 0, err
	}
	if err := s.Urls.AddPointsUsed(url.ID, reward); err != nil {
		return 0, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"session_id": sess.ID,
			"url_id":     url.ID,
			"user_id":    userID,
			"reward":     reward,
		}).Debug("hit registered")
	}
	return reward, nil
}
