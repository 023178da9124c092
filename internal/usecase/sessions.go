package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"resume-builder/internal/domain"
	"resume-builder/internal/editor"
	"resume-builder/internal/metrics"
)

const persistTimeout = 10 * time.Second

// Session is one open editor for a resume.
type Session struct {
	ResumeID uuid.UUID
	UserID   uuid.UUID
	Store    *editor.Store

	stop func()
}

// Sessions keeps editor stores in memory while they are in use. A
// session expires after the idle TTL; every commit in it is saved through
// the resume service before it is published.
type Sessions struct {
	svc   *ResumeService
	cache *gocache.Cache
	log   zerolog.Logger
	ttl   time.Duration

	mu sync.Mutex
}

func NewSessions(svc *ResumeService, ttl time.Duration, log zerolog.Logger) *Sessions {
	s := &Sessions{
		svc:   svc,
		cache: gocache.New(ttl, ttl/2),
		log:   log.With().Str("component", "sessions").Logger(),
		ttl:   ttl,
	}
	s.cache.OnEvicted(func(key string, v interface{}) {
		if sess, ok := v.(*Session); ok {
			sess.stop()
		}
		metrics.OpenSessions.Dec()
		s.log.Debug().Str("resume_id", key).Msg("session closed")
	})
	svc.OnWrite(s.Close)
	return s
}

// Open returns the live session for a resume, loading it on first use.
// Locked resumes cannot be edited.
func (s *Sessions) Open(ctx context.Context, userID, resumeID uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := resumeID.String()
	if v, ok := s.cache.Get(key); ok {
		sess := v.(*Session)
		if sess.UserID != userID {
			return nil, domain.ErrNotFound
		}
		// slide the idle deadline
		s.cache.SetDefault(key, sess)
		return sess, nil
	}

	res, err := s.svc.Get(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	if res.IsLocked {
		return nil, domain.ErrLocked
	}

	sess := &Session{ResumeID: resumeID, UserID: userID}
	sess.Store = editor.New(res.Data, editor.WithPrecommit(s.persist(sess)))
	sess.stop = sess.Store.Subscribe(func(editor.Snapshot) { metrics.DraftCommits.Inc() })
	s.cache.SetDefault(key, sess)
	metrics.OpenSessions.Inc()
	s.log.Debug().Str("resume_id", key).Msg("session opened")
	return sess, nil
}

// Close drops the session of a resume. The resume service calls it after
// writes that bypass the editor, e.g. a full save, lock or delete.
func (s *Sessions) Close(resumeID uuid.UUID) {
	s.cache.Delete(resumeID.String())
}

func (s *Sessions) Len() int {
	return s.cache.ItemCount()
}

// persist saves the next state of sess before the editor publishes it.
// A failed save, e.g. because the resume got locked, fails the commit.
func (s *Sessions) persist(sess *Session) editor.Precommit {
	return func(next editor.Snapshot) error {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.svc.Save(ctx, sess.UserID, sess.ResumeID, next.Data); err != nil {
			metrics.PersistFailures.Inc()
			s.log.Warn().Err(err).
				Str("resume_id", sess.ResumeID.String()).
				Uint64("version", next.Version).
				Msg("unable to save draft")
			return err
		}
		return nil
	}
}
