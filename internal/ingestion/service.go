// Package ingestion is the append side of the activity log: it turns
// accepted posts into PostCreated events. The projection engine only ever
// reads what this package writes.
package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	v1 "github.com/scriptoria-lab/project-scriptoria/internal/api/v1"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/storage"
)

type Service struct {
	store            storage.EventStore
	profiles         storage.ProfileStore
	defaultTimezone  string
	maxBodySizeBytes int
	nowFn            func() time.Time
}

func NewService(store storage.EventStore, profiles storage.ProfileStore, defaultTimezone string, maxBodySizeMB int) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if profiles == nil {
		panic("ingestion: profiles must not be nil")
	}
	if defaultTimezone == "" {
		defaultTimezone = "UTC"
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		profiles:         profiles,
		defaultTimezone:  defaultTimezone,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/posts", s.HandleCreatePost)
}

// appendPost stamps the event envelope and appends it to the log.
// The day key is computed once here, in the author's timezone, and never
// recomputed downstream.
func (s *Service) appendPost(ctx context.Context, req *createPostRequest) (*v1.Event, error) {
	loc, err := s.resolveLocation(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	createdAt := req.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.nowFn()
	}

	postID := req.PostID
	if postID == "" {
		postID = uuid.NewString()
	}

	evt := &v1.Event{
		UserID:    req.UserID,
		Type:      v1.TypePostCreated,
		CreatedAt: createdAt,
		DayKey:    calendar.Compute(createdAt, loc),
		PostCreated: &v1.PostCreated{
			PostID:        postID,
			BoardID:       req.BoardID,
			ContentLength: req.ContentLength,
		},
	}
	if err := evt.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.SaveEvent(ctx, evt); err != nil {
		return nil, err
	}
	return evt, nil
}

func (s *Service) resolveLocation(ctx context.Context, userID string) (*time.Location, error) {
	tz, err := s.profiles.ReadTimezone(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		tz = s.defaultTimezone
	} else if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		slog.Warn("Invalid profile timezone, using default",
			"user_id", userID,
			"timezone", tz,
			"error", err)
		return time.LoadLocation(s.defaultTimezone)
	}
	return loc, nil
}
