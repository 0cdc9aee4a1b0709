package ingestion

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	httperr "github.com/scriptoria-lab/project-scriptoria/internal/core/errors"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/storage"
)

// createPostRequest is the accepted-post notification from the posting flow.
// post_id is optional: absent means "mint one", present means "deduplicate
// on it" (retried deliveries are expected).
type createPostRequest struct {
	UserID        string    `json:"userId" binding:"required"`
	PostID        string    `json:"postId"`
	BoardID       string    `json:"boardId" binding:"required"`
	ContentLength int       `json:"contentLength" binding:"min=0"`
	CreatedAt     time.Time `json:"createdAt"`
}

// HandleCreatePost handles POST /v1/posts.
func (s *Service) HandleCreatePost(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(s.maxBodySizeBytes))

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid request body",
			Details:   err.Error(),
		})
		return
	}

	evt, err := s.appendPost(c.Request.Context(), &req)
	if errors.Is(err, storage.ErrDuplicate) {
		c.JSON(http.StatusConflict, httperr.ErrorResponse{
			ErrorType: httperr.HttpDuplicateEvent,
			Message:   "Post already recorded",
		})
		return
	}
	if err != nil {
		slog.Error("Failed to append post event",
			"user_id", req.UserID,
			"error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to record post",
		})
		return
	}

	slog.Info("Recorded post",
		"user_id", evt.UserID,
		"seq", evt.Seq,
		"day_key", evt.DayKey,
		"board_id", evt.PostCreated.BoardID)

	c.JSON(http.StatusAccepted, gin.H{
		"status": "accepted",
		"seq":    evt.Seq,
		"dayKey": evt.DayKey,
	})
}
