package projection

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	httperr "github.com/scriptoria-lab/project-scriptoria/internal/core/errors"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	// Canonical streak read endpoints.
	r.GET("/v1/streaks/:user_id", s.HandleGetStreak)
	r.GET("/v1/streaks/:user_id/explain", s.HandleExplainStreak)

	// Audit endpoint kept at its historical path; operators have it
	// bookmarked.
	r.GET("/explainUserStreakProjection", s.HandleExplainStreak)
}

// HandleGetStreak handles GET /v1/streaks/:user_id.
// It recomputes the projection from the checkpoint plus delta events.
func (s *Service) HandleGetStreak(c *gin.Context) {
	userID := c.Param("user_id")

	projection, err := s.ComputeUserStreakProjection(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "Failed to compute streak projection")
		return
	}

	c.JSON(http.StatusOK, projection)
}

// HandleExplainStreak handles the audit query.
// Query parameters: uid (or :user_id path param), fromSeq, toSeq, includeEvents.
func (s *Service) HandleExplainStreak(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		userID = c.Query("uid")
	}
	if userID == "" {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "uid query parameter is required",
		})
		return
	}

	req := ExplainRequest{UserID: userID}

	var parseErr error
	req.FromSeq, parseErr = optionalSeqParam(c, "fromSeq")
	if parseErr == nil {
		req.ToSeq, parseErr = optionalSeqParam(c, "toSeq")
	}
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   parseErr.Error(),
		})
		return
	}

	if raw := c.Query("includeEvents"); raw != "" {
		includeEvents, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   "Invalid query parameters",
				Details:   "includeEvents must be a boolean",
			})
			return
		}
		req.IncludeEvents = includeEvents
	}

	resp, err := s.ExplainUserStreakProjection(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, "Failed to explain streak projection")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func optionalSeqParam(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	seq, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.New(name + " must be an integer")
	}
	return &seq, nil
}

func writeServiceError(c *gin.Context, err error, message string) {
	if errors.Is(err, ErrInvalidQuery) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   message,
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   message,
		Details:   err.Error(),
	})
}
