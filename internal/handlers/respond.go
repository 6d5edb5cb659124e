package handlers

import (
	"errors"
	"net/http"

	"teamboard-be/internal/models"
	"teamboard-be/internal/services"
	"teamboard-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// errorBody maps a domain error to the HTTP status and error code the client
// sees. Unknown errors become an opaque 500.
func errorBody(err error) (int, models.ErrorResponse) {
	var status int
	var code string

	switch {
	case errors.Is(err, services.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, services.ErrForbidden):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, services.ErrUserNotFound):
		status, code = http.StatusNotFound, "USER_NOT_FOUND"
	case errors.Is(err, services.ErrTeamNotFound):
		status, code = http.StatusNotFound, "TEAM_NOT_FOUND"
	case errors.Is(err, services.ErrBoardNotFound):
		status, code = http.StatusNotFound, "BOARD_NOT_FOUND"
	case errors.Is(err, services.ErrColumnNotFound):
		status, code = http.StatusNotFound, "COLUMN_NOT_FOUND"
	case errors.Is(err, services.ErrCardNotFound):
		status, code = http.StatusNotFound, "CARD_NOT_FOUND"
	case errors.Is(err, services.ErrProjectNotFound):
		status, code = http.StatusNotFound, "PROJECT_NOT_FOUND"
	case errors.Is(err, services.ErrCrossBoardMove):
		status, code = http.StatusBadRequest, "INVALID_TARGET"
	case errors.Is(err, services.ErrNoFields):
		status, code = http.StatusBadRequest, "NO_FIELDS"
	case errors.Is(err, utils.ErrInvalidDate):
		status, code = http.StatusBadRequest, "INVALID_DATE"
	case errors.Is(err, services.ErrNameTaken):
		status, code = http.StatusConflict, "NAME_EXISTS"
	case errors.Is(err, services.ErrCodeTaken):
		status, code = http.StatusConflict, "CODE_EXISTS"
	case errors.Is(err, services.ErrLoginIDTaken):
		status, code = http.StatusConflict, "USER_EXISTS"
	case errors.Is(err, services.ErrAlreadyJoined):
		status, code = http.StatusConflict, "ALREADY_JOINED"
	default:
		return http.StatusInternalServerError, models.ErrorResponse{
			Code:    "SERVER_ERROR",
			Message: "internal server error",
		}
	}

	return status, models.ErrorResponse{Code: code, Message: err.Error()}
}

func respondError(c *gin.Context, err error) {
	status, body := errorBody(err)
	c.JSON(status, body)
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: err.Error(),
	})
}

// requesterID returns the authenticated user id put in the context by the
// auth middleware.
func requesterID(c *gin.Context) string {
	id, _ := c.Get("userID")
	s, _ := id.(string)
	return s
}
