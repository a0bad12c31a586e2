package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	MessageTooLarge = "Upload too large. Please use a smaller image."
	MessageInternal = "Sorry! Something went wrong."
)

// StorageErrors answers requests whose handler pushed an error with
// c.Error and wrote nothing. Constraint violations become 4xx, oversized
// bodies 413, and everything else a generic 500. Details are only logged.
func StorageErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		status, message := ClassifyError(c.Errors.Last().Err)
		c.String(status, message)
	}
}

// ClassifyError maps a propagated error to a status and a client-safe message.
func ClassifyError(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, MessageTooLarge
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return http.StatusConflict, "Already exists."
		case "23503":
			return http.StatusBadRequest, "Referenced record does not exist."
		case "23502":
			return http.StatusBadRequest, "Missing required value."
		case "22P02":
			return http.StatusBadRequest, "Invalid input syntax."
		}
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict, "Already exists."
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusBadRequest, "Referenced record does not exist."
	}

	// SQLite drivers without error translation only expose the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return http.StatusConflict, "Already exists."
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return http.StatusBadRequest, "Referenced record does not exist."
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return http.StatusBadRequest, "Missing required value."
	}

	return http.StatusInternalServerError, MessageInternal
}
