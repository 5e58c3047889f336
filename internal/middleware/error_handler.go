package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/payment-config-service/internal/apperr"
	"github.com/anyulbade/payment-config-service/internal/dto"
)

func MapDBError(err error) (int, dto.ErrorResponse, bool) {
	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, dto.ErrorResponse{Error: "resource not found", Code: "NOT_FOUND"}, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return http.StatusConflict, dto.ErrorResponse{
				Error:   "resource already exists",
				Code:    "ALREADY_EXISTS",
				Details: pgErr.Detail,
			}, true
		case "23503": // foreign_key_violation
			return http.StatusBadRequest, dto.ErrorResponse{
				Error:   "referenced resource does not exist",
				Code:    "REFERENCE_MISSING",
				Details: pgErr.Detail,
			}, true
		case "23514": // check_violation
			return http.StatusBadRequest, dto.ErrorResponse{
				Error:   "constraint violation",
				Code:    "CONSTRAINT_VIOLATION",
				Details: pgErr.Detail,
			}, true
		case "23P01": // exclusion_violation
			return http.StatusConflict, dto.ErrorResponse{
				Error:   "overlapping resource",
				Code:    "OVERLAP",
				Details: pgErr.Detail,
			}, true
		}
	}
	return 0, dto.ErrorResponse{}, false
}

// MapError turns any error a handler recorded into a status and body. bind
// marks errors raised while decoding the request.
func MapError(err error, bind bool) (int, dto.ErrorResponse) {
	if e, ok := apperr.As(err); ok {
		if e.Kind == apperr.KindInternal {
			log.Error().Err(err).Str("code", e.Code).Interface("meta", e.Meta).Msg("internal error")
		}
		return e.HTTPStatus(), dto.ErrorResponse{Error: e.Message, Code: e.Code, Meta: e.Meta}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Namespace() + ": " + fe.Tag()
		}
		return http.StatusBadRequest, dto.ErrorResponse{
			Error: "validation failed",
			Code:  "VALIDATION_FAILED",
			Meta:  map[string]any{"fields": fields},
		}
	}

	if bind {
		return http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		}
	}

	if status, resp, ok := MapDBError(err); ok {
		return status, resp
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error", Code: "INTERNAL"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		last := c.Errors.Last()
		status, resp := MapError(last.Err, last.IsType(gin.ErrorTypeBind))
		c.JSON(status, resp)
	}
}
