package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/yashrajoria/shop-backend/apperrors"
	applog "github.com/yashrajoria/shop-backend/logger"
	"github.com/yashrajoria/shop-backend/validation"
	"go.uber.org/zap"
)

// ServiceError represents a typed error with an HTTP status code. Fields is
// set when the request failed form validation.
type ServiceError struct {
	StatusCode int
	Message    string
	Fields     validation.Failures
}

func (e *ServiceError) Error() string {
	return e.Message
}

func badRequest(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Message: message}
}

func invalidForm(failures validation.Failures) *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: "Validation failed", Fields: failures}
}

// fromRepo turns a collaborator error into a ServiceError. Not-found,
// conflict and catalog outages keep their status; anything else is logged
// and reported as a 500 with fallback as the message.
func fromRepo(ctx context.Context, base *zap.Logger, err error, fallback string, fields ...zap.Field) *ServiceError {
	logger := applog.For(ctx, base)
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
		return &ServiceError{StatusCode: appErr.Code, Message: appErr.Error()}
	}
	if errors.As(err, &appErr) && appErr.Code == http.StatusBadGateway {
		logger.Warn(fallback, append(fields, zap.Error(err))...)
		return &ServiceError{StatusCode: http.StatusBadGateway, Message: "Product catalog is unavailable"}
	}
	logger.Error(fallback, append(fields, zap.Error(err))...)
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: fallback}
}
