package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yashrajoria/shop-backend/middleware"
	"github.com/yashrajoria/shop-backend/outcome"
	"github.com/yashrajoria/shop-backend/services"
)

// outcomeBody is the JSON shape of an Outcome:
// {"status":"success","data":...}, {"status":"error","message":...} or
// {"status":"loading","loading":...}.
func outcomeBody[T any](o outcome.Outcome[T]) gin.H {
	switch o.Kind() {
	case outcome.KindSuccess:
		return gin.H{"status": "success", "data": o.Data()}
	case outcome.KindError:
		return gin.H{"status": "error", "message": o.Message()}
	default:
		return gin.H{"status": "loading", "loading": o.IsLoading()}
	}
}

// renderOutcome writes the final outcome of a request. Errors keep the
// status of the ServiceError behind them. A stream that ended without a
// result means the request context ran out.
func renderOutcome[T any](c *gin.Context, o outcome.Outcome[T]) {
	status := http.StatusOK
	switch o.Kind() {
	case outcome.KindError:
		status = http.StatusInternalServerError
		var svcErr *services.ServiceError
		if errors.As(o.Err(), &svcErr) {
			status = svcErr.StatusCode
		}
	case outcome.KindLoading:
		status = http.StatusGatewayTimeout
	}
	c.JSON(status, outcomeBody(o))
}

func renderServiceError(c *gin.Context, svcErr *services.ServiceError) {
	body := gin.H{"error": svcErr.Message}
	if len(svcErr.Fields) > 0 {
		body["fields"] = svcErr.Fields
	}
	c.JSON(svcErr.StatusCode, body)
}

func currentUser(c *gin.Context) (string, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
