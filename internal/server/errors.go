package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tournevent/courierdz/pkg/courier"
	"github.com/tournevent/courierdz/pkg/courier/validation"
	"go.uber.org/zap"
)

var kindStatus = map[courier.Kind]int{
	courier.KindInvalidProvider:      http.StatusNotFound,
	courier.KindCredentials:          http.StatusBadRequest,
	courier.KindValidation:           http.StatusUnprocessableEntity,
	courier.KindCreateOrder:          http.StatusUnprocessableEntity,
	courier.KindTrackingIDNotFound:   http.StatusNotFound,
	courier.KindFunctionNotSupported: http.StatusNotImplemented,
	courier.KindNotImplemented:       http.StatusNotImplemented,
	courier.KindHTTP:                 http.StatusBadGateway,
}

// StatusFor returns the HTTP status the gateway answers for err.
func StatusFor(err error) int {
	if status, ok := kindStatus[courier.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Kind     string              `json:"kind"`
	Message  string              `json:"message"`
	Provider string              `json:"provider,omitempty"`
	Fields   map[string][]string `json:"fields,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (s *Server) writeError(c *gin.Context, err error) {
	body := errorBody{Kind: "INTERNAL", Message: err.Error()}

	var ce *courier.CourierError
	if errors.As(err, &ce) {
		body.Kind = string(ce.Kind)
		body.Message = ce.Message
		body.Provider = ce.Provider
		c.Set(errorKindKey, ce.Kind)
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		body.Fields = fields
	}

	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Ctx(c.Request.Context()).Error("Provider call failed",
			zap.String("provider", c.Param("provider")),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: body})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: errorBody{
		Kind:    "BAD_REQUEST",
		Message: msg,
	}})
}
