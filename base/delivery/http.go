package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gavelhouse/goapi/domain"
	"github.com/gavelhouse/goapi/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

// MakeJsonResp writes data in the response envelope. Errors are rendered as
// their message, not-found errors force a 404 regardless of status
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, query.ErrNotFound) {
			status = http.StatusNotFound
		}
		data = err.Error()
	}

	switch {
	case status >= 400:
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	case status >= 200 && status < 300:
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	default:
		return c.JSON(status, data)
	}
}
