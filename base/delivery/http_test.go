package delivery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/gavelhouse/goapi/domain"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMakeJsonRespSuccess(t *testing.T) {
	c, rec := newTestContext()

	assert.NoError(t, MakeJsonResp(c, http.StatusOK, map[string]int{"count": 3}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"count":3},"status":"success"}`, rec.Body.String())
}

func TestMakeJsonRespFail(t *testing.T) {
	c, rec := newTestContext()

	assert.NoError(t, MakeJsonResp(c, http.StatusBadRequest, "invalid params"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"data":"invalid params","status":"fail"}`, rec.Body.String())
}

func TestMakeJsonRespCoercesNotFound(t *testing.T) {
	c, rec := newTestContext()

	assert.NoError(t, MakeJsonResp(c, http.StatusInternalServerError, domain.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"data":"Your requested Item is not found","status":"fail"}`, rec.Body.String())
}
