package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestExtractParamsMergesQueryAndForm(t *testing.T) {
	gin.SetMode(gin.TestMode)

	form := url.Values{}
	form.Set("status", "failure")
	form.Set("error", "payment_cancelled")
	form.Set("hash", "abc")
	req := httptest.NewRequest(http.MethodPost, "/cb?txnid=don-1&amount=100.00", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	params := extractParams(c)
	assert.Equal(t, "don-1", params["txnid"])
	assert.Equal(t, "100.00", params["amount"])
	assert.Equal(t, "failure", params["status"])
	assert.Equal(t, "payment_cancelled", params["error"])
	assert.Equal(t, "abc", params["hash"])
}

func TestExtractParamsGetOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodGet, "/cb?txnid=don-2&status=success", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	params := extractParams(c)
	assert.Equal(t, "don-2", params["txnid"])
	assert.Equal(t, "success", params["status"])
}
