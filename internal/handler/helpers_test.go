package handler

import (
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
)

// serve runs a single handler against a request as if the auth middleware
// had accepted userID. An empty userID leaves the context anonymous.
func serve(h gin.HandlerFunc, method, target, body, userID string, params ...gin.Param) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	if userID != "" {
		c.Set(userIDKey, userID)
	}

	h(c)
	return w
}
