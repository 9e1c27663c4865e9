package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestValidateMoneyAmount(t *testing.T) {
	valid := []string{"0", "1", "100.50", "0.0001", "123456789.9999"}
	invalid := []string{"", "-1", "abc", "1.", ".5", "1.23456", "10,50", "1e5", "+5"}

	for _, s := range valid {
		assert.True(t, moneyPattern.MatchString(s), "expected %q to be valid", s)
	}
	for _, s := range invalid {
		assert.False(t, moneyPattern.MatchString(s), "expected %q to be invalid", s)
	}
}

func TestParsePageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	parseVia := func(url string) (PageParams, bool, *httptest.ResponseRecorder) {
		var params PageParams
		var ok bool

		router := gin.New()
		router.GET("/test", func(c *gin.Context) {
			params, ok = ParsePageParams(c, 50)
			if ok {
				c.Status(http.StatusOK)
			}
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
		return params, ok, w
	}

	t.Run("Defaults", func(t *testing.T) {
		params, ok, _ := parseVia("/test")
		assert.True(t, ok)
		assert.Equal(t, 50, params.Limit)
		assert.Equal(t, 0, params.Offset)
	})

	t.Run("Explicit", func(t *testing.T) {
		params, ok, _ := parseVia("/test?limit=10&offset=30")
		assert.True(t, ok)
		assert.Equal(t, 10, params.Limit)
		assert.Equal(t, 30, params.Offset)
	})

	t.Run("NonNumericLimit", func(t *testing.T) {
		_, ok, w := parseVia("/test?limit=ten")
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("NonNumericOffset", func(t *testing.T) {
		_, ok, w := parseVia("/test?offset=1.5")
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("RangeIsNotCheckedHere", func(t *testing.T) {
		// Out-of-range values pass; the use case layer rejects them.
		params, ok, _ := parseVia("/test?limit=500&offset=-1")
		assert.True(t, ok)
		assert.Equal(t, 500, params.Limit)
		assert.Equal(t, -1, params.Offset)
	})
}

func TestHandleValidationErrors_FieldNamesUseJSONTags(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	type payload struct {
		ToWalletID string `json:"to_wallet_id" binding:"required"`
	}

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req payload
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	// The detail names the json tag, not the Go field
	assert.Contains(t, w.Body.String(), "to_wallet_id")
	assert.NotContains(t, w.Body.String(), "ToWalletID")
}
