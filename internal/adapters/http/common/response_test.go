package common

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/Haleralex/walletflow/internal/domain/errors"
)

func performWithError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		HandleDomainError(c, err)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)
	return w
}

func decodeDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Detail
}

func TestHandleDomainError_Validation(t *testing.T) {
	err := domainerrors.ValidationError{Field: "amount", Message: "must be greater than zero"}
	w := performWithError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decodeDetail(t, w), "amount")
}

func TestHandleDomainError_InsufficientBalance(t *testing.T) {
	w := performWithError(t, domainerrors.ErrInsufficientBalance)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(decodeDetail(t, w), "insufficient"),
		"detail must name the insufficient balance")
}

func TestHandleDomainError_Concurrency(t *testing.T) {
	err := domainerrors.NewConcurrencyError("Wallet", "w-1", "funding lost the optimistic race 3 times")
	w := performWithError(t, err)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleDomainError_NotFound(t *testing.T) {
	err := domainerrors.NewDomainError("WALLET_NOT_FOUND", "wallet not found", domainerrors.ErrWalletNotFound)
	w := performWithError(t, err)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "wallet not found", decodeDetail(t, w))
}

func TestHandleDomainError_Unknown(t *testing.T) {
	w := performWithError(t, stderrors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internal details never leak to the client
	assert.NotContains(t, decodeDetail(t, w), "connection reset")
}

func TestFailHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		fn   func(c *gin.Context, detail string)
		code int
	}{
		{"ValidationFailed", ValidationFailed, http.StatusUnprocessableEntity},
		{"NotFound", NotFound, http.StatusNotFound},
		{"Conflict", Conflict, http.StatusConflict},
		{"BadRequest", BadRequest, http.StatusBadRequest},
		{"InternalError", InternalError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", func(c *gin.Context) {
				tc.fn(c, "boom")
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, "boom", decodeDetail(t, w))
		})
	}
}
