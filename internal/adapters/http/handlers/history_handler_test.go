package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/walletflow/internal/application/dtos"
	"github.com/Haleralex/walletflow/internal/application/usecases/history"
	domerrors "github.com/Haleralex/walletflow/internal/domain/errors"
)

type mockGetWalletHistoryUseCase struct {
	ExecuteFn func(ctx context.Context, query dtos.GetWalletHistoryQuery) (*dtos.WalletHistoryDTO, error)
}

func (m *mockGetWalletHistoryUseCase) Execute(ctx context.Context, query dtos.GetWalletHistoryQuery) (*dtos.WalletHistoryDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, query)
	}
	return nil, nil
}

type mockGetUserActivityUseCase struct {
	ExecuteFn func(ctx context.Context, query dtos.GetUserActivityQuery) (*dtos.UserActivityDTO, error)
}

func (m *mockGetUserActivityUseCase) Execute(ctx context.Context, query dtos.GetUserActivityQuery) (*dtos.UserActivityDTO, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, query)
	}
	return nil, nil
}

func setupHistoryTestRouter(walletHistory *mockGetWalletHistoryUseCase, userActivity *mockGetUserActivityUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetupValidator()
	router := gin.New()
	NewHistoryHandler(walletHistory, userActivity).RegisterRoutes(router.Group(""))
	return router
}

func TestHistoryHandler_GetWalletHistory(t *testing.T) {
	walletID := uuid.NewString()

	t.Run("DefaultPagination", func(t *testing.T) {
		var captured dtos.GetWalletHistoryQuery
		mock := &mockGetWalletHistoryUseCase{
			ExecuteFn: func(ctx context.Context, query dtos.GetWalletHistoryQuery) (*dtos.WalletHistoryDTO, error) {
				captured = query
				return &dtos.WalletHistoryDTO{
					WalletID: query.WalletID,
					Events:   []dtos.HistoryEventDTO{},
					Total:    0,
					Limit:    query.Limit,
					Offset:   query.Offset,
				}, nil
			},
		}
		router := setupHistoryTestRouter(mock, &mockGetUserActivityUseCase{})

		w := get(router, "/history/wallets/"+walletID)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, history.DefaultPageLimit, captured.Limit)
		assert.Equal(t, 0, captured.Offset)
		assert.Equal(t, walletID, captured.WalletID)
	})

	t.Run("ExplicitPagination", func(t *testing.T) {
		var captured dtos.GetWalletHistoryQuery
		mock := &mockGetWalletHistoryUseCase{
			ExecuteFn: func(ctx context.Context, query dtos.GetWalletHistoryQuery) (*dtos.WalletHistoryDTO, error) {
				captured = query
				return &dtos.WalletHistoryDTO{WalletID: query.WalletID, Events: []dtos.HistoryEventDTO{}}, nil
			},
		}
		router := setupHistoryTestRouter(mock, &mockGetUserActivityUseCase{})

		w := get(router, "/history/wallets/"+walletID+"?limit=10&offset=20")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 10, captured.Limit)
		assert.Equal(t, 20, captured.Offset)
	})

	t.Run("NonNumericLimit", func(t *testing.T) {
		router := setupHistoryTestRouter(&mockGetWalletHistoryUseCase{}, &mockGetUserActivityUseCase{})

		w := get(router, "/history/wallets/"+walletID+"?limit=abc")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "limit")
	})

	t.Run("OutOfRangeLimit", func(t *testing.T) {
		mock := &mockGetWalletHistoryUseCase{
			ExecuteFn: func(ctx context.Context, query dtos.GetWalletHistoryQuery) (*dtos.WalletHistoryDTO, error) {
				return nil, domerrors.ValidationError{Field: "limit", Message: "must be between 1 and 100"}
			},
		}
		router := setupHistoryTestRouter(mock, &mockGetUserActivityUseCase{})

		w := get(router, "/history/wallets/"+walletID+"?limit=500")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("ResponseBody", func(t *testing.T) {
		mock := &mockGetWalletHistoryUseCase{
			ExecuteFn: func(ctx context.Context, query dtos.GetWalletHistoryQuery) (*dtos.WalletHistoryDTO, error) {
				return &dtos.WalletHistoryDTO{
					WalletID: walletID,
					Events: []dtos.HistoryEventDTO{
						{WalletID: walletID, UserID: "user-1", Amount: "10.0000", EventType: "WALLET_FUNDED", EventData: json.RawMessage(`{}`)},
					},
					Total:  42,
					Limit:  50,
					Offset: 0,
				}, nil
			},
		}
		router := setupHistoryTestRouter(mock, &mockGetUserActivityUseCase{})

		w := get(router, "/history/wallets/"+walletID)

		assert.Equal(t, http.StatusOK, w.Code)

		var body dtos.WalletHistoryDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 42, body.Total)
		require.Len(t, body.Events, 1)
		assert.Equal(t, "WALLET_FUNDED", body.Events[0].EventType)
	})
}

func TestHistoryHandler_GetUserActivity(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var captured dtos.GetUserActivityQuery
		mock := &mockGetUserActivityUseCase{
			ExecuteFn: func(ctx context.Context, query dtos.GetUserActivityQuery) (*dtos.UserActivityDTO, error) {
				captured = query
				return &dtos.UserActivityDTO{UserID: query.UserID, Events: []dtos.HistoryEventDTO{}}, nil
			},
		}
		router := setupHistoryTestRouter(&mockGetWalletHistoryUseCase{}, mock)

		w := get(router, "/history/users/user-1?limit=5")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", captured.UserID)
		assert.Equal(t, 5, captured.Limit)
	})

	t.Run("NonNumericOffset", func(t *testing.T) {
		router := setupHistoryTestRouter(&mockGetWalletHistoryUseCase{}, &mockGetUserActivityUseCase{})

		w := get(router, "/history/users/user-1?offset=x")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "offset")
	})
}
