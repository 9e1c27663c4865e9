// Package handlers - History HTTP handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Haleralex/walletflow/internal/adapters/http/common"
	"github.com/Haleralex/walletflow/internal/application/dtos"
	"github.com/Haleralex/walletflow/internal/application/usecases/history"
)

// ============================================
// Use Case Interfaces
// ============================================

// GetWalletHistoryUseCase reads the event history of one wallet.
type GetWalletHistoryUseCase interface {
	Execute(ctx context.Context, query dtos.GetWalletHistoryQuery) (*dtos.WalletHistoryDTO, error)
}

// GetUserActivityUseCase reads the event history across all wallets of
// a user.
type GetUserActivityUseCase interface {
	Execute(ctx context.Context, query dtos.GetUserActivityQuery) (*dtos.UserActivityDTO, error)
}

// ============================================
// History Handler
// ============================================

// HistoryHandler serves the read-only history REST API.
type HistoryHandler struct {
	getWalletHistory GetWalletHistoryUseCase
	getUserActivity  GetUserActivityUseCase
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(
	getWalletHistory GetWalletHistoryUseCase,
	getUserActivity GetUserActivityUseCase,
) *HistoryHandler {
	return &HistoryHandler{
		getWalletHistory: getWalletHistory,
		getUserActivity:  getUserActivity,
	}
}

// ============================================
// HTTP Handlers
// ============================================

// GetWalletHistory handles GET /history/wallets/:id.
func (h *HistoryHandler) GetWalletHistory(c *gin.Context) {
	var params WalletIDParam
	if !BindURI(c, &params) {
		return
	}

	page, ok := ParsePageParams(c, history.DefaultPageLimit)
	if !ok {
		return
	}

	result, err := h.getWalletHistory.Execute(c.Request.Context(), dtos.GetWalletHistoryQuery{
		WalletID: params.ID,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetUserActivity handles GET /history/users/:id.
func (h *HistoryHandler) GetUserActivity(c *gin.Context) {
	var params UserIDParam
	if !BindURI(c, &params) {
		return
	}

	page, ok := ParsePageParams(c, history.DefaultPageLimit)
	if !ok {
		return
	}

	result, err := h.getUserActivity.Execute(c.Request.Context(), dtos.GetUserActivityQuery{
		UserID: params.ID,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RegisterRoutes wires the history routes.
//
// Routes:
//   - GET /history/wallets/:id - Event history of one wallet
//   - GET /history/users/:id   - Event history across a user's wallets
func (h *HistoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	historyGroup := router.Group("/history")
	{
		historyGroup.GET("/wallets/:id", h.GetWalletHistory)
		historyGroup.GET("/users/:id", h.GetUserActivity)
	}
}
