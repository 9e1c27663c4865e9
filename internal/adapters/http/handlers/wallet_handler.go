// Package handlers - Wallet HTTP handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Haleralex/walletflow/internal/adapters/http/common"
	"github.com/Haleralex/walletflow/internal/application/dtos"
)

// ============================================
// Use Case Interfaces
// ============================================

// CreateWalletUseCase creates a wallet.
type CreateWalletUseCase interface {
	Execute(ctx context.Context, cmd dtos.CreateWalletCommand) (*dtos.WalletDTO, error)
}

// FundWalletUseCase credits a wallet.
type FundWalletUseCase interface {
	Execute(ctx context.Context, cmd dtos.FundWalletCommand) (*dtos.WalletDTO, error)
}

// TransferFundsUseCase moves funds between two wallets.
type TransferFundsUseCase interface {
	Execute(ctx context.Context, cmd dtos.TransferFundsCommand) (*dtos.TransferDTO, error)
}

// GetWalletUseCase reads one wallet.
type GetWalletUseCase interface {
	Execute(ctx context.Context, query dtos.GetWalletQuery) (*dtos.WalletDTO, error)
}

// ListUserWalletsUseCase reads all wallets of a user.
type ListUserWalletsUseCase interface {
	Execute(ctx context.Context, query dtos.ListUserWalletsQuery) (*dtos.WalletListDTO, error)
}

// ============================================
// Wallet Handler
// ============================================

// WalletHandler serves the wallet REST API.
type WalletHandler struct {
	createWallet    CreateWalletUseCase
	fundWallet      FundWalletUseCase
	transferFunds   TransferFundsUseCase
	getWallet       GetWalletUseCase
	listUserWallets ListUserWalletsUseCase
}

// NewWalletHandler creates a WalletHandler.
func NewWalletHandler(
	createWallet CreateWalletUseCase,
	fundWallet FundWalletUseCase,
	transferFunds TransferFundsUseCase,
	getWallet GetWalletUseCase,
	listUserWallets ListUserWalletsUseCase,
) *WalletHandler {
	return &WalletHandler{
		createWallet:    createWallet,
		fundWallet:      fundWallet,
		transferFunds:   transferFunds,
		getWallet:       getWallet,
		listUserWallets: listUserWallets,
	}
}

// ============================================
// Request DTOs
// ============================================

// CreateWalletRequest is the body of POST /wallets.
type CreateWalletRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// FundWalletRequest is the body of POST /wallets/:id/fund.
type FundWalletRequest struct {
	Amount string `json:"amount" binding:"required,money_amount"`
}

// TransferFundsRequest is the body of POST /wallets/:id/transfer.
type TransferFundsRequest struct {
	ToWalletID string `json:"to_wallet_id" binding:"required"`
	Amount     string `json:"amount" binding:"required,money_amount"`
}

// WalletIDParam is the wallet id path parameter.
type WalletIDParam struct {
	ID string `uri:"id" binding:"required"`
}

// UserIDParam is the user id path parameter.
type UserIDParam struct {
	ID string `uri:"id" binding:"required"`
}

// ============================================
// HTTP Handlers
// ============================================

// CreateWallet handles POST /wallets.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var req CreateWalletRequest
	if !BindJSON(c, &req) {
		return
	}

	result, err := h.createWallet.Execute(c.Request.Context(), dtos.CreateWalletCommand{
		UserID: req.UserID,
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FundWallet handles POST /wallets/:id/fund.
func (h *WalletHandler) FundWallet(c *gin.Context) {
	var params WalletIDParam
	if !BindURI(c, &params) {
		return
	}

	var req FundWalletRequest
	if !BindJSON(c, &req) {
		return
	}

	result, err := h.fundWallet.Execute(c.Request.Context(), dtos.FundWalletCommand{
		WalletID: params.ID,
		Amount:   req.Amount,
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Transfer handles POST /wallets/:id/transfer. The path parameter is
// the source wallet.
func (h *WalletHandler) Transfer(c *gin.Context) {
	var params WalletIDParam
	if !BindURI(c, &params) {
		return
	}

	var req TransferFundsRequest
	if !BindJSON(c, &req) {
		return
	}

	result, err := h.transferFunds.Execute(c.Request.Context(), dtos.TransferFundsCommand{
		FromWalletID: params.ID,
		ToWalletID:   req.ToWalletID,
		Amount:       req.Amount,
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetWallet handles GET /wallets/:id.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	var params WalletIDParam
	if !BindURI(c, &params) {
		return
	}

	result, err := h.getWallet.Execute(c.Request.Context(), dtos.GetWalletQuery{
		WalletID: params.ID,
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListUserWallets handles GET /users/:id/wallets.
func (h *WalletHandler) ListUserWallets(c *gin.Context) {
	var params UserIDParam
	if !BindURI(c, &params) {
		return
	}

	result, err := h.listUserWallets.Execute(c.Request.Context(), dtos.ListUserWalletsQuery{
		UserID: params.ID,
	})
	if err != nil {
		common.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RegisterRoutes wires the wallet routes.
//
// Routes:
//   - POST /wallets              - Create wallet
//   - GET  /wallets/:id          - Get wallet by id
//   - POST /wallets/:id/fund     - Credit wallet
//   - POST /wallets/:id/transfer - Transfer funds
//   - GET  /users/:id/wallets    - List wallets of a user
func (h *WalletHandler) RegisterRoutes(router *gin.RouterGroup) {
	wallets := router.Group("/wallets")
	{
		wallets.POST("", h.CreateWallet)
		wallets.GET("/:id", h.GetWallet)
		wallets.POST("/:id/fund", h.FundWallet)
		wallets.POST("/:id/transfer", h.Transfer)
	}

	router.GET("/users/:id/wallets", h.ListUserWallets)
}
