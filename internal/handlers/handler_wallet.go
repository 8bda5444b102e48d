package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portsrepo "github.com/bloxedu/blox_backend/internal/core/ports/repositories"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/dto"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// walletHandler handles wallet lifecycle and membership routes.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
	txnRepo       portsrepo.TransactionRepositoryFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade, txnRepo portsrepo.TransactionRepositoryFacade) *walletHandler {
	return &walletHandler{
		walletService: ws,
		txnRepo:       txnRepo,
	}
}

// registerWalletRoutes registers wallet routes.
func registerWalletRoutes(rg *gin.RouterGroup, ws portssvc.WalletSvcFacade, txnRepo portsrepo.TransactionRepositoryFacade) {
	h := newWalletHandler(ws, txnRepo)

	wallets := rg.Group("/wallets")
	{
		wallets.POST("", h.createWallet)
		wallets.GET("", h.listMyWallets)
		wallets.GET("/:address", h.getWallet)
		wallets.PATCH("/:address", h.updateWallet)
		wallets.POST("/:address/leave", h.leaveWallet)
		wallets.POST("/:address/members/:userID", h.addMember)
		wallets.DELETE("/:address/members/:userID", h.removeMember)
		wallets.GET("/:address/transactions", h.listWalletTransactions)
	}
}

// createWallet godoc
// @Summary Create a wallet
// @Description Creates a wallet with a fresh address; the caller becomes admin
// @Tags wallets
// @Produce json
// @Success 201 {object} dto.WalletResponse
// @Security BearerAuth
// @Router /wallets [post]
func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create wallet")
		return
	}
	c.JSON(http.StatusCreated, dto.ToWalletResponse(wallet))
}

// listMyWallets godoc
// @Summary List the caller's wallets
// @Tags wallets
// @Produce json
// @Success 200 {array} dto.WalletSummaryResponse
// @Security BearerAuth
// @Router /wallets [get]
func (h *walletHandler) listMyWallets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallets, err := h.walletService.ListUserWallets(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list wallets")
		return
	}

	resp := make([]dto.WalletSummaryResponse, len(wallets))
	for i := range wallets {
		resp[i] = dto.ToWalletSummaryResponse(&wallets[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getWallet godoc
// @Summary Get a wallet by address
// @Tags wallets
// @Produce json
// @Param address path string true "Wallet address"
// @Success 200 {object} dto.WalletResponse
// @Failure 404 {object} map[string]string "Wallet not found"
// @Security BearerAuth
// @Router /wallets/{address} [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	wallet, err := h.walletService.GetWalletByAddress(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// updateWallet godoc
// @Summary Update a wallet
// @Description Renames, attaches to a classroom, or sets balances (admin only)
// @Tags wallets
// @Accept json
// @Produce json
// @Param address path string true "Wallet address"
// @Param wallet body dto.UpdateWalletRequest true "Fields to update"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not a wallet admin"
// @Security BearerAuth
// @Router /wallets/{address} [patch]
func (h *walletHandler) updateWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	address := c.Param("address")

	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.walletService.UpdateWallet(c.Request.Context(), address, req, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to update wallet")
		return
	}

	wallet, err := h.walletService.GetWalletByAddress(c.Request.Context(), address)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reload wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// leaveWallet godoc
// @Summary Leave a wallet
// @Tags wallets
// @Param address path string true "Wallet address"
// @Success 204 "Left wallet"
// @Security BearerAuth
// @Router /wallets/{address}/leave [post]
func (h *walletHandler) leaveWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.walletService.LeaveWallet(c.Request.Context(), c.Param("address"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to leave wallet")
		return
	}
	c.Status(http.StatusNoContent)
}

// addMember godoc
// @Summary Add a wallet member
// @Tags wallets
// @Param address path string true "Wallet address"
// @Param userID path string true "User ID to add"
// @Success 204 "Member added"
// @Failure 403 {object} map[string]string "Not a wallet admin"
// @Security BearerAuth
// @Router /wallets/{address}/members/{userID} [post]
func (h *walletHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.walletService.AddMember(c.Request.Context(), c.Param("address"), c.Param("userID"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to add member")
		return
	}
	c.Status(http.StatusNoContent)
}

// removeMember godoc
// @Summary Remove a wallet member
// @Tags wallets
// @Param address path string true "Wallet address"
// @Param userID path string true "User ID to remove"
// @Success 204 "Member removed"
// @Failure 403 {object} map[string]string "Not a wallet admin"
// @Security BearerAuth
// @Router /wallets/{address}/members/{userID} [delete]
func (h *walletHandler) removeMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.walletService.RemoveMember(c.Request.Context(), c.Param("address"), c.Param("userID"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to remove member")
		return
	}
	c.Status(http.StatusNoContent)
}

// listWalletTransactions godoc
// @Summary List a wallet's transactions
// @Tags wallets
// @Produce json
// @Param address path string true "Wallet address"
// @Param limit query int false "Max records" default(50)
// @Success 200 {array} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Not a wallet member"
// @Security BearerAuth
// @Router /wallets/{address}/transactions [get]
func (h *walletHandler) listWalletTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.GetWalletByAddress(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get wallet")
		return
	}
	if !wallet.IsAdmin(userID) && !wallet.IsMember(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not belong to this wallet"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	txns, err := h.txnRepo.ListTransactionsByWallet(c.Request.Context(), wallet.WalletID, limit)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	resp := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		resp[i] = dto.ToTransactionResponse(&txns[i])
	}
	c.JSON(http.StatusOK, resp)
}
