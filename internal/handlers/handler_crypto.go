package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/bloxedu/blox_backend/internal/core/domain"
	portssvc "github.com/bloxedu/blox_backend/internal/core/ports/services"
	"github.com/bloxedu/blox_backend/internal/dto"
	"github.com/bloxedu/blox_backend/internal/middleware"
	"github.com/bloxedu/blox_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/posthog/posthog-go"
)

// cryptoHandler handles currency listing, trading and transaction lookups.
type cryptoHandler struct {
	tradeService      portssvc.TradeSvcFacade
	blockchainService portssvc.BlockchainSvcFacade
	walletService     portssvc.WalletSvcFacade
	analytics         posthog.Client
}

func newCryptoHandler(ts portssvc.TradeSvcFacade, bs portssvc.BlockchainSvcFacade, ws portssvc.WalletSvcFacade, analytics posthog.Client) *cryptoHandler {
	return &cryptoHandler{
		tradeService:      ts,
		blockchainService: bs,
		walletService:     ws,
		analytics:         analytics,
	}
}

// RegisterCryptoRoutes registers currency and trading routes. Exported so
// handler tests can mount them on their own router.
func RegisterCryptoRoutes(rg *gin.RouterGroup, ts portssvc.TradeSvcFacade, bs portssvc.BlockchainSvcFacade, ws portssvc.WalletSvcFacade, analytics posthog.Client) {
	h := newCryptoHandler(ts, bs, ws, analytics)

	crypto := rg.Group("/crypto")
	{
		crypto.GET("", h.listCrypto)
		crypto.POST("", h.createCrypto)
		crypto.GET("/:ticker", h.getCrypto)
		crypto.POST("/:ticker", h.trade)
	}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("/:id", h.getTransaction)
		transactions.POST("/:id/fulfill", h.fulfillTransaction)
	}
}

// listCrypto godoc
// @Summary List tradable currencies
// @Description Lists every non-fiat currency with its current USD rate
// @Tags crypto
// @Produce json
// @Success 200 {array} dto.BlockchainResponse
// @Failure 502 {object} map[string]string "Rate source unavailable"
// @Security BearerAuth
// @Router /crypto [get]
func (h *cryptoHandler) listCrypto(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	blockchains, err := h.blockchainService.ListTradable(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list currencies")
		return
	}

	resp := make([]dto.BlockchainResponse, 0, len(blockchains))
	for i := range blockchains {
		rate, err := h.blockchainService.ExchangeRate(c.Request.Context(), blockchains[i].Ticker)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to quote currency")
			return
		}
		resp = append(resp, dto.ToBlockchainResponse(&blockchains[i], rate))
	}
	c.JSON(http.StatusOK, resp)
}

// createCrypto godoc
// @Summary Register a new currency
// @Description Adds a currency to the registry with its exchange wallet
// @Tags crypto
// @Accept json
// @Produce json
// @Param currency body dto.CreateBlockchainRequest true "Currency details"
// @Success 201 {object} domain.Blockchain
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Ticker already exists"
// @Security BearerAuth
// @Router /crypto [post]
func (h *cryptoHandler) createCrypto(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBlockchainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCrypto", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	blockchain, err := h.blockchainService.CreateBlockchain(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create currency")
		return
	}
	c.JSON(http.StatusCreated, blockchain)
}

// getCrypto godoc
// @Summary Get one currency
// @Description Retrieves a currency with its current USD rate
// @Tags crypto
// @Produce json
// @Param ticker path string true "Ticker"
// @Success 200 {object} dto.BlockchainResponse
// @Failure 404 {object} map[string]string "Unknown ticker"
// @Failure 502 {object} map[string]string "Rate source unavailable"
// @Security BearerAuth
// @Router /crypto/{ticker} [get]
func (h *cryptoHandler) getCrypto(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ticker := strings.ToUpper(c.Param("ticker"))

	blockchain, err := h.blockchainService.GetBlockchainByTicker(c.Request.Context(), ticker)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get currency")
		return
	}
	rate, err := h.blockchainService.ExchangeRate(c.Request.Context(), ticker)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to quote currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToBlockchainResponse(blockchain, rate))
}

// trade godoc
// @Summary Buy or sell a currency
// @Description Executes a trade between the given wallet and the currency's exchange wallet
// @Tags crypto
// @Accept json
// @Produce json
// @Param ticker path string true "Ticker"
// @Param trade body dto.TradeRequest true "Trade details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid trade or insufficient funds"
// @Failure 403 {object} map[string]string "Not a wallet member"
// @Failure 404 {object} map[string]string "Unknown wallet or ticker"
// @Failure 502 {object} map[string]string "Rate source unavailable"
// @Security BearerAuth
// @Router /crypto/{ticker} [post]
func (h *cryptoHandler) trade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ticker := strings.ToUpper(c.Param("ticker"))

	var req dto.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for trade", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.GetWalletByAddress(c.Request.Context(), req.Wallet)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resolve wallet")
		return
	}
	if !wallet.IsAdmin(userID) && !wallet.IsMember(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not belong to this wallet"})
		return
	}

	txn, err := h.tradeService.Trade(c.Request.Context(), wallet.WalletID, ticker, req.Amount, domain.TradeDirection(req.Action), &userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to execute trade")
		return
	}

	utils.CaptureEvent(h.analytics, userID, "trade_executed", map[string]interface{}{
		"ticker": ticker,
		"action": req.Action,
		"amount": req.Amount.String(),
	})

	logger.Info("Trade executed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("ticker", ticker),
		slog.String("action", req.Action),
	)
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *cryptoHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txn, err := h.tradeService.GetTransactionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// fulfillTransaction godoc
// @Summary Fulfill an unproven transaction
// @Description Settles a recorded transaction at the current rate; a no-op when already proven
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Insufficient funds at settlement"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 502 {object} map[string]string "Rate source unavailable"
// @Security BearerAuth
// @Router /transactions/{id}/fulfill [post]
func (h *cryptoHandler) fulfillTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txn, err := h.tradeService.Fulfill(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to fulfill transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
