package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(s.limiter.Middleware)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	// Wallet and ledger
	r.HandleFunc("/ledger", s.handleGetLedger).Methods(http.MethodGet)
	wallets := r.PathPrefix("/wallets/{username}").Subrouter()
	wallets.HandleFunc("", s.handleGetWallet).Methods(http.MethodGet)
	wallets.HandleFunc("/transactions", s.handleGetTransactions).Methods(http.MethodGet)

	// Earning
	wallets.HandleFunc("/credits", s.handleAddCoins).Methods(http.MethodPost)
	wallets.HandleFunc("/spend", s.handleSpendCoins).Methods(http.MethodPost)
	wallets.HandleFunc("/earn", s.handleEarnCoins).Methods(http.MethodPost)
	wallets.HandleFunc("/daily-login", s.handleDailyLogin).Methods(http.MethodPost)
	wallets.HandleFunc("/quests", s.handleAwardQuest).Methods(http.MethodPost)
	wallets.HandleFunc("/tips", s.handleSendTip).Methods(http.MethodPost)
	wallets.HandleFunc("/limits", s.handleGetUserLimits).Methods(http.MethodGet)
	wallets.HandleFunc("/can-earn", s.handleCanUserEarn).Methods(http.MethodGet)

	// Staking
	wallets.HandleFunc("/stakes", s.handleCreateStake).Methods(http.MethodPost)
	wallets.HandleFunc("/stakes", s.handleGetStakes).Methods(http.MethodGet)
	wallets.HandleFunc("/stakes/refresh", s.handleRefreshStakes).Methods(http.MethodPost)
	wallets.HandleFunc("/stakes/{stakeID:[0-9]+}/claim", s.handleClaimStake).Methods(http.MethodPost)

	// Redemptions
	wallets.HandleFunc("/redemptions", s.handleRedeemItem).Methods(http.MethodPost)
	wallets.HandleFunc("/redemptions", s.handleGetRedemptions).Methods(http.MethodGet)
	r.HandleFunc("/redemptions/{id:[0-9]+}/deliver", s.handleMarkDelivered).Methods(http.MethodPost)

	// Payouts and revenue
	r.HandleFunc("/payouts", s.handleRecordPayout).Methods(http.MethodPost)
	r.HandleFunc("/revenue/stats", s.handleGetRevenueStats).Methods(http.MethodGet)
	r.HandleFunc("/revenue/total", s.handleGetTotalRevenue).Methods(http.MethodGet)
	r.HandleFunc("/ads/{adID}/impressions", s.handleRecordImpression).Methods(http.MethodPost)
	r.HandleFunc("/ads/{adID}/clicks", s.handleRecordClick).Methods(http.MethodPost)
	r.HandleFunc("/ads/{adID}/revenue", s.handleGetAdRevenue).Methods(http.MethodGet)

	// Catalog
	r.HandleFunc("/catalog/items", s.handleGetItems).Methods(http.MethodGet)
	r.HandleFunc("/catalog/featured", s.handleGetFeatured).Methods(http.MethodGet)
	r.HandleFunc("/catalog/flash-sales", s.handleGetFlashSales).Methods(http.MethodGet)
	r.HandleFunc("/catalog/items/{itemID}/flash-sale", s.handleGetFlashSaleForItem).Methods(http.MethodGet)
	r.HandleFunc("/catalog/items/{itemID}/price", s.handleGetFlashPrice).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
