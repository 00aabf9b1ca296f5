package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"dahcoins/application/dto"
	"dahcoins/domain/entities"

	"github.com/gorilla/mux"
)

const (
	idempotencyHeader = "Idempotency-Key"
	defaultLimit      = 50
	maxLimit          = 500
	maxAge            = 130
	maxBodyBytes      = 1 << 16
)

type ageBody struct {
	Age *int `json:"age"`
}

type amountBody struct {
	ageBody
	Event  string `json:"event"`
	Amount int64  `json:"amount"`
}

type earnBody struct {
	ageBody
	Action string `json:"action"`
}

type questBody struct {
	ageBody
	Title  string `json:"title"`
	Reward int64  `json:"reward"`
}

type tipBody struct {
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

type payoutBody struct {
	Username string `json:"username"`
	Coins    int64  `json:"coins"`
	Reason   string `json:"reason"`
}

type stakeBody struct {
	Amount       int64 `json:"amount"`
	DurationDays int   `json:"durationDays"`
}

type redeemBody struct {
	ItemID       string `json:"itemId"`
	ViaFlashSale bool   `json:"viaFlashSale"`
}

type adEventBody struct {
	Username string `json:"username"`
}

// decodeBody reads a JSON body into dst. An empty body leaves dst untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func requireAge(w http.ResponseWriter, body ageBody) (int, bool) {
	if body.Age == nil {
		writeMessage(w, http.StatusBadRequest, "age is required")
		return 0, false
	}
	if *body.Age < 0 || *body.Age > maxAge {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("invalid age %d", *body.Age))
		return 0, false
	}
	return *body.Age, true
}

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		writeMessage(w, http.StatusBadRequest, "limit must be a positive integer")
		return 0, false
	}
	return min(limit, maxLimit), true
}

func parseID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

func idempotencyKey(r *http.Request) string {
	return r.Header.Get(idempotencyHeader)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := s.handler.GetWallet(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, wallet)
}

func (s *Server) handleGetTransactions(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	entries, err := s.handler.GetTransactionHistory(r.Context(), mux.Vars(r)["username"], limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, entries)
}

func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	entries, err := s.handler.GetLedger(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, entries)
}

func (s *Server) handleAddCoins(w http.ResponseWriter, r *http.Request) {
	var body amountBody
	if !decodeBody(w, r, &body) {
		return
	}
	age, ok := requireAge(w, body.ageBody)
	if !ok {
		return
	}

	wallet, err := s.handler.AddCoins(r.Context(), dto.AddCoinsRequest{
		Username:       mux.Vars(r)["username"],
		Age:            age,
		Event:          body.Event,
		Amount:         body.Amount,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, wallet)
}

func (s *Server) handleSpendCoins(w http.ResponseWriter, r *http.Request) {
	var body amountBody
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := s.handler.SpendCoins(r.Context(), dto.SpendCoinsRequest{
		Username:       mux.Vars(r)["username"],
		Amount:         body.Amount,
		Event:          body.Event,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !result.Success {
		writeFailure(w, entities.ErrInsufficientFunds, result.Message, result)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (s *Server) handleEarnCoins(w http.ResponseWriter, r *http.Request) {
	var body earnBody
	if !decodeBody(w, r, &body) {
		return
	}
	age, ok := requireAge(w, body.ageBody)
	if !ok {
		return
	}
	action, err := entities.ParseAction(body.Action)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.handler.EarnCoins(r.Context(), dto.EarnRequest{
		Username:       mux.Vars(r)["username"],
		Age:            age,
		Action:         action,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if result.Blocked {
		writeFailure(w, result.Reason.Err(), result.Message, result)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (s *Server) handleDailyLogin(w http.ResponseWriter, r *http.Request) {
	var body ageBody
	if !decodeBody(w, r, &body) {
		return
	}
	age, ok := requireAge(w, body)
	if !ok {
		return
	}

	result, err := s.handler.RecordDailyLogin(r.Context(), dto.DailyLoginRequest{
		Username:       mux.Vars(r)["username"],
		Age:            age,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (s *Server) handleAwardQuest(w http.ResponseWriter, r *http.Request) {
	var body questBody
	if !decodeBody(w, r, &body) {
		return
	}
	age, ok := requireAge(w, body.ageBody)
	if !ok {
		return
	}

	result, err := s.handler.AwardQuest(r.Context(), dto.QuestRequest{
		Username:       mux.Vars(r)["username"],
		Age:            age,
		Title:          body.Title,
		Reward:         body.Reward,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if result.Blocked {
		writeFailure(w, result.Reason.Err(), result.Message, result)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (s *Server) handleSendTip(w http.ResponseWriter, r *http.Request) {
	var body tipBody
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := s.handler.SendTip(r.Context(), dto.TipRequest{
		From:           mux.Vars(r)["username"],
		To:             body.To,
		Amount:         body.Amount,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !result.Success {
		writeFailure(w, entities.ErrInsufficientFunds, result.Message, result)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (s *Server) handleGetUserLimits(w http.ResponseWriter, r *http.Request) {
	limits, err := s.handler.GetUserLimits(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, limits)
}

func (s *Server) handleCanUserEarn(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "amount must be an integer")
		return
	}
	check, err := s.handler.CanUserEarn(r.Context(), mux.Vars(r)["username"], amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, check)
}

func (s *Server) handleRecordPayout(w http.ResponseWriter, r *http.Request) {
	var body payoutBody
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := s.handler.RecordPayout(r.Context(), dto.PayoutRequest{
		Username:       body.Username,
		Coins:          body.Coins,
		Reason:         body.Reason,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, result)
}

func (s *Server) handleGetRevenueStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.handler.GetRevenueStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

func (s *Server) handleGetTotalRevenue(w http.ResponseWriter, r *http.Request) {
	total, err := s.handler.GetTotalRevenue(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, dto.RevenueTotalDTO{TotalRevenue: total})
}

func (s *Server) handleGetAdRevenue(w http.ResponseWriter, r *http.Request) {
	adID := mux.Vars(r)["adID"]
	revenue, err := s.handler.GetAdRevenue(r.Context(), adID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, dto.AdRevenueDTO{AdID: adID, Revenue: revenue})
}

func (s *Server) handleRecordImpression(w http.ResponseWriter, r *http.Request) {
	var body adEventBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.handler.RecordImpression(r.Context(), dto.AdEventRequest{AdID: mux.Vars(r)["adID"], Username: body.Username}); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusAccepted, nil)
}

func (s *Server) handleRecordClick(w http.ResponseWriter, r *http.Request) {
	var body adEventBody
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.handler.RecordClick(r.Context(), dto.AdEventRequest{AdID: mux.Vars(r)["adID"], Username: body.Username}); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusAccepted, nil)
}

func (s *Server) handleCreateStake(w http.ResponseWriter, r *http.Request) {
	var body stakeBody
	if !decodeBody(w, r, &body) {
		return
	}

	stake, err := s.handler.CreateStake(r.Context(), dto.StakeRequest{
		Username:       mux.Vars(r)["username"],
		Amount:         body.Amount,
		DurationDays:   body.DurationDays,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, stake)
}

func (s *Server) handleGetStakes(w http.ResponseWriter, r *http.Request) {
	stakes, err := s.handler.GetStakes(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stakes)
}

func (s *Server) handleRefreshStakes(w http.ResponseWriter, r *http.Request) {
	updated, err := s.handler.CheckAndUpdateStakes(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (s *Server) handleClaimStake(w http.ResponseWriter, r *http.Request) {
	stakeID, ok := parseID(w, r, "stakeID")
	if !ok {
		return
	}

	stake, err := s.handler.ClaimStake(r.Context(), dto.ClaimStakeRequest{
		Username:       mux.Vars(r)["username"],
		StakeID:        stakeID,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, stake)
}

func (s *Server) handleRedeemItem(w http.ResponseWriter, r *http.Request) {
	var body redeemBody
	if !decodeBody(w, r, &body) {
		return
	}

	result, err := s.handler.RedeemItem(r.Context(), dto.RedeemRequest{
		Username:       mux.Vars(r)["username"],
		ItemID:         body.ItemID,
		ViaFlashSale:   body.ViaFlashSale,
		IdempotencyKey: idempotencyKey(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !result.Success {
		writeFailure(w, result.Reason.Err(), result.Message, result)
		return
	}
	writeData(w, http.StatusCreated, result)
}

func (s *Server) handleGetRedemptions(w http.ResponseWriter, r *http.Request) {
	redemptions, err := s.handler.GetRedemptions(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, redemptions)
}

func (s *Server) handleMarkDelivered(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	redemption, err := s.handler.MarkDelivered(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, redemption)
}

func (s *Server) handleGetItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.handler.GetItemsByCategory(r.Context(), entities.ItemCategory(r.URL.Query().Get("category")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (s *Server) handleGetFeatured(w http.ResponseWriter, r *http.Request) {
	items, err := s.handler.GetFeaturedItems(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (s *Server) handleGetFlashSales(w http.ResponseWriter, r *http.Request) {
	sales, err := s.handler.GetFlashSales(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, sales)
}

func (s *Server) handleGetFlashSaleForItem(w http.ResponseWriter, r *http.Request) {
	sale, err := s.handler.GetFlashSaleForItem(r.Context(), mux.Vars(r)["itemID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	if sale == nil {
		writeMessage(w, http.StatusNotFound, "no active flash sale for item")
		return
	}
	writeData(w, http.StatusOK, sale)
}

func (s *Server) handleGetFlashPrice(w http.ResponseWriter, r *http.Request) {
	price, err := s.handler.GetFlashPrice(r.Context(), mux.Vars(r)["itemID"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, price)
}
