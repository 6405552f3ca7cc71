package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"meetsplit-backend/database"
	"meetsplit-backend/engine"
	"meetsplit-backend/models"
	"meetsplit-backend/services"
	"meetsplit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GET /api/rooms/:id/balances
func GetRoomBalances(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	if !isMember(roomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	var room models.Room
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		utils.NotFound(c, "Room not found")
		return
	}

	balances := roomBalances(roomID)
	debts := engine.MinimizeDebts(balances)

	var totalSpent float64
	database.DB.Model(&models.Expense{}).Where("room_id = ?", roomID).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&totalSpent)

	names := memberNames(roomID)

	summary := models.RoomBalanceSummary{
		RoomID:     roomID,
		RoomName:   room.Name,
		Balances:   buildBalanceList(balances, names),
		Debts:      buildDebtResponses(debts, names, room.Currency),
		TotalSpent: utils.RoundToTwo(totalSpent),
		Currency:   room.Currency,
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

// POST /api/rooms/:id/payments/preview
//
// Runs a payment-mode adapter over the request without persisting anything,
// so the client can show obligations and validation state as amounts are
// typed in.
func PreviewPayments(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	if !isMember(roomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	var req models.FinalizePaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var room models.Room
	database.DB.First(&room, "id = ?", roomID)

	members := engineMembers(roomID)
	totalAmount := roomExpenseTotal(roomID)
	names := memberNames(roomID)

	preview := models.PaymentPreviewResponse{Mode: req.Mode}

	switch req.Mode {
	case models.PaymentModeEach:
		paid := make(map[string]bool, len(req.PaidMembers))
		for _, id := range req.PaidMembers {
			paid[id] = true
		}
		preview.OwedList = buildOwedResponses(engine.EqualPayment(totalAmount, members, paid))
		preview.IsValid = true

	case models.PaymentModeManual:
		payers, err := parsePayers(req.Payers)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		result := engine.ManualPayment(totalAmount, members, payers)
		preview.OwedList = buildOwedResponses(result.OwedList)
		preview.IsValid = result.IsValid
		preview.Delta = result.Delta
		preview.Debts = buildDebtResponses(engine.ManualDebts(totalAmount, members, payers), names, room.Currency)
	}

	utils.SuccessResponse(c, http.StatusOK, "", preview)
}

// PUT /api/rooms/:id/payments
//
// Finalizes who actually paid. The full set of room payments is rewritten
// on every call: one running total per member, not an append log.
func FinalizePayments(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	if !isMember(roomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	var req models.FinalizePaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var room models.Room
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		utils.NotFound(c, "Room not found")
		return
	}

	members := engineMembers(roomID)
	if len(members) == 0 {
		utils.BadRequest(c, "Room has no members")
		return
	}
	totalAmount := roomExpenseTotal(roomID)

	var payments []models.RoomPayment

	switch req.Mode {
	case models.PaymentModeEach:
		paid := make(map[string]bool, len(req.PaidMembers))
		for _, id := range req.PaidMembers {
			paid[id] = true
		}
		perPerson := utils.RoundToTwo(totalAmount / float64(len(members)))
		for _, m := range members {
			amount := 0.0
			if paid[m.UserID] {
				amount = perPerson
			}
			payments = append(payments, models.RoomPayment{
				RoomID:     roomID,
				UserID:     mustUUID(m.UserID),
				PaidAmount: amount,
			})
		}

	case models.PaymentModeManual:
		payers, err := parsePayers(req.Payers)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}

		// Every payer must be a current member, or their amount would pass
		// the validity check but never land in a payment row.
		if unknown := unknownPayers(payers, members); len(unknown) > 0 {
			utils.BadRequest(c, fmt.Sprintf("payer %s is not a member of this room", unknown[0]))
			return
		}

		result := engine.ManualPayment(totalAmount, members, payers)
		if !result.IsValid {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": fmt.Sprintf("Entered payments are off by %.2f", result.Delta),
				"delta":   result.Delta,
			})
			return
		}

		paidBy := make(map[string]float64, len(payers))
		for _, p := range payers {
			paidBy[p.UserID] = p.Amount
		}
		for _, m := range members {
			payments = append(payments, models.RoomPayment{
				RoomID:     roomID,
				UserID:     mustUUID(m.UserID),
				PaidAmount: utils.RoundToTwo(paidBy[m.UserID]),
			})
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).Delete(&models.RoomPayment{}).Error; err != nil {
			return err
		}
		for i := range payments {
			if err := tx.Create(&payments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.InternalError(c, "Failed to record payments")
		return
	}

	database.DB.Create(&models.Activity{
		RoomID:      roomID,
		UserID:      userID,
		Type:        "payments_finalized",
		Description: fmt.Sprintf("%s updated the payment record", lookupName(memberNames(roomID), userID)),
	})
	database.PublishRoomEvent(roomID, "payments_finalized")

	go services.GetNotificationService().NotifyPaymentsFinalized(room, memberTokens(roomID, userID))

	utils.SuccessResponse(c, http.StatusOK, "Payments recorded", nil)
}

// roomBalances assembles the room's settlement snapshot and reduces it to
// net balances: recorded payments minus expense shares.
func roomBalances(roomID string) map[string]float64 {
	var participants []models.ExpenseParticipant
	database.DB.Where("room_id = ?", roomID).Find(&participants)

	var payments []models.RoomPayment
	database.DB.Where("room_id = ?", roomID).Find(&payments)

	engineParts := make([]engine.ExpenseParticipant, len(participants))
	for i, p := range participants {
		engineParts[i] = engine.ExpenseParticipant{
			ExpenseID:  p.ExpenseID.String(),
			UserID:     p.UserID.String(),
			OwedAmount: p.OwedAmount,
		}
	}

	enginePayments := make([]engine.RoomPayment, len(payments))
	for i, p := range payments {
		enginePayments[i] = engine.RoomPayment{
			UserID:     p.UserID.String(),
			PaidAmount: p.PaidAmount,
		}
	}

	return engine.ComputeBalances(engineParts, enginePayments)
}

func engineMembers(roomID string) []engine.Member {
	var members []models.RoomMember
	database.DB.Where("room_id = ?", roomID).Order("joined_at ASC").Find(&members)

	result := make([]engine.Member, len(members))
	for i, m := range members {
		result[i] = engine.Member{UserID: m.UserID.String(), DisplayName: m.DisplayName}
	}
	return result
}

func roomExpenseTotal(roomID string) float64 {
	var total float64
	database.DB.Model(&models.Expense{}).Where("room_id = ?", roomID).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&total)
	return utils.RoundToTwo(total)
}

// mustUUID is safe for IDs that round-tripped through the members table.
func mustUUID(s string) uuid.UUID {
	uid, _ := uuid.Parse(s)
	return uid
}

// unknownPayers returns the payer IDs that are not in the member set.
func unknownPayers(payers []engine.PayerEntry, members []engine.Member) []string {
	memberSet := make(map[string]bool, len(members))
	for _, m := range members {
		memberSet[m.UserID] = true
	}

	var unknown []string
	for _, p := range payers {
		if !memberSet[p.UserID] {
			unknown = append(unknown, p.UserID)
		}
	}
	return unknown
}

func parsePayers(inputs []models.PayerInput) ([]engine.PayerEntry, error) {
	payers := make([]engine.PayerEntry, 0, len(inputs))
	for _, in := range inputs {
		if err := engine.ValidatePaymentAmount(in.Amount); err != nil {
			return nil, fmt.Errorf("payer %s: %v", in.UserID, err)
		}
		if in.Amount == "" {
			continue // not entered yet
		}
		amount, _ := strconv.ParseFloat(in.Amount, 64)
		payers = append(payers, engine.PayerEntry{UserID: in.UserID, Amount: amount})
	}
	return payers, nil
}

func buildBalanceList(balances map[string]float64, names map[uuid.UUID]string) []models.MemberBalance {
	list := make([]models.MemberBalance, 0, len(balances))
	for id, balance := range balances {
		uid, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		list = append(list, models.MemberBalance{
			UserID:      uid,
			DisplayName: lookupName(names, uid),
			Balance:     balance,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Balance != list[j].Balance {
			return list[i].Balance > list[j].Balance
		}
		return list[i].DisplayName < list[j].DisplayName
	})
	return list
}

func buildDebtResponses(debts []engine.SimplifiedDebt, names map[uuid.UUID]string, currency string) []models.DebtResponse {
	responses := make([]models.DebtResponse, len(debts))
	for i, d := range debts {
		from, _ := uuid.Parse(d.FromUser)
		to, _ := uuid.Parse(d.ToUser)
		responses[i] = models.DebtResponse{
			From:     from,
			FromName: lookupName(names, from),
			To:       to,
			ToName:   lookupName(names, to),
			Amount:   d.Amount,
			Currency: currency,
		}
	}
	return responses
}

func buildOwedResponses(owed []engine.MemberOwed) []models.MemberOwedResponse {
	responses := make([]models.MemberOwedResponse, len(owed))
	for i, o := range owed {
		uid, _ := uuid.Parse(o.UserID)
		responses[i] = models.MemberOwedResponse{
			UserID:      uid,
			DisplayName: o.DisplayName,
			OwedAmount:  o.OwedAmount,
			HasPaid:     o.HasPaid,
		}
	}
	return responses
}
