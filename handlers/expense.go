package handlers

import (
	"fmt"
	"math"
	"net/http"

	"meetsplit-backend/database"
	"meetsplit-backend/models"
	"meetsplit-backend/services"
	"meetsplit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/rooms/:id/expenses
func CreateExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	if !isMember(roomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var members []models.RoomMember
	database.DB.Where("room_id = ?", roomID).Find(&members)
	if len(members) == 0 {
		utils.BadRequest(c, "Room has no members")
		return
	}

	expense := models.Expense{
		RoomID:      roomID,
		PaidBy:      userID,
		Description: req.Description,
		TotalAmount: utils.RoundToTwo(req.TotalAmount),
		SplitType:   req.SplitType,
	}

	participants, err := buildParticipants(expense, req.Splits, members)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		utils.InternalError(c, "Failed to create expense")
		return
	}
	for i := range participants {
		participants[i].ExpenseID = expense.ID
		database.DB.Create(&participants[i])
	}

	var room models.Room
	database.DB.First(&room, "id = ?", roomID)
	payerName := lookupName(memberNames(roomID), userID)

	database.DB.Create(&models.Activity{
		RoomID:      roomID,
		UserID:      userID,
		Type:        "expense_added",
		ReferenceID: expense.ID,
		Description: fmt.Sprintf("%s added \"%s\" (%s %.2f)", payerName, expense.Description, room.Currency, expense.TotalAmount),
	})
	database.PublishRoomEvent(roomID, "expense_added")

	// Push to everyone else in the room
	go services.GetNotificationService().NotifyExpenseAdded(expense, room, payerName, memberTokens(roomID, userID))

	utils.SuccessResponse(c, http.StatusCreated, "Expense added", buildExpenseResponse(expense.ID))
}

// GET /api/rooms/:id/expenses
func GetRoomExpenses(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	roomID := roomCode(c)

	if !isMember(roomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	var expenses []models.Expense
	database.DB.Where("room_id = ?", roomID).
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&expenses)

	responses := make([]models.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, buildExpenseResponse(e.ID))
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GET /api/expenses/:id
func GetExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	if !isMember(expense.RoomID, userID) {
		utils.Unauthorized(c, "You are not a member of this room")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", buildExpenseResponse(expenseID))
}

// buildParticipants derives per-member shares at creation time. EQUAL
// splits the total across all members with the rounding remainder going to
// the first; MANUAL takes explicit shares that must sum to the total.
func buildParticipants(expense models.Expense, splits []models.SplitInput, members []models.RoomMember) ([]models.ExpenseParticipant, error) {
	var participants []models.ExpenseParticipant

	switch expense.SplitType {
	case models.SplitTypeEqual:
		perPerson := utils.RoundToTwo(expense.TotalAmount / float64(len(members)))
		remainder := utils.RoundToTwo(expense.TotalAmount - perPerson*float64(len(members)))

		for i, m := range members {
			amount := perPerson
			if i == 0 {
				amount = utils.RoundToTwo(amount + remainder)
			}
			participants = append(participants, models.ExpenseParticipant{
				UserID:     m.UserID,
				RoomID:     expense.RoomID,
				OwedAmount: amount,
				HasPaid:    m.UserID == expense.PaidBy,
			})
		}

	case models.SplitTypeManual:
		if len(splits) == 0 {
			return nil, fmt.Errorf("splits required for MANUAL split type")
		}

		var total float64
		for _, s := range splits {
			if s.OwedAmount < 0 {
				return nil, fmt.Errorf("share amounts cannot be negative")
			}
			total += s.OwedAmount
		}
		if math.Abs(utils.RoundToTwo(total)-expense.TotalAmount) > 0.01 {
			return nil, fmt.Errorf("share amounts (%.2f) don't add up to total (%.2f)", total, expense.TotalAmount)
		}

		for _, s := range splits {
			uid, err := uuid.Parse(s.UserID)
			if err != nil {
				return nil, fmt.Errorf("invalid user ID: %s", s.UserID)
			}
			participants = append(participants, models.ExpenseParticipant{
				UserID:     uid,
				RoomID:     expense.RoomID,
				OwedAmount: utils.RoundToTwo(s.OwedAmount),
				HasPaid:    uid == expense.PaidBy,
			})
		}

	default:
		return nil, fmt.Errorf("invalid split type: %s", expense.SplitType)
	}

	return participants, nil
}

func buildExpenseResponse(expenseID uuid.UUID) models.ExpenseResponse {
	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		return models.ExpenseResponse{}
	}

	names := memberNames(expense.RoomID)

	var participants []models.ExpenseParticipant
	database.DB.Where("expense_id = ?", expenseID).Find(&participants)

	splitResponses := make([]models.SplitDetailResponse, len(participants))
	for i, p := range participants {
		splitResponses[i] = models.SplitDetailResponse{
			UserID:     p.UserID,
			UserName:   lookupName(names, p.UserID),
			OwedAmount: p.OwedAmount,
			HasPaid:    p.HasPaid,
		}
	}

	return models.ExpenseResponse{
		ExpenseID:   expense.ID,
		RoomID:      expense.RoomID,
		PaidBy:      expense.PaidBy,
		PayerName:   lookupName(names, expense.PaidBy),
		Description: expense.Description,
		TotalAmount: expense.TotalAmount,
		SplitType:   expense.SplitType,
		Splits:      splitResponses,
		CreatedAt:   expense.CreatedAt,
	}
}

// memberTokens collects FCM tokens for everyone in the room except the
// actor who triggered the notification.
func memberTokens(roomID string, excludeUserID uuid.UUID) []string {
	var members []models.RoomMember
	database.DB.Where("room_id = ?", roomID).Find(&members)

	var userIDs []uuid.UUID
	for _, m := range members {
		if m.UserID != excludeUserID {
			userIDs = append(userIDs, m.UserID)
		}
	}
	if len(userIDs) == 0 {
		return nil
	}

	var users []models.GuestUser
	database.DB.Where("id IN ?", userIDs).Find(&users)

	var tokens []string
	for _, u := range users {
		if u.FCMToken != "" {
			tokens = append(tokens, u.FCMToken)
		}
	}
	return tokens
}
