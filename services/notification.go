package services

import (
	"context"
	"fmt"
	"log"

	"meetsplit-backend/config"
	"meetsplit-backend/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type NotificationService struct {
	client *messaging.Client
}

var notifService *NotificationService

// InitNotificationService wires the Firebase Admin SDK. When no credentials
// file is configured the service degrades to a no-op so local development
// works without a Firebase project.
func InitNotificationService() {
	notifService = &NotificationService{}

	if config.AppConfig.FirebaseCredPath == "" {
		log.Println("⚠️  Firebase credentials not set, push notifications disabled")
		return
	}

	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredPath)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		log.Printf("❌ Firebase init error: %v", err)
		return
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Printf("❌ Firebase messaging error: %v", err)
		return
	}

	notifService.client = client
	log.Println("✅ Firebase messaging initialized")
}

func GetNotificationService() *NotificationService {
	if notifService == nil {
		notifService = &NotificationService{}
	}
	return notifService
}

func (ns *NotificationService) sendPush(tokens []string, title string, body string, data map[string]string) {
	if ns.client == nil || len(tokens) == 0 {
		return
	}

	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	resp, err := ns.client.SendEachForMulticast(context.Background(), msg)
	if err != nil {
		log.Printf("❌ FCM send error: %v", err)
		return
	}

	if resp.FailureCount > 0 {
		log.Printf("⚠️  FCM delivered %d/%d notifications", resp.SuccessCount, len(tokens))
	} else {
		log.Printf("✅ Push notification sent to %d devices", resp.SuccessCount)
	}
}

// NotifyExpenseAdded pushes a heads-up to every other member of the room.
func (ns *NotificationService) NotifyExpenseAdded(expense models.Expense, room models.Room, payerName string, tokens []string) {
	title := fmt.Sprintf("%s added an expense", payerName)
	body := fmt.Sprintf("%s %.2f for \"%s\" in %s", room.Currency, expense.TotalAmount, expense.Description, room.Name)

	ns.sendPush(tokens, title, body, map[string]string{
		"type":       "expense_added",
		"expense_id": expense.ID.String(),
		"room_id":    room.ID,
	})
}

// NotifyPaymentsFinalized tells members the room's paid amounts were updated
// and balances have been recomputed.
func (ns *NotificationService) NotifyPaymentsFinalized(room models.Room, tokens []string) {
	title := fmt.Sprintf("Payments updated in %s", room.Name)
	body := "Paid amounts were finalized. Check the app for who owes whom."

	ns.sendPush(tokens, title, body, map[string]string{
		"type":    "payments_finalized",
		"room_id": room.ID,
	})
}
