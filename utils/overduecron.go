package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/config"
	"github.com/UlugbekMirdadayev/sklad-v2-backend-sub000/models"
)

// Notifier is the SMS send surface the cron needs; *SMSClient
// satisfies it.
type Notifier interface {
	SendSMS(phone, message string) error
}

// CheckOverdueDebtors marks open debtor records past their due date as
// overdue and sends a reminder SMS per debtor. Runs daily from the
// scheduler. This job is the only writer of the "overdue" status.
func CheckOverdueDebtors(notify Notifier) {
	log.Println("CheckOverdueDebtors started")

	ctx := context.TODO()
	now := time.Now()

	filter := bson.M{
		"is_deleted": bson.M{"$ne": true},
		"status":     bson.M{"$in": []string{models.DebtorStatusPending, models.DebtorStatusPartial}},
		"due_date":   bson.M{"$lt": now, "$ne": time.Time{}},
	}

	cursor, err := config.DebtorCollection.Find(ctx, filter)
	if err != nil {
		log.Printf("overdue scan: %v", err)
		return
	}
	defer cursor.Close(ctx)

	overdueCount := 0
	var summary string
	for cursor.Next(ctx) {
		var debtor models.Debtor
		if err := cursor.Decode(&debtor); err != nil {
			log.Printf("overdue scan decode: %v", err)
			continue
		}

		_, err := config.DebtorCollection.UpdateOne(ctx,
			bson.M{"_id": debtor.ID},
			bson.M{"$set": bson.M{"status": models.DebtorStatusOverdue, "updated_at": now}})
		if err != nil {
			log.Printf("overdue mark %s: %v", debtor.ID.Hex(), err)
			continue
		}
		overdueCount++

		var client models.Client
		if err := config.ClientCollection.FindOne(ctx, bson.M{"_id": debtor.ClientID}).Decode(&client); err != nil {
			continue
		}
		summary += fmt.Sprintf("%s: %.2f USD / %.2f UZS (due %s)\n",
			client.FullName, debtor.RemainingDebt.USD, debtor.RemainingDebt.UZS,
			debtor.DueDate.Format("2006-01-02"))

		if notify != nil && client.Phone != "" {
			msg := fmt.Sprintf("Hurmatli %s, qarzingiz muddati o'tdi. Qoldiq: %.2f USD / %.2f UZS",
				client.FullName, debtor.RemainingDebt.USD, debtor.RemainingDebt.UZS)
			if err := notify.SendSMS(client.Phone, msg); err != nil {
				log.Printf("overdue SMS to %s: %v", client.Phone, err)
			}
		}
	}
	if err := cursor.Err(); err != nil {
		log.Printf("overdue scan cursor: %v", err)
	}

	if overdueCount > 0 {
		if admin := os.Getenv("ADMIN_EMAIL"); admin != "" {
			subject := fmt.Sprintf("Overdue debtors: %d", overdueCount)
			if err := SendEmail(admin, subject, summary); err != nil {
				log.Printf("overdue summary email: %v", err)
			}
		}
	}

	log.Printf("CheckOverdueDebtors completed, %d marked", overdueCount)
}
