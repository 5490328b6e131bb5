package main

import (
	"context"
	"flag"
	"log"

	"actor-portfolio/internal/config"
	"actor-portfolio/internal/database"
	"actor-portfolio/internal/mailer"
	"actor-portfolio/internal/models"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "list pending inquiries without sending")
	flag.Parse()

	cfg := config.LoadConfig()
	database.InitGorm(cfg)
	store := database.NewInquiryStore(database.GormDB)
	ctx := context.Background()

	pending, err := store.ListByStatus(ctx, models.EmailStatusFailed, models.EmailStatusDropped)
	if err != nil {
		log.Fatalf("Error loading pending inquiries: %v", err)
	}
	log.Printf("Found %d inquiries with undelivered notifications", len(pending))

	sender := mailer.NewSMTPSender(cfg)
	for _, inq := range pending {
		if *dryRun {
			log.Printf("[dry-run] %s from %s <%s> (%s)", inq.UUID, inq.Name, inq.Email, inq.EmailStatus)
			continue
		}

		status, errMsg := models.EmailStatusSent, ""
		if err := sender.Send(mailer.Inquiry{
			Name:            inq.Name,
			Email:           inq.Email,
			Production:      inq.Production,
			Role:            inq.Role,
			Timeline:        inq.Timeline,
			Message:         inq.Message,
			ResumeRequested: inq.ResumeRequested,
		}); err != nil {
			status, errMsg = models.EmailStatusFailed, err.Error()
			log.Printf("Error resending %s: %v", inq.UUID, err)
		} else {
			log.Printf("Successfully resent %s", inq.UUID)
		}

		if err := store.UpdateEmailStatus(ctx, inq.UUID, status, errMsg); err != nil {
			log.Printf("Error updating status for %s: %v", inq.UUID, err)
		}
	}

	log.Println("DONE!")
}
