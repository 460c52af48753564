package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"client_portal/internal/domain/model"
	"client_portal/internal/domain/repository"
	"client_portal/internal/platform/email"

	"github.com/redis/go-redis/v9"
)

// LeadWorker consumes contact-submission ids from the lead queue and mails
// the ops inbox. Queue or mail failures are logged and retried with
// backoff; the worker never takes the process down.
type LeadWorker struct {
	rdb         *redis.Client
	queueName   string
	contactRepo repository.ContactRepository
	sender      email.Sender
}

func NewLeadWorker(rdb *redis.Client, queueName string, contactRepo repository.ContactRepository, sender email.Sender) *LeadWorker {
	return &LeadWorker{
		rdb:         rdb,
		queueName:   queueName,
		contactRepo: contactRepo,
		sender:      sender,
	}
}

func (w *LeadWorker) Start(ctx context.Context) {
	log.Println("Lead worker started, listening to queue:", w.queueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Lead worker stopping...")
			return
		default:
			// A finite BRPop timeout keeps the loop responsive to
			// shutdown even when the queue stays empty.
			entry, err := w.rdb.BRPop(ctx, 5*time.Second, w.queueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					continue
				}
				log.Printf("ERROR: lead worker BRPop on %q: %v", w.queueName, err)
				time.Sleep(5 * time.Second)
				continue
			}

			// entry is [queueName, value]
			if len(entry) < 2 || entry[1] == "" {
				continue
			}
			w.notify(ctx, entry[1])
		}
	}
}

func (w *LeadWorker) notify(ctx context.Context, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		log.Printf("WARN: lead worker discarding malformed queue entry %q", rawID)
		return
	}

	submission, err := w.contactRepo.FindByID(ctx, id)
	if err != nil {
		log.Printf("ERROR: lead worker fetching submission %d: %v", id, err)
		return
	}

	if err := w.sender.Send(leadSubject(submission), leadBody(submission)); err != nil {
		log.Printf("ERROR: lead worker notifying for submission %d: %v", id, err)
	}
}

func leadSubject(c *model.ContactSubmission) string {
	return fmt.Sprintf("New contact lead #%d: %s", c.ID, c.Subject)
}

func leadBody(c *model.ContactSubmission) string {
	return fmt.Sprintf("From: %s <%s>\nReceived: %s\n\n%s",
		c.Name, c.Email, c.CreatedAt.Format(time.RFC3339), c.Message)
}
