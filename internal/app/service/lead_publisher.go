package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// LeadPublisher hands new contact submission ids to the notification
// worker. Publishing is best-effort: the lead row is already durable in
// the database, the queue only drives the ops email.
type LeadPublisher interface {
	Publish(ctx context.Context, submissionID int64) error
}

type redisLeadPublisher struct {
	rdb       *redis.Client
	queueName string
}

func NewRedisLeadPublisher(rdb *redis.Client, queueName string) LeadPublisher {
	return &redisLeadPublisher{rdb: rdb, queueName: queueName}
}

func (p *redisLeadPublisher) Publish(ctx context.Context, submissionID int64) error {
	if err := p.rdb.RPush(ctx, p.queueName, strconv.FormatInt(submissionID, 10)).Err(); err != nil {
		return fmt.Errorf("redisLeadPublisher.Publish: %w", err)
	}
	return nil
}
