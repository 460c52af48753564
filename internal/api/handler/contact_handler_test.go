package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"client_portal/internal/app/service"
	"client_portal/internal/common"
	"client_portal/internal/domain/model"
)

type fakeContactRepo struct {
	createFn   func(ctx context.Context, c *model.ContactSubmission) (*model.ContactSubmission, error)
	findByIDFn func(ctx context.Context, id int64) (*model.ContactSubmission, error)
	listAllFn  func(ctx context.Context) ([]model.ContactSubmission, error)
	markReadFn func(ctx context.Context, id int64) (*model.ContactSubmission, error)
}

func (f *fakeContactRepo) Create(ctx context.Context, c *model.ContactSubmission) (*model.ContactSubmission, error) {
	return f.createFn(ctx, c)
}

func (f *fakeContactRepo) FindByID(ctx context.Context, id int64) (*model.ContactSubmission, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeContactRepo) ListAll(ctx context.Context) ([]model.ContactSubmission, error) {
	return f.listAllFn(ctx)
}

func (f *fakeContactRepo) MarkRead(ctx context.Context, id int64) (*model.ContactSubmission, error) {
	return f.markReadFn(ctx, id)
}

type fakeLeadPublisher struct {
	publishFn func(ctx context.Context, submissionID int64) error
}

func (f *fakeLeadPublisher) Publish(ctx context.Context, submissionID int64) error {
	return f.publishFn(ctx, submissionID)
}

func TestContactCreate(t *testing.T) {
	var published int64
	repo := &fakeContactRepo{
		createFn: func(ctx context.Context, c *model.ContactSubmission) (*model.ContactSubmission, error) {
			created := *c
			created.ID = 9
			return &created, nil
		},
	}
	pub := &fakeLeadPublisher{publishFn: func(ctx context.Context, submissionID int64) error {
		published = submissionID
		return nil
	}}
	h := NewContactHandler(service.NewContactService(repo, pub))

	body, _ := json.Marshal(map[string]string{
		"name":    "Dana Reyes",
		"email":   "dana@example.com",
		"subject": "Managed backups quote",
		"message": "We have 40 workstations and need offsite backups.",
	})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got model.ContactSubmission
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 9 || got.IsRead {
		t.Errorf("unexpected submission %+v", got)
	}
	if published != 9 {
		t.Errorf("expected lead 9 to be enqueued, got %d", published)
	}
}

func TestContactCreateSurvivesQueueFailure(t *testing.T) {
	repo := &fakeContactRepo{
		createFn: func(ctx context.Context, c *model.ContactSubmission) (*model.ContactSubmission, error) {
			created := *c
			created.ID = 10
			return &created, nil
		},
	}
	pub := &fakeLeadPublisher{publishFn: func(ctx context.Context, submissionID int64) error {
		return errors.New("redis is down")
	}}
	h := NewContactHandler(service.NewContactService(repo, pub))

	body, _ := json.Marshal(map[string]string{
		"name":    "Dana Reyes",
		"email":   "dana@example.com",
		"subject": "Managed backups quote",
		"message": "We have 40 workstations and need offsite backups.",
	})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Errorf("expected the lead to be accepted despite the queue failure, got %d", rec.Code)
	}
}

func TestContactCreateInvalidEmail(t *testing.T) {
	repo := &fakeContactRepo{
		createFn: func(ctx context.Context, c *model.ContactSubmission) (*model.ContactSubmission, error) {
			t.Fatal("repository should not be called for an invalid request")
			return nil, nil
		},
	}
	h := NewContactHandler(service.NewContactService(repo, nil))

	body, _ := json.Marshal(map[string]string{
		"name":    "Dana Reyes",
		"email":   "not-an-email",
		"subject": "Quote",
		"message": "Hello",
	})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	var resp common.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := resp.Fields["email"]; !ok {
		t.Errorf("expected a field error for email, got %v", resp.Fields)
	}
}
