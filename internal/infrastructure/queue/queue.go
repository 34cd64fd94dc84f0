// Package queue holds the out-of-store summarization job backends.
package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StatusPending is the state of a freshly registered job.
const StatusPending = "pending"

// Job is the payload consumers receive.
type Job struct {
	ID         string    `json:"id"`
	ArticleID  string    `json:"article_id"`
	Status     string    `json:"status"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

func newJobPayload(articleID string, now time.Time) ([]byte, error) {
	return json.Marshal(Job{
		ID:         uuid.NewString(),
		ArticleID:  articleID,
		Status:     StatusPending,
		EnqueuedAt: now.UTC(),
	})
}
