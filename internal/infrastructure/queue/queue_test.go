package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/alicebob/miniredis/v2"

	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
)

func TestKafkaQueuePublishesPendingJob(t *testing.T) {
	t.Parallel()

	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var job Job
		if err := json.Unmarshal(val, &job); err != nil {
			return err
		}
		if job.ArticleID != "article-1" || job.Status != StatusPending || job.ID == "" {
			return fmt.Errorf("unexpected job %+v", job)
		}
		if !job.EnqueuedAt.Equal(time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)) {
			return fmt.Errorf("unexpected enqueue time %v", job.EnqueuedAt)
		}
		return nil
	})

	q := NewKafkaQueue(producer, "")
	q.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }

	if err := q.Enqueue(context.Background(), "article-1"); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Fatalf("close producer: %v", err)
	}
}

func TestKafkaQueueSurfacesSendErrors(t *testing.T) {
	t.Parallel()

	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	q := NewKafkaQueue(producer, "summaries")
	err := q.Enqueue(context.Background(), "article-2")
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected broker error, got %v", err)
	}
	_ = q.Close()
}

func TestKafkaQueueHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	producer := mocks.NewSyncProducer(t, nil)
	q := NewKafkaQueue(producer, "summaries")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := q.Enqueue(ctx, "article-3"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	_ = q.Close()
}

func TestRedisQueueUnreachable(t *testing.T) {
	t.Parallel()

	q := NewRedisQueue(RedisOptions{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	defer q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := q.Enqueue(ctx, "article-1"); err == nil {
		t.Fatalf("expected connection error")
	}
}

func TestRedisQueueKeys(t *testing.T) {
	t.Parallel()

	q := NewRedisQueue(RedisOptions{Addr: "127.0.0.1:1", Prefix: "test"})
	defer q.Close()

	if q.enqueuedKey() != "test:enqueued" || q.pendingKey() != "test:pending" {
		t.Fatalf("unexpected keys: %s %s", q.enqueuedKey(), q.pendingKey())
	}
}

func TestRedisQueueEnqueuesOnce(t *testing.T) {
	t.Parallel()

	srv := miniredis.RunT(t)
	q := NewRedisQueue(RedisOptions{Addr: srv.Addr(), Prefix: "anvil"})
	defer q.Close()
	q.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	if err := q.Enqueue(ctx, "article-1"); err != nil {
		t.Fatalf("first Enqueue returned error: %v", err)
	}

	pending, err := srv.List("anvil:pending")
	if err != nil {
		t.Fatalf("read pending list: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending job, got %d", len(pending))
	}
	var job Job
	if err := json.Unmarshal([]byte(pending[0]), &job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if job.ArticleID != "article-1" || job.Status != StatusPending || job.ID == "" {
		t.Fatalf("unexpected job %+v", job)
	}

	if err := q.Enqueue(ctx, "article-1"); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on repeat, got %v", err)
	}
	pending, _ = srv.List("anvil:pending")
	if len(pending) != 1 {
		t.Fatalf("repeat enqueue must not push again, got %d jobs", len(pending))
	}
}

func TestRedisQueueRollsBackMarkerWhenPushFails(t *testing.T) {
	t.Parallel()

	srv := miniredis.RunT(t)
	q := NewRedisQueue(RedisOptions{Addr: srv.Addr(), Prefix: "anvil"})
	defer q.Close()

	// A string at the list key makes LPUSH fail with WRONGTYPE.
	if err := srv.Set("anvil:pending", "occupied"); err != nil {
		t.Fatalf("seed key: %v", err)
	}

	if err := q.Enqueue(context.Background(), "article-2"); err == nil {
		t.Fatalf("expected lpush error")
	}
	if ok, _ := srv.SIsMember("anvil:enqueued", "article-2"); ok {
		t.Fatalf("marker should be removed after a failed push")
	}
}
