package queue

import (
	"context"
	"testing"
	"time"

	"tours-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryQueue(t *testing.T) {
	t.Run("creates queue with specified capacity", func(t *testing.T) {
		q := NewMemoryQueue(10)

		assert.NotNil(t, q)
		assert.Equal(t, 10, q.Capacity())
		assert.Equal(t, 0, q.Len())
	})

	t.Run("creates queue with zero capacity", func(t *testing.T) {
		q := NewMemoryQueue(0)

		assert.NotNil(t, q)
		assert.Equal(t, 0, q.Capacity())
	})
}

func TestMemoryQueue_Enqueue(t *testing.T) {
	t.Run("successfully enqueues job", func(t *testing.T) {
		q := NewMemoryQueue(10)
		job := EmailJob{
			User: models.User{Email: "jane@example.com"},
			URL:  "http://localhost:8080/me",
		}

		err := q.Enqueue(job)

		assert.NoError(t, err)
		assert.Equal(t, 1, q.Len())
	})

	t.Run("enqueues multiple jobs up to capacity", func(t *testing.T) {
		q := NewMemoryQueue(3)

		for i := 0; i < 3; i++ {
			err := q.Enqueue(EmailJob{User: models.User{Email: "jane@example.com"}})
			assert.NoError(t, err)
		}

		assert.Equal(t, 3, q.Len())
	})

	t.Run("returns error when queue is full", func(t *testing.T) {
		q := NewMemoryQueue(2)

		_ = q.Enqueue(EmailJob{})
		_ = q.Enqueue(EmailJob{})

		err := q.Enqueue(EmailJob{})

		assert.Equal(t, ErrQueueFull, err)
		assert.Equal(t, 2, q.Len())
	})

	t.Run("returns error when queue is closed", func(t *testing.T) {
		q := NewMemoryQueue(10)
		q.Close()

		err := q.Enqueue(EmailJob{})

		assert.Equal(t, ErrQueueClosed, err)
	})
}

func TestMemoryQueue_Dequeue(t *testing.T) {
	t.Run("successfully dequeues job", func(t *testing.T) {
		q := NewMemoryQueue(10)
		expectedJob := EmailJob{
			User:       models.User{Email: "jane@example.com"},
			URL:        "http://localhost:8080/me",
			RetryCount: 1,
		}
		_ = q.Enqueue(expectedJob)

		ctx := context.Background()
		job, err := q.Dequeue(ctx)

		require.NoError(t, err)
		assert.Equal(t, expectedJob.User.Email, job.User.Email)
		assert.Equal(t, expectedJob.URL, job.URL)
		assert.Equal(t, expectedJob.RetryCount, job.RetryCount)
		assert.Equal(t, 0, q.Len())
	})

	t.Run("dequeues in FIFO order", func(t *testing.T) {
		q := NewMemoryQueue(10)
		_ = q.Enqueue(EmailJob{URL: "first"})
		_ = q.Enqueue(EmailJob{URL: "second"})

		ctx := context.Background()
		result1, _ := q.Dequeue(ctx)
		result2, _ := q.Dequeue(ctx)

		assert.Equal(t, "first", result1.URL)
		assert.Equal(t, "second", result2.URL)
	})

	t.Run("returns error when context is cancelled", func(t *testing.T) {
		q := NewMemoryQueue(10)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := q.Dequeue(ctx)

		assert.Equal(t, context.Canceled, err)
	})

	t.Run("returns error when queue is closed while waiting", func(t *testing.T) {
		q := NewMemoryQueue(10)

		go func() {
			time.Sleep(50 * time.Millisecond)
			q.Close()
		}()

		ctx := context.Background()
		_, err := q.Dequeue(ctx)

		assert.Equal(t, ErrQueueClosed, err)
	})

	t.Run("blocks until job available", func(t *testing.T) {
		q := NewMemoryQueue(10)
		expectedJob := EmailJob{User: models.User{Email: "jane@example.com"}}

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = q.Enqueue(expectedJob)
		}()

		ctx := context.Background()
		job, err := q.Dequeue(ctx)

		require.NoError(t, err)
		assert.Equal(t, expectedJob.User.Email, job.User.Email)
	})
}

func TestMemoryQueue_Close(t *testing.T) {
	t.Run("close is idempotent", func(t *testing.T) {
		q := NewMemoryQueue(10)

		q.Close()
		q.Close()
		q.Close()

		err := q.Enqueue(EmailJob{})
		assert.Equal(t, ErrQueueClosed, err)
	})

	t.Run("allows draining existing jobs after close", func(t *testing.T) {
		q := NewMemoryQueue(10)
		_ = q.Enqueue(EmailJob{URL: "pending"})

		q.Close()

		ctx := context.Background()
		result, err := q.Dequeue(ctx)

		require.NoError(t, err)
		assert.Equal(t, "pending", result.URL)

		_, err = q.Dequeue(ctx)
		assert.Equal(t, ErrQueueClosed, err)
	})
}

func TestMemoryQueue_Reset(t *testing.T) {
	t.Run("resets closed queue to usable state", func(t *testing.T) {
		q := NewMemoryQueue(10)

		q.Close()
		err := q.Enqueue(EmailJob{})
		assert.Equal(t, ErrQueueClosed, err)

		q.Reset()

		err = q.Enqueue(EmailJob{})
		assert.NoError(t, err)
		assert.Equal(t, 1, q.Len())
	})

	t.Run("clears existing jobs and preserves capacity", func(t *testing.T) {
		q := NewMemoryQueue(5)

		_ = q.Enqueue(EmailJob{})
		_ = q.Enqueue(EmailJob{})
		assert.Equal(t, 2, q.Len())

		q.Reset()

		assert.Equal(t, 0, q.Len())
		assert.Equal(t, 5, q.Capacity())
	})
}

func TestMemoryQueue_Concurrency(t *testing.T) {
	t.Run("handles concurrent enqueue and dequeue", func(t *testing.T) {
		q := NewMemoryQueue(100)
		ctx := context.Background()
		jobCount := 50

		results := make(chan EmailJob, jobCount)
		for i := 0; i < 5; i++ {
			go func() {
				for {
					job, err := q.Dequeue(ctx)
					if err != nil {
						return
					}
					results <- job
				}
			}()
		}

		for i := 0; i < jobCount; i++ {
			go func() {
				_ = q.Enqueue(EmailJob{User: models.User{Email: "jane@example.com"}})
			}()
		}

		receivedCount := 0
		timeout := time.After(2 * time.Second)
		for receivedCount < jobCount {
			select {
			case <-results:
				receivedCount++
			case <-timeout:
				t.Fatalf("Timed out waiting for jobs, received %d/%d", receivedCount, jobCount)
			}
		}

		q.Close()
		assert.Equal(t, jobCount, receivedCount)
	})
}
