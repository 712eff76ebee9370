package queue

import (
	"context"
	"log"
	"sync"
	"time"

	"tours-api/internal/mailer"
)

const (
	// MaxRetries is the maximum number of automatic retries for failed deliveries.
	MaxRetries = 3
	// RetryDelay is the base delay between retries (exponential backoff).
	RetryDelay = 5 * time.Second
)

// Processor delivers queued email jobs through a pool of workers.
type Processor struct {
	queue        *MemoryQueue
	mailer       mailer.Mailer
	workerCount  int
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// NewProcessor creates a new email job processor.
func NewProcessor(queue *MemoryQueue, m mailer.Mailer, workerCount int) *Processor {
	return &Processor{
		queue:       queue,
		mailer:      m,
		workerCount: workerCount,
		shutdownCh:  make(chan struct{}),
	}
}

// Start begins processing jobs with the configured number of workers.
func (p *Processor) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
	log.Printf("Email processor started with %d workers", p.workerCount)
}

// Stop gracefully stops the processor, waiting for workers to finish.
func (p *Processor) Stop() {
	p.shutdownOnce.Do(func() {
		close(p.shutdownCh)
		p.queue.Close()
	})
	p.wg.Wait()
	log.Println("Email processor stopped")
}

func (p *Processor) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for {
		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if err == ErrQueueClosed || err == context.Canceled {
				log.Printf("Email worker %d shutting down", id)
				return
			}
			continue
		}
		p.processJob(job)
	}
}

func (p *Processor) processJob(job EmailJob) {
	if err := p.mailer.SendWelcome(&job.User, job.URL); err != nil {
		log.Printf("Welcome email to %s failed: %v", job.User.Email, err)
		p.handleFailure(job)
		return
	}
	log.Printf("Welcome email sent to %s", job.User.Email)
}

func (p *Processor) handleFailure(job EmailJob) {
	job.RetryCount++

	if job.RetryCount >= MaxRetries {
		// Welcome mail is best-effort; after max retries we just give up.
		log.Printf("Giving up on welcome email to %s after %d attempts", job.User.Email, job.RetryCount)
		return
	}

	delay := RetryDelay * time.Duration(1<<uint(job.RetryCount-1))
	log.Printf("Retrying welcome email to %s in %v (attempt %d/%d)", job.User.Email, delay, job.RetryCount+1, MaxRetries)

	// Schedule retry with delay. Uses shutdownCh instead of ctx so a pending
	// retry is dropped cleanly during graceful shutdown.
	go func() {
		select {
		case <-p.shutdownCh:
			log.Printf("Shutdown during retry delay, dropping welcome email to %s", job.User.Email)
		case <-time.After(delay):
			if err := p.queue.Enqueue(job); err != nil {
				log.Printf("Failed to re-enqueue welcome email to %s: %v", job.User.Email, err)
			}
		}
	}()
}
