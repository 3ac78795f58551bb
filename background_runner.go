package marq

import (
	"context"
	"log"
	"sync"
	"time"
)

// BackgroundRunner runs periodic and one-time background tasks with panic
// recovery and graceful shutdown. The server uses it to keep the document
// cache fresh.
type BackgroundRunner struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBackgroundRunner creates a new BackgroundRunner.
func NewBackgroundRunner(ctx context.Context) *BackgroundRunner {
	cctx, cancel := context.WithCancel(ctx)
	return &BackgroundRunner{
		ctx:    cctx,
		cancel: cancel,
	}
}

// AddPeriodicTask starts a task that runs immediately and then on every
// interval tick until shutdown.
func (br *BackgroundRunner) AddPeriodicTask(name string, interval time.Duration, handler func(ctx context.Context) error) {
	br.wg.Add(1)
	go func() {
		defer br.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Recovered from panic in task %s: %v", name, r)
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if err := handler(br.ctx); err != nil {
			log.Printf("Background task '%s' error: %v", name, err)
		}

		for {
			select {
			case <-br.ctx.Done():
				log.Printf("Background task '%s' stopping", name)
				return
			case <-ticker.C:
				if err := handler(br.ctx); err != nil {
					log.Printf("Background task '%s' error: %v", name, err)
				}
			}
		}
	}()
}

// StartOneTimeTask runs a task once in the background.
func (br *BackgroundRunner) StartOneTimeTask(name string, handler func(ctx context.Context) error) {
	br.wg.Add(1)
	go func() {
		defer br.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Recovered from panic in task %s: %v", name, r)
			}
		}()

		if err := handler(br.ctx); err != nil {
			log.Printf("Background task '%s' error: %v", name, err)
		}
	}()
}

// Shutdown gracefully stops all background tasks.
func (br *BackgroundRunner) Shutdown() {
	log.Println("Shutting down background tasks...")
	br.cancel()
	br.wg.Wait()
	log.Println("All background tasks stopped.")
}
