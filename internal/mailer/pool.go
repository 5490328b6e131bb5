package mailer

import (
	"log"
	"sync"
)

// Job is one queued inquiry. ID ties the outcome back to the stored record.
type Job struct {
	ID      string
	Inquiry Inquiry
}

// ResultFunc receives the outcome of every job a worker picks up.
type ResultFunc func(job Job, err error)

// Pool sends queued jobs on a fixed number of workers. Submit never blocks:
// a full queue drops the job.
type Pool struct {
	sender   Sender
	jobs     chan Job
	onResult ResultFunc

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewPool(sender Sender, workers, queueSize int, onResult ResultFunc) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	p := &Pool{
		sender:   sender,
		jobs:     make(chan Job, queueSize),
		onResult: onResult,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for job := range p.jobs {
		err := p.sender.Send(job.Inquiry)
		if err != nil {
			log.Printf("mailer: failed to send inquiry %s: %v", job.ID, err)
		} else {
			log.Printf("mailer: sent inquiry %s from %s", job.ID, job.Inquiry.Email)
		}
		if p.onResult != nil {
			p.onResult(job, err)
		}
	}
}

// Submit queues a job and reports whether it was accepted.
func (p *Pool) Submit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		log.Printf("mailer: pool closed, dropping inquiry %s", job.ID)
		return false
	}
	select {
	case p.jobs <- job:
		return true
	default:
		log.Printf("mailer: queue full, dropping inquiry %s", job.ID)
		return false
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
