package lamina

import (
	"sync"
)

const DefaultPoolWorkers = 4

// Pool is a fixed-size goroutine pool implementing Executor. Tasks submitted
// through Execute are drained by the workers in submission order per worker;
// after Close, Execute drops the task.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = DefaultPoolWorkers
	}

	p := &Pool{
		tasks: make(chan func()),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work()
	}

	return p
}

func (p *Pool) work() {
	defer p.wg.Done()

	for task := range p.tasks {
		task()
	}
}

// Execute submits task to the pool, blocking while all workers are busy.
// A nil task and any task submitted after Close are dropped.
func (p *Pool) Execute(task func()) {
	if task == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.tasks <- task
}

// Close stops the workers after the already-submitted tasks finish and waits
// for them to exit. Close is idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}
