package lamina

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestPool_ExecutesTasks(t *testing.T) {
	t.Parallel()

	p := NewPool(3)
	defer p.Close()

	var executed atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		p.Execute(func() {
			defer wg.Done()
			executed.Add(1)
		})
	}
	wg.Wait()

	if executed.Load() != 20 {
		t.Fatalf("expected 20 executed tasks, got %d", executed.Load())
	}
}

func TestPool_ExecuteAfterCloseIsDropped(t *testing.T) {
	t.Parallel()

	p := NewPool(1)
	p.Close()

	var executed atomic.Int32
	p.Execute(func() { executed.Add(1) })

	if executed.Load() != 0 {
		t.Fatalf("expected dropped task, got %d executions", executed.Load())
	}
}

func TestPool_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	p := NewPool(2)
	p.Close()
	p.Close()
}

func TestPool_NilTaskIgnored(t *testing.T) {
	t.Parallel()

	p := NewPool(1)
	defer p.Close()
	p.Execute(nil)
}

func TestExecutorFunc_Adapts(t *testing.T) {
	t.Parallel()

	ran := false
	var x Executor = ExecutorFunc(func(task func()) { task() })
	x.Execute(func() { ran = true })

	if !ran {
		t.Fatalf("expected adapted executor to run the task")
	}
}
