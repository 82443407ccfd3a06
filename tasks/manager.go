package tasks

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/mrbonezy/forge/logging"
)

// Remote is the slice of the Git client a worker needs.
type Remote interface {
	Fetch(remote string) (int, error)
	Push(remote string, refspec string) error
	Pull(remote string, refspec string) error
}

// Opener opens a fresh client for workdir. Workers never share the UI's
// client.
type Opener func(workdir string) (Remote, error)

// Explainer turns an error into a user-facing message.
type Explainer func(error) string

// Manager owns the workers and the result queue. Spawn, TryRecv,
// PendingCount and Close are called from the UI goroutine only; workers
// touch nothing but the queue.
type Manager struct {
	open    Opener
	explain Explainer
	sem     chan struct{}

	mu      sync.Mutex
	queue   []Result
	closed  bool
	pending int
}

type Option func(*Manager)

// WithWorkers overrides the number of jobs allowed to run at once.
func WithWorkers(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.sem = make(chan struct{}, n)
		}
	}
}

func WithExplainer(explain Explainer) Option {
	return func(m *Manager) {
		if explain != nil {
			m.explain = explain
		}
	}
}

func NewManager(open Opener, opts ...Option) *Manager {
	m := &Manager{
		open:    open,
		explain: func(err error) string { return err.Error() },
		sem:     make(chan struct{}, defaultWorkers()),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func defaultWorkers() int {
	return min(max(2, runtime.NumCPU()), 8)
}

// Spawn queues op against the repository at workdir and returns at once.
func (m *Manager) Spawn(workdir string, op Op) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.pending++
	m.mu.Unlock()

	logging.With("tasks").Debug("spawn", "op", op.String(), "workdir", workdir)
	go m.run(workdir, op)
}

func (m *Manager) run(workdir string, op Op) {
	m.sem <- struct{}{}
	defer func() { <-m.sem }()

	res := m.execute(workdir, op)
	logging.With("tasks").Debug("done", "op", op.String(), "ok", res.OK, "message", res.Message)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.queue = append(m.queue, res)
}

func (m *Manager) execute(workdir string, op Op) (res Result) {
	res.Op = op
	defer func() {
		if r := recover(); r != nil {
			res.OK = false
			res.Message = fmt.Sprintf("%s failed: %v", op.Kind, r)
		}
	}()

	if m.open == nil {
		res.Message = "No Git repository detected"
		return res
	}
	client, err := m.open(workdir)
	if err != nil {
		res.Message = m.explain(err)
		return res
	}

	switch op.Kind {
	case Fetch:
		n, ferr := client.Fetch(op.Remote)
		err = ferr
		res.Message = fmt.Sprintf("Fetched %d objects from %s", n, op.Remote)
	case Push:
		err = client.Push(op.Remote, op.Refspec)
		res.Message = fmt.Sprintf("Pushed to %s", op.Remote)
	case Pull:
		err = client.Pull(op.Remote, op.Refspec)
		res.Message = fmt.Sprintf("Pulled from %s", op.Remote)
	default:
		err = fmt.Errorf("unknown operation %d", op.Kind)
	}
	if err != nil {
		res.Message = m.explain(err)
		return res
	}
	res.OK = true
	return res
}

// TryRecv pops the oldest finished result, if any. It never blocks.
func (m *Manager) TryRecv() (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return Result{}, false
	}
	res := m.queue[0]
	m.queue[0] = Result{}
	m.queue = m.queue[1:]
	m.pending--
	return res, true
}

// PendingCount is the number of spawned jobs whose result has not been
// received yet.
func (m *Manager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Close detaches running workers. Their results are dropped and later
// Spawn calls are ignored.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.queue = nil
}
