// Package tasks runs slow remote Git operations (fetch, push, pull) off the
// UI goroutine and hands their results back through a non-blocking queue.
package tasks

import "fmt"

type Kind int

const (
	Fetch Kind = iota
	Push
	Pull
)

func (k Kind) String() string {
	switch k {
	case Push:
		return "push"
	case Pull:
		return "pull"
	default:
		return "fetch"
	}
}

// Op is one queued remote operation. Refspec is only used by Push and Pull;
// empty means the current branch.
type Op struct {
	Kind    Kind
	Remote  string
	Refspec string
}

func FetchOp(remote string) Op { return Op{Kind: Fetch, Remote: remote} }
func PushOp(remote string) Op  { return Op{Kind: Push, Remote: remote} }
func PullOp(remote string) Op  { return Op{Kind: Pull, Remote: remote} }

func (o Op) String() string {
	return o.Kind.String() + " " + o.Remote
}

// ProgressMessage is shown while the op is pending.
func (o Op) ProgressMessage() string {
	switch o.Kind {
	case Push:
		return fmt.Sprintf("Pushing to %s...", o.Remote)
	case Pull:
		return fmt.Sprintf("Pulling from %s...", o.Remote)
	default:
		return fmt.Sprintf("Fetching from %s...", o.Remote)
	}
}

// Result is what a worker reports back. Message is ready for display
// without a status symbol.
type Result struct {
	Op      Op
	OK      bool
	Message string
}
