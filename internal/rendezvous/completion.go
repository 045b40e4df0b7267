package rendezvous

// State is the lifecycle of a queued completion.
type State uint8

const (
	// Pending completions are still owned by the channel.
	Pending State = iota
	// Resolved completions delivered their outcome successfully.
	Resolved
	// Rejected completions were released with an error.
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// completion is the one-shot record embedded in every queued waiter.
type completion struct {
	state State
}

func (x *completion) State() State {
	return x.state
}

func (x *completion) settle(state State) {
	if x.state != Pending {
		panic(unreachable("completion settled twice"))
	}
	x.state = state
}

type putter[T any] struct {
	done  func(err error)
	value T
	completion
}

func (x *putter[T]) resolve() {
	x.settle(Resolved)
	if x.done != nil {
		x.done(nil)
	}
}

func (x *putter[T]) reject(err error) {
	x.settle(Rejected)
	if x.done != nil {
		x.done(err)
	}
}

type popper[T any] struct {
	done func(value T, ok bool)
	completion
}

func (x *popper[T]) resolve(value T, ok bool) {
	x.settle(Resolved)
	if x.done != nil {
		x.done(value, ok)
	}
}

type readier struct {
	done func()
	completion
}

func (x *readier) resolve() {
	x.settle(Resolved)
	if x.done != nil {
		x.done()
	}
}
