package willowxr

import "context"

// InputKind identifies a queued input message.
type InputKind uint8

const (
	InputSelectStart InputKind = iota // controller trigger pressed
	InputSelectEnd                    // controller trigger released
	InputRegister                     // make Object interactive
	InputUnregister                   // remove Object from interaction
)

// InputMessage is one discrete input delivered through an InputQueue.
type InputMessage struct {
	Kind       InputKind
	Controller ControllerID
	Object     *Node
}

const defaultInputQueueSize = 64

// InputQueue carries input from other goroutines (device threads, network
// bridges, asset loaders) to the frame. Producers send at any time; the frame
// coordinator drains the queue at the start of Update, so every message is
// fully applied before that frame's hover pass. Safe for concurrent senders.
type InputQueue struct {
	ch chan InputMessage
}

// NewInputQueue returns a queue buffering up to size messages.
func NewInputQueue(size int) *InputQueue {
	if size <= 0 {
		size = defaultInputQueueSize
	}
	return &InputQueue{ch: make(chan InputMessage, size)}
}

// Send blocks until msg is queued or ctx is done.
func (q *InputQueue) Send(ctx context.Context, msg InputMessage) error {
	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend queues msg without blocking. Returns false if the queue is full.
func (q *InputQueue) TrySend(msg InputMessage) bool {
	select {
	case q.ch <- msg:
		return true
	default:
		return false
	}
}

// SelectStart queues a select-start for id without blocking.
func (q *InputQueue) SelectStart(id ControllerID) bool {
	return q.TrySend(InputMessage{Kind: InputSelectStart, Controller: id})
}

// SelectEnd queues a select-end for id without blocking.
func (q *InputQueue) SelectEnd(id ControllerID) bool {
	return q.TrySend(InputMessage{Kind: InputSelectEnd, Controller: id})
}

// Register queues a registration without blocking. Intended for asynchronous
// asset loaders that finish off the frame goroutine.
func (q *InputQueue) Register(n *Node) bool {
	return q.TrySend(InputMessage{Kind: InputRegister, Object: n})
}

// Len returns the number of queued messages.
func (q *InputQueue) Len() int {
	return len(q.ch)
}

// drain applies the messages queued at call time. Messages arriving while
// draining wait for the next frame, so a busy producer cannot stall a frame.
func (q *InputQueue) drain(apply func(InputMessage)) int {
	n := len(q.ch)
	for i := 0; i < n; i++ {
		select {
		case msg := <-q.ch:
			apply(msg)
		default:
			return i
		}
	}
	return n
}
