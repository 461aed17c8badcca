package extract

// Progress notifications run on a dedicated goroutine so a slow consumer
// never blocks extraction. The channel is buffered and sends are
// non-blocking: when the consumer lags, intermediate fractions are dropped
// rather than queued without bound.

type notifier struct {
	ch   chan float64
	done chan struct{}
}

// newNotifier starts the delivery goroutine. A nil callback yields an inert
// notifier whose methods are no-ops.
func newNotifier(fn func(fraction float64)) *notifier {
	if fn == nil {
		return &notifier{}
	}
	n := &notifier{
		ch:   make(chan float64, 8),
		done: make(chan struct{}),
	}
	go func() {
		defer close(n.done)
		for f := range n.ch {
			fn(f)
		}
	}()
	return n
}

// report offers a fraction to the consumer, dropping it when the buffer is
// full.
func (n *notifier) report(f float64) {
	if n.ch == nil {
		return
	}
	select {
	case n.ch <- f:
	default:
	}
}

// stop closes the channel and waits for queued notifications to drain, so
// no callback fires after the run returns.
func (n *notifier) stop() {
	if n.ch == nil {
		return
	}
	close(n.ch)
	<-n.done
}
