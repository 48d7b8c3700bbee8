package gpio

import "sync"

// Event is one recorded line write.
type Event struct {
	Line string
	High bool
}

// Trace collects writes from SimLines so tests can assert pulse counts and
// ordering without hardware or wall-clock delays.
type Trace struct {
	mu     sync.Mutex
	events []Event
}

func NewTrace() *Trace { return &Trace{} }

// Line returns a recording line with the given name.
func (t *Trace) Line(name string) *SimLine {
	return &SimLine{name: name, trace: t}
}

func (t *Trace) append(e Event) {
	t.mu.Lock()
	t.events = append(t.events, e)
	t.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (t *Trace) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Reset discards the recorded events.
func (t *Trace) Reset() {
	t.mu.Lock()
	t.events = t.events[:0]
	t.mu.Unlock()
}

// RisingEdges counts low-to-high transitions on the named line. Repeated
// writes of the same level do not count as edges.
func (t *Trace) RisingEdges(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	level := false
	for _, e := range t.events {
		if e.Line != name {
			continue
		}
		if e.High && !level {
			n++
		}
		level = e.High
	}
	return n
}

// SimLine is an in-memory Line that records every write into its Trace.
type SimLine struct {
	name  string
	trace *Trace
	err   error
}

// Fail makes every subsequent write on this line return err.
func (l *SimLine) Fail(err error) { l.err = err }

func (l *SimLine) SetHigh() error {
	if l.err != nil {
		return l.err
	}
	l.trace.append(Event{Line: l.name, High: true})
	return nil
}

func (l *SimLine) SetLow() error {
	if l.err != nil {
		return l.err
	}
	l.trace.append(Event{Line: l.name, High: false})
	return nil
}
