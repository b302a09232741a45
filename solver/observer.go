package solver

import "github.com/sirupsen/logrus"

// A Step describes one iteration of a search.
type Step struct {
	Counter   uint64    // The candidate that was checked
	Direction Direction // Where the counter is going
	// The clauses subsuming the candidate, empty if it was a model.
	// The slice is reused by the next step: observers must copy it to keep it.
	Violators []BitVec
	Skip      int    // log2 of the block of counters that was jumped over
	Next      uint64 // The next candidate, meaningful only if Status is Indet
	Status    Status // Status of the search after this step
}

// An Observer is notified once per step of a search.
// It cannot alter the search.
type Observer interface {
	Observe(step Step)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(step Step)

// Observe calls f(step).
func (f ObserverFunc) Observe(step Step) { f(step) }

type nopObserver struct{}

func (nopObserver) Observe(_ Step) {}

// A LoggingObserver logs each step at debug level.
type LoggingObserver struct {
	Logger logrus.FieldLogger
}

// Observe logs step.
func (o LoggingObserver) Observe(step Step) {
	entry := o.Logger.WithFields(logrus.Fields{
		"counter":   step.Counter,
		"violators": len(step.Violators),
	})
	if step.Status == Sat {
		entry.WithField("model", FromCounter(step.Counter).Negate().CNF()).Debug("model found")
		return
	}
	for _, c := range step.Violators {
		entry.WithField("clause", c.CNF()).Trace("violated")
	}
	entry = entry.WithField("skip", step.Skip)
	if step.Status == Indet {
		entry.WithField("next", step.Next).Debug("jump")
	} else {
		entry.WithField("status", step.Status).Debug("search over")
	}
}
