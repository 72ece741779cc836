package dynamo

// Metric accumulates a scalar summary of a run, observed after every
// committed step.
type Metric interface {
	Name() string
	Observe(f *Field, t int)
	Value() float64
	Reset()
}

// Observer is notified with the committed field after each step. The field
// is only valid for the duration of the call.
type Observer interface {
	OnStep(f *Field, t int)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(f *Field, t int)

func (fn ObserverFunc) OnStep(f *Field, t int) { fn(f, t) }

// Configurable is implemented by anything exposing named tunables.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
