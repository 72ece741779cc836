package metrics

import (
	"math"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
)

// Activity is the mean absolute change of U per cell between the last two
// observed fields. It falls towards zero as the pattern settles.
type Activity struct {
	name  string
	prev  []float64
	value float64
}

func NewActivity() *Activity {
	return &Activity{name: "activity"}
}

func (a *Activity) Name() string { return a.name }

func (a *Activity) Observe(f *dynamo.Field, t int) {
	if len(a.prev) != len(f.U) {
		a.prev = make([]float64, len(f.U))
		copy(a.prev, f.U)
		a.value = 0
		return
	}
	sum := 0.0
	for k, u := range f.U {
		sum += math.Abs(u - a.prev[k])
	}
	a.value = sum / float64(len(f.U))
	copy(a.prev, f.U)
}

func (a *Activity) Value() float64 { return a.value }

func (a *Activity) Reset() {
	a.prev = nil
	a.value = 0
}
