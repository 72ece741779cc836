package sim_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/sim"
)

// recordingIntegrator commits steps without doing any numerics and remembers
// the parameters each step saw.
type recordingIntegrator struct {
	seen []dynamo.Params
	err  error
}

func (r *recordingIntegrator) Step(s *dynamo.State, p dynamo.Params) error {
	if r.err != nil {
		return r.err
	}
	r.seen = append(r.seen, p)
	if err := s.Scratch().CopyFrom(s.Field()); err != nil {
		return err
	}
	s.Commit()
	return nil
}

type countingMetric struct{ observed []int }

func (c *countingMetric) Name() string                  { return "count" }
func (c *countingMetric) Observe(_ *dynamo.Field, t int) { c.observed = append(c.observed, t) }
func (c *countingMetric) Value() float64                { return float64(len(c.observed)) }
func (c *countingMetric) Reset()                        { c.observed = nil }

func newSimulator(tmax int) *sim.Simulator {
	cfg := sim.DefaultConfig()
	cfg.Size = 12
	cfg.Seed = 42
	cfg.Params.TMax = tmax
	s, err := sim.New(cfg)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Simulator", func() {
	var s *sim.Simulator

	BeforeEach(func() {
		s = newSimulator(100)
	})

	Describe("construction", func() {
		It("starts idle at step zero with a seeded field", func() {
			Expect(s.Status()).To(Equal(sim.Idle))
			Expect(s.T()).To(BeZero())
			Expect(s.Size()).To(Equal(12))

			snap := s.Snapshot()
			Expect(snap.U).To(HaveLen(12))
			Expect(snap.U[6][6]).To(Equal(dynamo.SeedU))
			Expect(snap.V[6][6]).To(Equal(dynamo.SeedV))
		})

		It("rejects invalid configuration", func() {
			cfg := sim.DefaultConfig()
			cfg.Params.Du = -1
			_, err := sim.New(cfg)
			Expect(errors.Is(err, dynamo.ErrInvalidParameter)).To(BeTrue())

			cfg = sim.DefaultConfig()
			cfg.Size = 0
			_, err = sim.New(cfg)
			Expect(errors.Is(err, dynamo.ErrInvalidParameter)).To(BeTrue())
		})
	})

	Describe("state machine", func() {
		It("does not step until started", func() {
			ok, err := s.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(s.T()).To(BeZero())
		})

		It("steps while running and keeps the counter when stopped", func() {
			s.Start()
			Expect(s.Status()).To(Equal(sim.Running))
			for i := 0; i < 3; i++ {
				Expect(s.Step()).To(BeTrue())
			}
			Expect(s.T()).To(Equal(3))

			s.Stop()
			Expect(s.Status()).To(Equal(sim.Stopped))
			Expect(s.Step()).To(BeFalse())
			Expect(s.T()).To(Equal(3))

			s.Start()
			Expect(s.Status()).To(Equal(sim.Running))
			Expect(s.Step()).To(BeTrue())
			Expect(s.T()).To(Equal(4))
		})

		It("ignores stop when not running", func() {
			s.Stop()
			Expect(s.Status()).To(Equal(sim.Idle))
		})

		It("halts at tmax regardless of further starts", func() {
			s = newSimulator(5)
			s.Start()
			for i := 0; i < 10; i++ {
				_, err := s.Step()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(s.T()).To(Equal(5))
			Expect(s.Status()).To(Equal(sim.Finished))

			for i := 0; i < 3; i++ {
				s.Start()
				Expect(s.Step()).To(BeFalse())
			}
			Expect(s.T()).To(Equal(5))
			Expect(s.Status()).To(Equal(sim.Finished))
		})

		It("resets from any state back to idle", func() {
			s = newSimulator(5)
			Expect(s.Run(context.Background())).To(Succeed())
			Expect(s.Status()).To(Equal(sim.Finished))

			s.Reset()
			Expect(s.Status()).To(Equal(sim.Idle))
			Expect(s.T()).To(BeZero())
			snap := s.Snapshot()
			Expect(snap.U[6][6]).To(Equal(dynamo.SeedU))
			Expect(snap.V[6][6]).To(Equal(dynamo.SeedV))

			s.Start()
			Expect(s.Step()).To(BeTrue())
			Expect(s.T()).To(Equal(1))
		})

		It("restores the seeded initial field on reset", func() {
			initial := s.Field()
			s.Start()
			for i := 0; i < 3; i++ {
				Expect(s.Step()).To(BeTrue())
			}
			s.Reset()
			Expect(s.Field().U).To(Equal(initial.U))
			Expect(s.Field().V).To(Equal(initial.V))

			s.Reset()
			Expect(s.Field().U).To(Equal(initial.U))
		})

		It("finishes on the next step when tmax is lowered below t", func() {
			s.Start()
			for i := 0; i < 4; i++ {
				Expect(s.Step()).To(BeTrue())
			}
			Expect(s.SetParam("tmax", 2)).To(Succeed())
			Expect(s.Step()).To(BeFalse())
			Expect(s.Status()).To(Equal(sim.Finished))
			Expect(s.T()).To(Equal(4))
		})
	})

	Describe("parameters", func() {
		var rec *recordingIntegrator

		BeforeEach(func() {
			rec = &recordingIntegrator{}
			s.SetIntegrator(rec)
		})

		It("applies updates on the next step", func() {
			s.Start()
			Expect(s.Step()).To(BeTrue())
			Expect(s.SetParam("f", 0.035)).To(Succeed())
			Expect(s.UpdateParams(func(p *dynamo.Params) { p.Dt = 0.5 })).To(Succeed())
			Expect(s.Step()).To(BeTrue())

			Expect(rec.seen).To(HaveLen(2))
			Expect(rec.seen[0].F).To(Equal(dynamo.DefaultF))
			Expect(rec.seen[1].F).To(Equal(0.035))
			Expect(rec.seen[1].Dt).To(Equal(0.5))
		})

		It("rejects malformed values at the setter", func() {
			before := s.Params()

			err := s.SetParam("du", -0.2)
			Expect(errors.Is(err, dynamo.ErrInvalidParameter)).To(BeTrue())

			bad := before
			bad.Dt = 0
			Expect(errors.Is(s.SetParams(bad), dynamo.ErrInvalidParameter)).To(BeTrue())

			err = s.UpdateParams(func(p *dynamo.Params) { p.K = -1 })
			Expect(errors.Is(err, dynamo.ErrInvalidParameter)).To(BeTrue())

			Expect(s.Params()).To(Equal(before))
		})

		It("can be changed in any state", func() {
			Expect(s.SetParam("k", 0.06)).To(Succeed())
			s.Start()
			s.Stop()
			Expect(s.SetParam("k", 0.061)).To(Succeed())
			Expect(s.GetParams()).To(HaveKeyWithValue("k", 0.061))
		})

		It("stops the run when the integrator fails", func() {
			rec.err = dynamo.ErrDiverged
			s.Start()
			ok, err := s.Step()
			Expect(ok).To(BeFalse())
			Expect(errors.Is(err, dynamo.ErrDiverged)).To(BeTrue())
			Expect(s.Status()).To(Equal(sim.Stopped))
			Expect(s.T()).To(BeZero())
			Expect(err.Error()).To(Equal("step 1: " + dynamo.ErrDiverged.Error()))
		})

		It("reports a step-tagged integrator error once", func() {
			rec.err = &dynamo.SimulationError{Step: 1, Wrapped: dynamo.ErrDiverged}
			s.Start()
			_, err := s.Step()
			Expect(errors.Is(err, dynamo.ErrDiverged)).To(BeTrue())
			Expect(err.Error()).To(Equal("step 1: " + dynamo.ErrDiverged.Error()))
		})
	})

	Describe("observers and metrics", func() {
		It("sees every committed step after the swap", func() {
			m := &countingMetric{}
			s.AddMetric(m)

			var steps []int
			s.AddObserver(dynamo.ObserverFunc(func(f *dynamo.Field, t int) {
				Expect(f.N).To(Equal(12))
				steps = append(steps, t)
			}))

			s.Start()
			for i := 0; i < 3; i++ {
				Expect(s.Step()).To(BeTrue())
			}
			Expect(steps).To(Equal([]int{1, 2, 3}))
			Expect(m.observed).To(Equal([]int{1, 2, 3}))
			Expect(s.Metrics()).To(HaveKeyWithValue("count", 3.0))

			s.Reset()
			Expect(s.Metrics()).To(HaveKeyWithValue("count", 0.0))
		})
	})

	Describe("Run", func() {
		It("steps to completion", func() {
			s = newSimulator(20)
			Expect(s.Run(context.Background())).To(Succeed())
			Expect(s.T()).To(Equal(20))
			Expect(s.Status()).To(Equal(sim.Finished))
		})

		It("honours cancellation at the step boundary", func() {
			ctx, cancel := context.WithCancel(context.Background())
			steps := 0
			s.AddObserver(dynamo.ObserverFunc(func(_ *dynamo.Field, _ int) {
				steps++
				if steps == 3 {
					cancel()
				}
			}))

			err := s.Run(ctx)
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
			Expect(s.T()).To(Equal(3))
			Expect(s.Status()).To(Equal(sim.Stopped))
		})
	})

	Describe("snapshots", func() {
		It("copies the committed field", func() {
			s.Start()
			Expect(s.Step()).To(BeTrue())

			snap := s.Snapshot()
			Expect(snap.T).To(Equal(1))
			Expect(snap.TMax).To(Equal(100))
			Expect(snap.Status).To(Equal(sim.Running))
			for _, row := range snap.U {
				Expect(row).To(HaveLen(12))
				for _, u := range row {
					Expect(u).To(BeNumerically(">=", 0))
				}
			}

			snap.U[0][0] = -5
			Expect(s.Field().U[0]).NotTo(Equal(-5.0))
		})
	})
})
