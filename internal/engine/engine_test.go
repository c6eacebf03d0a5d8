package engine_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/abortcalc/internal/engine"
	"github.com/san-kum/abortcalc/internal/margin"
)

var _ = Describe("Engine", func() {
	var e *engine.Engine

	BeforeEach(func() {
		e = engine.New(engine.DefaultState())
	})

	Describe("startup", func() {
		It("publishes the stock defaults with θ as output", func() {
			st := e.Current()
			Expect(st.Output()).To(Equal(margin.Angle))
			for _, q := range margin.All {
				Expect(st.Value(q)).To(Equal(5.0))
				Expect(st.Record(q).Units).To(Equal(q.Units()))
			}
			Expect(st.Record(margin.Speed).Range).To(Equal(engine.Range{Start: 5, Stop: 300, Step: 5}))
		})
	})

	Describe("SetInput", func() {
		It("recomputes θ when b changes", func() {
			st, err := e.SetInput(margin.Buffer, 10.0)
			Expect(err).NotTo(HaveOccurred())

			want := math.Max(0.1, math.Min(90, margin.AbortAngle(10, 5, 5, 5)))
			Expect(st.Value(margin.Buffer)).To(Equal(10.0))
			Expect(st.Value(margin.Angle)).To(Equal(want))
			Expect(st.Value(margin.Angle)).To(BeNumerically("~", 13.52, 0.01))
			Expect(st.Value(margin.Time)).To(Equal(5.0))
			Expect(st.Value(margin.Speed)).To(Equal(5.0))
			Expect(st.Value(margin.Radius)).To(Equal(5.0))
			Expect(e.Current()).To(Equal(st))
		})

		It("changes only the edited quantity and the output", func() {
			_, err := e.SetOutputTarget(margin.Radius)
			Expect(err).NotTo(HaveOccurred())
			before := e.Current()

			after, err := e.SetInput(margin.Time, 3.0)
			Expect(err).NotTo(HaveOccurred())

			Expect(after.Output()).To(Equal(margin.Radius))
			for _, q := range margin.All {
				switch q {
				case margin.Time:
					Expect(after.Value(q)).To(Equal(3.0))
				case margin.Radius:
					continue
				default:
					Expect(after.Value(q)).To(Equal(before.Value(q)), q.Name())
				}
				Expect(after.Record(q).Range).To(Equal(before.Record(q).Range))
			}
		})

		It("does not clamp the edited input", func() {
			st, err := e.SetInput(margin.Time, 42.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(st.Value(margin.Time)).To(Equal(42.0))
		})

		It("rejects edits to the output quantity", func() {
			before := e.Current()
			_, err := e.SetInput(margin.Angle, 30)
			Expect(err).To(MatchError(engine.ErrOutputLocked))
			Expect(e.Current()).To(Equal(before))
		})

		It("rejects unknown quantities", func() {
			before := e.Current()
			_, err := e.SetInput(margin.Quantity(11), 1)
			Expect(err).To(MatchError(engine.ErrInvalidQuantity))
			Expect(e.Current()).To(Equal(before))
		})

		It("does not alter earlier snapshots", func() {
			first := e.Current()
			_, err := e.SetInput(margin.Buffer, 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Value(margin.Buffer)).To(Equal(5.0))
			Expect(first.Value(margin.Angle)).To(Equal(5.0))
		})
	})

	Describe("SetOutputTarget", func() {
		It("recomputes s from the defaults", func() {
			st, err := e.SetOutputTarget(margin.Speed)
			Expect(err).NotTo(HaveOccurred())

			want := math.Max(5, math.Min(300, margin.AbortSpeed(5, 5, 5, 5)))
			Expect(st.Output()).To(Equal(margin.Speed))
			Expect(st.Value(margin.Speed)).To(Equal(want))
			Expect(st.Value(margin.Speed)).To(BeNumerically("~", 6.772, 0.001))
			for _, q := range []margin.Quantity{margin.Angle, margin.Buffer, margin.Time, margin.Radius} {
				Expect(st.Value(q)).To(Equal(5.0))
			}
		})

		It("keeps the previous output as a free input", func() {
			_, err := e.SetOutputTarget(margin.Buffer)
			Expect(err).NotTo(HaveOccurred())
			_, err = e.SetInput(margin.Angle, 12.3)
			Expect(err).NotTo(HaveOccurred())
			_, err = e.SetOutputTarget(margin.Angle)
			Expect(err).NotTo(HaveOccurred())

			st, err := e.SetOutputTarget(margin.Time)
			Expect(err).NotTo(HaveOccurred())
			Expect(st.Value(margin.Angle)).To(BeNumerically("~", 12.3, 1e-9))
			Expect(st.Output()).To(Equal(margin.Time))

			_, err = e.SetInput(margin.Angle, 20)
			Expect(err).NotTo(HaveOccurred())
		})

		It("is idempotent", func() {
			first, err := e.SetOutputTarget(margin.Radius)
			Expect(err).NotTo(HaveOccurred())
			second, err := e.SetOutputTarget(margin.Radius)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})

		It("rejects unknown quantities", func() {
			_, err := e.SetOutputTarget(margin.Quantity(-1))
			Expect(err).To(MatchError(engine.ErrInvalidQuantity))
			Expect(e.Current().Output()).To(Equal(margin.Angle))
		})
	})

	Describe("clamping", func() {
		It("saturates θ at the top of its range", func() {
			Expect(margin.AbortAngle(100, 0.1, 5, 50)).To(BeNumerically(">", 90))

			for _, in := range []struct {
				q margin.Quantity
				v float64
			}{
				{margin.Time, 0.1},
				{margin.Radius, 50},
				{margin.Buffer, 100},
			} {
				_, err := e.SetInput(in.q, in.v)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(e.Current().Value(margin.Angle)).To(Equal(90.0))
		})

		It("saturates +Inf at the stop bound", func() {
			_, err := e.SetOutputTarget(margin.Time)
			Expect(err).NotTo(HaveOccurred())
			st, err := e.SetInput(margin.Angle, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(st.Value(margin.Time)).To(Equal(10.0))
		})

		It("saturates -Inf at the start bound", func() {
			_, err := e.SetOutputTarget(margin.Radius)
			Expect(err).NotTo(HaveOccurred())
			st, err := e.SetInput(margin.Angle, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(st.Value(margin.Radius)).To(Equal(1.0))
		})

		It("publishes the stop bound for a NaN result", func() {
			_, err := e.SetInput(margin.Time, 0.1)
			Expect(err).NotTo(HaveOccurred())
			raw, err := margin.Angle.Solve(margin.Values{0, 100, 0.1, 5, 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(math.IsNaN(raw)).To(BeTrue())
			st, err := e.SetInput(margin.Buffer, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(st.Value(margin.Angle)).To(Equal(90.0))
		})

		It("keeps a NaN input as entered", func() {
			st, err := e.SetInput(margin.Buffer, math.NaN())
			Expect(err).NotTo(HaveOccurred())
			Expect(math.IsNaN(st.Value(margin.Buffer))).To(BeTrue())
			Expect(st.Value(margin.Angle)).To(Equal(90.0))
		})
	})

	Describe("Reset", func() {
		It("replaces the snapshot wholesale", func() {
			_, err := e.SetInput(margin.Buffer, 30)
			Expect(err).NotTo(HaveOccurred())
			e.Reset(engine.DefaultState())
			Expect(e.Current()).To(Equal(engine.DefaultState()))
		})
	})
})
