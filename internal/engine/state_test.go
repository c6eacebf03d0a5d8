package engine_test

import (
	"encoding/json"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/abortcalc/internal/engine"
	"github.com/san-kum/abortcalc/internal/margin"
)

var _ = Describe("Range", func() {
	r := engine.Range{Start: 0.1, Stop: 90, Step: 0.1}

	DescribeTable("Clamp",
		func(in, want float64) {
			Expect(r.Clamp(in)).To(Equal(want))
		},
		Entry("inside", 45.0, 45.0),
		Entry("below", -3.0, 0.1),
		Entry("above", 120.0, 90.0),
		Entry("+Inf", math.Inf(1), 90.0),
		Entry("-Inf", math.Inf(-1), 0.1),
	)

	It("clamps NaN to the stop bound", func() {
		Expect(r.Clamp(math.NaN())).To(Equal(90.0))
		Expect(engine.Range{Start: 3, Stop: 3, Step: 1}.Clamp(math.NaN())).To(Equal(3.0))
	})

	It("validates bounds and step", func() {
		Expect(r.Validate()).To(Succeed())
		Expect(engine.Range{Start: 1, Stop: 1, Step: 1}.Validate()).To(Succeed())
		Expect(engine.Range{Start: 2, Stop: 1, Step: 1}.Validate()).To(MatchError(engine.ErrInvalidRange))
		Expect(engine.Range{Start: 0, Stop: 1, Step: 0}.Validate()).To(MatchError(engine.ErrInvalidRange))
	})

	It("maps values to a slider fraction", func() {
		s := engine.Range{Start: 0, Stop: 10, Step: 1}
		Expect(s.Fraction(5)).To(Equal(0.5))
		Expect(s.Fraction(20)).To(Equal(1.0))
		Expect(s.Fraction(math.NaN())).To(Equal(0.0))
	})
})

var _ = Describe("State", func() {
	It("builds from explicit values", func() {
		vals := margin.Values{margin.Angle: 10, margin.Buffer: 20, margin.Time: 3, margin.Speed: 40, margin.Radius: 50}
		st, err := engine.NewState(vals, engine.DefaultRanges(), margin.Speed)
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Values()).To(Equal(vals))
		Expect(st.Output()).To(Equal(margin.Speed))
	})

	It("rejects an invalid output", func() {
		_, err := engine.NewState(margin.Values{}, engine.DefaultRanges(), margin.Quantity(8))
		Expect(err).To(MatchError(engine.ErrInvalidQuantity))
	})

	It("rejects an inverted range", func() {
		ranges := engine.DefaultRanges()
		ranges[margin.Time] = engine.Range{Start: 10, Stop: 1, Step: 0.1}
		_, err := engine.NewState(margin.Values{}, ranges, margin.Angle)
		Expect(err).To(MatchError(engine.ErrInvalidRange))
		Expect(err.Error()).To(ContainSubstring("time"))
	})

	It("returns the zero record for unknown quantities", func() {
		Expect(engine.DefaultState().Record(margin.Quantity(6))).To(Equal(engine.Record{}))
	})

	It("renders a compact summary", func() {
		Expect(engine.DefaultState().String()).To(Equal("θ*=5.0 b=5.0 t=5.0 s=5.0 r=5.0"))
	})

	It("encodes non-finite values as null", func() {
		e := engine.New(engine.DefaultState())
		_, err := e.SetInput(margin.Time, 0.1)
		Expect(err).NotTo(HaveOccurred())
		st, err := e.SetInput(margin.Buffer, 100)
		Expect(err).NotTo(HaveOccurred())

		data, err := json.Marshal(st)
		Expect(err).NotTo(HaveOccurred())

		var decoded struct {
			Output     string `json:"output"`
			Quantities []struct {
				Symbol  string   `json:"symbol"`
				Value   *float64 `json:"value"`
				Display string   `json:"display"`
				Output  bool     `json:"output"`
			} `json:"quantities"`
		}
		Expect(json.Unmarshal(data, &decoded)).To(Succeed())
		Expect(decoded.Output).To(Equal("angle"))
		Expect(decoded.Quantities).To(HaveLen(5))
		Expect(decoded.Quantities[0].Symbol).To(Equal("θ"))
		Expect(decoded.Quantities[0].Value).To(BeNil())
		Expect(decoded.Quantities[0].Display).To(Equal("NaN"))
		Expect(decoded.Quantities[0].Output).To(BeTrue())
		Expect(*decoded.Quantities[1].Value).To(Equal(100.0))
	})
})

var _ = DescribeTable("FormatValue",
	func(in float64, want string) {
		Expect(engine.FormatValue(in)).To(Equal(want))
	},
	Entry("whole number", 5.0, "5.0"),
	Entry("four digits", 13.5157, "13.52"),
	Entry("small", 0.1, "0.1"),
	Entry("hundreds", 300.0, "300.0"),
	Entry("large", 123456.0, "1.235e+05"),
	Entry("NaN", math.NaN(), "NaN"),
	Entry("+Inf", math.Inf(1), "∞"),
	Entry("-Inf", math.Inf(-1), "-∞"),
)
