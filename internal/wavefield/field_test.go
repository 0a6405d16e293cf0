package wavefield_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pulsefield/internal/wavefield"
)

func seeded(count int, width float64) wavefield.Params {
	p := wavefield.DefaultParams()
	p.Count, p.Width, p.Seed = count, width, 7
	return p
}

var _ = Describe("Field", func() {
	var (
		params wavefield.Params
		field  *wavefield.Field
	)

	BeforeEach(func() {
		params = seeded(50, 800)
		var err error
		field, err = wavefield.New(params)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Initialize", func() {
		It("spaces count points evenly across [0, width)", func() {
			for _, count := range []int{1, 2, 7, 50, 333} {
				Expect(field.Initialize(640, 400, count)).To(Succeed())
				pts := field.Points()
				Expect(pts).To(HaveLen(count))
				Expect(pts[0].X).To(Equal(0.0))
				for i := 1; i < len(pts); i++ {
					Expect(pts[i].X).To(BeNumerically(">", pts[i-1].X))
				}
				Expect(pts[len(pts)-1].X).To(BeNumerically("<", 640.0))
			}
		})

		It("draws constants from the configured ranges", func() {
			for _, pt := range field.Points() {
				Expect(pt.BaseY).To(Equal(200.0))
				Expect(pt.PhaseSpeed).To(BeNumerically(">=", params.PhaseSpeedMin))
				Expect(pt.PhaseSpeed).To(BeNumerically("<", params.PhaseSpeedMax))
				Expect(pt.PhaseOffset).To(BeNumerically(">=", 0.0))
				Expect(pt.PhaseOffset).To(BeNumerically("<", 2*math.Pi))
				Expect(pt.Amplitude).To(BeNumerically(">=", params.AmplitudeMin))
				Expect(pt.Amplitude).To(BeNumerically("<", params.AmplitudeMax))
			}
		})

		DescribeTable("rejects invalid dimensions",
			func(w, h float64, count int) {
				Expect(field.Initialize(w, h, count)).To(MatchError(wavefield.ErrInvalidDimensions))
				Expect(field.Len()).To(Equal(50))
			},
			Entry("zero width", 0.0, 400.0, 10),
			Entry("negative height", 800.0, -1.0, 10),
			Entry("zero count", 800.0, 400.0, 0),
			Entry("NaN width", math.NaN(), 400.0, 10),
		)
	})

	Describe("New", func() {
		It("rejects inverted ranges", func() {
			p := seeded(10, 100)
			p.AmplitudeMin, p.AmplitudeMax = 60, 20
			_, err := wavefield.New(p)
			Expect(err).To(MatchError(wavefield.ErrInvalidParams))
		})

		It("is reproducible for a fixed seed", func() {
			other, err := wavefield.New(params)
			Expect(err).NotTo(HaveOccurred())
			Expect(other.Points()).To(Equal(field.Points()))
		})
	})

	Describe("Advance", func() {
		It("places every point at baseY + amplitude*sin(offset) on tick 0", func() {
			field.Advance(0)
			for _, pt := range field.Points() {
				Expect(pt.Y).To(BeNumerically("~", pt.BaseY+pt.Amplitude*math.Sin(pt.PhaseOffset), 1e-9))
			}
		})

		It("has no coupling between points without ripples", func() {
			for tick := 0; tick < 300; tick += 7 {
				field.Advance(tick)
				pulse := wavefield.Pulse(params, tick)
				for _, pt := range field.Points() {
					want := pt.BaseY + pt.Amplitude*math.Sin(float64(tick)*pt.PhaseSpeed+pt.PhaseOffset) + pulse
					Expect(pt.Y).To(BeNumerically("~", want, 1e-9))
				}
			}
		})

		It("never creates ripples on its own", func() {
			for i := 0; i < 1000; i++ {
				field.Step()
				Expect(field.RippleCount()).To(BeZero())
			}
			Expect(field.Tick()).To(Equal(1000))
		})
	})

	Describe("Disturb", func() {
		It("grows and decays a ripple once per advance", func() {
			r := field.Disturb(400)
			Expect(r.Radius).To(BeZero())
			Expect(r.Strength).To(Equal(params.RippleStrength))

			field.Step()
			rs := field.Ripples()
			Expect(rs).To(HaveLen(1))
			Expect(rs[0].ID).To(Equal(r.ID))
			Expect(rs[0].OriginX).To(Equal(400.0))
			Expect(rs[0].Radius).To(Equal(params.RippleGrowth))
			Expect(rs[0].Strength).To(Equal(params.RippleStrength - params.RippleDecay))
		})

		It("removes a ripple after ceil(S0/decay) ticks", func() {
			field.Disturb(100)
			life := params.RippleLifetime()
			Expect(life).To(Equal(40))
			for i := 0; i < life-1; i++ {
				field.Step()
				Expect(field.RippleCount()).To(Equal(1))
			}
			Expect(field.Ripples()[0].Strength).To(BeNumerically(">", 0))
			field.Step()
			Expect(field.RippleCount()).To(BeZero())
		})

		DescribeTable("removes a ripple after ceil(S0/decay) ticks for inexact decays",
			func(strength, decay float64, want int) {
				p := seeded(10, 100)
				p.RippleStrength, p.RippleDecay = strength, decay
				p.MaxRippleAge = 10 * want
				Expect(p.RippleLifetime()).To(Equal(want))

				f, err := wavefield.New(p)
				Expect(err).NotTo(HaveOccurred())
				f.Disturb(50)
				ticks := 0
				for f.RippleCount() > 0 && ticks < 10*want {
					f.Step()
					ticks++
				}
				Expect(ticks).To(Equal(want))
			},
			Entry("1 / 0.1", 1.0, 0.1, 10),
			Entry("3 / 0.3", 3.0, 0.3, 10),
			Entry("0.9 / 0.3", 0.9, 0.3, 3),
			Entry("60 / 1.5", 60.0, 1.5, 40),
			Entry("60 / 1.575", 60.0, 1.575, 39),
			Entry("1 / 0.7", 1.0, 0.7, 2),
		)

		It("hands out unique ids", func() {
			seen := map[uint64]bool{}
			for i := 0; i < 100; i++ {
				r := field.Disturb(float64(i))
				Expect(seen).NotTo(HaveKey(r.ID))
				seen[r.ID] = true
				if i%3 == 0 {
					field.Step()
				}
			}
		})

		It("displaces points inside the radius only", func() {
			field.Disturb(400)
			for i := 0; i < 3; i++ {
				field.Step()
			}
			// radius is now 24; tick 3 has a nonzero ripple sway
			ref, err := wavefield.New(params)
			Expect(err).NotTo(HaveOccurred())
			ref.Advance(3)
			field.Advance(3)
			got, want := field.Points(), ref.Points()
			for i := range got {
				d := math.Abs(got[i].X - 400)
				if d >= 24 || d == 0 {
					Expect(got[i].Y).To(BeNumerically("~", want[i].Y, 1e-9))
				}
			}
		})

		It("keeps ripples unbounded by default", func() {
			for i := 0; i < 500; i++ {
				field.Disturb(10)
			}
			Expect(field.RippleCount()).To(Equal(500))
		})

		It("evicts the oldest ripple when a cap is set", func() {
			p := seeded(10, 100)
			p.MaxRipples = 3
			f, err := wavefield.New(p)
			Expect(err).NotTo(HaveOccurred())
			for i := 1; i <= 5; i++ {
				f.Disturb(float64(i))
			}
			rs := f.Ripples()
			Expect(rs).To(HaveLen(3))
			Expect([]float64{rs[0].OriginX, rs[1].OriginX, rs[2].OriginX}).To(Equal([]float64{3, 4, 5}))
		})

		It("drops ripples that outlive the age bound", func() {
			p := seeded(10, 100)
			p.RippleDecay = 0.01
			p.MaxRippleAge = 5
			f, err := wavefield.New(p)
			Expect(err).NotTo(HaveOccurred())
			f.Disturb(50)
			for i := 0; i < 4; i++ {
				f.Step()
			}
			Expect(f.RippleCount()).To(Equal(1))
			f.Step()
			Expect(f.RippleCount()).To(BeZero())
		})
	})

	Describe("Resize", func() {
		It("matches a fresh initialization of the new width", func() {
			field.Disturb(100)
			for i := 0; i < 20; i++ {
				field.Step()
			}
			Expect(field.Resize(1200, 400)).To(Succeed())

			fresh, err := wavefield.New(seeded(50, 1200))
			Expect(err).NotTo(HaveOccurred())
			got, want := field.Points(), fresh.Points()
			Expect(got).To(HaveLen(len(want)))
			for i := range got {
				Expect(got[i].X).To(Equal(want[i].X))
				Expect(got[i].BaseY).To(Equal(want[i].BaseY))
			}
			Expect(field.Width()).To(Equal(1200.0))
			Expect(field.RippleCount()).To(Equal(1))
		})

		It("clears ripples when configured to", func() {
			p := seeded(10, 100)
			p.ClearRipplesOnResize = true
			f, err := wavefield.New(p)
			Expect(err).NotTo(HaveOccurred())
			f.Disturb(20)
			Expect(f.Resize(300, 200)).To(Succeed())
			Expect(f.RippleCount()).To(BeZero())
			Expect(f.Points()[0].BaseY).To(Equal(100.0))
		})

		It("keeps the old points on invalid input", func() {
			before := field.Points()
			Expect(field.Resize(0, 400)).To(MatchError(wavefield.ErrInvalidDimensions))
			Expect(field.Points()).To(Equal(before))
		})
	})

	Describe("Reset", func() {
		It("rewinds the tick and drops ripples", func() {
			field.Disturb(5)
			field.Step()
			Expect(field.Reset()).To(Succeed())
			Expect(field.Tick()).To(BeZero())
			Expect(field.RippleCount()).To(BeZero())
			Expect(field.Len()).To(Equal(50))
		})
	})
})
