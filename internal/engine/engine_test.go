package engine_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/oceansim/internal/config"
	"github.com/san-kum/oceansim/internal/engine"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Heightfield.Resolution = 48
	cfg.Sheet.Resolution = 24
	cfg.Heightfield.WorldSize = 20
	cfg.Sheet.WorldSize = 20
	cfg.Spray.Max = 64
	return cfg
}

var _ = Describe("Engine", func() {
	var e *engine.Engine

	BeforeEach(func() {
		var err error
		e, err = engine.New(smallConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects invalid configurations", func() {
			bad := smallConfig()
			bad.Heightfield.Resolution = 1
			_, err := engine.New(bad)
			Expect(err).To(MatchError(engine.ErrInvalidConfig))
		})

		It("falls back to defaults for a nil config", func() {
			got, err := engine.New(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Config().Heightfield.Resolution).To(Equal(config.DefaultResolution))
		})
	})

	Describe("stepping", func() {
		It("advances simulation time by the clamped dt", func() {
			e.Step(0.016)
			Expect(e.Time()).To(BeNumerically("~", 0.016, 1e-12))

			e.Step(10.0) // clamped to the operating band
			Expect(e.Time()).To(BeNumerically("~", 0.016+0.033, 1e-12))
		})

		It("keeps flat water flat without sources", func() {
			e.HullEnabled = false
			e.GerstnerEnabled = false
			for i := 0; i < 20; i++ {
				e.Step(0.016)
			}
			Expect(math.Abs(e.GetHeightAt(0, 0))).To(BeNumerically("<", 1e-9))
		})

		It("raises the surface near a queued drop", func() {
			e.AddDrop(0, 0, 1.0, 5.0)
			e.Step(0.016)
			Expect(e.ReadHeightAt(0, 0)).To(BeNumerically(">", 0))
		})
	})

	Describe("the floating body", func() {
		It("produces wake, foam and spray when moving fast", func() {
			for i := 0; i < 25; i++ {
				x := -7 + float64(i)*0.5
				e.MoveSphere(
					engine.Vec3{X: x, Y: 0, Z: 0},
					engine.Vec3{X: x + 0.5, Y: 0, Z: 0},
					1.0,
				)
				e.Step(0.016)
			}

			wake := 0.0
			f := e.HullLayer().Field()
			for y := 0; y < f.H; y++ {
				for x := 0; x < f.W; x++ {
					wake += math.Abs(f.At(x, y)[1])
				}
			}
			Expect(wake).To(BeNumerically(">", 0))
			Expect(e.SpraySystem().ActiveCount()).To(BeNumerically(">", 0))
		})

		It("degrades to a synthetic impulse when the hull layer is off", func() {
			e.HullEnabled = false
			e.MoveSphere(engine.Vec3{}, engine.Vec3{X: 0.5}, 1.0)
			e.Step(0.016)

			Expect(e.ReadHeightAt(0.5, 0)).NotTo(BeZero())
			_, tracked := e.HullLayer().Body()
			Expect(tracked).To(BeFalse())
		})
	})

	Describe("height queries", func() {
		It("adds the spectral contribution only when enabled", func() {
			e.Step(0.016)

			e.GerstnerEnabled = false
			base := e.GetHeightAt(3, 4)
			e.GerstnerEnabled = true
			withWaves := e.GetHeightAt(3, 4)

			Expect(base).To(Equal(e.ReadHeightAt(3, 4)))
			Expect(withWaves).NotTo(Equal(base))
		})
	})

	Describe("Reset", func() {
		It("restores a freshly constructed state", func() {
			e.AddDrop(0, 0, 1, 10)
			for i := 0; i < 10; i++ {
				e.MoveSphere(engine.Vec3{}, engine.Vec3{X: 1}, 1.0)
				e.Step(0.016)
			}
			e.Reset()

			Expect(e.Time()).To(BeZero())
			Expect(e.ReadHeightAt(0, 0)).To(BeZero())
			Expect(e.SpraySystem().ActiveCount()).To(BeZero())
			Expect(e.SheetLayer().Field().At(8, 8)[1]).To(Equal(1.0), "thickness reinitializes to 1")
		})

		It("does not consume a pre-reset impulse afterwards", func() {
			e.AddImpulse(0, 0, 1, 50)
			e.Reset()
			e.Step(0.016)
			Expect(e.ReadHeightAt(0, 0)).To(BeZero())
		})
	})

	Describe("tunables", func() {
		It("exposes and applies the wind parameters", func() {
			params := e.GetParams()
			Expect(params).To(HaveKey("windSpeed"))

			Expect(e.SetParam("windSpeed", 20)).To(Succeed())
			Expect(e.GetParams()["windSpeed"]).To(Equal(20.0))

			// Stronger wind shifts the spectral peak down.
			before := e.Synth().Params().PeakOmega()
			Expect(e.SetParam("windSpeed", 40)).To(Succeed())
			Expect(e.Synth().Params().PeakOmega()).To(BeNumerically("<", before))
		})

		It("rejects unknown parameters", func() {
			Expect(e.SetParam("bogus", 1)).NotTo(Succeed())
		})
	})
})
