package problem_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trajopt/internal/problem"
	"github.com/san-kum/trajopt/internal/transcribe"
)

var _ = Describe("Definition", func() {
	var def problem.Definition

	BeforeEach(func() {
		def = problem.Definition{
			N:        8,
			T0:       0,
			Friction: 0.1,
			Start:    problem.Start{X: 0, Y: 0, V: 0},
			Finish:   problem.Finish{X: 2, Y: 2},
		}
	})

	Describe("Build", func() {
		It("produces consistently sized artifacts", func() {
			tr, setup, err := def.Build()
			Expect(err).NotTo(HaveOccurred())

			l := tr.Layout()
			Expect(setup.Guess).To(HaveLen(l.Decision()))
			Expect(setup.FLow).To(HaveLen(l.Residual()))
			Expect(setup.FUpp).To(HaveLen(l.Residual()))
			Expect(setup.ZLow).To(HaveLen(l.Decision()))
			Expect(setup.ZUpp).To(HaveLen(l.Decision()))
		})

		It("rejects bad definitions", func() {
			bad := def
			bad.N = 0
			_, _, err := bad.Build()
			Expect(err).To(HaveOccurred())

			bad = def
			bad.Friction = -0.5
			_, _, err = bad.Build()
			Expect(err).To(HaveOccurred())

			bad = def
			bad.TfGuess = def.T0 - 1
			_, _, err = bad.Build()
			Expect(err).To(HaveOccurred())
		})

		It("seeds a guess that satisfies the boundary rows", func() {
			tr, setup, err := def.Build()
			Expect(err).NotTo(HaveOccurred())

			f, err := tr.Residuals(setup.Guess)
			Expect(err).NotTo(HaveOccurred())

			l := tr.Layout()
			Expect(f[l.RowStartX()]).To(Equal(def.Start.X))
			Expect(f[l.RowStartY()]).To(Equal(def.Start.Y))
			Expect(f[l.RowStartV()]).To(Equal(def.Start.V))
			Expect(f[l.RowEndX()]).To(Equal(def.Finish.X))
			Expect(f[l.RowEndY()]).To(Equal(def.Finish.Y))
		})

		It("keeps the guess inside the decision bounds", func() {
			tr, setup, err := def.Build()
			Expect(err).NotTo(HaveOccurred())

			l := tr.Layout()
			for i := 0; i < l.Decision(); i++ {
				Expect(setup.Guess[i]).To(BeNumerically(">=", setup.ZLow[i]),
					"guess[%d] below lower bound", i)
				Expect(setup.Guess[i]).To(BeNumerically("<=", setup.ZUpp[i]),
					"guess[%d] above upper bound", i)
			}
		})

		It("pins dynamics rows to zero and boundary rows to the prescribed values", func() {
			tr, setup, err := def.Build()
			Expect(err).NotTo(HaveOccurred())

			l := tr.Layout()
			for i := 0; i < def.N; i++ {
				for k := 0; k < 3; k++ {
					row := l.RowDyn(k, i)
					Expect(setup.FLow[row]).To(BeZero())
					Expect(setup.FUpp[row]).To(BeZero())
				}
			}
			Expect(setup.FLow[l.RowEndX()]).To(Equal(def.Finish.X))
			Expect(setup.FUpp[l.RowEndX()]).To(Equal(def.Finish.X))
		})
	})

	Describe("SparsityPattern", func() {
		It("has the expected cardinality", func() {
			p, err := problem.SparsityPattern(def.N)
			Expect(err).NotTo(HaveOccurred())
			// 5 nonzeros per x and y dynamics row, 4 per speed row, the
			// objective cell and 5 boundary cells.
			Expect(p.Len()).To(Equal(14*def.N + 6))
		})

		It("is ordered row-major", func() {
			p, err := problem.SparsityPattern(def.N)
			Expect(err).NotTo(HaveOccurred())

			cols := transcribe.NewLayout(def.N).Decision()
			prev := -1
			for k := 0; k < p.Len(); k++ {
				r, c := p.At(k)
				flat := r*cols + c
				Expect(flat).To(BeNumerically(">", prev), "entry %d out of order", k)
				prev = flat
			}
		})

		It("covers every analytic nonzero", func() {
			for _, friction := range []float64{0, 0.1, 2.5} {
				d := def
				d.Friction = friction
				tr, setup, err := d.Build()
				Expect(err).NotTo(HaveOccurred())
				Expect(tr.CheckPattern(setup.Guess)).To(Succeed(),
					"friction %g", friction)
			}
		})
	})

	Describe("end to end", func() {
		It("evaluates the guess with a verified Jacobian", func() {
			tr, setup, err := def.Build()
			Expect(err).NotTo(HaveOccurred())

			eval, err := tr.Evaluate(setup.Guess)
			Expect(err).NotTo(HaveOccurred())
			Expect(eval.G).To(HaveLen(tr.Pattern().Len()))
			Expect(eval.F[0]).To(Equal(setup.Guess[tr.Layout().ColTf()]))

			worst, err := transcribe.VerifyJacobian(tr, setup.Guess)
			Expect(err).NotTo(HaveOccurred())
			Expect(worst).To(BeNumerically("<", 1e-6))
		})
	})
})
