package physics

import (
	"testing"

	. "github.com/onsi/gomega"
)

func ramp(n int) []float64 {
	c := make([]float64, n*n)
	for k := range c {
		c[k] = float64(k + 1)
	}
	return c
}

func TestLaplacianUniformIsZero(t *testing.T) {
	g := NewWithT(t)

	for _, value := range []float64{0, 1, 0.3, 0.6, 1.0e-7, 123.456} {
		for _, n := range []int{1, 2, 3, 8} {
			c := make([]float64, n*n)
			for k := range c {
				c[k] = value
			}
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					g.Expect(Laplacian(c, n, i, j, 1)).To(BeZero(),
						"value=%v n=%d cell=(%d,%d)", value, n, i, j)
				}
			}
		}
	}
}

func TestLaplacianEdgeClamp(t *testing.T) {
	g := NewWithT(t)
	c := ramp(3) // 1 2 3 / 4 5 6 / 7 8 9

	// corner: missing neighbours read the centre (1)
	g.Expect(Laplacian(c, 3, 0, 0, 1)).To(BeNumerically("~", 1.0, 1e-12))
	// top edge: 0.2*(2+5+1+3) + 0.05*(2+2+4+6) - 2
	g.Expect(Laplacian(c, 3, 0, 1, 1)).To(BeNumerically("~", 0.9, 1e-12))
	// interior of a linear ramp
	g.Expect(Laplacian(c, 3, 1, 1, 1)).To(BeNumerically("~", 0.0, 1e-12))
	// bottom-right corner: 0.2*(6+9+8+9) + 0.05*(5+9+9+9) - 9
	g.Expect(Laplacian(c, 3, 2, 2, 1)).To(BeNumerically("~", -1.0, 1e-12))
}

func TestLaplacianMatchesKernelWeights(t *testing.T) {
	g := NewWithT(t)
	n := 5
	c := make([]float64, n*n)
	c[2*n+2] = 1

	g.Expect(Laplacian(c, n, 2, 2, 1)).To(BeNumerically("~", WeightCenter, 1e-12))
	g.Expect(Laplacian(c, n, 1, 2, 1)).To(BeNumerically("~", WeightDirect, 1e-12))
	g.Expect(Laplacian(c, n, 1, 1, 1)).To(BeNumerically("~", WeightDiagonal, 1e-12))
	g.Expect(Laplacian(c, n, 0, 2, 1)).To(BeZero())
}

func TestLaplacianGridSpacing(t *testing.T) {
	g := NewWithT(t)
	c := ramp(3)
	g.Expect(Laplacian(c, 3, 0, 1, 2)).To(BeNumerically("~", 0.9/4, 1e-12))
}
