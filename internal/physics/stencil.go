package physics

// Stencil weights: 4-connected neighbours, diagonal neighbours and centre.
// The neighbour weights sum to 1, so the centre weight is exactly -1.
const (
	WeightDirect   = 0.2
	WeightDiagonal = 0.05
	WeightCenter   = -1.0
)

// Laplacian evaluates the 9-point discrete Laplacian of the row-major n×n
// grid c at cell (i, j).
//
// Neighbours outside [0, n) in either index are replaced by the centre value
// (edge clamping). This is not a true no-flux boundary; boundary cells simply
// see extra weight on themselves.
func Laplacian(c []float64, n, i, j int, dx float64) float64 {
	center := c[i*n+j]
	up := clamped(c, n, i-1, j, center)
	down := clamped(c, n, i+1, j, center)
	left := clamped(c, n, i, j-1, center)
	right := clamped(c, n, i, j+1, center)

	upLeft := clamped(c, n, i-1, j-1, center)
	upRight := clamped(c, n, i-1, j+1, center)
	downLeft := clamped(c, n, i+1, j-1, center)
	downRight := clamped(c, n, i+1, j+1, center)

	// Written as neighbour-minus-centre differences so a uniform grid gives
	// exactly zero.
	sum := WeightDirect*((up-center)+(down-center)+(left-center)+(right-center)) +
		WeightDiagonal*((upLeft-center)+(upRight-center)+(downLeft-center)+(downRight-center))
	return sum / (dx * dx)
}

func clamped(c []float64, n, i, j int, center float64) float64 {
	if i < 0 || i >= n || j < 0 || j >= n {
		return center
	}
	return c[i*n+j]
}
