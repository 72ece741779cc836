package physics

import "github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"

// React returns the local Gray-Scott reaction terms for activator u and
// inhibitor v.
func React(u, v float64, p dynamo.Params) (ru, rv float64) {
	uvv := p.ReactionScale * u * v * v
	ru = -uvv + p.F*(1-u)
	rv = uvv - (p.F+p.K)*v
	return ru, rv
}

// GrayScott holds a mutable parameter set behind the Configurable interface.
type GrayScott struct {
	Params dynamo.Params
}

func NewGrayScott(p dynamo.Params) *GrayScott {
	return &GrayScott{Params: p}
}

// Rates returns du/dt and dv/dt at cell (i, j) of f.
func (g *GrayScott) Rates(f *dynamo.Field, i, j int) (du, dv float64) {
	k := f.Index(i, j)
	u, v := f.U[k], f.V[k]
	lu := Laplacian(f.U, f.N, i, j, g.Params.Dx)
	lv := Laplacian(f.V, f.N, i, j, g.Params.Dx)
	ru, rv := React(u, v, g.Params)
	return g.Params.Du*lu + ru, g.Params.Dv*lv + rv
}

func (g *GrayScott) GetParams() map[string]float64 {
	return g.Params.Map()
}

// SetParam updates one parameter. Invalid values are rejected and leave the
// parameters unchanged.
func (g *GrayScott) SetParam(n string, v float64) error {
	p, err := g.Params.With(n, v)
	if err != nil {
		return err
	}
	g.Params = p
	return nil
}
