// Package noise implements the seeded Perlin noise engine every terrain
// stage draws from. All randomness flows through a small linear
// congruential generator so a world is fully reproducible from its seed.
package noise

import "math"

// LCG is a linear congruential generator with the classic numerical
// recipes constants. State wraps mod 2^32 by way of uint32 arithmetic.
type LCG struct {
	state uint32
}

// NewLCG creates a generator seeded from a signed 32-bit seed.
func NewLCG(seed int32) *LCG {
	return &LCG{state: uint32(seed)}
}

// Next advances the generator and returns a value in [0, 1).
func (r *LCG) Next() float64 {
	r.state = r.state*1664525 + 1013904223
	return float64(r.state) / 4294967296.0
}

// Intn returns a value in [0, n). n must be positive.
func (r *LCG) Intn(n int) int {
	return int(r.Next() * float64(n))
}

// Chance returns true with probability p.
func (r *LCG) Chance(p float64) bool {
	return r.Next() < p
}

// Permutation is a 512-entry gradient hash table. The second half mirrors
// the first so lattice lookups never need an explicit wrap.
type Permutation [512]int

// NewPermutation builds a Fisher-Yates shuffled permutation table from the
// seed. Layers derive correlated-but-distinct tables by offsetting the
// seed before calling this.
func NewPermutation(seed int32) *Permutation {
	rng := NewLCG(seed)

	var base [256]int
	for i := range base {
		base[i] = i
	}
	for i := 255; i > 0; i-- {
		j := int(rng.Next() * float64(i+1))
		base[i], base[j] = base[j], base[i]
	}

	p := &Permutation{}
	for i := 0; i < 512; i++ {
		p[i] = base[i&255]
	}
	return p
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// grad2 selects one of 8 gradient directions from the low hash bits.
func grad2(hash int, x, y float64) float64 {
	switch hash & 7 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	case 3:
		return -x - y
	case 4:
		return x
	case 5:
		return -x
	case 6:
		return y
	default:
		return -y
	}
}

// grad3 selects one of 16 gradient directions from the low hash bits.
func grad3(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := z
	if h < 4 {
		v = y
	} else if h == 12 || h == 14 {
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Perlin2D computes single-octave lattice noise at (x, y) in roughly [-1, 1].
func (p *Permutation) Perlin2D(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	xi := int(fx) & 255
	yi := int(fy) & 255
	xf := x - fx
	yf := y - fy

	u := fade(xf)
	v := fade(yf)

	aa := p[p[xi]+yi]
	ab := p[p[xi]+yi+1]
	ba := p[p[xi+1]+yi]
	bb := p[p[xi+1]+yi+1]

	x1 := lerp(grad2(aa, xf, yf), grad2(ba, xf-1, yf), u)
	x2 := lerp(grad2(ab, xf, yf-1), grad2(bb, xf-1, yf-1), u)
	return lerp(x1, x2, v)
}

// Perlin3D computes single-octave lattice noise at (x, y, z) in roughly [-1, 1].
func (p *Permutation) Perlin3D(x, y, z float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	fz := math.Floor(z)
	xi := int(fx) & 255
	yi := int(fy) & 255
	zi := int(fz) & 255
	xf := x - fx
	yf := y - fy
	zf := z - fz

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	aaa := p[p[p[xi]+yi]+zi]
	aba := p[p[p[xi]+yi+1]+zi]
	aab := p[p[p[xi]+yi]+zi+1]
	abb := p[p[p[xi]+yi+1]+zi+1]
	baa := p[p[p[xi+1]+yi]+zi]
	bba := p[p[p[xi+1]+yi+1]+zi]
	bab := p[p[p[xi+1]+yi]+zi+1]
	bbb := p[p[p[xi+1]+yi+1]+zi+1]

	x1 := lerp(grad3(aaa, xf, yf, zf), grad3(baa, xf-1, yf, zf), u)
	x2 := lerp(grad3(aba, xf, yf-1, zf), grad3(bba, xf-1, yf-1, zf), u)
	y1 := lerp(x1, x2, v)

	x1 = lerp(grad3(aab, xf, yf, zf-1), grad3(bab, xf-1, yf, zf-1), u)
	x2 = lerp(grad3(abb, xf, yf-1, zf-1), grad3(bbb, xf-1, yf-1, zf-1), u)
	y2 := lerp(x1, x2, v)

	return lerp(y1, y2, w)
}
