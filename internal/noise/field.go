package noise

// Params configures an octave-summed noise field.
type Params struct {
	Octaves     int
	Scale       float64
	Persistence float64
	Amplitude   float64
	Seed        int32
}

func (p Params) normalized() Params {
	if p.Octaves < 1 {
		p.Octaves = 1
	}
	if p.Persistence == 0 {
		p.Persistence = 0.5
	}
	if p.Amplitude == 0 {
		p.Amplitude = 1
	}
	return p
}

// Field2D generates a width*height noise field normalized to [0, 1].
// Normalization divides by the total amplitude accumulated across octaves,
// not a per-cell min/max, so the mapping is stable across calls.
// Indexing is row-major: value at (x, z) lives at z*width + x.
func Field2D(width, height int, p Params) []float64 {
	p = p.normalized()
	perm := NewPermutation(p.Seed)
	out := make([]float64, width*height)

	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			total := 0.0
			totalAmp := 0.0
			freq := p.Scale
			amp := p.Amplitude
			for o := 0; o < p.Octaves; o++ {
				total += perm.Perlin2D(float64(x)*freq, float64(z)*freq) * amp
				totalAmp += amp
				amp *= p.Persistence
				freq *= 2
			}
			out[z*width+x] = clamp01((total + totalAmp) / (2 * totalAmp))
		}
	}
	return out
}

// Field3D is the 3D analogue of Field2D. Indexing: (y*depth+z)*width + x,
// i.e. x fastest, then z, then y.
func Field3D(width, height, depth int, p Params) []float64 {
	p = p.normalized()
	perm := NewPermutation(p.Seed)
	out := make([]float64, width*height*depth)

	for y := 0; y < height; y++ {
		for z := 0; z < depth; z++ {
			for x := 0; x < width; x++ {
				total := 0.0
				totalAmp := 0.0
				freq := p.Scale
				amp := p.Amplitude
				for o := 0; o < p.Octaves; o++ {
					total += perm.Perlin3D(float64(x)*freq, float64(y)*freq, float64(z)*freq) * amp
					totalAmp += amp
					amp *= p.Persistence
					freq *= 2
				}
				out[(y*depth+z)*width+x] = clamp01((total + totalAmp) / (2 * totalAmp))
			}
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
