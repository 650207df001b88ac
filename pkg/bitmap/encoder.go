package bitmap

// Pack converts a w×h grid into the panel bit layout. Columns are walked
// outer and rows inner, and cell (x, y) lands on linear bit x + w*y, which
// follows the physical scan order of the panel. Do not reorder.
func Pack(w, h int, on func(x, y int) bool) []byte {
	dst := make([]byte, (w*h+7)/8)

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if !on(x, y) {
				continue
			}
			bit := x + w*y
			dst[bit/8] |= 1 << (bit % 8)
		}
	}

	return dst
}

// Unpack is the inverse of Pack.
func Unpack(w, h int, src []byte, set func(x, y int, on bool)) {
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			bit := x + w*y
			if bit/8 >= len(src) {
				set(x, y, false)
				continue
			}
			set(x, y, src[bit/8]&(1<<(bit%8)) != 0)
		}
	}
}

func Encode(m *Matrix) Packed {
	var p Packed
	copy(p[:], Pack(Width, Height, m.At))
	return p
}

func Decode(p Packed) *Matrix {
	m := &Matrix{}
	Unpack(Width, Height, p[:], m.Set)
	return m
}
