package bitmap

const (
	Width  = 9
	Height = 34

	// PackedSize is the byte length of one bit-packed panel frame.
	PackedSize = (Width*Height + 7) / 8

	// On is the upstream cell value for a lit LED; anything else is off.
	On = 0xFF
)

// Matrix is the panel grid indexed as [x][y].
type Matrix [Width][Height]bool

// Packed is a Matrix in the wire bit layout.
type Packed [PackedSize]byte

func NewMatrix() *Matrix {
	return &Matrix{}
}

// FromBytes converts an upstream byte grid where only 0xFF is lit.
func FromBytes(cells [Width][Height]byte) *Matrix {
	m := &Matrix{}
	for x := range cells {
		for y, v := range cells[x] {
			m[x][y] = v == On
		}
	}
	return m
}

func (m *Matrix) At(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return m[x][y]
}

func (m *Matrix) Set(x, y int, on bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	m[x][y] = on
}

func (m *Matrix) Fill(on bool) {
	for x := range m {
		for y := range m[x] {
			m[x][y] = on
		}
	}
}

// Lit counts the cells that are on.
func (m *Matrix) Lit() int {
	var n int
	for x := range m {
		for _, on := range m[x] {
			if on {
				n++
			}
		}
	}
	return n
}
