package bitmap

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackedSize(t *testing.T) {
	assert.Equal(t, 39, PackedSize)
	assert.Len(t, Encode(NewMatrix()), 39)
}

func TestEncodeAllOff(t *testing.T) {
	assert.Equal(t, Packed{}, Encode(NewMatrix()))
}

func TestEncodeAllOn(t *testing.T) {
	m := NewMatrix()
	m.Fill(true)
	p := Encode(m)

	for bit := 0; bit < PackedSize*8; bit++ {
		set := p[bit/8]&(1<<(bit%8)) != 0
		assert.Equal(t, bit < Width*Height, set, "bit %d", bit)
	}
	// 306 bits fill 38 bytes plus two bits of the last one
	assert.Equal(t, byte(0x03), p[PackedSize-1])
}

func TestEncodeBitPositions(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		byte int
		bit  uint
	}{
		{name: "origin", x: 0, y: 0, byte: 0, bit: 0},
		{name: "next column", x: 1, y: 0, byte: 0, bit: 1},
		{name: "next row", x: 0, y: 1, byte: Width / 8, bit: Width % 8},
		{name: "last column first row", x: 8, y: 0, byte: 1, bit: 0},
		{name: "last cell", x: Width - 1, y: Height - 1, byte: 38, bit: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatrix()
			m.Set(tt.x, tt.y, true)
			p := Encode(m)

			var want Packed
			want[tt.byte] = 1 << tt.bit
			assert.Equal(t, want, p)
		})
	}
}

func TestPackUnpackGeometries(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	for _, dim := range [][2]int{{9, 34}, {1, 1}, {8, 8}, {3, 5}, {16, 9}, {7, 13}} {
		w, h := dim[0], dim[1]
		grid := make([][]bool, w)
		for x := range grid {
			grid[x] = make([]bool, h)
			for y := range grid[x] {
				grid[x][y] = rnd.Intn(2) == 1
			}
		}

		buf := Pack(w, h, func(x, y int) bool { return grid[x][y] })
		require.Len(t, buf, (w*h+7)/8, "%dx%d", w, h)

		got := make([][]bool, w)
		for x := range got {
			got[x] = make([]bool, h)
		}
		Unpack(w, h, buf, func(x, y int, on bool) { got[x][y] = on })
		assert.Equal(t, grid, got, "%dx%d", w, h)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	m := NewMatrix()
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			m.Set(x, y, (x*y+y)%3 == 0)
		}
	}

	assert.Equal(t, m, Decode(Encode(m)))
}

func TestFromBytes(t *testing.T) {
	var cells [Width][Height]byte
	cells[0][0] = 0xFF
	cells[1][0] = 0x00
	cells[2][0] = 0x7F
	cells[3][0] = 0xFE
	cells[8][33] = 0xFF

	m := FromBytes(cells)
	assert.True(t, m.At(0, 0))
	assert.False(t, m.At(1, 0))
	assert.False(t, m.At(2, 0))
	assert.False(t, m.At(3, 0))
	assert.True(t, m.At(8, 33))
	assert.Equal(t, 2, m.Lit())
}

func TestParseText(t *testing.T) {
	m := NewMatrix()
	m.Set(0, 0, true)
	m.Set(4, 17, true)
	m.Set(8, 33, true)

	got, err := ParseText(strings.NewReader(m.String()))
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestParseTextSpaces(t *testing.T) {
	rows := []string{"#        ", "         "}
	for i := 2; i < Height; i++ {
		rows = append(rows, ".........")
	}
	input := strings.Join(rows, "\r\n") + "\n\n"

	got, err := ParseText(strings.NewReader(input))
	require.NoError(t, err)

	want := NewMatrix()
	want.Set(0, 0, true)
	assert.Equal(t, want, got)
}

func TestParseTextErrors(t *testing.T) {
	row := strings.Repeat(".", Width) + "\n"

	tests := []struct {
		name  string
		input string
		err   string
	}{
		{name: "short", input: strings.Repeat(row, Height-1), err: "got 33 rows"},
		{name: "long", input: strings.Repeat(row, Height+1), err: "too many rows"},
		{name: "narrow row", input: "....\n", err: "row 1: got 4 cells"},
		{name: "bad cell", input: "...x.....\n", err: "row 1 col 4"},
		{name: "tab", input: "........\t\n", err: "row 1 col 9"},
		{name: "space row counts", input: strings.Repeat("         \n", Height+1), err: "too many rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseText(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}
