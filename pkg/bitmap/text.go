package bitmap

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ParseText reads a text grid with one line per row. '#', '*' and '1' are
// lit; '.', '0' and ' ' are dark. Empty lines are skipped, so a row of
// spaces is still a row.
func ParseText(r io.Reader) (*Matrix, error) {
	m := &Matrix{}
	sc := bufio.NewScanner(r)

	y := 0
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if len(line) == 0 {
			continue
		}
		if y >= Height {
			return nil, errors.Errorf("too many rows, want %d", Height)
		}
		if len(line) != Width {
			return nil, errors.Errorf("row %d: got %d cells, want %d", y+1, len(line), Width)
		}

		for x := 0; x < Width; x++ {
			switch line[x] {
			case '#', '*', '1':
				m[x][y] = true
			case '.', '0', ' ':
			default:
				return nil, errors.Errorf("row %d col %d: unexpected %q", y+1, x+1, line[x])
			}
		}
		y++
	}

	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read grid")
	}
	if y != Height {
		return nil, errors.Errorf("got %d rows, want %d", y, Height)
	}

	return m, nil
}

// String renders m in the ParseText format.
func (m *Matrix) String() string {
	var b strings.Builder
	b.Grow((Width + 1) * Height)

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if m[x][y] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}
