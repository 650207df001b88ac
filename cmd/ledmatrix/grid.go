package main

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"ledmatrix/pkg/bitmap"
)

// loadMatrix reads a .txt grid or any decodable image.
func loadMatrix(fs afero.Fs, path string, threshold uint8) (*bitmap.Matrix, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var m *bitmap.Matrix
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		m, err = bitmap.ParseText(f)
	} else {
		m, err = bitmap.DecodeImage(f, threshold)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	return m, nil
}
