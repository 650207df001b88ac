package pattern

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Pattern is a preset built into the panel firmware.
type Pattern struct {
	Name  string
	Label string
	ID    uint8
}

var builtin = map[string]Pattern{
	"all_off":         {Name: "all_off", Label: "All Off", ID: 0},
	"gradient":        {Name: "gradient", Label: "Gradient", ID: 1},
	"double_gradient": {Name: "double_gradient", Label: "Double Gradient", ID: 2},
	"lotus_sideways":  {Name: "lotus_sideways", Label: "Lotus Sideways", ID: 3},
	"zigzag":          {Name: "zigzag", Label: "Zigzag", ID: 4},
	"all_on":          {Name: "all_on", Label: "All On", ID: 5},
	"panic":           {Name: "panic", Label: "Panic", ID: 6},
	"lotus_top_down":  {Name: "lotus_top_down", Label: "Lotus Top Down", ID: 7},
}

// All lists the built-in patterns ordered by id.
func All() []Pattern {
	list := lo.Values(builtin)
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Lookup resolves a pattern name or a raw numeric id. Unknown numbers are
// passed through since the firmware may know more presets than we do.
func Lookup(s string) (uint8, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if p, ok := builtin[key]; ok {
		return p.ID, nil
	}

	id, err := strconv.ParseUint(key, 10, 8)
	if err != nil {
		return 0, errors.Errorf("unknown pattern %q", s)
	}
	return uint8(id), nil
}
