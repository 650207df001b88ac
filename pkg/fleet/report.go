package fleet

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// Result is the outcome of one operation on one device.
type Result struct {
	Port string
	Err  error
}

type Report struct {
	Op      string
	Run     string
	Results []Result
}

func (r Report) Succeeded() []string {
	ok := lo.Filter(r.Results, func(res Result, _ int) bool { return res.Err == nil })
	return lo.Map(ok, func(res Result, _ int) string { return res.Port })
}

func (r Report) Failed() []Result {
	return lo.Filter(r.Results, func(res Result, _ int) bool { return res.Err != nil })
}

// Err combines every device failure, or is nil when all devices succeeded.
func (r Report) Err() error {
	errs := lo.Map(r.Failed(), func(res Result, _ int) error {
		return errors.WithMessage(res.Err, res.Port)
	})
	return multierr.Combine(errs...)
}
