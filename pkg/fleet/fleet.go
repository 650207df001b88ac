package fleet

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ledmatrix/pkg/bitmap"
	"ledmatrix/pkg/locator"
	"ledmatrix/pkg/proto"
)

type Discoverer interface {
	Discover() ([]locator.Identity, error)
}

// Factory builds the handle used for a single broadcast.
type Factory func(id locator.Identity) proto.Control

type Observer interface {
	ObserveDevices(n int)
	ObserveResult(op, port string, err error)
}

func New(disc Discoverer, open Factory, logger *zap.Logger, opts ...Option) *Fleet {
	f := &Fleet{
		disc:        disc,
		open:        open,
		logger:      logger,
		concurrency: 1,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fleet sends operations to every attached panel. Devices are discovered
// again on each call.
type Fleet struct {
	disc        Discoverer
	open        Factory
	logger      *zap.Logger
	concurrency int
	observer    Observer
}

func (f *Fleet) Devices() ([]proto.Control, error) {
	ids, err := f.disc.Discover()
	if f.observer != nil {
		f.observer.ObserveDevices(len(ids))
	}
	if err != nil {
		return nil, err
	}

	return lo.Map(ids, func(id locator.Identity, _ int) proto.Control {
		return f.open(id)
	}), nil
}

func (f *Fleet) Ports(_ context.Context) ([]string, error) {
	devices, err := f.Devices()
	if err != nil {
		return nil, err
	}

	return lo.Map(devices, func(d proto.Control, _ int) string { return d.Name() }), nil
}

// Broadcast runs fn once per discovered device. A failing device never stops
// the others; only discovery failures are returned as the error.
func (f *Fleet) Broadcast(ctx context.Context, op string, fn func(proto.Control) error) (Report, error) {
	report := Report{Op: op, Run: xid.New().String()}
	log := f.logger.With(zap.String("op", op), zap.String("run", report.Run))

	devices, err := f.Devices()
	if err != nil {
		if errors.Is(err, proto.ErrNoDevicesFound) {
			log.Warn("no devices found")
		} else {
			log.With(zap.Error(err)).Error("discover devices failed")
		}
		return report, err
	}

	report.Results = make([]Result, len(devices))
	exec := func(i int) {
		d := devices[i]
		res := Result{Port: d.Name()}
		if res.Err = ctx.Err(); res.Err == nil {
			res.Err = fn(d)
		}
		report.Results[i] = res

		if f.observer != nil {
			f.observer.ObserveResult(op, res.Port, res.Err)
		}
		if res.Err != nil {
			log.With(zap.String("port", res.Port), zap.Error(res.Err)).Warn("failed")
		} else {
			log.With(zap.String("port", res.Port)).Info("done")
		}
	}

	if f.concurrency <= 1 || len(devices) <= 1 {
		for i := range devices {
			exec(i)
		}
		return report, nil
	}

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i := range devices {
		i := i
		g.Go(func() error {
			exec(i)
			return nil
		})
	}
	_ = g.Wait()

	return report, nil
}

func (f *Fleet) SetPattern(ctx context.Context, id uint8) (Report, error) {
	return f.Broadcast(ctx, "pattern", func(d proto.Control) error {
		return d.SetPattern(id)
	})
}

func (f *Fleet) SetBrightness(ctx context.Context, level uint8) (Report, error) {
	return f.Broadcast(ctx, "brightness", func(d proto.Control) error {
		return d.SetBrightness(level)
	})
}

func (f *Fleet) RenderMatrix(ctx context.Context, m *bitmap.Matrix) (Report, error) {
	return f.Broadcast(ctx, "render", func(d proto.Control) error {
		return d.RenderMatrix(m)
	})
}
