package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"ledmatrix/pkg/bitmap"
	"ledmatrix/pkg/device/matrix"
	"ledmatrix/pkg/device/remote"
	"ledmatrix/pkg/device/virtual"
	"ledmatrix/pkg/fleet"
	"ledmatrix/pkg/locator"
	"ledmatrix/pkg/logging"
	"ledmatrix/pkg/pattern"
	"ledmatrix/pkg/proto"
)

var remoteAddr = flag.String("remote", "", "ledmatrixd address, local ports are used when empty")
var concurrency = flag.Int("concurrency", 1, "devices written in parallel")
var retries = flag.Int("retries", 0, "extra attempts per device on transport errors")
var threshold = flag.Uint8("threshold", bitmap.DefaultThreshold, "grayscale level that lights a pixel when rendering images")
var dryRun = flag.Bool("dry-run", false, "log commands to a virtual panel instead of writing to ports")
var debug = flag.Bool("debug", false, "set debug")

const usage = `usage: ledmatrix [flags] <command>

commands:
  list               show attached panels
  patterns           show built-in pattern names
  pattern NAME|ID    select a built-in pattern
  brightness LEVEL   set brightness 0-255
  render FILE        draw a 9x34 .txt grid or an image

flags:
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := logging.New(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	b, closer, err := broadcaster(logger)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("connect failed")
	}
	defer func() {
		_ = closer.Close()
	}()

	c := &cli{b: b, fs: afero.NewOsFs(), out: os.Stdout, threshold: *threshold}
	if err := c.run(ctx, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		logger.With(zap.Error(err)).Error(flag.Arg(0) + " failed")
		os.Exit(1)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func broadcaster(logger *zap.Logger) (remote.Broadcaster, io.Closer, error) {
	if *remoteAddr != "" {
		c, err := remote.New(*remoteAddr)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	}

	opts := []fleet.Option{fleet.WithConcurrency(*concurrency)}

	if *dryRun {
		disc := virtualPanels{{PortName: "virtual0"}}
		return fleet.New(disc, func(id locator.Identity) proto.Control {
			return virtual.Mock(id.PortName, logger)
		}, logger, opts...), nopCloser{}, nil
	}

	return fleet.New(locator.New(logger), func(id locator.Identity) proto.Control {
		return matrix.New(id, logger, matrix.WithRetries(*retries))
	}, logger, opts...), nopCloser{}, nil
}

type virtualPanels []locator.Identity

func (v virtualPanels) Discover() ([]locator.Identity, error) {
	return v, nil
}

var errUsage = errors.New("usage")

type cli struct {
	b         remote.Broadcaster
	fs        afero.Fs
	out       io.Writer
	threshold uint8
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	arg := func() (string, error) {
		if len(args) != 2 {
			return "", errUsage
		}
		return args[1], nil
	}

	switch args[0] {
	case "list":
		ports, err := c.b.Ports(ctx)
		if err != nil {
			return err
		}
		for _, p := range ports {
			fmt.Fprintln(c.out, p)
		}
		return nil

	case "patterns":
		for _, p := range pattern.All() {
			fmt.Fprintf(c.out, "%d\t%s\t%s\n", p.ID, p.Name, p.Label)
		}
		return nil

	case "pattern":
		in, err := arg()
		if err != nil {
			return err
		}
		id, err := pattern.Lookup(in)
		if err != nil {
			return err
		}
		return c.report(c.b.SetPattern(ctx, id))

	case "brightness":
		in, err := arg()
		if err != nil {
			return err
		}
		level, err := strconv.ParseUint(in, 10, 8)
		if err != nil {
			return errors.Errorf("brightness must be 0-255, got %q", in)
		}
		return c.report(c.b.SetBrightness(ctx, uint8(level)))

	case "render":
		in, err := arg()
		if err != nil {
			return err
		}
		m, err := loadMatrix(c.fs, in, c.threshold)
		if err != nil {
			return err
		}
		return c.report(c.b.RenderMatrix(ctx, m))
	}

	return errUsage
}

func (c *cli) report(r fleet.Report, err error) error {
	if err != nil {
		return err
	}

	for _, res := range r.Results {
		if res.Err != nil {
			fmt.Fprintf(c.out, "%s\tfailed: %s\n", res.Port, res.Err)
		} else {
			fmt.Fprintf(c.out, "%s\tok\n", res.Port)
		}
	}

	return r.Err()
}
