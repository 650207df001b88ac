package locator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"ledmatrix/pkg/proto"
)

const (
	VendorID  = 0x32AC
	ProductID = 0x0020
)

// Identity addresses one attached panel. It is only valid until the next
// discovery.
type Identity struct {
	PortName     string
	SerialNumber string
	Product      string
}

type Enumerator func() ([]*enumerator.PortDetails, error)

func New(logger *zap.Logger, opts ...Option) *Locator {
	l := &Locator{
		enum:   enumerator.GetDetailedPortsList,
		logger: logger,
		vid:    VendorID,
		pid:    ProductID,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

type Locator struct {
	enum   Enumerator
	logger *zap.Logger
	vid    uint16
	pid    uint16
}

// Discover lists the attached panels, or returns proto.ErrNoDevicesFound.
func (l *Locator) Discover() ([]Identity, error) {
	ports, err := l.enum()
	if err != nil {
		return nil, &proto.TransportError{Op: "enumerate", Err: err}
	}

	matched := lo.Filter(ports, func(p *enumerator.PortDetails, _ int) bool {
		if p == nil {
			return false
		}
		ok := l.match(p)
		if !ok {
			l.logger.With(
				zap.String("port", p.Name),
				zap.Bool("usb", p.IsUSB),
				zap.String("vid", p.VID),
				zap.String("pid", p.PID),
			).Debug("skip port")
		}
		return ok
	})

	if len(matched) == 0 {
		return nil, proto.ErrNoDevicesFound
	}

	ids := lo.Map(matched, func(p *enumerator.PortDetails, _ int) Identity {
		return Identity{
			PortName:     p.Name,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
		}
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i].PortName < ids[j].PortName })

	return ids, nil
}

func (l *Locator) match(p *enumerator.PortDetails) bool {
	if !p.IsUSB {
		return false
	}

	vid, ok := parseID(p.VID)
	if !ok || vid != l.vid {
		return false
	}

	pid, ok := parseID(p.PID)
	return ok && pid == l.pid
}

// parseID reads the hex ids the enumerator reports, e.g. "32ac" or "0x32AC".
func parseID(s string) (uint16, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}
