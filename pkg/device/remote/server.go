package remote

import (
	"context"
	"net"
	"net/http"
	"net/rpc"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"ledmatrix/pkg/bitmap"
	"ledmatrix/pkg/fleet"
	"ledmatrix/pkg/proto"
)

// Broadcaster is what the daemon exposes: *fleet.Fleet locally and *Client
// remotely.
type Broadcaster interface {
	Ports(ctx context.Context) ([]string, error)
	SetPattern(ctx context.Context, id uint8) (fleet.Report, error)
	SetBrightness(ctx context.Context, level uint8) (fleet.Report, error)
	RenderMatrix(ctx context.Context, m *bitmap.Matrix) (fleet.Report, error)
}

func Proxy(b Broadcaster, srv *http.Server, mux *http.ServeMux, logger *zap.Logger, lifecycle fx.Lifecycle) error {
	rs := rpc.NewServer()
	if err := rs.RegisterName("Service", &Service{b: b}); err != nil {
		return err
	}

	mux.Handle(rpc.DefaultRPCPath, rs)

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.With(zap.String("addr", ln.Addr().String())).Info("listening")

			go func() {
				if err := srv.Serve(ln); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Fatal("serve failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

type Service struct {
	b Broadcaster
}

// Ports ignores its argument; gob cannot send an empty request struct.
func (s *Service) Ports(_ bool, resp *PortsResponse) error {
	ports, err := s.b.Ports(context.Background())
	if errors.Is(err, proto.ErrNoDevicesFound) {
		resp.NoDevices = true
		return nil
	}
	resp.Ports = ports
	return err
}

func (s *Service) SetPattern(id uint8, reply *Reply) error {
	return toReply(reply)(s.b.SetPattern(context.Background(), id))
}

func (s *Service) SetBrightness(level uint8, reply *Reply) error {
	return toReply(reply)(s.b.SetBrightness(context.Background(), level))
}

func (s *Service) RenderMatrix(req *RenderRequest, reply *Reply) error {
	return toReply(reply)(s.b.RenderMatrix(context.Background(), bitmap.Decode(req.Packed)))
}

func toReply(reply *Reply) func(fleet.Report, error) error {
	return func(r fleet.Report, err error) error {
		reply.Op = r.Op
		reply.Run = r.Run
		if errors.Is(err, proto.ErrNoDevicesFound) {
			reply.NoDevices = true
			return nil
		}
		if err != nil {
			return err
		}

		reply.Results = lo.Map(r.Results, func(res fleet.Result, _ int) DeviceResult {
			dr := DeviceResult{Port: res.Port}
			if res.Err != nil {
				dr.Error = res.Err.Error()
				dr.PermissionDenied = proto.IsPermissionDenied(res.Err)
			}
			return dr
		})
		return nil
	}
}
