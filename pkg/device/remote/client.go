package remote

import (
	"context"
	"net/rpc"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"ledmatrix/pkg/bitmap"
	"ledmatrix/pkg/fleet"
	"ledmatrix/pkg/proto"
)

func New(addr string) (*Client, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc *rpc.Client
}

func (c *Client) Close() error {
	return c.rpc.Close()
}

func (c *Client) call(ctx context.Context, method string, args interface{}, reply interface{}) error {
	call := c.rpc.Go("Service."+method, args, reply, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-call.Done:
		return call.Error
	}
}

func (c *Client) Ports(ctx context.Context) ([]string, error) {
	var resp PortsResponse
	if err := c.call(ctx, "Ports", true, &resp); err != nil {
		return nil, err
	}
	if resp.NoDevices {
		return nil, proto.ErrNoDevicesFound
	}
	return resp.Ports, nil
}

func (c *Client) SetPattern(ctx context.Context, id uint8) (fleet.Report, error) {
	return c.broadcast(ctx, "SetPattern", id)
}

func (c *Client) SetBrightness(ctx context.Context, level uint8) (fleet.Report, error) {
	return c.broadcast(ctx, "SetBrightness", level)
}

func (c *Client) RenderMatrix(ctx context.Context, m *bitmap.Matrix) (fleet.Report, error) {
	return c.broadcast(ctx, "RenderMatrix", &RenderRequest{Packed: bitmap.Encode(m)})
}

func (c *Client) broadcast(ctx context.Context, method string, args interface{}) (fleet.Report, error) {
	var reply Reply
	if err := c.call(ctx, method, args, &reply); err != nil {
		return fleet.Report{}, err
	}

	report := fleet.Report{Op: reply.Op, Run: reply.Run}
	if reply.NoDevices {
		return report, proto.ErrNoDevicesFound
	}

	report.Results = lo.Map(reply.Results, func(dr DeviceResult, _ int) fleet.Result {
		res := fleet.Result{Port: dr.Port}
		switch {
		case dr.PermissionDenied:
			res.Err = &proto.PermissionDeniedError{Port: dr.Port, Hint: proto.PermissionHint, Err: errors.New(dr.Error)}
		case dr.Error != "":
			res.Err = errors.New(dr.Error)
		}
		return res
	})

	return report, nil
}

var _ Broadcaster = (*Client)(nil)
var _ Broadcaster = (*fleet.Fleet)(nil)
