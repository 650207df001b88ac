package matrix

import (
	"fmt"
	"time"

	"github.com/inhies/go-bytesize"
	"go.uber.org/zap"

	"ledmatrix/pkg/proto"
)

func (m *LedMatrix) send(cmd proto.Command) error {
	frame := proto.Frame(cmd)

	var err error
	for attempt := 0; attempt <= m.retries; attempt++ {
		if err = m.sendBytes(cmd.Code(), frame); err == nil {
			return nil
		}
		if proto.IsPermissionDenied(err) {
			return err
		}
		if attempt < m.retries {
			m.logger.With(
				zap.String("cmd", cmd.Code().String()),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			).Debug("retry")
		}
	}

	return err
}

func (m *LedMatrix) sendBytes(code proto.Code, bytes []byte) (err error) {
	var sent int
	start := time.Now()

	defer func() {
		if m.metrics != nil {
			m.metrics.ObserveTransfer(m.id.PortName, code, sent, time.Since(start), err)
		}
	}()

	serial := proto.NewSerial(m.id.PortName)
	if err = serial.Open(m.serial); err != nil {
		return err
	}

	sent, err = serial.Write(bytes)
	if cerr := serial.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	ext := ""
	if len(bytes) <= 16 {
		ext = fmt.Sprintf("%x", bytes)
	}

	m.logger.With(
		zap.String("cmd", code.String()),
		zap.String("sent", bytesize.New(float64(sent)).String()),
		zap.String("cost", time.Since(start).String()),
		zap.String("data", ext),
	).Debug("transfer")

	return nil
}
