// Package zap adapts a *zap.Logger to the filepool.Logger interface.
package zap

import (
	"github.com/unkn0wn-root/filepool"
	"go.uber.org/zap"
)

type Logger struct{ L *zap.Logger }

var _ filepool.Logger = Logger{}

func (z Logger) Debug(msg string, f filepool.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f filepool.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f filepool.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f filepool.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f filepool.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
