// pattern: Imperative Shell

package logging

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapSlogHandler routes slog records into a zap logger. Groups become
// dotted key prefixes.
type zapSlogHandler struct {
	zap    *zap.Logger
	level  zapcore.LevelEnabler
	fields []zap.Field
	prefix string
}

func (h *zapSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.level.Enabled(toZapLevel(level))
}

func (h *zapSlogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]zap.Field, 0, len(h.fields)+r.NumAttrs())
	fields = append(fields, h.fields...)
	r.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, h.field(attr))
		return true
	})

	if ce := h.zap.Check(toZapLevel(r.Level), r.Message); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

func (h *zapSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make([]zap.Field, 0, len(h.fields)+len(attrs))
	fields = append(fields, h.fields...)
	for _, attr := range attrs {
		fields = append(fields, h.field(attr))
	}
	return &zapSlogHandler{zap: h.zap, level: h.level, fields: fields, prefix: h.prefix}
}

func (h *zapSlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &zapSlogHandler{zap: h.zap, level: h.level, fields: h.fields, prefix: h.prefix + name + "."}
}

func (h *zapSlogHandler) field(attr slog.Attr) zap.Field {
	key := h.prefix + attr.Key
	v := attr.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return zap.String(key, v.String())
	case slog.KindInt64:
		return zap.Int64(key, v.Int64())
	case slog.KindFloat64:
		return zap.Float64(key, v.Float64())
	case slog.KindBool:
		return zap.Bool(key, v.Bool())
	case slog.KindDuration:
		return zap.Duration(key, v.Duration())
	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			parts = append(parts, a.String())
		}
		return zap.String(key, strings.Join(parts, " "))
	default:
		if err, ok := v.Any().(error); ok {
			return zap.String(key, err.Error())
		}
		return zap.Any(key, v.Any())
	}
}

func toZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
