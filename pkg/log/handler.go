package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// ErrFmtHandler はslogハンドラをラップし、エラー属性からcockroachdb/errorsの
// スタックトレースを取り出して専用の属性として付加するハンドラ。
// 距離計算やカーネル評価の失敗箇所をログ出力だけで特定できるようにする。
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler はslogハンドラをラップし、エラー属性を持つレコードに
// スタックトレース属性を付加するハンドラを返す。
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{handler: handler}
}

func (h *ErrFmtHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle はレコードのエラー属性を探し、スタックトレースが取り出せた場合は
// StacktraceAttrKey属性として追加してから内側のハンドラへ委譲する。
func (h *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var stacktrace string
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		if err, ok := attr.Value.Any().(error); ok {
			stacktrace = stacktraceOf(err)
		}
		return false
	})
	if stacktrace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, stacktrace))
	}
	return h.handler.Handle(ctx, r)
}

func (h *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *ErrFmtHandler) WithGroup(name string) slog.Handler {
	return &ErrFmtHandler{handler: h.handler.WithGroup(name)}
}

// stacktraceOf は最初のsafe detailを返す。cockroachdb/errorsは整形済みの
// スタックをそこへ格納する。
func stacktraceOf(err error) string {
	details := errors.GetSafeDetails(err).SafeDetails
	if len(details) == 0 {
		return ""
	}
	return details[0]
}
