package logging

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	jwtPattern    = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)
	schemePattern = regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`)

	// Connection strings with credentials: mongodb://user:pw@host and the
	// go-sql-driver form user:pw@tcp(host).
	credentialURLPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://[^/\s:@]+:[^/\s@]+@`)
	mysqlDSNPattern      = regexp.MustCompile(`^[^:@\s/]+:[^@\s]+@(tcp|unix)\(`)

	// Uploaded images travel as base64 data URIs and can run to megabytes.
	dataURIPattern = regexp.MustCompile(`^data:[a-zA-Z]+/[a-zA-Z0-9.+-]+;base64,`)
)

// redactedFields are attribute keys whose values never reach a log sink.
var redactedFields = []string{
	"password", "secret", "token", "api_key", "apiKey",
	"access_token", "accessToken", "refresh_token", "authorization",
	"cookie", "session", "credentials", "private_key", "dsn",
}

// DefaultRedactOptions returns the masq options applied to every log record.
func DefaultRedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(redactedFields)+6)
	for _, f := range redactedFields {
		opts = append(opts, masq.WithFieldName(f))
	}

	return append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(schemePattern),
		masq.WithRegex(credentialURLPattern),
		masq.WithRegex(mysqlDSNPattern),
		masq.WithRegex(dataURIPattern),
	)
}

// NewReplaceAttr returns a slog ReplaceAttr func that redacts with the
// default options plus opts.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}

// replaceAttrHandler applies a ReplaceAttr function in front of handlers that
// do not support one, such as the charm pretty printer.
type replaceAttrHandler struct {
	next    slog.Handler
	replace func([]string, slog.Attr) slog.Attr
	groups  []string
}

func newReplaceAttrHandler(next slog.Handler, replace func([]string, slog.Attr) slog.Attr) *replaceAttrHandler {
	return &replaceAttrHandler{next: next, replace: replace}
}

func (h *replaceAttrHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *replaceAttrHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.replace(h.groups, a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *replaceAttrHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	replaced := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		replaced[i] = h.replace(h.groups, a)
	}

	return &replaceAttrHandler{next: h.next.WithAttrs(replaced), replace: h.replace, groups: h.groups}
}

func (h *replaceAttrHandler) WithGroup(name string) slog.Handler {
	groups := append(append([]string{}, h.groups...), name)
	return &replaceAttrHandler{next: h.next.WithGroup(name), replace: h.replace, groups: groups}
}
