package chat

import "errors"

// Kind classifies a failed request.
type Kind string

// Kind constants, one per user-visible failure class.
const (
	KindMisconfigured Kind = "misconfigured"
	KindRateLimited   Kind = "rate_limited"
	KindInvalidInput  Kind = "invalid_input"
	KindUpstream      Kind = "upstream_error"
)

// Fixed user-facing messages. These are product copy (Azerbaijani) and map
// 1:1 to a Kind; internal error details are logged, never returned.
const (
	msgMisconfigured = "API açarı təyin edilməyib"
	msgRateLimited   = "Çox tez-tez sorğu. Bir az gözləyin dostum!"
	msgInvalidInput  = "Mesaj tələb olunur və 1000 simvoldan az olmalıdır"
	msgUpstream      = "Üzr istəyirəm dostum, bir xəta baş verdi. Yenidən cəhd et!"
)

// Error is the pipeline's typed failure: a kind, the fixed message shown to
// the user, and the HTTP status the gateway responds with.
type Error struct {
	Kind        Kind
	UserMessage string
	Status      int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.UserMessage
}

// One instance per kind; the pipeline only ever returns these.
var (
	errMisconfigured = &Error{Kind: KindMisconfigured, UserMessage: msgMisconfigured, Status: 500}
	errRateLimited   = &Error{Kind: KindRateLimited, UserMessage: msgRateLimited, Status: 429}
	errInvalidInput  = &Error{Kind: KindInvalidInput, UserMessage: msgInvalidInput, Status: 400}
	errUpstream      = &Error{Kind: KindUpstream, UserMessage: msgUpstream, Status: 500}
)

// Outcome returns the stable outcome label for a handled request: "ok" for
// success, the error kind otherwise. Unknown error types count as upstream.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var ce *Error
	if errors.As(err, &ce) {
		return string(ce.Kind)
	}
	return string(KindUpstream)
}
