package emailcheck

// RejectReason identifies why an address failed the acceptance policy. Each
// reason maps to distinct user-facing copy; all are otherwise equivalent and
// return the conversation to the email step.
type RejectReason string

const (
	ReasonBadFormat     RejectReason = "bad_format"
	ReasonNoMX          RejectReason = "no_mx"
	ReasonSMTPInvalid   RejectReason = "smtp_invalid"
	ReasonUndeliverable RejectReason = "undeliverable"
	ReasonDisposable    RejectReason = "disposable"
)

// Evaluate applies the acceptance policy to a provider result. The second
// return is false when the address passes every check.
func Evaluate(r Result) (RejectReason, bool) {
	switch {
	case !r.IsValidFormat.Value:
		return ReasonBadFormat, true
	case !r.IsMXFound.Value:
		return ReasonNoMX, true
	case !r.IsSMTPValid.Value:
		return ReasonSMTPInvalid, true
	case r.Deliverability == DeliverabilityUndeliverable:
		return ReasonUndeliverable, true
	case r.IsDisposable.Value:
		return ReasonDisposable, true
	default:
		return "", false
	}
}
