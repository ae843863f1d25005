package errs

// Cross-layer sentinels; domain packages mark their constructor failures with these
var (
	ErrDomainValidation = New("domain validation error")
	ErrInvalidMoney     = New("invalid money amount")
	ErrUnknownVariant   = New("unknown cart item variant")
)
