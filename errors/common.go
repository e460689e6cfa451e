package errors

// Sentinel errors for the transaction core. Callers match these with
// errors.Is; transport layers map their kinds to response codes.
var (
	ErrOwnerNotFound       = E(NotFound, "owner not found", nil)
	ErrKycRequired         = E(Unprocessable, "kyc verification required", nil)
	ErrInsufficientBalance = E(Unprocessable, "insufficient balance", nil)
	ErrTxNotFound          = E(NotFound, "transaction not found", nil)
	ErrDuplicateTx         = E(Conflict, "transaction id already exists", nil)
	ErrMalformedEnvelope   = E(Invalid, "malformed envelope", nil)
	ErrDecryptionFailed    = E(Invalid, "decryption failed", nil)
	ErrMissingCaller       = E(Unauthorized, "missing caller identity", nil)
)

func InvalidBodyErr(err error) error {
	return E(Invalid, "invalid request body", err)
}

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}
