package protocol

// Error codes carried by ERROR frames and failed ACTION_RESULT events.
const (
	// Frame never reached the world: bad json, wrong type or version, schema failure.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	ErrBadRequest    = "E_BAD_REQUEST"
	ErrNoResource    = "E_NO_RESOURCE"
	ErrInvalidTarget = "E_INVALID_TARGET"
	ErrRateLimit     = "E_RATE_LIMIT"
	ErrBlocked       = "E_BLOCKED"
	ErrInternal      = "E_INTERNAL"
)

func isErrorCode(code string) bool {
	switch code {
	case ErrProtoBadRequest, ErrBadRequest, ErrNoResource, ErrInvalidTarget,
		ErrRateLimit, ErrBlocked, ErrInternal:
		return true
	}
	return false
}

// NewError builds an ERROR frame. Codes outside the table above are reported
// as E_INTERNAL so clients only ever see documented codes.
func NewError(code, message string) ErrorMsg {
	if !isErrorCode(code) {
		message = code + ": " + message
		code = ErrInternal
	}
	return ErrorMsg{
		Type:            TypeError,
		ProtocolVersion: Version,
		Code:            code,
		Message:         message,
	}
}
