package httpclient

import (
	"net/http"

	"github.com/billops/billingctl/internal/common/apperrors"
)

// Failure taxonomy for classified calls. Exactly one of these backs every
// rejected request; callers discriminate with errors.Is. ErrApplication is
// the only class whose message comes from the server envelope.
var (
	ErrNetwork      = apperrors.New("network connection failed")
	ErrUnauthorized = apperrors.New("session expired").SetStatusCode(http.StatusUnauthorized)
	ErrForbidden    = apperrors.New("access denied").SetStatusCode(http.StatusForbidden)
	ErrNotFound     = apperrors.New("resource not found").SetStatusCode(http.StatusNotFound)
	ErrServer       = apperrors.New("server error").SetStatusCode(http.StatusInternalServerError)
	ErrUnavailable  = apperrors.New("service unavailable").SetStatusCode(http.StatusServiceUnavailable)
	ErrApplication  = apperrors.New("request failed")
)

// User-facing notification text for each failure class.
const (
	msgNetworkFailure  = "network connection failed, please check your connection"
	msgSessionExpired  = "session expired, please log in again"
	msgAccessDenied    = "you do not have permission to perform this operation"
	msgNotFound        = "requested resource does not exist"
	msgServerError     = "server error, please try again later"
	msgUnavailable     = "service temporarily unavailable, please try again later"
	msgRequestFailed   = "request failed"
	msgInvalidResponse = "invalid server response"
)
