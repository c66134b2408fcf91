package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-party & configuration errors
var (
	ErrUpstream            = errors.New("upstream service failed")
	ErrConfigInvalid       = errors.New("configuration invalid")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

// NewUpstreamError wraps a failure of an external provider such as the
// image host. Clients only ever see a generic message.
func NewUpstreamError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUpstream,
		Details:    fmt.Sprintf("%s request failed", service),
		Cause:      cause,
	}
}

func NewConfigError(configName string, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("%s: %s", configName, reason),
		Field:      configName,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		Details:    fmt.Sprintf("%s must be set", varName),
		Field:      varName,
	}
}

func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstream)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigInvalid) || errors.Is(err, ErrEnvironmentVariable)
}
