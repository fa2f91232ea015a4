package api

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is matching.
var (
	ErrNetwork           = errors.New("network failure")
	ErrMalformedResponse = errors.New("malformed response")
	ErrServer            = errors.New("server error")
)

// ErrorKind is a coarse classification used by the UI.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNetwork
	KindMalformed
	KindServer
	KindCanceled
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNetwork:
		return "network"
	case KindMalformed:
		return "malformed"
	case KindServer:
		return "server"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// NetworkError wraps a transport failure (request rejected, timeout, DNS).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: connection error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is matches ErrNetwork.
func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// MalformedResponseError reports a body that does not match the expected schema.
type MalformedResponseError struct {
	Op  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Is matches ErrMalformedResponse.
func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

// ServerError reports a non-2xx status.
type ServerError struct {
	Op     string
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: server error: %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: server error: %d\n%s", e.Op, e.Status, body)
}

// Is matches ErrServer.
func (e *ServerError) Is(target error) bool { return target == ErrServer }

// Classify maps an error returned by Client to an ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformed
	case errors.Is(err, ErrServer):
		return KindServer
	case isCanceled(err):
		return KindCanceled
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// UserMessage renders an error the way screens present it.
func UserMessage(err error) string {
	switch Classify(err) {
	case KindNone:
		return ""
	case KindNetwork:
		return "Connection Error: could not reach the server"
	case KindMalformed:
		return "The server sent data we could not read"
	case KindServer:
		var serverErr *ServerError
		if errors.As(err, &serverErr) {
			if body := strings.TrimSpace(serverErr.Body); body != "" {
				return fmt.Sprintf("Server Error: %d\n%s", serverErr.Status, body)
			}
			return fmt.Sprintf("Server Error: %d", serverErr.Status)
		}
		return "Server Error"
	case KindCanceled:
		return "Request canceled"
	default:
		return err.Error()
	}
}
