package utils

import (
	"context"
	"fmt"
)

// RequestInfo identifies the HTTP request a unit of work belongs to.
type RequestInfo struct {
	RequestID string
	UserID    string
}

type requestInfoKey struct{}

// WithRequestInfo returns a copy of ctx carrying the request and user IDs.
//
// Go Learning Note — context keys:
// An unexported struct type as the key means no other package can read or
// overwrite the value by accident, even if it also stores something under a
// key that prints the same.
func WithRequestInfo(ctx context.Context, requestID, userID string) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, RequestInfo{RequestID: requestID, UserID: userID})
}

// RequestInfoFrom returns the IDs stored by WithRequestInfo, or the zero value.
func RequestInfoFrom(ctx context.Context) RequestInfo {
	info, _ := ctx.Value(requestInfoKey{}).(RequestInfo)
	return info
}

// LogFields formats the request IDs for a log line. Missing values print as "-".
func LogFields(ctx context.Context) string {
	info := RequestInfoFrom(ctx)
	return fmt.Sprintf("request_id=%s user_id=%s", orDash(info.RequestID), orDash(info.UserID))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
