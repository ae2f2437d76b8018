package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/edulearn/edulearn-backend/internal/domain/user"
)

type requestDataKey struct{}

type traceDataKey struct{}

// RequestData is the authenticated caller identity, resolved once by the
// auth middleware and carried for the rest of the request.
type RequestData struct {
	UserID uuid.UUID
	Role   user.Role
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

type TraceData struct {
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}
