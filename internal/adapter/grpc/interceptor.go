package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/ulogs/wallet-backend/internal/metrics"
	"github.com/ulogs/wallet-backend/internal/usecase/validation"
)

// Metadata keys read by the interceptors
const (
	AuthorizationKey = "authorization"
	AccountKey       = "x-steem-account"
)

type sessionKey struct{}

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the authorization token from request metadata.
// If the token is missing or invalid, it returns status.Unauthenticated.
// If valid, it calls the handler with the original context.
func AuthInterceptor(validToken string) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get(AuthorizationKey)
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		if authHeaders[0] != validToken {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(ctx, req)
	}
}

// SessionInterceptor attaches the caller's wallet session to the context.
// A non-empty x-steem-account header marks the session as authenticated;
// without it the session is anonymous and balance checks are skipped.
func SessionInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		var session validation.Session

		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if accounts := md.Get(AccountKey); len(accounts) > 0 {
				account := strings.TrimSpace(accounts[0])
				session = validation.Session{
					Account:       account,
					Authenticated: account != "",
				}
			}
		}

		return handler(WithSession(ctx, session), req)
	}
}

// WithSession returns a copy of ctx carrying session
func WithSession(ctx context.Context, session validation.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session set by SessionInterceptor, or an anonymous one
func SessionFromContext(ctx context.Context) validation.Session {
	session, _ := ctx.Value(sessionKey{}).(validation.Session)
	return session
}

// LoggingInterceptor logs every call with its status code and duration
func LoggingInterceptor(logger logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		entry := logger.WithFields(logrus.Fields{
			"method":   info.FullMethod,
			"code":     status.Code(err).String(),
			"duration": time.Since(start),
		})
		if err != nil && status.Code(err) == codes.Internal {
			entry.WithError(err).Error("request failed")
		} else {
			entry.Debug("request handled")
		}

		return resp, err
	}
}

// MetricsInterceptor records request counts and latencies
func MetricsInterceptor(m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		m.ObserveRequest(info.FullMethod, status.Code(err).String(), time.Since(start))
		return resp, err
	}
}
