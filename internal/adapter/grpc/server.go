package grpc

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ulogs/wallet-backend/internal/domain"
	"github.com/ulogs/wallet-backend/internal/metrics"
	"github.com/ulogs/wallet-backend/internal/usecase/powerdown"
	"github.com/ulogs/wallet-backend/internal/usecase/powerup"
	"github.com/ulogs/wallet-backend/internal/usecase/validation"
)

// Flows accepted by ValidateAmount
const (
	FlowPowerUp   = "power_up"
	FlowPowerDown = "power_down"
)

// Username check outcomes reported to metrics
const (
	usernameOK      = "ok"
	usernameInvalid = "invalid"
	usernameError   = "error"
)

// Server implements WalletServiceServer
type Server struct {
	Validations      *validation.Validations
	PowerUpService   *powerup.PowerUpService
	PowerDownService *powerdown.PowerDownService

	metrics *metrics.Metrics
	logger  logrus.FieldLogger
}

var _ WalletServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(
	validations *validation.Validations,
	powerUpService *powerup.PowerUpService,
	powerDownService *powerdown.PowerDownService,
	m *metrics.Metrics,
	logger logrus.FieldLogger,
) *Server {
	return &Server{
		Validations:      validations,
		PowerUpService:   powerUpService,
		PowerDownService: powerDownService,
		metrics:          m,
		logger:           logger,
	}
}

// ValidateAmount handles {amount, flow} and answers {valid, kind, message, input_accepted}.
// A field error is a normal answer, not an RPC failure.
func (s *Server) ValidateAmount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	session := SessionFromContext(ctx)
	amount := stringField(req, "amount")

	var err error
	switch flow := stringField(req, "flow"); flow {
	case FlowPowerUp:
		err = s.Validations.ValidateSteemBalance(ctx, session, amount)
	case FlowPowerDown:
		err = s.Validations.ValidateSPBalance(ctx, session, amount)
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown flow %q (want %s or %s)", flow, FlowPowerUp, FlowPowerDown)
	}

	result, err := s.fieldResult(err)
	if err != nil {
		return nil, err
	}
	// input_accepted tells the form whether to keep the keystroke at all
	result.Fields["input_accepted"] = structpb.NewBoolValue(s.Validations.AmountPattern().MatchString(amount))
	return result, nil
}

// ValidateUsername handles {username} and answers {valid, kind, message}
func (s *Server) ValidateUsername(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	err := s.Validations.ValidateUsername(ctx, stringField(req, "username"))

	switch _, isField := domain.AsValidationError(err); {
	case err == nil:
		s.metrics.UsernameChecked(usernameOK)
	case isField:
		s.metrics.UsernameChecked(usernameInvalid)
	default:
		s.metrics.UsernameChecked(usernameError)
	}

	return s.fieldResult(err)
}

// GetBalances answers {account, balance, vesting_shares, steem_power, max_power_up, max_power_down}
// for the authenticated session. The max_* fields are what "use balance" puts in each form;
// max_power_down is empty when Steem Power is unavailable.
func (s *Server) GetBalances(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	session := SessionFromContext(ctx)
	if !session.Authenticated {
		return nil, status.Errorf(codes.FailedPrecondition, "%s metadata is required", AccountKey)
	}

	balances, err := s.Validations.BalanceService.GetBalances(ctx, session.Account)
	if err != nil {
		return nil, s.mapError(err)
	}

	return newStruct(map[string]interface{}{
		"account":        balances.Account,
		"balance":        balances.BalanceDisplay(),
		"vesting_shares": domain.FormatBalance(balances.VestingShares, nil, domain.SymbolVests),
		"steem_power":    balances.SteemPowerDisplay(),
		"max_power_up":   prefill(balances.BalanceDisplay()),
		"max_power_down": prefill(balances.SteemPowerDisplay()),
	})
}

// PowerUp handles {amount, memo} and answers {intent_id, action, sign_url}
func (s *Server) PowerUp(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	result, err := s.PowerUpService.Submit(ctx, powerup.SubmitInput{
		Session: SessionFromContext(ctx),
		Amount:  stringField(req, "amount"),
		Memo:    stringField(req, "memo"),
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return s.dispatched(result)
}

// PowerDown handles {amount, memo} and answers {intent_id, action, sign_url}
func (s *Server) PowerDown(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	result, err := s.PowerDownService.Submit(ctx, powerdown.SubmitInput{
		Session: SessionFromContext(ctx),
		Amount:  stringField(req, "amount"),
		Memo:    stringField(req, "memo"),
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return s.dispatched(result)
}

func (s *Server) dispatched(result *domain.DispatchedIntent) (*structpb.Struct, error) {
	s.metrics.IntentDispatched(string(result.Intent.ActionName))
	s.logger.WithFields(logrus.Fields{
		"intent_id": result.Intent.ID.String(),
		"action":    result.Intent.ActionName,
	}).Info("intent dispatched")

	return newStruct(map[string]interface{}{
		"intent_id": result.Intent.ID.String(),
		"action":    string(result.Intent.ActionName),
		"sign_url":  result.SignURL,
	})
}

// fieldResult turns a validation outcome into a {valid, kind, message} answer.
// Errors that are not field errors become RPC failures.
func (s *Server) fieldResult(err error) (*structpb.Struct, error) {
	if err == nil {
		return newStruct(map[string]interface{}{
			"valid":   true,
			"kind":    "",
			"message": "",
		})
	}

	vErr, ok := domain.AsValidationError(err)
	if !ok {
		return nil, s.mapError(err)
	}

	s.metrics.ValidationFailed(vErr.Field, string(vErr.Kind))
	return newStruct(map[string]interface{}{
		"valid":   false,
		"kind":    string(vErr.Kind),
		"field":   vErr.Field,
		"message": vErr.Message,
	})
}

// mapError converts domain errors to gRPC status errors.
// Validation errors carry {kind, field, message} as a status detail.
func (s *Server) mapError(err error) error {
	if err == nil {
		return nil
	}

	if vErr, ok := domain.AsValidationError(err); ok {
		s.metrics.ValidationFailed(vErr.Field, string(vErr.Kind))

		st := status.New(codes.InvalidArgument, vErr.Error())
		detail, dErr := structpb.NewStruct(map[string]interface{}{
			"kind":    string(vErr.Kind),
			"field":   vErr.Field,
			"message": vErr.Message,
		})
		if dErr != nil {
			return st.Err()
		}
		if withDetail, dErr := st.WithDetails(detail); dErr == nil {
			return withDetail.Err()
		}
		return st.Err()
	}

	if errors.Is(err, domain.ErrAccountNotFound) {
		return status.Errorf(codes.NotFound, "%s", err.Error())
	}

	s.logger.WithError(err).Error("unexpected error")
	return status.Errorf(codes.Internal, "%s", err.Error())
}

// prefill returns the amount "use balance" puts in a freshly opened form
func prefill(display string) string {
	var form domain.FormState
	form.OpenModal()
	defer form.CloseModal()

	form.UseBalance(display)
	return form.Amount
}

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func newStruct(fields map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return out, nil
}
