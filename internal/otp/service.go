package otp

import (
	"context"

	"github.com/medibook/booking-api/internal/notify"
	"github.com/medibook/booking-api/pkg/logging"
)

// devMasterCode always verifies outside production, mirroring the manual
// testing flow the frontend relies on.
const devMasterCode = "123456"

// Service generates codes, delivers them over email and verifies them.
type Service struct {
	store       *Store
	mailer      notify.EmailSender
	allowMaster bool
	logger      *logging.Logger
}

// NewService constructs an OTP service. allowMaster enables the dev master
// code and must be false in production.
func NewService(store *Store, mailer notify.EmailSender, allowMaster bool, logger *logging.Logger) *Service {
	if store == nil {
		panic("otp: store required")
	}
	if mailer == nil {
		mailer = notify.NewStubEmailSender(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, mailer: mailer, allowMaster: allowMaster, logger: logger}
}

// Send issues a fresh code for the address and emails it. Storing the code
// must succeed; the email is best-effort because the user can request
// another code, but a code that was never stored can never verify.
func (s *Service) Send(ctx context.Context, email string) error {
	code, err := GenerateCode()
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, email, code); err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, notify.OTPEmail(email, code)); err != nil {
		s.logger.Warn("OTP email failed", "error", err, "to", email)
	}
	return nil
}

// Verify checks the submitted code, consuming it on success.
func (s *Service) Verify(ctx context.Context, email, code string) bool {
	if s.allowMaster && code == devMasterCode {
		return true
	}
	ok, err := s.store.Verify(ctx, email, code)
	if err != nil {
		s.logger.Error("OTP verification failed", "error", err, "email", email)
		return false
	}
	return ok
}
