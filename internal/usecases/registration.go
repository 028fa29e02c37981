package usecases

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/commission-app/backend/internal/entities"
	"github.com/finledger/commission-app/backend/internal/refdata"
	"github.com/finledger/commission-app/backend/internal/usecases/repository"
)

type InvitationsRepository interface {
	InsertInvitation(ctx context.Context, inv *entities.Invitation) error
}

// RegistrationRequest is a new account signup. The invitation code is
// required and must be an existing user's referral code.
type RegistrationRequest struct {
	Username       string `json:"username"`
	Phone          string `json:"phone"`
	Country        string `json:"country"`
	InvitationCode string `json:"invitation_code"`
}

type RegistrationService struct {
	logger      *slog.Logger
	users       UsersRepository
	invitations InvitationsRepository
	transactor  Transactor
}

func NewRegistrationService(logger *slog.Logger, users UsersRepository, invitations InvitationsRepository, transactor Transactor) *RegistrationService {
	return &RegistrationService{logger: logger, users: users, invitations: invitations, transactor: transactor}
}

// Register validates the invitation code, creates the account with a zero
// balance and records the invitation relationship in one transaction.
func (s *RegistrationService) Register(ctx context.Context, req RegistrationRequest) (*entities.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, ErrUsernameRequired
	}

	code := strings.TrimSpace(req.InvitationCode)
	if code == "" {
		return nil, ErrInvitationRequired
	}

	inviter, err := s.users.FindUserByReferralCode(ctx, code)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidInvitation
	}
	if err != nil {
		return nil, err
	}

	currency := refdata.CurrencyForCountry(req.Country)

	user := &entities.User{
		Username:       req.Username,
		Phone:          req.Phone,
		Balance:        decimal.Zero,
		Country:        req.Country,
		Currency:       currency.Code,
		CurrencySymbol: currency.Symbol,
		ReferralCode:   newReferralCode(),
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.InsertUser(ctx, user); err != nil {
			return err
		}

		return s.invitations.InsertInvitation(ctx, &entities.Invitation{
			InviterID:      inviter.ID,
			InvitedID:      user.ID,
			InvitationCode: code,
			Status:         "accepted",
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", user.ID, "inviter_id", inviter.ID)

	return user, nil
}

func newReferralCode() string {
	return "REF" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
