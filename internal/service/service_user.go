package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/internal/store"
	"github.com/MKhiriev/go-smart-deals/internal/utils"
	"github.com/MKhiriev/go-smart-deals/internal/validators"
	"github.com/MKhiriev/go-smart-deals/models"
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator
	ids            *utils.UUIDGenerator
	now            func() time.Time

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validator,
		ids:            utils.NewUUIDGenerator(),
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

// CreateUser inserts user unless its email is already registered. The unique
// index on users.email decides the race between concurrent requests.
func (u *userService) CreateUser(ctx context.Context, user models.User) (models.InsertResult, bool, error) {
	log := logger.FromContext(ctx)

	if err := u.validator.Validate(ctx, user); err != nil {
		log.Err(err).Str("func", "*userService.CreateUser").Msg("invalid user provided")
		return models.InsertResult{}, false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user.ID = u.ids.Generate()
	user.CreatedAt = u.now()

	saved, err := u.userRepository.CreateUser(ctx, user)
	if errors.Is(err, store.ErrUserAlreadyExists) {
		log.Info().Str("func", "*userService.CreateUser").Str("email", user.Email).Msg("user already exists")
		return models.InsertResult{}, false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.CreateUser").Msg("user creation ended with error")
		return models.InsertResult{}, false, fmt.Errorf("user creation ended with error: %w", err)
	}

	return models.InsertResult{Acknowledged: true, InsertedID: saved.ID}, true, nil
}
