package service

import (
	"context"
	"errors"

	"github.com/xcommerce/backend/internal/core/domain"
	"github.com/xcommerce/backend/internal/core/port"
	"github.com/xcommerce/backend/internal/core/utils"
	"go.uber.org/zap"
)

type Service struct {
	repo         port.Repository
	tokenService port.TokenService
	events       port.EventPublisher
	logger       *zap.Logger
}

func NewService(repo port.Repository, tokenService port.TokenService,
	events port.EventPublisher, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		tokenService: tokenService,
		events:       events,
		logger:       logger,
	}, nil
}

func (s *Service) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	exUser, err := s.repo.GetUserByUsername(ctx, user.Username)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if exUser != nil {
		return nil, domain.ErrConflictingData
	}

	newUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, domain.ErrConflictingData
		}
		s.logger.Error("Create user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newUser, nil
}

func (s *Service) LoginUser(ctx context.Context, username string, password string) (string, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, user.Password)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	list, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Error("List products", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

func (s *Service) GetProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	product, err := s.repo.ReadProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read product", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return product, nil
}

func (s *Service) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	list, err := s.repo.ListCountries(ctx)
	if err != nil {
		s.logger.Error("List countries", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

func (s *Service) ListAddresses(ctx context.Context, userID uint64) ([]*domain.Address, error) {
	list, err := s.repo.ListAddressesByUser(ctx, userID)
	if err != nil {
		s.logger.Error("List addresses", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

func (s *Service) AddAddress(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	created, err := s.repo.CreateAddress(ctx, address)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			// unknown country reference
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Create address", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return created, nil
}

func (s *Service) UpdateAddress(ctx context.Context, userID uint64, address *domain.Address) (*domain.Address, error) {
	existing, err := s.repo.ReadAddress(ctx, address.ID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read address", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if existing.UserID != userID {
		return nil, domain.ErrForbidden
	}

	address.UserID = userID
	updated, err := s.repo.UpdateAddress(ctx, address)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Update address", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return updated, nil
}

func (s *Service) DeleteAddress(ctx context.Context, userID uint64, addressID uint64) error {
	existing, err := s.repo.ReadAddress(ctx, addressID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return domain.ErrDataNotFound
		}
		s.logger.Error("Read address", zap.Error(err))
		return domain.ErrInternal
	}
	if existing.UserID != userID {
		return domain.ErrForbidden
	}

	err = s.repo.DeleteAddress(ctx, addressID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return domain.ErrDataNotFound
		}
		s.logger.Error("Delete address", zap.Error(err))
		return domain.ErrInternal
	}
	return nil
}
