package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/internal/service/tokens"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

const JWTTokenExpire = 1 * time.Hour

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	hasher         PasswordHasher
	jwtTokenSecret []byte
}

func NewUserService(u uow.UOW, hasher PasswordHasher, jwtTokenSecret []byte) (*UserService, error) {
	userRepo, err := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if err != nil {
		return nil, err
	}
	return &UserService{
		uow:            u,
		userRepo:       userRepo,
		hasher:         hasher,
		jwtTokenSecret: jwtTokenSecret,
	}, nil
}

type RegisterUserArgs struct {
	Username string
	Password string
	IsSeller bool
}

// Register создает юзера. После успешного создания генерирует jwt token.
// Возвращает созданного юзера, токен и ошибку.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, string, error) {
	password, hashErr := s.hasher.HashPassword(args.Password)
	if hashErr != nil {
		return nil, "", fmt.Errorf("registering user: %s", hashErr.Error())
	}
	var user *domain.User
	var token string
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		var userErr error
		user, userErr = userRepo.CreateUser(c, repoargs.CreateUser{
			Username: args.Username,
			Password: password,
			IsSeller: args.IsSeller,
		})
		if userErr != nil {
			return userErr //nolint:wrapcheck
		}

		var tokenErr error
		token, tokenErr = tokens.GenerateUserJWT(user.ID, JWTTokenExpire, s.jwtTokenSecret)
		if tokenErr != nil {
			return tokenErr //nolint:wrapcheck
		}
		return nil
	})

	if txErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", txErr)
	}
	return user, token, nil
}

// Login проверяет пару логин/пароль и выдает jwt token. Несуществующий юзер и
// неверный пароль дают одну и ту же ошибку domain.ErrPasswordMissMatch, чтобы
// не раскрывать занятость логина.
func (s *UserService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, findErr := s.userRepo.FindUserByUsername(ctx, username)
	if findErr != nil {
		if errors.Is(findErr, domain.ErrRecordNotFound) {
			return nil, "", domain.ErrPasswordMissMatch
		}
		return nil, "", fmt.Errorf("logging in user: %w", findErr)
	}

	if !s.hasher.ComparePassword(password, user.Password) {
		return nil, "", domain.ErrPasswordMissMatch
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, JWTTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("logging in user: %s", tokenErr.Error())
	}
	return user, token, nil
}

// FindByID возвращает юзера по идентификатору.
func (s *UserService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return user, nil
}
