package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/internal/service/mocks"
	"github.com/fsdevblog/aether-shop/internal/service/tokens"
	"github.com/fsdevblog/aether-shop/pkg/uow"
	uowmocks "github.com/fsdevblog/aether-shop/pkg/uow/mocks"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUOW      *uowmocks.MockUOW
	mockTX       *uowmocks.MockTX
	mockUserRepo *mocks.MockUserRepository
	mockPsswd    *mocks.MockPasswordHasher
	jwtSecret    []byte
	userService  *UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(mockCtrl)
	s.mockPsswd = mocks.NewMockPasswordHasher(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)

	s.jwtSecret = []byte("secret")

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	userService, servErr := NewUserService(s.mockUOW, s.mockPsswd, s.jwtSecret)
	s.Require().NoError(servErr)
	s.userService = userService
}

func (s *UserServiceTestSuite) TestLogin() {
	savedUserUsername := "test"
	validHashPassword := "hash ok"

	savedUser := domain.User{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Username:  savedUserUsername,
		Password:  validHashPassword,
	}

	s.mockPsswd.EXPECT().ComparePassword("<PASSWORD>", validHashPassword).Return(true)
	s.mockPsswd.EXPECT().ComparePassword("wrong pass", validHashPassword).Return(false)

	s.mockUserRepo.EXPECT().
		FindUserByUsername(gomock.Any(), savedUserUsername).
		Return(&savedUser, nil).Times(2)

	s.mockUserRepo.EXPECT().
		FindUserByUsername(gomock.Any(), "wrong").
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "ok", username: savedUserUsername, password: "<PASSWORD>", wantErr: nil},
		// Несуществующий логин не отличим от неверного пароля.
		{name: "wrong username", username: "wrong", password: "<PASSWORD>", wantErr: domain.ErrPasswordMissMatch},
		{name: "wrong password", username: savedUserUsername, password: "wrong pass", wantErr: domain.ErrPasswordMissMatch},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			user, tokenStr, err := s.userService.Login(s.T().Context(), t.username, t.password)
			s.Require().ErrorIs(err, t.wantErr)

			if t.wantErr == nil {
				s.Require().NotEmpty(tokenStr)

				token, tokenErr := tokens.ValidateUserJWT(tokenStr, s.jwtSecret)
				s.Require().NoError(tokenErr)
				s.Equal(token.Claims.(*tokens.UserClaims).ID, savedUser.ID) //nolint:errcheck
				s.NotNil(user)
			}
		})
	}
}

func (s *UserServiceTestSuite) TestRegister() {
	argsOk := RegisterUserArgs{
		Username: "validUser",
		Password: "<PASSWORD>",
	}
	argsDuplicateUsername := RegisterUserArgs{
		Username: "duplicateUser",
		Password: "<PASSWORD>",
	}
	argsSeller := RegisterUserArgs{
		Username: "sellerUser",
		Password: "<PASSWORD>",
		IsSeller: true,
	}

	validHashedPassword := "hashedPassword"

	createdUser := domain.User{
		ID:        1,
		Username:  argsOk.Username,
		Password:  validHashedPassword,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	createdSeller := domain.User{
		ID:       2,
		Username: argsSeller.Username,
		Password: validHashedPassword,
		IsSeller: true,
	}

	// Мок транзакции uow.
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).MinTimes(1)

	// Мок хеширования пароля.
	s.mockPsswd.EXPECT().HashPassword(gomock.Any()).Return(validHashedPassword, nil).Times(3)

	// Мок репозитория.
	s.mockUserRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Eq(repoargs.CreateUser{
			Username: argsOk.Username,
			Password: validHashedPassword,
		})).
		Return(&createdUser, nil)

	s.mockUserRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Eq(repoargs.CreateUser{
			Username: argsDuplicateUsername.Username,
			Password: validHashedPassword,
		})).
		Return(nil, domain.ErrDuplicateKey)

	s.mockUserRepo.EXPECT().
		CreateUser(gomock.Any(), gomock.Eq(repoargs.CreateUser{
			Username: argsSeller.Username,
			Password: validHashedPassword,
			IsSeller: true,
		})).
		Return(&createdSeller, nil)

	// Мок uow.
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()

	cases := []struct {
		name      string
		args      RegisterUserArgs
		wantErr   error
		wantUser  *domain.User
		wantToken bool
	}{
		{
			name:      "ok",
			args:      argsOk,
			wantUser:  &createdUser,
			wantToken: true,
		},
		{
			name:    "duplicate username",
			args:    argsDuplicateUsername,
			wantErr: domain.ErrDuplicateKey,
		},
		{
			name:      "seller",
			args:      argsSeller,
			wantUser:  &createdSeller,
			wantToken: true,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			user, tokenStr, err := s.userService.Register(s.T().Context(), t.args)

			s.Require().ErrorIs(err, t.wantErr)
			s.Equal(t.wantUser, user)

			if t.wantToken {
				s.Require().NotEmpty(tokenStr)

				token, tokenErr := tokens.ValidateUserJWT(tokenStr, s.jwtSecret)
				s.Require().NoError(tokenErr)
				s.Equal(token.Claims.(*tokens.UserClaims).ID, t.wantUser.ID) //nolint:errcheck
			}
		})
	}
}
