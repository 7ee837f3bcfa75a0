package pgrepo

import (
	"context"

	"github.com/fsdevblog/aether-shop/internal/domain"
	"github.com/fsdevblog/aether-shop/internal/repository/repoargs"
	"github.com/fsdevblog/aether-shop/pkg/uow"
)

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, created_at, updated_at, username, password, is_seller`

// CreateUser создает юзера в базе данных. В случае конфликта юзернейма возвращает ошибку domain.ErrDuplicateKey,
// во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := u.db.QueryRow(ctx, `
		INSERT INTO users (username, password, is_seller)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		args.Username, args.Password, args.IsSeller)

	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user")
	}
	return user, nil
}

// FindUserByUsername ищет юзера по его юзернейму. Возвращает ошибку domain.ErrRecordNotFound если запись не найдена,
// во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := u.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE username = $1`, username)

	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by username `%s`", username)
	}
	return user, nil
}

func (u *UserRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := u.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by id %d", id)
	}
	return user, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Username,
		&user.Password,
		&user.IsSeller,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
