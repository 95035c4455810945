package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"user-api/internal/domain/user"
	"user-api/internal/infrastructure/database/dbschema"
	"user-api/internal/utils/platformerrors"
)

// UserGormRepository implements user.Repository on a gorm handle. It is
// engine-agnostic: the handle decides whether rows live in SQLite or MySQL.
type UserGormRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by email",
			err,
			"00c50a7e-34d9-4ae4-af70-ec6282e55d01",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by ID",
			err,
			"99d47d0a-315b-4706-a91d-8cc4d749c016",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) Create(ctx context.Context, usr *user.User) (*user.User, error) {
	entity := dbschema.NewSchemaUser(usr)

	err := repo.db.WithContext(ctx).Create(entity).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict,
			"email already exists",
			err,
			"0f377273-cc5e-4fe9-8dd4-ef8961630efe",
		)
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create user",
			err,
			"2597dc4c-9139-430a-9120-0e90148fb475",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) List(ctx context.Context) ([]*user.User, error) {
	var entities []dbschema.User
	err := repo.db.WithContext(ctx).
		Order("id ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list users",
			err,
			"f246f84a-164c-4eaa-8a0d-421fc7602021",
		)
	}

	users := make([]*user.User, 0, len(entities))
	for i := range entities {
		users = append(users, entities[i].EtoD())
	}
	return users, nil
}

func (repo *UserGormRepository) ExistsWithRole(ctx context.Context, role user.Role) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.User{}).
		Where("role = ?", string(role)).
		Count(&count).
		Error
	if err != nil {
		return false, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count users with role",
			err,
			"511aebc3-e62e-470a-a145-b503d56533b7",
		)
	}
	return count > 0, nil
}
