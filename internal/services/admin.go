package services

import (
	"context"
	"errors"
	"time"

	"workshop/internal/datastore"
	"workshop/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceAdmin struct {
	container  *do.Injector
	postgresDB *bun.DB

	authentication *Authentication
}

func NewServiceAdmin(container *do.Injector) (*ServiceAdmin, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	authentication, err := do.Invoke[*Authentication](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAdmin{container, postgresDB, authentication}, nil
}

// FindAdminByID returns the admin row or an authn error. Admin access is a
// whitelist; there is no self-service signup.
func (service *ServiceAdmin) FindAdminByID(ctx context.Context, adminID int64) (*models.Admin, error) {
	admin, err := datastore.FindAdminByID(ctx, service.postgresDB, adminID)
	if err != nil {
		return nil, errorx.Wrap(errors.New("not an admin"), errorx.Authn)
	}
	return admin, nil
}

// Login exchanges a whitelisted id for a panel token.
func (service *ServiceAdmin) Login(ctx context.Context, adminID int64) (string, *models.Admin, error) {
	admin, err := service.FindAdminByID(ctx, adminID)
	if err != nil {
		return "", nil, err
	}

	if err := datastore.TouchAdminLogin(ctx, service.postgresDB, adminID, time.Now()); err != nil {
		return "", nil, errorx.Wrap(err, errorx.Service)
	}

	token, err := service.authentication.CreateToken(admin)
	if err != nil {
		return "", nil, errorx.Wrap(err, errorx.Service)
	}

	return token, admin, nil
}
