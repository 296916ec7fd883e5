package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"workshop/internal/models"
	"workshop/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type ctxKey string

var ctxKeyAuthUser ctxKey = "AUTH_USER"
var ctxKeyAuthAdmin ctxKey = "AUTH_ADMIN"

// Authn parses the mini-app init data from the Authorization header when
// present. It never terminates the request; handlers that need a verified
// identity check the context themselves.
func Authn(verifier interface {
	ValidateInitData(dataStr string) (*models.UserFromAuth, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.Split(header, "Bearer")
			if len(parts) != 2 {
				return next(c)
			}

			token := strings.TrimSpace(parts[1])
			if len(token) == 0 {
				return next(c)
			}

			user, err := verifier.ValidateInitData(token)
			if err != nil {
				// although it's a client error, we don't want to leak details
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("invalid access token"), errorx.Authn), -1)
				return nil
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxKeyAuthUser, user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// AuthnAdmin gates the admin surface. It accepts either a panel JWT or a
// userId that resolves to a whitelisted admin row; anything else terminates.
func AuthnAdmin(container *do.Injector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			serviceAdmin, err := do.Invoke[*services.ServiceAdmin](container)
			if err != nil {
				return err
			}

			var adminID int64
			header := c.Request().Header.Get("Authorization")
			if parts := strings.Split(header, "Bearer"); len(parts) == 2 {
				token := strings.TrimSpace(parts[1])
				authentication, err := do.Invoke[*services.Authentication](container)
				if err != nil {
					return err
				}
				if id, err := authentication.Validate(token); err == nil {
					adminID = id
				}
			}

			if adminID == 0 {
				adminID, _ = strconv.ParseInt(c.QueryParam("userId"), 10, 64)
			}

			if adminID == 0 {
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("admin access required"), errorx.Authn), -1)
				return nil
			}

			admin, err := serviceAdmin.FindAdminByID(c.Request().Context(), adminID)
			if err != nil {
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("admin access required"), errorx.Authn), -1)
				return nil
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxKeyAuthAdmin, admin)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func ResolveAdmin(ctx context.Context) (*models.Admin, error) {
	admin, ok := ctx.Value(ctxKeyAuthAdmin).(*models.Admin)
	if !ok {
		return nil, errorx.Wrap(errors.New("missing admin session"), errorx.Authn)
	}
	return admin, nil
}

// resolveUserID prefers the verified init-data identity over the userId the
// client claims in the request.
func resolveUserID(c echo.Context, claimed int64) int64 {
	if user, ok := c.Request().Context().Value(ctxKeyAuthUser).(*models.UserFromAuth); ok {
		return user.ID
	}
	return claimed
}

func queryUserID(c echo.Context) int64 {
	id, _ := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
	return resolveUserID(c, id)
}

func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errorx.Wrap(errors.New("invalid id"), errorx.Validation)
	}
	return id, nil
}
