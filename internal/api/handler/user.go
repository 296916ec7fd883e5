package handler

import (
	"workshop/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupUser struct {
	container *do.Injector
}

// Show returns the user profile, lazily creating the row on first contact so
// the mini-app always has a balance to render.
func (gr *groupUser) Show(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	userID = resolveUserID(c, userID)

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	user, exists, err := serviceUser.FindOrCreateUser(ctx, userID, nil)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"exists": exists,
		"user":   serviceUser.AnnotateUser(ctx, user),
	}, nil)
}

type registerRequest struct {
	UserID      int64  `json:"userId"`
	FirstName   string `json:"firstName"`
	RoleID      int64  `json:"roleId"`
	CharacterID int64  `json:"characterId"`
}

func (gr *groupUser) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	userID := resolveUserID(c, req.UserID)
	user, err := serviceUser.Register(ctx, userID, req.RoleID, req.CharacterID, req.FirstName)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"success": true,
		"user":    serviceUser.AnnotateUser(ctx, user),
	}, nil)
}

type changeRoleRequest struct {
	UserID      int64 `json:"userId"`
	RoleID      int64 `json:"roleId"`
	CharacterID int64 `json:"characterId"`
}

func (gr *groupUser) ChangeRole(c echo.Context) error {
	ctx := c.Request().Context()

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	userID := resolveUserID(c, req.UserID)
	user, err := serviceUser.ChangeRole(ctx, userID, req.RoleID, req.CharacterID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"success": true,
		"user":    serviceUser.AnnotateUser(ctx, user),
	}, nil)
}

func (gr *groupUser) GetRoles(c echo.Context) error {
	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	roles, err := serviceCatalog.GetActiveRoles(c.Request().Context())
	return httpx.RestAbort(c, roles, err)
}

func (gr *groupUser) GetCharacters(c echo.Context) error {
	roleID, err := paramID(c, "roleId")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	characters, err := serviceCatalog.GetActiveCharactersByRole(c.Request().Context(), roleID)
	return httpx.RestAbort(c, characters, err)
}

func (gr *groupUser) GetLeaderboard(c echo.Context) error {
	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	items, err := serviceLeaderboard.GetLeaderboard(c.Request().Context())
	return httpx.RestAbort(c, items, err)
}

func (gr *groupUser) GetActivity(c echo.Context) error {
	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	activities, err := serviceUser.GetActivities(c.Request().Context(), queryUserID(c))
	return httpx.RestAbort(c, activities, err)
}
