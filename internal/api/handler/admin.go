package handler

import (
	"errors"
	"strconv"

	"workshop/internal/models"
	"workshop/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupAdmin struct {
	container *do.Injector
}

type adminLoginRequest struct {
	UserID int64 `json:"userId"`
}

func (gr *groupAdmin) Login(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceAdmin, err := do.Invoke[*services.ServiceAdmin](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	token, admin, err := serviceAdmin.Login(c.Request().Context(), req.UserID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"token": token,
		"admin": admin,
	}, nil)
}

// --- roles ---

func (gr *groupAdmin) GetRoles(c echo.Context) error {
	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	roles, err := serviceCatalog.GetAllRoles(c.Request().Context())
	return httpx.RestAbort(c, roles, err)
}

func (gr *groupAdmin) CreateRole(c echo.Context) error {
	var role models.Role
	if err := c.Bind(&role); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	created, err := serviceCatalog.CreateRole(c.Request().Context(), &role)
	return httpx.RestAbort(c, created, err)
}

func (gr *groupAdmin) EditRole(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var role models.Role
	if err := c.Bind(&role); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	role.ID = id

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	edited, err := serviceCatalog.EditRole(c.Request().Context(), &role)
	return httpx.RestAbort(c, edited, err)
}

func (gr *groupAdmin) DeleteRole(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{"success": true}, serviceCatalog.DeleteRole(c.Request().Context(), id))
}

// --- characters ---

func (gr *groupAdmin) GetCharacters(c echo.Context) error {
	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	characters, err := serviceCatalog.GetAllCharacters(c.Request().Context())
	return httpx.RestAbort(c, characters, err)
}

func (gr *groupAdmin) CreateCharacter(c echo.Context) error {
	var character models.Character
	if err := c.Bind(&character); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	created, err := serviceCatalog.CreateCharacter(c.Request().Context(), &character)
	return httpx.RestAbort(c, created, err)
}

func (gr *groupAdmin) EditCharacter(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var character models.Character
	if err := c.Bind(&character); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	character.ID = id

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	edited, err := serviceCatalog.EditCharacter(c.Request().Context(), &character)
	return httpx.RestAbort(c, edited, err)
}

func (gr *groupAdmin) DeleteCharacter(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{"success": true}, serviceCatalog.DeleteCharacter(c.Request().Context(), id))
}

// --- quizzes ---

func (gr *groupAdmin) GetQuizzes(c echo.Context) error {
	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	quizzes, err := serviceCatalog.GetAllQuizzes(c.Request().Context())
	return httpx.RestAbort(c, quizzes, err)
}

func (gr *groupAdmin) CreateQuiz(c echo.Context) error {
	var quiz models.Quiz
	if err := c.Bind(&quiz); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	created, err := serviceCatalog.CreateQuiz(c.Request().Context(), &quiz)
	return httpx.RestAbort(c, created, err)
}

func (gr *groupAdmin) EditQuiz(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var quiz models.Quiz
	if err := c.Bind(&quiz); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	quiz.ID = id

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	edited, err := serviceCatalog.EditQuiz(c.Request().Context(), &quiz)
	return httpx.RestAbort(c, edited, err)
}

func (gr *groupAdmin) DeleteQuiz(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{"success": true}, serviceCatalog.DeleteQuiz(c.Request().Context(), id))
}

// --- marathons ---

func (gr *groupAdmin) GetMarathons(c echo.Context) error {
	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	marathons, err := serviceCatalog.GetAllMarathons(c.Request().Context())
	return httpx.RestAbort(c, marathons, err)
}

func (gr *groupAdmin) CreateMarathon(c echo.Context) error {
	var marathon models.Marathon
	if err := c.Bind(&marathon); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	created, err := serviceCatalog.CreateMarathon(c.Request().Context(), &marathon)
	return httpx.RestAbort(c, created, err)
}

func (gr *groupAdmin) EditMarathon(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var marathon models.Marathon
	if err := c.Bind(&marathon); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	marathon.ID = id

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	edited, err := serviceCatalog.EditMarathon(c.Request().Context(), &marathon)
	return httpx.RestAbort(c, edited, err)
}

func (gr *groupAdmin) DeleteMarathon(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{"success": true}, serviceCatalog.DeleteMarathon(c.Request().Context(), id))
}

// --- shop items ---

func (gr *groupAdmin) GetShopItems(c echo.Context) error {
	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	items, err := serviceCatalog.GetAllShopItems(c.Request().Context())
	return httpx.RestAbort(c, items, err)
}

func (gr *groupAdmin) CreateShopItem(c echo.Context) error {
	var item models.ShopItem
	if err := c.Bind(&item); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	created, err := serviceCatalog.CreateShopItem(c.Request().Context(), &item)
	return httpx.RestAbort(c, created, err)
}

func (gr *groupAdmin) EditShopItem(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var item models.ShopItem
	if err := c.Bind(&item); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	item.ID = id

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	edited, err := serviceCatalog.EditShopItem(c.Request().Context(), &item)
	return httpx.RestAbort(c, edited, err)
}

func (gr *groupAdmin) DeleteShopItem(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{"success": true}, serviceCatalog.DeleteShopItem(c.Request().Context(), id))
}

// --- channel posts ---

func (gr *groupAdmin) GetChannelPosts(c echo.Context) error {
	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	posts, err := serviceCatalog.GetAllChannelPosts(c.Request().Context())
	return httpx.RestAbort(c, posts, err)
}

func (gr *groupAdmin) CreateChannelPost(c echo.Context) error {
	var post models.ChannelPost
	if err := c.Bind(&post); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	created, err := serviceCatalog.CreateChannelPost(c.Request().Context(), &post)
	return httpx.RestAbort(c, created, err)
}

func (gr *groupAdmin) EditChannelPost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var post models.ChannelPost
	if err := c.Bind(&post); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	post.ID = id

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	edited, err := serviceCatalog.EditChannelPost(c.Request().Context(), &post)
	return httpx.RestAbort(c, edited, err)
}

func (gr *groupAdmin) DeleteChannelPost(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{"success": true}, serviceCatalog.DeleteChannelPost(c.Request().Context(), id))
}

// --- interactives ---

func (gr *groupAdmin) GetInteractives(c echo.Context) error {
	serviceInteractive, err := do.Invoke[*services.ServiceInteractive](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	interactives, err := serviceInteractive.ListInteractives(c.Request().Context(), 0)
	return httpx.RestAbort(c, interactives, err)
}

func (gr *groupAdmin) CreateInteractive(c echo.Context) error {
	var interactive models.Interactive
	if err := c.Bind(&interactive); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	created, err := serviceCatalog.CreateInteractive(c.Request().Context(), &interactive)
	return httpx.RestAbort(c, created, err)
}

func (gr *groupAdmin) EditInteractive(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var interactive models.Interactive
	if err := c.Bind(&interactive); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}
	interactive.ID = id

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	edited, err := serviceCatalog.EditInteractive(c.Request().Context(), &interactive)
	return httpx.RestAbort(c, edited, err)
}

func (gr *groupAdmin) DeleteInteractive(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceCatalog, err := do.Invoke[*services.ServiceCatalog](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{"success": true}, serviceCatalog.DeleteInteractive(c.Request().Context(), id))
}

// --- settings ---

func (gr *groupAdmin) GetSettings(c echo.Context) error {
	serviceConfig, err := do.Invoke[*services.ServiceConfig](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	configs, err := serviceConfig.GetAllConfigs(c.Request().Context())
	return httpx.RestAbort(c, configs, err)
}

type settingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (gr *groupAdmin) SetSetting(c echo.Context) error {
	admin, err := ResolveAdmin(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}
	if !admin.IsSuper() {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("superadmin access required"), errorx.Authn))
	}

	var req settingRequest
	if err := c.Bind(&req); err != nil || req.Key == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceConfig, err := do.Invoke[*services.ServiceConfig](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{"success": true}, serviceConfig.SetConfig(c.Request().Context(), req.Key, req.Value))
}

// --- moderation ---

func (gr *groupAdmin) GetPendingWorks(c echo.Context) error {
	serviceModeration, err := do.Invoke[*services.ServiceModeration](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	works, err := serviceModeration.GetPendingWorks(c.Request().Context())
	return httpx.RestAbort(c, works, err)
}

func (gr *groupAdmin) ModerateWork(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	admin, err := ResolveAdmin(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var decision models.ModerationDecision
	if err := c.Bind(&decision); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceModeration, err := do.Invoke[*services.ServiceModeration](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	work, err := serviceModeration.ModerateWork(c.Request().Context(), admin.ID, id, decision)
	return httpx.RestAbort(c, work, err)
}

func (gr *groupAdmin) GetPendingReviews(c echo.Context) error {
	serviceModeration, err := do.Invoke[*services.ServiceModeration](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	reviews, err := serviceModeration.GetPendingPostReviews(c.Request().Context())
	return httpx.RestAbort(c, reviews, err)
}

func (gr *groupAdmin) ModerateReview(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	admin, err := ResolveAdmin(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var decision models.ModerationDecision
	if err := c.Bind(&decision); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceModeration, err := do.Invoke[*services.ServiceModeration](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	review, err := serviceModeration.ModeratePostReview(c.Request().Context(), admin.ID, id, decision)
	return httpx.RestAbort(c, review, err)
}

// --- stats ---

func (gr *groupAdmin) GetStats(c echo.Context) error {
	serviceStats, err := do.Invoke[*services.ServiceStats](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	stats, err := serviceStats.GetStats(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, stats.Stats, nil)
}

func (gr *groupAdmin) GetFullStats(c echo.Context) error {
	serviceStats, err := do.Invoke[*services.ServiceStats](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	stats, err := serviceStats.GetStats(c.Request().Context())
	return httpx.RestAbort(c, stats, err)
}

func (gr *groupAdmin) GetUsersReport(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	serviceStats, err := do.Invoke[*services.ServiceStats](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rows, err := serviceStats.GetUsersReport(c.Request().Context(), limit, offset)
	return httpx.RestAbort(c, rows, err)
}
