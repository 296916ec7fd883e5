package handler

import (
	"workshop/internal/models"
	"workshop/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupShop struct {
	container *do.Injector
}

func (gr *groupShop) GetItems(c echo.Context) error {
	serviceShop, err := do.Invoke[*services.ServiceShop](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	items, err := serviceShop.GetActiveShopItems(c.Request().Context())
	return httpx.RestAbort(c, items, err)
}

func (gr *groupShop) Purchase(c echo.Context) error {
	var req models.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceShop, err := do.Invoke[*services.ServiceShop](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	purchase, err := serviceShop.Purchase(c.Request().Context(), resolveUserID(c, req.UserID), req.ItemID)
	return httpx.RestAbort(c, purchase, err)
}

func (gr *groupShop) GetPurchases(c echo.Context) error {
	serviceShop, err := do.Invoke[*services.ServiceShop](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	purchases, err := serviceShop.GetPurchasesByUser(c.Request().Context(), queryUserID(c))
	return httpx.RestAbort(c, purchases, err)
}
