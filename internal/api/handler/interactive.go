package handler

import (
	"workshop/internal/models"
	"workshop/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupInteractive struct {
	container *do.Injector
}

func (gr *groupInteractive) List(c echo.Context) error {
	serviceInteractive, err := do.Invoke[*services.ServiceInteractive](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	interactives, err := serviceInteractive.ListInteractives(c.Request().Context(), queryUserID(c))
	return httpx.RestAbort(c, interactives, err)
}

func (gr *groupInteractive) Submit(c echo.Context) error {
	interactiveID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req models.InteractiveAnswer
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceInteractive, err := do.Invoke[*services.ServiceInteractive](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	completion, err := serviceInteractive.SubmitAnswer(c.Request().Context(), resolveUserID(c, req.UserID), interactiveID, req.Answer)
	return httpx.RestAbort(c, completion, err)
}
