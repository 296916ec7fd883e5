package handler

import (
	"workshop/internal/models"
	"workshop/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupMarathon struct {
	container *do.Injector
}

func (gr *groupMarathon) List(c echo.Context) error {
	serviceMarathon, err := do.Invoke[*services.ServiceMarathon](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	marathons, err := serviceMarathon.ListMarathons(c.Request().Context(), queryUserID(c))
	return httpx.RestAbort(c, marathons, err)
}

type startMarathonRequest struct {
	UserID int64 `json:"userId"`
}

func (gr *groupMarathon) Start(c echo.Context) error {
	marathonID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req startMarathonRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceMarathon, err := do.Invoke[*services.ServiceMarathon](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	marathon, err := serviceMarathon.StartOrResume(c.Request().Context(), resolveUserID(c, req.UserID), marathonID)
	return httpx.RestAbort(c, marathon, err)
}

func (gr *groupMarathon) SubmitDay(c echo.Context) error {
	marathonID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req models.DaySubmission
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceMarathon, err := do.Invoke[*services.ServiceMarathon](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceMarathon.SubmitDay(c.Request().Context(), resolveUserID(c, req.UserID), marathonID, req.Day, req.SubmissionText)
	return httpx.RestAbort(c, result, err)
}
