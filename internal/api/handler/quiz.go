package handler

import (
	"workshop/internal/models"
	"workshop/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupQuiz struct {
	container *do.Injector
}

func (gr *groupQuiz) List(c echo.Context) error {
	serviceQuiz, err := do.Invoke[*services.ServiceQuiz](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	quizzes, err := serviceQuiz.ListQuizzes(c.Request().Context(), queryUserID(c))
	return httpx.RestAbort(c, quizzes, err)
}

func (gr *groupQuiz) Submit(c echo.Context) error {
	quizID, err := paramID(c, "id")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req models.QuizAnswers
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceQuiz, err := do.Invoke[*services.ServiceQuiz](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceQuiz.SubmitQuiz(c.Request().Context(), resolveUserID(c, req.UserID), quizID, req.Answers)
	return httpx.RestAbort(c, result, err)
}
