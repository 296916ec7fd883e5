package handler

import (
	"workshop/internal/models"
	"workshop/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

// groupContent covers the user-generated side: gallery works and channel-post
// reviews.
type groupContent struct {
	container *do.Injector
}

type uploadWorkRequest struct {
	UserID      int64  `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
}

func (gr *groupContent) UploadWork(c echo.Context) error {
	var req uploadWorkRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceModeration, err := do.Invoke[*services.ServiceModeration](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	work, err := serviceModeration.UploadWork(c.Request().Context(), resolveUserID(c, req.UserID), req.Title, req.Description, req.ImageURL, req.Category)
	return httpx.RestAbort(c, work, err)
}

func (gr *groupContent) GetMyWorks(c echo.Context) error {
	serviceModeration, err := do.Invoke[*services.ServiceModeration](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	works, err := serviceModeration.GetWorksByUser(c.Request().Context(), queryUserID(c))
	return httpx.RestAbort(c, works, err)
}

func (gr *groupContent) GetChannelPosts(c echo.Context) error {
	servicePost, err := do.Invoke[*services.ServicePost](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	posts, err := servicePost.ListPosts(c.Request().Context(), queryUserID(c))
	return httpx.RestAbort(c, posts, err)
}

func (gr *groupContent) SubmitReview(c echo.Context) error {
	postID, err := paramID(c, "postId")
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req models.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceModeration, err := do.Invoke[*services.ServiceModeration](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	review, err := serviceModeration.SubmitReview(c.Request().Context(), resolveUserID(c, req.UserID), postID, req.ReviewText, req.Rating)
	return httpx.RestAbort(c, review, err)
}
