package services

import (
	"context"

	"workshop/internal/datastore"
	"workshop/internal/models"
	"workshop/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServicePost struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
}

func NewServicePost(container *do.Injector) (*ServicePost, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServicePost{container, postgresDB, cache}, nil
}

// ListPosts returns the channel feed, newest first, marking posts the caller
// has already reviewed.
func (service *ServicePost) ListPosts(ctx context.Context, userID int64) ([]*models.ChannelPost, error) {
	callback := func() ([]*models.ChannelPost, error) {
		return datastore.GetActiveChannelPosts(ctx, service.postgresDB)
	}
	posts, err := caching.UseCache(ctx, service.cache, DBKeyChannelPosts(), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	annotated := make([]*models.ChannelPost, 0, len(posts))
	for _, post := range posts {
		p := *post
		if _, err := datastore.FindPostReviewByUserAndPost(ctx, service.postgresDB, userID, p.ID); err == nil {
			p.Reviewed = true
		}
		annotated = append(annotated, &p)
	}
	return annotated, nil
}
