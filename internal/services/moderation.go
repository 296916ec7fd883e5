package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"workshop/internal/datastore"
	"workshop/internal/interfaces"
	"workshop/internal/models"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceModeration struct {
	container  *do.Injector
	rs         *redsync.Redsync
	postgresDB *bun.DB
	limiter    interfaces.Limiter

	serviceConfig *ServiceConfig
	serviceUser   *ServiceUser
	bot           *Bot
}

func NewServiceModeration(container *do.Injector) (*ServiceModeration, error) {
	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	limiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	bot, err := do.Invoke[*Bot](container)
	if err != nil {
		return nil, err
	}

	return &ServiceModeration{container, rs, postgresDB, limiter, serviceConfig, serviceUser, bot}, nil
}

// UploadWork queues a gallery submission for review. Uploads are rate-limited
// per user so the pending queue cannot be flooded.
func (service *ServiceModeration) UploadWork(ctx context.Context, userID int64, title, description, imageURL, category string) (*models.Work, error) {
	if title == "" {
		return nil, errorx.Wrap(errors.New("title required"), errorx.Validation)
	}

	perHour, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_UPLOADS_PER_HOUR, DEFAULT_UPLOADS_PER_HOUR)
	if err := service.limiter.Allow(ctx, LimitKeyUserUploads(userID), redis_rate.PerHour(perHour)); err != nil {
		return nil, err
	}

	if _, err := service.serviceUser.FindUserByID(ctx, userID); err != nil {
		return nil, errorx.Wrap(errors.New("user not found"), errorx.NotExist)
	}

	work := &models.Work{
		UserID:      userID,
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		Category:    category,
		Status:      models.ModerationPending,
		CreatedAt:   time.Now(),
	}

	work, err := datastore.CreateWork(ctx, service.postgresDB, work)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return work, nil
}

func (service *ServiceModeration) GetWorksByUser(ctx context.Context, userID int64) ([]*models.Work, error) {
	works, err := datastore.GetWorksByUser(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return works, nil
}

// SubmitReview files a review for a channel post. One review per user per
// post; repeats are refused before touching the unique index.
func (service *ServiceModeration) SubmitReview(ctx context.Context, userID, postID int64, reviewText string, rating int) (*models.PostReview, error) {
	if reviewText == "" {
		return nil, errorx.Wrap(errors.New("review text required"), errorx.Validation)
	}
	if rating < 1 || rating > 5 {
		return nil, errorx.Wrap(errors.New("rating must be 1..5"), errorx.Validation)
	}

	perHour, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_REVIEWS_PER_HOUR, DEFAULT_REVIEWS_PER_HOUR)
	if err := service.limiter.Allow(ctx, LimitKeyUserReviews(userID), redis_rate.PerHour(perHour)); err != nil {
		return nil, err
	}

	post, err := datastore.FindChannelPostByID(ctx, service.postgresDB, postID)
	if err != nil || !post.Active {
		return nil, errorx.Wrap(errors.New("post not found"), errorx.NotExist)
	}

	if _, err := datastore.FindPostReviewByUserAndPost(ctx, service.postgresDB, userID, postID); err == nil {
		return nil, errorx.Wrap(ErrAlreadyReviewed, errorx.Invalid)
	}

	review := &models.PostReview{
		UserID:     userID,
		PostID:     postID,
		ReviewText: reviewText,
		Rating:     rating,
		Status:     models.ModerationPending,
		CreatedAt:  time.Now(),
	}

	review, err = datastore.CreatePostReview(ctx, service.postgresDB, review)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return review, nil
}

func (service *ServiceModeration) GetPendingWorks(ctx context.Context) ([]*models.Work, error) {
	works, err := datastore.GetPendingWorks(ctx, service.postgresDB)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return works, nil
}

func (service *ServiceModeration) GetPendingPostReviews(ctx context.Context) ([]*models.PostReview, error) {
	reviews, err := datastore.GetPendingPostReviews(ctx, service.postgresDB)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return reviews, nil
}

// ModerateWork settles a pending work. Approval pays the configured reward in
// the same transaction that flips the status, so a double click can never pay
// twice. The author is notified out of band.
func (service *ServiceModeration) ModerateWork(ctx context.Context, adminID, workID int64, decision models.ModerationDecision) (*models.Work, error) {
	if !decision.Status.Decision() {
		return nil, errorx.Wrap(errors.New("invalid decision status"), errorx.Validation)
	}

	work, err := datastore.FindWorkByID(ctx, service.postgresDB, workID)
	if err != nil {
		return nil, errorx.Wrap(errors.New("work not found"), errorx.NotExist)
	}

	mutex := service.rs.NewMutex(LockKeyModeration(string(models.ModerationKindWork), workID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrUserLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	now := time.Now()
	var reward float64
	var activity *models.Activity
	if decision.Status == models.ModerationApproved {
		reward, _ = service.serviceConfig.GetFloatConfig(ctx, CONFIG_WORK_APPROVED_SPARKS, DEFAULT_WORK_APPROVED_SPARKS)
		activity = &models.Activity{
			UserID:      work.UserID,
			Type:        models.ActivityWorkApproved,
			SparksDelta: reward,
			Description: fmt.Sprintf("Работа «%s» одобрена", work.Title),
			CreatedAt:   now,
		}
	}

	applied, err := datastore.ApplyWorkDecision(ctx, service.postgresDB, workID, decision.Status, adminID, decision.AdminComment, now, reward, activity)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !applied {
		return nil, errorx.Wrap(ErrAlreadyModerated, errorx.Invalid)
	}

	if decision.Status == models.ModerationApproved {
		// nolint:errcheck
		service.serviceUser.afterSparksChange(ctx, work.UserID)
	}

	go func() {
		if err := service.bot.NotifyModeration(work.UserID, models.ModerationKindWork, work.Title, decision.Status, decision.AdminComment); err != nil {
			log.Println("NotifyModeration:", err)
		}
	}()

	return datastore.FindWorkByID(ctx, service.postgresDB, workID)
}

func (service *ServiceModeration) ModeratePostReview(ctx context.Context, adminID, reviewID int64, decision models.ModerationDecision) (*models.PostReview, error) {
	if !decision.Status.Decision() {
		return nil, errorx.Wrap(errors.New("invalid decision status"), errorx.Validation)
	}

	review, err := datastore.FindPostReviewByID(ctx, service.postgresDB, reviewID)
	if err != nil {
		return nil, errorx.Wrap(errors.New("review not found"), errorx.NotExist)
	}

	mutex := service.rs.NewMutex(LockKeyModeration(string(models.ModerationKindReview), reviewID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrUserLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	now := time.Now()
	var reward float64
	var activity *models.Activity
	if decision.Status == models.ModerationApproved {
		reward, _ = service.serviceConfig.GetFloatConfig(ctx, CONFIG_REVIEW_APPROVED_SPARKS, DEFAULT_REVIEW_SPARKS)
		activity = &models.Activity{
			UserID:      review.UserID,
			Type:        models.ActivityReviewApproved,
			SparksDelta: reward,
			Description: "Отзыв одобрен",
			CreatedAt:   now,
		}
	}

	applied, err := datastore.ApplyPostReviewDecision(ctx, service.postgresDB, reviewID, decision.Status, adminID, decision.AdminComment, now, reward, activity)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !applied {
		return nil, errorx.Wrap(ErrAlreadyModerated, errorx.Invalid)
	}

	if decision.Status == models.ModerationApproved {
		// nolint:errcheck
		service.serviceUser.afterSparksChange(ctx, review.UserID)
	}

	go func() {
		if err := service.bot.NotifyModeration(review.UserID, models.ModerationKindReview, "", decision.Status, decision.AdminComment); err != nil {
			log.Println("NotifyModeration:", err)
		}
	}()

	return datastore.FindPostReviewByID(ctx, service.postgresDB, reviewID)
}
