package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workshop/internal/datastore"
	"workshop/internal/models"
	"workshop/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceMarathon struct {
	container  *do.Injector
	rs         *redsync.Redsync
	postgresDB *bun.DB
	cache      caching.Cache

	serviceUser  *ServiceUser
	serviceBonus *ServiceBonus
}

func NewServiceMarathon(container *do.Injector) (*ServiceMarathon, error) {
	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	serviceBonus, err := do.Invoke[*ServiceBonus](container)
	if err != nil {
		return nil, err
	}

	return &ServiceMarathon{container, rs, postgresDB, cache, serviceUser, serviceBonus}, nil
}

func (service *ServiceMarathon) annotate(marathon *models.Marathon, progress *models.MarathonProgress) *models.Marathon {
	m := *marathon
	if progress == nil {
		m.CurrentDay = 0
		m.CanContinue = m.Active
		return &m
	}

	m.CurrentDay = progress.CurrentDay
	m.Completed = progress.Completed
	m.ProgressPercent = models.MarathonPercent(progress.CurrentDay, m.DurationDays)
	if progress.Completed {
		m.ProgressPercent = 100
	}
	m.CanContinue = m.Active && !progress.Completed
	return &m
}

func (service *ServiceMarathon) ListMarathons(ctx context.Context, userID int64) ([]*models.Marathon, error) {
	callback := func() ([]*models.Marathon, error) {
		return datastore.GetActiveMarathons(ctx, service.postgresDB)
	}
	marathons, err := caching.UseCache(ctx, service.cache, DBKeyMarathons(), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	progresses, err := datastore.GetMarathonProgressByUser(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	byMarathon := map[int64]*models.MarathonProgress{}
	for _, p := range progresses {
		byMarathon[p.MarathonID] = p
	}

	annotated := make([]*models.Marathon, 0, len(marathons))
	for _, marathon := range marathons {
		annotated = append(annotated, service.annotate(marathon, byMarathon[marathon.ID]))
	}

	return annotated, nil
}

func (service *ServiceMarathon) FindMarathonByID(ctx context.Context, marathonID int64) (*models.Marathon, error) {
	callback := func() (*models.Marathon, error) {
		return datastore.FindMarathonByID(ctx, service.postgresDB, marathonID)
	}
	marathon, err := caching.UseCache(ctx, service.cache, DBKeyMarathon(marathonID), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(errors.New("marathon not found"), errorx.NotExist)
	}
	return marathon, nil
}

// StartOrResume creates the day-1 progress row on first call and is a no-op on
// repeats. It returns the marathon annotated with the caller's position.
func (service *ServiceMarathon) StartOrResume(ctx context.Context, userID, marathonID int64) (*models.Marathon, error) {
	marathon, err := service.FindMarathonByID(ctx, marathonID)
	if err != nil {
		return nil, err
	}
	if !marathon.Active {
		return nil, errorx.Wrap(errors.New("marathon not found"), errorx.NotExist)
	}

	now := time.Now()
	progress := &models.MarathonProgress{
		UserID:      userID,
		MarathonID:  marathonID,
		CurrentDay:  1,
		Submissions: map[int]string{},
		StartedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := datastore.CreateMarathonProgress(ctx, service.postgresDB, progress); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	progress, err = datastore.FindMarathonProgress(ctx, service.postgresDB, userID, marathonID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return service.annotate(marathon, progress), nil
}

// SubmitDay closes the user's current day. Past days are acknowledged without
// effect so a retried request cannot double-pay; future days are refused.
func (service *ServiceMarathon) SubmitDay(ctx context.Context, userID, marathonID int64, day int, submissionText string) (*models.DayResult, error) {
	marathon, err := service.FindMarathonByID(ctx, marathonID)
	if err != nil {
		return nil, err
	}
	if !marathon.Active {
		return nil, errorx.Wrap(errors.New("marathon not found"), errorx.NotExist)
	}

	task := marathon.TaskForDay(day)
	if day < 1 || day > marathon.DurationDays || task == nil {
		return nil, errorx.Wrap(errors.New("invalid marathon day"), errorx.Validation)
	}
	if task.RequiresSubmission && submissionText == "" {
		return nil, errorx.Wrap(errors.New("submission text required"), errorx.Validation)
	}

	mutex := service.rs.NewMutex(LockKeyUserMarathon(userID, marathonID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrUserLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	progress, err := datastore.FindMarathonProgress(ctx, service.postgresDB, userID, marathonID)
	if err != nil {
		return nil, errorx.Wrap(errors.New("marathon not started"), errorx.NotExist)
	}

	if progress.Completed || day < progress.CurrentDay {
		return &models.DayResult{
			MarathonID: marathonID,
			Day:        day,
			CurrentDay: progress.CurrentDay,
			Completed:  progress.Completed,
			Sparks:     0,
			Message:    "Этот день уже засчитан.",
		}, nil
	}
	if day > progress.CurrentDay {
		return nil, errorx.Wrap(ErrDayOutOfOrder, errorx.Invalid)
	}

	user, err := service.serviceUser.FindUserByID(ctx, userID)
	if err != nil {
		return nil, errorx.Wrap(errors.New("user not found"), errorx.NotExist)
	}

	now := time.Now()
	final := day == marathon.DurationDays

	reward := marathon.SparksPerDay
	activities := []*models.Activity{{
		UserID:      userID,
		Type:        models.ActivityMarathonDay,
		SparksDelta: marathon.SparksPerDay,
		Description: fmt.Sprintf("Марафон «%s»: день %d", marathon.Title, day),
		CreatedAt:   now,
	}}

	if final {
		reward += marathon.SparksCompletionBonus
		activities = append(activities, &models.Activity{
			UserID:      userID,
			Type:        models.ActivityMarathonFinished,
			SparksDelta: marathon.SparksCompletionBonus,
			Description: fmt.Sprintf("Марафон «%s» завершён!", marathon.Title),
			CreatedAt:   now,
		})

		if gift := service.serviceBonus.RollGift(ctx, user); gift > 0 {
			reward += gift
			activities = append(activities, &models.Activity{
				UserID:      userID,
				Type:        models.ActivityBonusGift,
				SparksDelta: gift,
				Description: "Подарок персонажа ✨",
				CreatedAt:   now,
			})
		}
	}

	if progress.Submissions == nil {
		progress.Submissions = map[int]string{}
	}
	if submissionText != "" {
		progress.Submissions[day] = submissionText
	}
	progress.Completed = final
	progress.CurrentDay = day + 1
	progress.UpdatedAt = now

	applied, err := datastore.ApplyDaySubmission(ctx, service.postgresDB, progress, day, reward, activities)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !applied {
		// Someone got there first; report the stored position.
		fresh, err := datastore.FindMarathonProgress(ctx, service.postgresDB, userID, marathonID)
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}
		return &models.DayResult{
			MarathonID: marathonID,
			Day:        day,
			CurrentDay: fresh.CurrentDay,
			Completed:  fresh.Completed,
			Sparks:     0,
			Message:    "Этот день уже засчитан.",
		}, nil
	}

	// nolint:errcheck
	service.serviceUser.afterSparksChange(ctx, userID)

	message := fmt.Sprintf("День %d засчитан, +%.0f искр!", day, reward)
	if final {
		message = fmt.Sprintf("Марафон завершён! +%.0f искр 🎉", reward)
	}

	return &models.DayResult{
		MarathonID: marathonID,
		Day:        day,
		CurrentDay: progress.CurrentDay,
		Completed:  final,
		Sparks:     reward,
		Message:    message,
	}, nil
}
