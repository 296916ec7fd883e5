package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workshop/internal/datastore"
	"workshop/internal/models"
	"workshop/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceInteractive struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache

	serviceUser *ServiceUser
}

func NewServiceInteractive(container *do.Injector) (*ServiceInteractive, error) {
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

	return &ServiceInteractive{container, postgresDB, cache, serviceUser}, nil
}

func (service *ServiceInteractive) ListInteractives(ctx context.Context, userID int64) ([]*models.Interactive, error) {
	callback := func() ([]*models.Interactive, error) {
		return datastore.GetActiveInteractives(ctx, service.postgresDB)
	}
	interactives, err := caching.UseCache(ctx, service.cache, DBKeyInteractives(), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	completions, err := datastore.GetInteractiveCompletionsByUser(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	done := map[int64]bool{}
	for _, c := range completions {
		done[c.InteractiveID] = true
	}

	annotated := make([]*models.Interactive, 0, len(interactives))
	for _, interactive := range interactives {
		i := *interactive
		i.Done = done[i.ID]
		annotated = append(annotated, &i)
	}
	return annotated, nil
}

// SubmitAnswer pays once per interactive per user. The unique index is the
// arbiter: a losing concurrent insert surfaces as already-answered.
func (service *ServiceInteractive) SubmitAnswer(ctx context.Context, userID, interactiveID int64, answer string) (*models.InteractiveCompletion, error) {
	interactive, err := datastore.FindInteractiveByID(ctx, service.postgresDB, interactiveID)
	if err != nil || !interactive.Active {
		return nil, errorx.Wrap(errors.New("interactive not found"), errorx.NotExist)
	}

	if _, err := service.serviceUser.FindUserByID(ctx, userID); err != nil {
		return nil, errorx.Wrap(errors.New("user not found"), errorx.NotExist)
	}

	if _, err := datastore.FindInteractiveCompletion(ctx, service.postgresDB, userID, interactiveID); err == nil {
		return nil, errorx.Wrap(ErrAlreadyAnswered, errorx.Invalid)
	}

	completion, activity := interactiveOutcome(interactive, userID, answer, time.Now())

	applied, err := datastore.ApplyInteractiveResult(ctx, service.postgresDB, completion, activity)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !applied {
		return nil, errorx.Wrap(ErrAlreadyAnswered, errorx.Invalid)
	}

	if completion.SparksEarned > 0 {
		// nolint:errcheck
		service.serviceUser.afterSparksChange(ctx, userID)
	}

	return completion, nil
}

// interactiveOutcome builds the completion row for an attempt. Only a correct
// answer earns sparks and produces an activity; a wrong answer yields a nil
// activity, which the datastore skips.
func interactiveOutcome(interactive *models.Interactive, userID int64, answer string, now time.Time) (*models.InteractiveCompletion, *models.Activity) {
	correct := interactive.AcceptsAnswer(answer)
	var reward float64
	if correct {
		reward = interactive.Sparks
	}

	completion := &models.InteractiveCompletion{
		UserID:        userID,
		InteractiveID: interactive.ID,
		Answer:        answer,
		Correct:       correct,
		SparksEarned:  reward,
		CreatedAt:     now,
	}

	if !correct {
		return completion, nil
	}

	return completion, &models.Activity{
		UserID:      userID,
		Type:        models.ActivityInteractive,
		SparksDelta: reward,
		Description: fmt.Sprintf("Интерактив «%s»", interactive.Title),
		CreatedAt:   now,
	}
}
