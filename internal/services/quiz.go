package services

import (
	"context"
	"database/sql"
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

type ServiceQuiz struct {
	container  *do.Injector
	rs         *redsync.Redsync
	postgresDB *bun.DB
	cache      caching.Cache

	serviceUser  *ServiceUser
	serviceBonus *ServiceBonus
}

func NewServiceQuiz(container *do.Injector) (*ServiceQuiz, error) {
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

	return &ServiceQuiz{container, rs, postgresDB, cache, serviceUser, serviceBonus}, nil
}

// ListQuizzes returns active quizzes annotated with the caller's attempt state.
func (service *ServiceQuiz) ListQuizzes(ctx context.Context, userID int64) ([]*models.Quiz, error) {
	callback := func() ([]*models.Quiz, error) {
		return datastore.GetActiveQuizzes(ctx, service.postgresDB)
	}
	quizzes, err := caching.UseCache(ctx, service.cache, DBKeyQuizzes(), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	completions, err := datastore.GetQuizCompletionsByUser(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	byQuiz := map[int64]*models.QuizCompletion{}
	for _, c := range completions {
		byQuiz[c.QuizID] = c
	}

	now := time.Now()
	annotated := make([]*models.Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		q := *quiz
		if c, ok := byQuiz[q.ID]; ok {
			score := c.Score
			q.Completed = true
			q.LastScore = &score
			q.CanRetake = c.RetakeAllowed(&q, now)
		} else {
			q.CanRetake = true
		}
		annotated = append(annotated, &q)
	}

	return annotated, nil
}

func (service *ServiceQuiz) FindQuizByID(ctx context.Context, quizID int64) (*models.Quiz, error) {
	callback := func() (*models.Quiz, error) {
		return datastore.FindQuizByID(ctx, service.postgresDB, quizID)
	}
	quiz, err := caching.UseCache(ctx, service.cache, DBKeyQuiz(quizID), CACHE_TTL_1_MIN, callback)
	if err != nil {
		return nil, errorx.Wrap(errors.New("quiz not found"), errorx.NotExist)
	}
	return quiz, nil
}

// SubmitQuiz grades an attempt and pays the reward in one transaction. The
// per-user lock closes the double-submit window; the cooldown gate decides
// whether a repeat attempt is allowed at all.
func (service *ServiceQuiz) SubmitQuiz(ctx context.Context, userID, quizID int64, answers []int) (*models.QuizResult, error) {
	quiz, err := service.FindQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.Active {
		return nil, errorx.Wrap(errors.New("quiz not found"), errorx.NotExist)
	}

	user, err := service.serviceUser.FindUserByID(ctx, userID)
	if err != nil {
		return nil, errorx.Wrap(errors.New("user not found"), errorx.NotExist)
	}

	mutex := service.rs.NewMutex(LockKeyUserQuiz(userID, quizID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrUserLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	now := time.Now()
	previous, err := datastore.FindQuizCompletion(ctx, service.postgresDB, userID, quizID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if previous != nil && !previous.RetakeAllowed(quiz, now) {
		return nil, errorx.Wrap(ErrQuizCooldown, errorx.Invalid)
	}

	correct, results := models.ScoreQuiz(quiz, answers)
	total := len(quiz.Questions)
	perfect := total > 0 && correct == total

	reward := float64(correct) * quiz.SparksPerCorrect
	if perfect {
		reward += quiz.SparksPerfectBonus
	}
	reward = service.serviceBonus.QuizReward(ctx, user, reward)

	completion := &models.QuizCompletion{
		UserID:       userID,
		QuizID:       quizID,
		Score:        correct,
		SparksEarned: reward,
		Perfect:      perfect,
		CompletedAt:  now,
	}
	activity := &models.Activity{
		UserID:      userID,
		Type:        models.ActivityQuizCompleted,
		SparksDelta: reward,
		Description: fmt.Sprintf("Квиз «%s»: %d из %d", quiz.Title, correct, total),
		CreatedAt:   now,
	}

	if err := datastore.ApplyQuizResult(ctx, service.postgresDB, completion, activity); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	// nolint:errcheck
	service.serviceUser.afterSparksChange(ctx, userID)

	message := fmt.Sprintf("Ты ответил(а) верно на %d из %d!", correct, total)
	if perfect {
		message = "Идеально! Все ответы верные ✨"
	}

	return &models.QuizResult{
		QuizID:       quizID,
		Results:      results,
		Correct:      correct,
		Total:        total,
		Percent:      models.ScorePercent(correct, total),
		SparksEarned: reward,
		Perfect:      perfect,
		Message:      message,
	}, nil
}
