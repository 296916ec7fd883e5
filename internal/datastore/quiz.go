package datastore

import (
	"context"

	"workshop/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableQuiz(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Quiz)(nil)).IfNotExists().Exec(ctx)
	return err
}

func CreateTableQuizCompletion(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.QuizCompletion)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.QuizCompletion)(nil)).
		Index("index_quiz_completion_user_quiz").
		IfNotExists().
		Unique().
		Column("user_id", "quiz_id").
		Exec(ctx)
	return err
}

func GetActiveQuizzes(ctx context.Context, db *bun.DB) ([]*models.Quiz, error) {
	quizzes := []*models.Quiz{}
	err := db.NewSelect().Model(&quizzes).Where("active").Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return quizzes, nil
}

func GetAllQuizzes(ctx context.Context, db *bun.DB) ([]*models.Quiz, error) {
	quizzes := []*models.Quiz{}
	err := db.NewSelect().Model(&quizzes).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return quizzes, nil
}

func FindQuizByID(ctx context.Context, db *bun.DB, quizID int64) (*models.Quiz, error) {
	var quiz models.Quiz
	err := db.NewSelect().Model(&quiz).Where("id = ?", quizID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &quiz, nil
}

func CreateQuiz(ctx context.Context, db *bun.DB, quiz *models.Quiz) (*models.Quiz, error) {
	_, err := db.NewInsert().Model(quiz).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return quiz, nil
}

func EditQuiz(ctx context.Context, db *bun.DB, quiz *models.Quiz) (*models.Quiz, error) {
	_, err := db.NewUpdate().Model(quiz).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return quiz, nil
}

func DeleteQuiz(ctx context.Context, db *bun.DB, quizID int64) error {
	_, err := db.NewDelete().Model((*models.Quiz)(nil)).Where("id = ?", quizID).Exec(ctx)
	return err
}

func FindQuizCompletion(ctx context.Context, db *bun.DB, userID, quizID int64) (*models.QuizCompletion, error) {
	var completion models.QuizCompletion
	err := db.NewSelect().Model(&completion).
		Where("user_id = ?", userID).
		Where("quiz_id = ?", quizID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &completion, nil
}

func GetQuizCompletionsByUser(ctx context.Context, db *bun.DB, userID int64) ([]*models.QuizCompletion, error) {
	completions := []*models.QuizCompletion{}
	err := db.NewSelect().Model(&completions).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return completions, nil
}

func CountQuizCompletions(ctx context.Context, db *bun.DB) (int, error) {
	return db.NewSelect().Model((*models.QuizCompletion)(nil)).Count(ctx)
}

// ApplyQuizResult commits a submission as one unit: the completion upsert (a
// retake updates the existing row, never duplicates it), the sparks award and
// the activity entry.
func ApplyQuizResult(ctx context.Context, db *bun.DB, completion *models.QuizCompletion, activity *models.Activity) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(completion).
			On("CONFLICT (user_id, quiz_id) DO UPDATE").
			Set("score = EXCLUDED.score").
			Set("sparks_earned = EXCLUDED.sparks_earned").
			Set("perfect = EXCLUDED.perfect").
			Set("completed_at = EXCLUDED.completed_at").
			Exec(ctx)
		if err != nil {
			return err
		}

		if completion.SparksEarned > 0 {
			if _, err := tx.NewUpdate().
				Model((*models.User)(nil)).
				Set("sparks = sparks + ?", completion.SparksEarned).
				Set("updated_at = current_timestamp").
				Where("id = ?", completion.UserID).
				Exec(ctx); err != nil {
				return err
			}
		}

		_, err = tx.NewInsert().Model(activity).Exec(ctx)
		return err
	})
}
