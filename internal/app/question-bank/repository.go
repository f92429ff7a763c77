package question_bank

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/init-pkg/quiz-import/domain/app"
)

var ErrQuizNotFound = errors.New("quiz not found")

// Repository is the gorm adapter of the quiz / question / option aggregate.
type Repository struct {
	db *gorm.DB
}

var _ app.QuestionBank = &Repository{}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (this *Repository) CountQuestions(ctx context.Context, quizID uint64) (int64, error) {
	var n int64
	if err := this.db.WithContext(ctx).Model(&QuizQuestion{}).Where("quiz_id = ?", quizID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count questions of quiz %d: %w", quizID, err)
	}
	return n, nil
}

// The helpers below run on a transaction handle.

func ensureQuiz(tx *gorm.DB, quizID uint64) error {
	var quiz Quiz
	err := tx.Select("id").First(&quiz, quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrQuizNotFound
	}
	return err
}

// imagePaths lists every stored picture referenced by the quiz.
func imagePaths(tx *gorm.DB, quizID uint64) ([]string, error) {
	var paths []string
	err := tx.Model(&QuizQuestion{}).
		Where("quiz_id = ? AND image_path IS NOT NULL", quizID).
		Pluck("image_path", &paths).Error
	if err != nil {
		return nil, err
	}
	var optionPaths []string
	err = tx.Model(&QuizOption{}).
		Where("question_id IN (?) AND image_path IS NOT NULL", questionIDs(tx, quizID)).
		Pluck("image_path", &optionPaths).Error
	if err != nil {
		return nil, err
	}
	return append(paths, optionPaths...), nil
}

func questionIDs(tx *gorm.DB, quizID uint64) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).Model(&QuizQuestion{}).Select("id").Where("quiz_id = ?", quizID)
}

// deleteQuestions removes every question and option of the quiz.
func deleteQuestions(tx *gorm.DB, quizID uint64) (int64, error) {
	if err := tx.Where("question_id IN (?)", questionIDs(tx, quizID)).Delete(&QuizOption{}).Error; err != nil {
		return 0, err
	}
	res := tx.Where("quiz_id = ?", quizID).Delete(&QuizQuestion{})
	return res.RowsAffected, res.Error
}

func nextPosition(tx *gorm.DB, quizID uint64) (int, error) {
	var last sql.NullInt64
	err := tx.Model(&QuizQuestion{}).Where("quiz_id = ?", quizID).Select("MAX(position)").Scan(&last).Error
	if err != nil {
		return 0, err
	}
	if !last.Valid {
		return 1, nil
	}
	return int(last.Int64) + 1, nil
}
