package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrQuizCooldown = errors.New("quiz retake not available yet")
var ErrDayOutOfOrder = errors.New("marathon day out of order")
var ErrAlreadyModerated = errors.New("already moderated")
var ErrInsufficientSparks = errors.New("not enough sparks")
var ErrRoleHasCharacters = errors.New("role still has characters")
var ErrCharacterInUse = errors.New("character is in use")
var ErrUserLock = errors.New("user locked")
var ErrAlreadyReviewed = errors.New("post already reviewed")
var ErrAlreadyAnswered = errors.New("interactive already answered")

const (
	CONFIG_DEFAULT_SPARKS         = "DEFAULT_SPARKS"
	CONFIG_WORK_APPROVED_SPARKS   = "WORK_APPROVED_SPARKS"
	CONFIG_REVIEW_APPROVED_SPARKS = "REVIEW_APPROVED_SPARKS"
	CONFIG_LEADERBOARD_LIMIT      = "LEADERBOARD_LIMIT"
	CONFIG_ACTIVITY_PAGE_LIMIT    = "ACTIVITY_PAGE_LIMIT"
	CONFIG_UPLOADS_PER_HOUR       = "UPLOADS_PER_HOUR"
	CONFIG_REVIEWS_PER_HOUR       = "REVIEWS_PER_HOUR"

	DEFAULT_SPARKS               = 50
	DEFAULT_WORK_APPROVED_SPARKS = 10
	DEFAULT_REVIEW_SPARKS        = 3
	LEADERBOARD_DEFAULT_LIMIT    = 20
	ACTIVITY_DEFAULT_LIMIT       = 50
	DEFAULT_UPLOADS_PER_HOUR     = 5
	DEFAULT_REVIEWS_PER_HOUR     = 10

	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
	CACHE_TTL_15_MINS    = 15 * time.Minute
	CACHE_TTL_1_HOUR     = 1 * time.Hour
)

func LockKeyUserSparks(userID int64) string {
	return fmt.Sprintf("lock:user-sparks:%d", userID)
}

func LockKeyUserQuiz(userID, quizID int64) string {
	return fmt.Sprintf("lock:user-quiz:%d:%d", userID, quizID)
}

func LockKeyUserMarathon(userID, marathonID int64) string {
	return fmt.Sprintf("lock:user-marathon:%d:%d", userID, marathonID)
}

func LockKeyModeration(kind string, id int64) string {
	return fmt.Sprintf("lock:moderation:%s:%d", kind, id)
}

// db
func DBKeyUser(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func DBKeyRoles() string {
	return "roles:active"
}

func DBKeyCharacters(roleID int64) string {
	return fmt.Sprintf("characters:role:%d", roleID)
}

func DBKeyQuizzes() string {
	return "quizzes:active"
}

func DBKeyQuiz(quizID int64) string {
	return fmt.Sprintf("quiz:%d", quizID)
}

func DBKeyMarathons() string {
	return "marathons:active"
}

func DBKeyMarathon(marathonID int64) string {
	return fmt.Sprintf("marathon:%d", marathonID)
}

func DBKeyInteractives() string {
	return "interactives:active"
}

func DBKeyShopItems() string {
	return "shop:items:active"
}

func DBKeyChannelPosts() string {
	return "channel_posts:active"
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func LimitKeyUserUploads(userID int64) string {
	return fmt.Sprintf("limit:uploads:%d", userID)
}

func LimitKeyUserReviews(userID int64) string {
	return fmt.Sprintf("limit:reviews:%d", userID)
}
