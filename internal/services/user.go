package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"workshop/internal/datastore"
	"workshop/internal/datastore/redis_store"
	"workshop/internal/models"
	"workshop/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceUser struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	rs         *redsync.Redsync
	postgresDB *bun.DB
	cache      caching.Cache

	serviceConfig *ServiceConfig
	bot           *Bot
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

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

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	bot, err := do.Invoke[*Bot](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{container, redisDB, rs, postgresDB, cache, serviceConfig, bot}, nil
}

// FindOrCreateUser returns the user for an external platform id, creating a
// fresh unregistered row with the configured starting balance on first
// contact. The second result reports whether the row already existed.
func (service *ServiceUser) FindOrCreateUser(ctx context.Context, userID int64, hints *models.UserFromAuth) (*models.User, bool, error) {
	user, err := service.FindUserByID(ctx, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, false, errorx.Wrap(err, errorx.Service)
	}

	now := time.Now()
	if user != nil {
		if err := datastore.TouchLastActive(ctx, service.postgresDB, user.ID, now); err != nil {
			log.Println("TouchLastActive:", err)
		}
		user.LastActiveAt = now

		if hints != nil && (user.Username != strings.ToLower(hints.Username) || user.FirstName != hints.FirstName) {
			user.Username = strings.ToLower(hints.Username)
			user.FirstName = hints.FirstName
			//nolint:errcheck
			datastore.UpdateUserProfile(ctx, service.postgresDB, user)
			_ = service.cache.Delete(ctx, DBKeyUser(user.ID))
		}
		return user, true, nil
	}

	defaultSparks, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_DEFAULT_SPARKS, DEFAULT_SPARKS)

	newUser := &models.User{
		ID:           userID,
		Sparks:       float64(defaultSparks),
		Level:        models.LevelForSparks(0),
		IsRegistered: false,
		Status:       models.UserStatusActive,
		LastActiveAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if hints != nil {
		newUser.FirstName = hints.FirstName
		newUser.Username = strings.ToLower(hints.Username)
	}

	log.Println("Create new user:", "user:", newUser.ID, "username:", newUser.Username)
	user, err = datastore.CreateUser(ctx, service.postgresDB, newUser)
	if err != nil {
		return nil, false, errorx.Wrap(err, errorx.Service)
	}

	user.IsNewUser = true

	go func() {
		if err := service.bot.SendWelcomeMsg(user.ID); err != nil {
			log.Println(err)
		}
	}()

	return user, false, nil
}

func (service *ServiceUser) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	callback := func() (*models.User, error) {
		return datastore.FindUserByID(ctx, service.postgresDB, userID)
	}
	return caching.UseCache(ctx, service.cache, DBKeyUser(userID), CACHE_TTL_1_MIN, callback)
}

func (service *ServiceUser) validateRolePair(ctx context.Context, roleID, characterID int64) error {
	role, err := datastore.FindRoleByID(ctx, service.postgresDB, roleID)
	if err != nil || !role.Active {
		return errorx.Wrap(errors.New("invalid role"), errorx.Validation)
	}

	character, err := datastore.FindCharacterByID(ctx, service.postgresDB, characterID)
	if err != nil || !character.Active {
		return errorx.Wrap(errors.New("invalid character"), errorx.Validation)
	}

	if character.RoleID != roleID {
		return errorx.Wrap(errors.New("character does not belong to role"), errorx.Validation)
	}

	return nil
}

func (service *ServiceUser) Register(ctx context.Context, userID, roleID, characterID int64, displayName string) (*models.User, error) {
	if err := service.validateRolePair(ctx, roleID, characterID); err != nil {
		return nil, err
	}

	user, err := service.FindUserByID(ctx, userID)
	if err != nil {
		return nil, errorx.Wrap(errors.New("user not found"), errorx.NotExist)
	}

	now := time.Now()
	if displayName == "" {
		displayName = user.FirstName
	}

	if err := datastore.RegisterUser(ctx, service.postgresDB, userID, roleID, characterID, displayName, now); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	if !user.IsRegistered {
		activity := &models.Activity{
			UserID:      userID,
			Type:        models.ActivityRegistration,
			SparksDelta: 0,
			Description: "Регистрация в мастерской",
			CreatedAt:   now,
		}
		if err := datastore.InsertActivity(ctx, service.postgresDB, activity); err != nil {
			log.Println("InsertActivity:", err)
		}
	}

	_ = service.cache.Delete(ctx, DBKeyUser(userID))
	return service.FindUserByID(ctx, userID)
}

// ChangeRole re-validates the pair but keeps sparks and history untouched.
func (service *ServiceUser) ChangeRole(ctx context.Context, userID, roleID, characterID int64) (*models.User, error) {
	if err := service.validateRolePair(ctx, roleID, characterID); err != nil {
		return nil, err
	}

	if _, err := service.FindUserByID(ctx, userID); err != nil {
		return nil, errorx.Wrap(errors.New("user not found"), errorx.NotExist)
	}

	if err := datastore.ChangeUserRole(ctx, service.postgresDB, userID, roleID, characterID, time.Now()); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	_ = service.cache.Delete(ctx, DBKeyUser(userID))
	return service.FindUserByID(ctx, userID)
}

// AdjustSparks is the only path that changes a balance. The datastore funnel
// pairs the update with an activity row; afterwards the leaderboard and level
// are refreshed from the committed state.
func (service *ServiceUser) AdjustSparks(ctx context.Context, userID int64, delta float64, activityType, description string) error {
	mutex := service.rs.NewMutex(LockKeyUserSparks(userID))
	if err := mutex.Lock(); err != nil {
		return errorx.Wrap(ErrUserLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	activity := &models.Activity{
		UserID:      userID,
		Type:        activityType,
		SparksDelta: delta,
		Description: description,
		CreatedAt:   time.Now(),
	}

	applied, err := datastore.AdjustSparksWithActivity(ctx, service.postgresDB, userID, delta, activity)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}
	if !applied {
		return errorx.Wrap(ErrInsufficientSparks, errorx.Invalid)
	}

	return service.afterSparksChange(ctx, userID)
}

func (service *ServiceUser) afterSparksChange(ctx context.Context, userID int64) error {
	_ = service.cache.Delete(ctx, DBKeyUser(userID))

	user, err := datastore.FindUserByID(ctx, service.postgresDB, userID)
	if err != nil {
		return nil
	}

	earned, err := datastore.SumLifetimeEarnings(ctx, service.postgresDB, userID)
	if err == nil {
		level := models.LevelForSparks(earned)
		if level != user.Level {
			user.Level = level
			//nolint:errcheck
			datastore.EditUser(ctx, service.postgresDB, user)
			_ = service.cache.Delete(ctx, DBKeyUser(userID))
		}
	}

	if _, err := redis_store.SetLeaderboardScore(ctx, service.redisDB, &models.LeaderboardItem{
		UserId: userID,
		Score:  user.Sparks,
	}); err != nil {
		log.Println("SetLeaderboardScore:", err)
	}

	return nil
}

func (service *ServiceUser) GetActivities(ctx context.Context, userID int64) ([]*models.Activity, error) {
	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_ACTIVITY_PAGE_LIMIT, ACTIVITY_DEFAULT_LIMIT)
	return datastore.GetActivitiesByUser(ctx, service.postgresDB, userID, limit)
}

// AnnotateUser fills the display-only role/character names.
func (service *ServiceUser) AnnotateUser(ctx context.Context, user *models.User) *models.User {
	if user == nil {
		return nil
	}

	if user.RoleID != nil {
		if role, err := datastore.FindRoleByID(ctx, service.postgresDB, *user.RoleID); err == nil {
			user.RoleName = role.Name
		}
	}
	if user.CharacterID != nil {
		if character, err := datastore.FindCharacterByID(ctx, service.postgresDB, *user.CharacterID); err == nil {
			user.CharacterName = character.Name
		}
	}
	return user
}
