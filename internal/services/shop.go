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
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceShop struct {
	container  *do.Injector
	rs         *redsync.Redsync
	postgresDB *bun.DB
	cache      caching.Cache

	serviceUser *ServiceUser
}

func NewServiceShop(container *do.Injector) (*ServiceShop, error) {
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

	return &ServiceShop{container, rs, postgresDB, cache, serviceUser}, nil
}

func (service *ServiceShop) GetActiveShopItems(ctx context.Context) ([]*models.ShopItem, error) {
	callback := func() ([]*models.ShopItem, error) {
		return datastore.GetActiveShopItems(ctx, service.postgresDB)
	}
	items, err := caching.UseCache(ctx, service.cache, DBKeyShopItems(), CACHE_TTL_5_MINS, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return items, nil
}

// Purchase debits the balance and records the receipt in one transaction. The
// debit is conditional on sufficient sparks, so two concurrent purchases can
// never spend the same balance twice. Repeat purchases of the same item are
// allowed; each gets its own receipt.
func (service *ServiceShop) Purchase(ctx context.Context, userID, itemID int64) (*models.Purchase, error) {
	item, err := datastore.FindShopItemByID(ctx, service.postgresDB, itemID)
	if err != nil || !item.Active {
		return nil, errorx.Wrap(errors.New("item not found"), errorx.NotExist)
	}

	if _, err := service.serviceUser.FindUserByID(ctx, userID); err != nil {
		return nil, errorx.Wrap(errors.New("user not found"), errorx.NotExist)
	}

	mutex := service.rs.NewMutex(LockKeyUserSparks(userID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrUserLock, errorx.Invalid)
	}
	// nolint:errcheck
	defer mutex.Unlock()

	now := time.Now()
	purchase := &models.Purchase{
		ReceiptID: uuid.NewString(),
		UserID:    userID,
		ItemID:    itemID,
		PricePaid: item.Price,
		Delivered: true,
		CreatedAt: now,
	}
	activity := &models.Activity{
		UserID:      userID,
		Type:        models.ActivityPurchase,
		SparksDelta: -item.Price,
		Description: fmt.Sprintf("Покупка «%s»", item.Title),
		CreatedAt:   now,
	}

	applied, err := datastore.ApplyPurchase(ctx, service.postgresDB, purchase, activity)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !applied {
		return nil, errorx.Wrap(ErrInsufficientSparks, errorx.Invalid)
	}

	// nolint:errcheck
	service.serviceUser.afterSparksChange(ctx, userID)

	purchase.ItemTitle = item.Title
	purchase.Payload = item.Payload
	return purchase, nil
}

// GetPurchasesByUser is the user's inventory; payloads of bought items are
// revealed here.
func (service *ServiceShop) GetPurchasesByUser(ctx context.Context, userID int64) ([]*models.Purchase, error) {
	purchases, err := datastore.GetPurchasesByUser(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	for _, purchase := range purchases {
		item, err := datastore.FindShopItemByID(ctx, service.postgresDB, purchase.ItemID)
		if err != nil {
			continue
		}
		purchase.ItemTitle = item.Title
		purchase.Payload = item.Payload
	}
	return purchases, nil
}
