package datastore

import (
	"context"

	"workshop/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableShopItem(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ShopItem)(nil)).IfNotExists().Exec(ctx)
	return err
}

func CreateTablePurchase(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Purchase)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Purchase)(nil)).Index("index_purchase_user_id").IfNotExists().Column("user_id").Exec(ctx)
	return err
}

func GetActiveShopItems(ctx context.Context, db *bun.DB) ([]*models.ShopItem, error) {
	items := []*models.ShopItem{}
	err := db.NewSelect().Model(&items).Where("active").Order("price ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func GetAllShopItems(ctx context.Context, db *bun.DB) ([]*models.ShopItem, error) {
	items := []*models.ShopItem{}
	err := db.NewSelect().Model(&items).Order("id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func FindShopItemByID(ctx context.Context, db *bun.DB, itemID int64) (*models.ShopItem, error) {
	var item models.ShopItem
	err := db.NewSelect().Model(&item).Where("id = ?", itemID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func CreateShopItem(ctx context.Context, db *bun.DB, item *models.ShopItem) (*models.ShopItem, error) {
	_, err := db.NewInsert().Model(item).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func EditShopItem(ctx context.Context, db *bun.DB, item *models.ShopItem) (*models.ShopItem, error) {
	_, err := db.NewUpdate().Model(item).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func DeleteShopItem(ctx context.Context, db *bun.DB, itemID int64) error {
	_, err := db.NewDelete().Model((*models.ShopItem)(nil)).Where("id = ?", itemID).Exec(ctx)
	return err
}

func GetPurchasesByUser(ctx context.Context, db *bun.DB, userID int64) ([]*models.Purchase, error) {
	purchases := []*models.Purchase{}
	err := db.NewSelect().Model(&purchases).Where("user_id = ?", userID).Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return purchases, nil
}

func CountPurchases(ctx context.Context, db *bun.DB) (int, error) {
	return db.NewSelect().Model((*models.Purchase)(nil)).Count(ctx)
}

// ApplyPurchase debits the balance and records the purchase atomically. The
// conditional update refuses a debit below zero, so concurrent purchases can
// never overspend: the losing request sees zero rows affected.
func ApplyPurchase(ctx context.Context, db *bun.DB, purchase *models.Purchase, activity *models.Activity) (bool, error) {
	applied := false
	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("sparks = sparks - ?", purchase.PricePaid).
			Set("updated_at = current_timestamp").
			Where("id = ?", purchase.UserID).
			Where("sparks >= ?", purchase.PricePaid).
			Exec(ctx)
		if err != nil {
			return err
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return nil
		}
		applied = true

		if _, err := tx.NewInsert().Model(purchase).Exec(ctx); err != nil {
			return err
		}

		_, err = tx.NewInsert().Model(activity).Exec(ctx)
		return err
	})
	return applied, err
}
