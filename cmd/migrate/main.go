package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	"workshop/internal/datastore"
	"workshop/internal/models"
	"workshop/internal/services"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandSeedConfig(),
			commandCreateAdmin(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			migrations := []func(context.Context, *bun.DB) error{
				datastore.CreateTableRole,
				datastore.CreateTableCharacter,
				datastore.CreateTableUser,
				datastore.CreateTableQuiz,
				datastore.CreateTableQuizCompletion,
				datastore.CreateTableMarathon,
				datastore.CreateTableMarathonProgress,
				datastore.CreateTableInteractive,
				datastore.CreateTableInteractiveCompletion,
				datastore.CreateTableShopItem,
				datastore.CreateTablePurchase,
				datastore.CreateTableWork,
				datastore.CreateTableChannelPost,
				datastore.CreateTablePostReview,
				datastore.CreateTableActivity,
				datastore.CreateTableAdmin,
				datastore.CreateTableConfig,
			}

			for _, migration := range migrations {
				if err := migration(ctx, db); err != nil {
					log.Fatal(err)
				}
			}

			log.Println("Migration done")
			return nil
		},
	}
}

func commandSeedConfig() *cli.Command {
	return &cli.Command{
		Name: "seed-config",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			defaults := map[string]string{
				services.CONFIG_DEFAULT_SPARKS:         strconv.Itoa(services.DEFAULT_SPARKS),
				services.CONFIG_WORK_APPROVED_SPARKS:   strconv.Itoa(services.DEFAULT_WORK_APPROVED_SPARKS),
				services.CONFIG_REVIEW_APPROVED_SPARKS: strconv.Itoa(services.DEFAULT_REVIEW_SPARKS),
				services.CONFIG_LEADERBOARD_LIMIT:      strconv.Itoa(services.LEADERBOARD_DEFAULT_LIMIT),
				services.CONFIG_ACTIVITY_PAGE_LIMIT:    strconv.Itoa(services.ACTIVITY_DEFAULT_LIMIT),
				services.CONFIG_UPLOADS_PER_HOUR:       strconv.Itoa(services.DEFAULT_UPLOADS_PER_HOUR),
				services.CONFIG_REVIEWS_PER_HOUR:       strconv.Itoa(services.DEFAULT_REVIEWS_PER_HOUR),
			}

			for key, value := range defaults {
				if _, err := datastore.GetConfigByKey(ctx, db, key); err == nil {
					continue
				}
				if err := datastore.UpsertConfig(ctx, db, &models.AppConfig{Key: key, Value: value}); err != nil {
					log.Fatal(err)
				}
				log.Println("Seeded", key, "=", value)
			}
			return nil
		},
	}
}

func commandCreateAdmin() *cli.Command {
	return &cli.Command{
		Name: "create-admin",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Required: true, Usage: "telegram user id"},
			&cli.StringFlag{Name: "role", Value: string(models.AdminRoleModerator)},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			role := models.AdminRole(c.String("role"))
			if role != models.AdminRoleModerator && role != models.AdminRoleSuperadmin {
				log.Fatal("role must be moderator or superadmin")
			}

			admin, err := datastore.CreateAdmin(ctx, db, &models.Admin{
				ID:        c.Int64("id"),
				Role:      role,
				CreatedAt: time.Now(),
			})
			if err != nil {
				log.Fatal(err)
			}

			log.Println("Admin created:", admin.ID, admin.Role)
			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New()), nil
}
