package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"workshop/internal/models"

	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
	tele "gopkg.in/telebot.v3"
)

const textStart = `✨ Добро пожаловать в Мастерскую Вдохновения!

Проходи квизы и марафоны, выполняй задания, зарабатывай искры и обменивай их в лавке.

Нажми кнопку ниже, чтобы открыть мастерскую.`

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
		Name: "bot",
		Commands: []*cli.Command{
			commandBot(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandBot() *cli.Command {
	return &cli.Command{
		Name:  "start",
		Usage: "run the telegram long-polling bot",
		Action: func(c *cli.Context) error {
			vs, err := env.EnvsRequired("BOT_TOKEN", "TELEGRAM_WEB_APP_URL")
			if err != nil {
				return err
			}

			pref := tele.Settings{
				Token:  vs["BOT_TOKEN"],
				Poller: &tele.LongPoller{Timeout: 10 * time.Second},
			}

			b, err := tele.NewBot(pref)
			if err != nil {
				return err
			}

			b.Handle("/start", func(c tele.Context) error {
				return c.Send(textStart, &tele.SendOptions{
					ParseMode: tele.ModeHTML,
					ReplyMarkup: &tele.ReplyMarkup{
						InlineKeyboard: [][]tele.InlineButton{
							{{Text: "✨ Открыть мастерскую", WebApp: &tele.WebApp{URL: vs["TELEGRAM_WEB_APP_URL"]}}},
						},
					},
				})
			})

			db, err := getDb()
			if err != nil {
				return err
			}

			b.Handle("/balance", func(c tele.Context) error {
				var user models.User
				err := db.NewSelect().Model(&user).Where("id = ?", c.Sender().ID).Scan(context.Background())
				if err != nil {
					return c.Send("Ты ещё не в мастерской. Нажми /start!")
				}

				return c.Send(fmt.Sprintf("Твой баланс: %.0f искр (уровень «%s»)", user.Sparks, user.Level))
			})

			log.Println("Bot started")
			b.Start()
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
