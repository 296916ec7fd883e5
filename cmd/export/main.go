package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"log"
	"os"
	"strconv"

	"workshop/internal/datastore"

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
		Name: "export",
		Commands: []*cli.Command{
			commandExportUsers(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandExportUsers() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "dump the users report to CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Value: "users.csv"},
		},
		Action: func(c *cli.Context) error {
			ctx := context.Background()

			sqldb := sql.OpenDB(pgdriver.NewConnector(
				pgdriver.WithDSN(os.Getenv("DB_DSN")),
				pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
			))
			db := bun.NewDB(sqldb, pgdialect.New())

			f, err := os.Create(c.String("out"))
			if err != nil {
				return err
			}
			defer f.Close()

			w := csv.NewWriter(f)
			defer w.Flush()

			if err := w.Write([]string{"id", "first_name", "username", "role", "sparks", "registered", "last_active_at"}); err != nil {
				return err
			}

			limit := 500
			offset := 0
			total := 0
			for {
				rows, err := datastore.GetUsersReport(ctx, db, limit, offset)
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					break
				}
				offset += limit

				for _, row := range rows {
					record := []string{
						strconv.FormatInt(row.ID, 10),
						row.FirstName,
						row.Username,
						row.RoleName,
						strconv.FormatFloat(row.Sparks, 'f', 2, 64),
						strconv.FormatBool(row.IsRegistered),
						row.LastActiveAt.Format("2006-01-02 15:04:05"),
					}
					if err := w.Write(record); err != nil {
						return err
					}
					total++
				}
			}

			log.Println("Exported", total, "users to", c.String("out"))
			return nil
		},
	}
}
