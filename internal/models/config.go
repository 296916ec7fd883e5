package models

import "github.com/uptrace/bun"

type AppConfig struct {
	bun.BaseModel `bun:"table:app_config"`
	Key           string `bun:"key,pk" json:"key"`
	Value         string `bun:"value" json:"value"`
}
