package services

import (
	"fmt"
	"os"
	"time"

	"workshop/internal/models"

	tele "gopkg.in/telebot.v3"

	initdata "github.com/telegram-mini-apps/init-data-golang"
)

const textStart = `✨ Добро пожаловать в Мастерскую Вдохновения!

Проходи квизы и марафоны, выполняй задания, зарабатывай искры и обменивай их в лавке.

Нажми кнопку ниже, чтобы открыть мастерскую.`

const textWorkApproved = `🎉 Твоя работа «%s» одобрена! %s`

const textWorkRejected = `😔 Твоя работа «%s» не прошла модерацию. %s`

const textReviewApproved = `🎉 Твой отзыв одобрен! %s`

const textReviewRejected = `😔 Твой отзыв не прошёл модерацию. %s`

type Bot struct {
	token string
}

func NewBot(token string) (*Bot, error) {
	return &Bot{token}, nil
}

func (bot *Bot) ValidateInitData(dataStr string) (*models.UserFromAuth, error) {
	if err := initdata.Validate(dataStr, bot.token, 0); err != nil {
		return nil, err
	}

	data, err := initdata.Parse(dataStr)
	if err != nil {
		return nil, err
	}

	return &models.UserFromAuth{
		ID:        data.User.ID,
		Username:  data.User.Username,
		FirstName: data.User.FirstName,
		LastName:  data.User.LastName,
		IsBot:     data.User.IsBot,
		PhotoURL:  data.User.PhotoURL,
	}, nil
}

func (bot *Bot) SendMsg(chatID int64, text string) error {
	pref := tele.Settings{
		Token:  bot.token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return err
	}

	_, err = b.Send(&tele.User{ID: chatID}, text, &tele.SendOptions{
		ParseMode: tele.ModeHTML,
		ReplyMarkup: &tele.ReplyMarkup{
			InlineKeyboard: [][]tele.InlineButton{
				{{Text: "✨ Открыть мастерскую", WebApp: &tele.WebApp{URL: os.Getenv("TELEGRAM_WEB_APP_URL")}}},
			},
		},
	})
	return err
}

func (bot *Bot) SendWelcomeMsg(chatID int64) error {
	return bot.SendMsg(chatID, textStart)
}

func (bot *Bot) NotifyModeration(chatID int64, kind models.ModerationKind, title string, decision models.ModerationStatus, comment string) error {
	var text string
	switch {
	case kind == models.ModerationKindWork && decision == models.ModerationApproved:
		text = fmt.Sprintf(textWorkApproved, title, comment)
	case kind == models.ModerationKindWork:
		text = fmt.Sprintf(textWorkRejected, title, comment)
	case decision == models.ModerationApproved:
		text = fmt.Sprintf(textReviewApproved, comment)
	default:
		text = fmt.Sprintf(textReviewRejected, comment)
	}

	return bot.SendMsg(chatID, text)
}
