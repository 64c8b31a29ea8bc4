package services

import (
	"os"
	"time"

	"idlegrow/internal/models"

	tele "gopkg.in/telebot.v3"

	initdata "github.com/telegram-mini-apps/init-data-golang"
)

const (
	textStart = `🌱 Welcome to Idle Grow! 🌱

Plant seeds, watch them grow and harvest coins, even while you sleep.

🎁 Your starter plots are ready.

‼️ Tip: Pin Idle Grow at the top of your Telegram for fastest access.
`

	textGardenReady = `🌾 Your garden is ready!

Some of your plants are fully grown. Come back and harvest them before they wilt.`
)

type Bot struct {
	token string
}

func NewBot(token string) (*Bot, error) {
	return &Bot{token}, nil
}

func (bot *Bot) ValidateInitData(dataStr string) (*models.PlayerFromAuth, error) {
	err := initdata.Validate(dataStr, bot.token, 24*time.Hour)
	if err != nil {
		return nil, err
	}

	data, err := initdata.Parse(dataStr)
	if err != nil {
		return nil, err
	}

	return &models.PlayerFromAuth{
		ID:           data.User.ID,
		Username:     data.User.Username,
		FirstName:    data.User.FirstName,
		LastName:     data.User.LastName,
		IsPremium:    data.User.IsPremium,
		LanguageCode: data.User.LanguageCode,
		PhotoURL:     data.User.PhotoURL,
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
				{{Text: "🌱 Open Garden", WebApp: &tele.WebApp{URL: os.Getenv("TELEGRAM_WEB_APP_URL")}}},
				{{Text: "🔊 Latest news", URL: os.Getenv("TELEGRAM_ANNOUNCEMENT_URL")}},
			},
		},
	})
	if err != nil {
		return err
	}

	return nil
}

func (bot *Bot) SendWelcomeMsg(chatID int64) error {
	return bot.SendMsg(chatID, textStart)
}

func (bot *Bot) SendGardenReadyMsg(chatID int64) error {
	return bot.SendMsg(chatID, textGardenReady)
}
