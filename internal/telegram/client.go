package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lskinbot/internal/config"
	"lskinbot/internal/logging"
)

// Client is the concrete Bot API client used in production.
type Client struct {
	api        *tgbotapi.BotAPI
	httpClient *http.Client
	channel    channelRef
	logger     *slog.Logger
}

// channelRef identifies the gating channel either by numeric chat id or by
// "@name" handle; the Bot API accepts both forms.
type channelRef struct {
	chatID   int64
	username string
}

func parseChannelRef(value string) (channelRef, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return channelRef{}, fmt.Errorf("channel identifier is empty")
	}
	if strings.HasPrefix(value, "@") {
		return channelRef{username: value}, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return channelRef{}, fmt.Errorf("channel identifier %q is neither numeric nor an @handle", value)
	}
	return channelRef{chatID: id}, nil
}

// New connects to the Bot API and verifies the token with a getMe call.
func New(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	channel, err := parseChannelRef(cfg.Telegram.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("telegram.channel_id: %w", err)
	}

	timeout := time.Duration(cfg.Telegram.RequestTimeout) * time.Second
	httpClient := &http.Client{Timeout: timeout}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.Telegram.BotToken, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("connect bot api: %w", err)
	}

	client := &Client{
		api:        api,
		httpClient: httpClient,
		channel:    channel,
		logger:     logging.NewComponentLogger(logger, "telegram"),
	}
	client.logger.Info("bot api connected", logging.String("bot_username", api.Self.UserName))
	return client, nil
}

// BotUsername returns the authenticated bot account name.
func (c *Client) BotUsername() string {
	return c.api.Self.UserName
}

// Updates opens the long-poll update channel.
func (c *Client) Updates(pollTimeout int) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	return c.api.GetUpdatesChan(u)
}

// Stop terminates the long-poll loop; the update channel closes afterwards.
func (c *Client) Stop() {
	c.api.StopReceivingUpdates()
}

// MemberStatus queries the gating channel for the user's membership state.
func (c *Client) MemberStatus(ctx context.Context, userID int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	member, err := c.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID:             c.channel.chatID,
			SuperGroupUsername: c.channel.username,
			UserID:             userID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("get chat member: %w", err)
	}
	return member.Status, nil
}

// SendText delivers a plain text reply.
func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendDocument streams a local file as a document attachment with a caption
// and, when buttonText is non-empty, a single inline callback button.
func (c *Client) SendDocument(ctx context.Context, chatID int64, path, caption, buttonText, buttonData string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	if buttonText != "" {
		doc.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(buttonText, buttonData),
			),
		)
	}
	if _, err := c.api.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// AnswerCallback acknowledges an inline button press so the client stops
// showing a spinner.
func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}
