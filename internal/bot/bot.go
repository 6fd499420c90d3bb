// Package bot dispatches Telegram updates into the packaging pipeline and
// tracks per-chat conversation state.
package bot

import (
	"context"
	"errors"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lskinbot/internal/logging"
	"lskinbot/internal/pipeline"
)

const (
	replyGreeting     = "Hi! Send me a zombie skin as a .png file and I will build a skin pack for you."
	replyStartFirst   = "Send /start to begin."
	replyNextImage    = "Send your next .png skin image."
	replyAwaitingHint = "Send the skin image as a .png file."
	replyPanic        = "Something went wrong. Send /start to try again."
)

// Messenger is the outbound reply capability.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	AnswerCallback(ctx context.Context, callbackID string) error
}

// Runner executes one packaging attempt.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) error
}

// Bot routes inbound updates to handlers.
type Bot struct {
	runner    Runner
	gate      pipeline.Authorizer
	messenger Messenger
	sessions  *sessions
	logger    *slog.Logger
}

// New constructs the update dispatcher.
func New(runner Runner, gate pipeline.Authorizer, messenger Messenger, logger *slog.Logger) *Bot {
	return &Bot{
		runner:    runner,
		gate:      gate,
		messenger: messenger,
		sessions:  newSessions(),
		logger:    logging.NewComponentLogger(logger, "bot"),
	}
}

// Run consumes updates until the channel closes or the context is canceled.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.Handle(ctx, update)
		}
	}
}

// Handle routes one update. It is the outermost pipeline boundary: unexpected
// programming errors are recovered, logged, and converted to a generic failure
// reply.
func (b *Bot) Handle(ctx context.Context, update tgbotapi.Update) {
	chatID := updateChatID(update)
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic while handling update",
				logging.Any("panic", r),
				logging.Int64(logging.FieldChatID, chatID),
				logging.String(logging.FieldEventType, "update_panic"),
			)
			if chatID != 0 {
				b.reply(ctx, chatID, replyPanic)
			}
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message == nil || update.Message.From == nil:
		// Ignore service updates without an addressable sender.
	case update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message.Document != nil || len(update.Message.Photo) > 0:
		b.handleImage(ctx, update.Message)
	default:
		b.handleText(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.Command() != "start" {
		b.reply(ctx, chatID, replyStartFirst)
		return
	}

	b.logger.Info("start command",
		logging.Int64(logging.FieldUserID, userID),
		logging.Int64(logging.FieldChatID, chatID),
		logging.String(logging.FieldEventType, "start_command"),
	)

	if !b.gate.Authorized(ctx, userID) {
		b.sessions.Set(chatID, StateIdle)
		b.reply(ctx, chatID, pipeline.UserMessage(pipeline.ErrUnauthorized))
		return
	}

	b.sessions.Set(chatID, StateAwaitingImage)
	b.reply(ctx, chatID, replyGreeting)
}

func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if b.sessions.Get(chatID) != StateAwaitingImage {
		b.reply(ctx, chatID, replyStartFirst)
		return
	}

	req := pipeline.Request{UserID: userID, ChatID: chatID}
	if doc := msg.Document; doc != nil {
		req.FileID = doc.FileID
		req.FileName = doc.FileName
	} else {
		// Compressed photos arrive re-encoded as JPEG with no filename; the
		// validator rejects them so the user re-sends the PNG as a document.
		photo := msg.Photo[len(msg.Photo)-1]
		req.FileID = photo.FileID
		req.FileName = "photo.jpg"
	}

	err := b.runner.Run(ctx, req)
	if err == nil {
		b.sessions.Set(chatID, StateIdle)
		return
	}

	b.reply(ctx, chatID, pipeline.UserMessage(err))
	if errors.Is(err, pipeline.ErrValidation) {
		// Wrong file type leaves the conversation where it was.
		return
	}
	b.sessions.Set(chatID, StateIdle)
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	if b.sessions.Get(msg.Chat.ID) == StateAwaitingImage {
		b.reply(ctx, msg.Chat.ID, replyAwaitingHint)
		return
	}
	b.reply(ctx, msg.Chat.ID, replyStartFirst)
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if err := b.messenger.AnswerCallback(ctx, query.ID); err != nil {
		b.logger.Warn("answer callback failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "callback_answer_failed"),
		)
	}

	if query.Data != pipeline.CallbackCreateAnother || query.Message == nil {
		return
	}

	chatID := query.Message.Chat.ID
	b.sessions.Set(chatID, StateAwaitingImage)
	b.reply(ctx, chatID, replyNextImage)
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.messenger.SendText(ctx, chatID, text); err != nil {
		b.logger.Warn("send reply failed",
			logging.Int64(logging.FieldChatID, chatID),
			logging.Error(err),
			logging.String(logging.FieldEventType, "reply_failed"),
		)
	}
}

func updateChatID(update tgbotapi.Update) int64 {
	if update.Message != nil && update.Message.Chat != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}
