package handlers

import (
	"context"
	"strconv"
	"strings"

	"team_polls/internal/tg_bot/commands"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type CommandHandler interface {
	Handle(ctx context.Context, update tgbotapi.Update) []tgbotapi.Chattable
}

type commandHandler struct {
	commands []commands.Command
	logger   *zap.SugaredLogger
}

// NewCommandHandler routes chat commands and button presses to the first command that
// accepts them.
func NewCommandHandler(logger *zap.SugaredLogger, handled ...commands.Command) CommandHandler {
	return &commandHandler{
		commands: handled,
		logger:   logger,
	}
}

func (h *commandHandler) Handle(ctx context.Context, update tgbotapi.Update) []tgbotapi.Chattable {
	request, ok := newRequest(update)
	if !ok {
		return nil
	}

	for _, command := range h.commands {
		if command.CanHandle(request.Command) {
			h.logger.Debugw("handling command", "command", request.Command, "chat_id", request.ChatID)
			return command.Handle(ctx, request)
		}
	}

	h.logger.Debugw("no command for update", "command", request.Command)
	return nil
}

func newRequest(update tgbotapi.Update) (commands.Request, bool) {
	switch {
	case update.CallbackQuery != nil:
		callback := update.CallbackQuery
		if callback.Message == nil || callback.From == nil {
			return commands.Request{}, false
		}

		command, _, _ := strings.Cut(callback.Data, ":")
		return commands.Request{
			Command:    command,
			Arguments:  callback.Data,
			ChatID:     callback.Message.Chat.ID,
			MessageID:  callback.Message.MessageID,
			CallbackID: callback.ID,
			UserID:     strconv.FormatInt(callback.From.ID, 10),
		}, true

	case update.Message != nil && update.Message.IsCommand():
		message := update.Message
		if message.From == nil {
			return commands.Request{}, false
		}

		request := commands.Request{
			Command:   message.Command(),
			Arguments: message.CommandArguments(),
			ChatID:    message.Chat.ID,
			MessageID: message.MessageID,
			UserID:    strconv.FormatInt(message.From.ID, 10),
		}
		if message.ReplyToMessage != nil && message.ReplyToMessage.From != nil {
			request.ReplyToUserID = strconv.FormatInt(message.ReplyToMessage.From.ID, 10)
		}
		return request, true
	}

	return commands.Request{}, false
}
