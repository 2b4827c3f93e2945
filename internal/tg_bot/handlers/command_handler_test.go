package handlers

import (
	"context"
	"testing"

	"team_polls/internal/tg_bot/commands"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingCommand struct {
	name     string
	requests []commands.Request
}

func (c *recordingCommand) CanHandle(command string) bool {
	return command == c.name
}

func (c *recordingCommand) Handle(_ context.Context, request commands.Request) []tgbotapi.Chattable {
	c.requests = append(c.requests, request)
	return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, c.name)}
}

func commandUpdate(text string, length int) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 3,
			Text:      text,
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
			Chat:      &tgbotapi.Chat{ID: -100},
			From:      &tgbotapi.User{ID: 42},
		},
	}
}

func TestCommandHandler_RoutesCommands(t *testing.T) {
	poll := &recordingCommand{name: "poll"}
	role := &recordingCommand{name: "role"}
	handler := NewCommandHandler(zap.NewNop().Sugar(), poll, role)

	replies := handler.Handle(context.Background(), commandUpdate("/poll Lunch? | Pizza | Sushi", 5))
	require.Len(t, replies, 1)
	require.Len(t, poll.requests, 1)
	assert.Empty(t, role.requests)

	request := poll.requests[0]
	assert.Equal(t, "poll", request.Command)
	assert.Equal(t, "Lunch? | Pizza | Sushi", request.Arguments)
	assert.Equal(t, int64(-100), request.ChatID)
	assert.Equal(t, "42", request.UserID)
	assert.Equal(t, "-100", request.TeamID())
	assert.Empty(t, request.ReplyToUserID)
}

func TestCommandHandler_PassesReplyTarget(t *testing.T) {
	role := &recordingCommand{name: "role"}
	handler := NewCommandHandler(zap.NewNop().Sugar(), role)

	update := commandUpdate("/role viewer", 5)
	update.Message.ReplyToMessage = &tgbotapi.Message{From: &tgbotapi.User{ID: 7}}

	handler.Handle(context.Background(), update)
	require.Len(t, role.requests, 1)
	assert.Equal(t, "7", role.requests[0].ReplyToUserID)
	assert.Equal(t, "viewer", role.requests[0].Arguments)
}

func TestCommandHandler_RoutesCallbacks(t *testing.T) {
	vote := &recordingCommand{name: "v"}
	handler := NewCommandHandler(zap.NewNop().Sugar(), vote)

	update := tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb-1",
			From:    &tgbotapi.User{ID: 9},
			Data:    "v:poll-id:1",
			Message: &tgbotapi.Message{MessageID: 11, Chat: &tgbotapi.Chat{ID: -100}},
		},
	}

	handler.Handle(context.Background(), update)
	require.Len(t, vote.requests, 1)

	request := vote.requests[0]
	assert.Equal(t, "v", request.Command)
	assert.Equal(t, "v:poll-id:1", request.Arguments)
	assert.Equal(t, "cb-1", request.CallbackID)
	assert.Equal(t, 11, request.MessageID)
	assert.Equal(t, "9", request.UserID)
}

func TestCommandHandler_IgnoresOtherUpdates(t *testing.T) {
	poll := &recordingCommand{name: "poll"}
	handler := NewCommandHandler(zap.NewNop().Sugar(), poll)

	plain := tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 1}, From: &tgbotapi.User{ID: 1}}}
	assert.Nil(t, handler.Handle(context.Background(), plain))
	assert.Nil(t, handler.Handle(context.Background(), commandUpdate("/unknown", 8)))
	assert.Nil(t, handler.Handle(context.Background(), tgbotapi.Update{}))
	assert.Empty(t, poll.requests)
}
