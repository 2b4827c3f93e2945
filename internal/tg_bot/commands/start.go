package commands

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	startCommandName = "start"
	helpCommandName  = "help"
)

const helpText = `Hi! I run anonymous polls for this chat. Nobody, including admins, can see who voted for what.

/poll Question | Option 1 | Option 2 - single choice poll, open right away
/mpoll Question | Option 1 | Option 2 - multiple choice poll, press an option again to take your vote back
/draft Question | Option 1 | Option 2 - save a poll without opening it
/edit <poll id> [multi] Question | Option 1 | Option 2 - rewrite a draft
/schedule <open> <close> [multi] Question | Option 1 | Option 2 - open and close automatically, times like 2026-03-02T15:04 in UTC
/schedule <poll id> - schedule a draft that already has times
/open <poll id>, /close <poll id> - open or close a poll by hand
/polls [all] - the newest open polls of this chat, or all of them
/results <poll id> - current results
/clone <poll id> - start a fresh poll with the same question and options
/recount <poll id> - rebuild counts from stored ballots (admins)
/role admin|user|viewer - reply to someone's message to change their role (admins)`

type startCommand struct{}

func NewStartCommand() Command {
	return &startCommand{}
}

func (c *startCommand) CanHandle(command string) bool {
	return command == startCommandName || command == helpCommandName
}

func (c *startCommand) Handle(_ context.Context, request Request) []tgbotapi.Chattable {
	return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, helpText)}
}
