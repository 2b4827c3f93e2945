package commands

import (
	"context"
	"fmt"
	"strings"

	"team_polls/internal/db/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const roleCommandName = "role"

type roleCommand struct {
	roles  RoleService
	logger *zap.SugaredLogger
}

func NewRoleCommand(roles RoleService, logger *zap.SugaredLogger) Command {
	return &roleCommand{
		roles:  roles,
		logger: logger,
	}
}

func (c *roleCommand) CanHandle(command string) bool {
	return command == roleCommandName
}

// Handle accepts "/role <role>" as a reply to the target's message, or "/role <user id> <role>".
func (c *roleCommand) Handle(ctx context.Context, request Request) []tgbotapi.Chattable {
	userID := request.ReplyToUserID
	roleName := strings.TrimSpace(request.Arguments)

	if userID == "" {
		userID, roleName = nextField(request.Arguments)
		roleName = strings.TrimSpace(roleName)
	}

	if userID == "" || roleName == "" {
		text := "Reply to a message with /role admin|user|viewer, or use /role <user id> <role>."
		return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, text)}
	}

	role, err := c.roles.SetRole(ctx, request.TeamID(), request.UserID, userID, models.UserRoleName(strings.ToLower(roleName)))
	if err != nil {
		return []tgbotapi.Chattable{errorReply(request.ChatID, err, c.logger, "set role")}
	}

	text := fmt.Sprintf("User %s is now %s.", role.UserID, role.Role.CapitalizedString())
	return []tgbotapi.Chattable{tgbotapi.NewMessage(request.ChatID, text)}
}
