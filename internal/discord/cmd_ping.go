package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// PingCommand checks that both the bot and the calculator API respond
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check if the bot is alive",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		content := "Pong! 🏓"
		if err := client.Ping(context.Background()); err != nil {
			slog.Warn("API ping failed", "error", err)
			content = "Pong! 🏓 (calculator API unreachable)"
		}

		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
			},
		}); err != nil {
			slog.Error("Failed to respond to ping", "error", err)
		}
	}

	return cmd, handler
}
