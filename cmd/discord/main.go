package main

import (
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/osse101/CraftCalc_Go/internal/config"
	"github.com/osse101/CraftCalc_Go/internal/discord"
	"github.com/osse101/CraftCalc_Go/internal/logger"
)

// DefaultWebhookPort is where the bot serves its own health endpoint
const DefaultWebhookPort = "8082"

// CommandFactory creates a Discord command and its handler.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	_ = godotenv.Load()

	logger.InitLogger(logger.NewConfig(
		os.Getenv("LOG_LEVEL"),
		os.Getenv("LOG_FORMAT"),
		"craftcalc-discord",
		os.Getenv("VERSION"),
		os.Getenv("ENVIRONMENT"),
		false,
	))

	warnings, err := config.ValidateEnvWithWarnings(config.RequiredDiscordEnvVars)
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn("Configuration warning", "detail", w)
	}

	cfg := discord.Config{
		Token:  os.Getenv("DISCORD_TOKEN"),
		AppID:  os.Getenv("DISCORD_APP_ID"),
		APIURL: os.Getenv("API_URL"),
		APIKey: os.Getenv("API_KEY"),
	}
	slog.Info("Configured API URL", "url", cfg.APIURL)
	if cfg.APIKey == "" {
		slog.Warn("API_KEY not set, requests fail if the API requires one")
	}

	bot, err := discord.New(cfg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	webhookPort := os.Getenv("DISCORD_WEBHOOK_PORT")
	if webhookPort == "" {
		webhookPort = DefaultWebhookPort
	}
	httpServer := discord.NewHTTPServer(webhookPort, bot)
	httpServer.Start()
	defer httpServer.Stop()

	registerCommands(bot, getCommandFactories())

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		// commands registered on a previous run keep working
		slog.Error("Failed to register commands", "error", err)
	}

	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// getCommandFactories returns every command the bot offers
func getCommandFactories() []CommandFactory {
	return []CommandFactory{
		discord.PingCommand,
		discord.CostCommand,

		// Shopping list
		discord.ListAddCommand,
		discord.ListRemoveCommand,
		discord.ListShowCommand,
		discord.ListClearCommand,
		discord.ListCalcCommand,
	}
}

func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		cmd, handler := factory()
		bot.Registry.Register(cmd, handler)
	}
}
