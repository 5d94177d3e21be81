package discord

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// maxChoices is Discord's limit on autocomplete suggestions
const maxChoices = 25

// HandleAutocomplete routes autocomplete interactions to the appropriate handler
func HandleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	data := i.ApplicationCommandData()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	focused := getFocusedOptionValue(data.Options)

	var choices []*discordgo.ApplicationCommandOptionChoice
	switch data.Name {
	case "cost", "list-add":
		choices = catalogChoices(ctx, client, focused)
	case "list-remove":
		user := getInteractionUser(i)
		if user == nil {
			slog.Error("Failed to get user from autocomplete interaction")
			break
		}
		choices = listChoices(ctx, client, sessionFor(user), focused)
	default:
		slog.Warn("Unhandled autocomplete command", "command", data.Name)
		return
	}

	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	respondAutocomplete(s, i, choices)
}

func getFocusedOptionValue(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range options {
		if opt.Focused {
			return opt.StringValue()
		}
	}
	return ""
}

// catalogChoices suggests craftable items matching the typed prefix
func catalogChoices(ctx context.Context, client *APIClient, focused string) []*discordgo.ApplicationCommandOptionChoice {
	items, err := client.SearchItems(ctx, focused, maxChoices)
	if err != nil {
		slog.Error("Failed to search items for autocomplete", "error", err)
		return nil
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(items))
	for _, item := range items {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  item.Name,
			Value: item.Name,
		})
	}
	return choices
}

// listChoices suggests entries already on the user's shopping list
func listChoices(ctx context.Context, client *APIClient, session, focused string) []*discordgo.ApplicationCommandOptionChoice {
	list, err := client.GetList(ctx, session)
	if err != nil {
		if !IsSessionNotFound(err) {
			slog.Error("Failed to get list for autocomplete", "error", err)
		}
		return nil
	}

	needle := strings.ToLower(focused)
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, e := range list.Entries {
		if needle != "" && !strings.Contains(strings.ToLower(e.Item), needle) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  e.Item,
			Value: e.Item,
		})
		if len(choices) >= maxChoices {
			break
		}
	}
	return choices
}

func respondAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		slog.Error("Failed to respond to autocomplete", "error", err)
	}
}
