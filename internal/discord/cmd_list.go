package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// ListAddCommand adds an item to the caller's shopping list
func ListAddCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "list-add",
		Description: "Add an item to your shopping list",
		Options: []*discordgo.ApplicationCommandOption{
			itemOption("Item to add (start typing to search)"),
			quantityOption(),
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		item, quantity := itemAndQuantity(i)

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		list, err := client.AddListItem(ctx, sessionFor(user), item, quantity)
		if err != nil {
			slog.Error("Failed to add list item", "user", user.ID, "item", item, "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		title := fmt.Sprintf("🛒 Added %d × %s", quantity, item)
		sendEmbed(s, i, createEmbed(title, formatList(list), ColorList, ""))
	}

	return cmd, handler
}

// ListRemoveCommand drops an item from the caller's shopping list
func ListRemoveCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "list-remove",
		Description: "Remove an item from your shopping list",
		Options: []*discordgo.ApplicationCommandOption{
			itemOption("Item to remove"),
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		item, _ := itemAndQuantity(i)

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		list, err := client.RemoveListItem(ctx, sessionFor(user), item)
		if err != nil {
			slog.Error("Failed to remove list item", "user", user.ID, "item", item, "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendEmbed(s, i, createEmbed("🗑️ Removed "+item, formatList(list), ColorList, ""))
	}

	return cmd, handler
}

// ListShowCommand displays the caller's shopping list
func ListShowCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "list-show",
		Description: "Show your shopping list",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		list, err := client.GetList(ctx, sessionFor(user))
		if err != nil && !IsSessionNotFound(err) {
			slog.Error("Failed to get list", "user", user.ID, "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendEmbed(s, i, createEmbed("🛒 Shopping List", formatList(list), ColorList, ""))
	}

	return cmd, handler
}

// ListClearCommand empties the caller's shopping list
func ListClearCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "list-clear",
		Description: "Empty your shopping list",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		if err := client.ClearList(ctx, sessionFor(user)); err != nil && !IsSessionNotFound(err) {
			slog.Error("Failed to clear list", "user", user.ID, "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendEmbed(s, i, createEmbed("🧹 Shopping List Cleared", MsgListEmpty, ColorList, ""))
	}

	return cmd, handler
}

// ListCalcCommand totals the raw materials for the caller's shopping list
func ListCalcCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "list-calc",
		Description: "Total the raw materials for your shopping list",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		res, err := client.CalculateList(ctx, sessionFor(user))
		if IsSessionNotFound(err) {
			sendEmbed(s, i, createEmbed("🛒 Shopping List", MsgListEmpty, ColorList, ""))
			return
		}
		if err != nil {
			slog.Error("Failed to calculate list", "user", user.ID, "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendEmbed(s, i, calculationEmbed("🧮 Shopping List Materials", res))
	}

	return cmd, handler
}
