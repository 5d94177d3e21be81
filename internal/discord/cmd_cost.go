package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CraftCalc_Go/internal/handler"
)

// commandTimeout bounds API calls made while handling one interaction
const commandTimeout = 15 * time.Second

var minQuantity = 1.0

func itemOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         "item",
		Description:  description,
		Required:     true,
		Autocomplete: true,
	}
}

func quantityOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "quantity",
		Description: "Quantity (default: 1)",
		Required:    false,
		MinValue:    &minQuantity,
	}
}

// itemAndQuantity reads the item and optional quantity options
func itemAndQuantity(i *discordgo.InteractionCreate) (string, int) {
	opts := optionMap(i)
	item := ""
	if opt, ok := opts["item"]; ok {
		item = opt.StringValue()
	}
	quantity := 1
	if opt, ok := opts["quantity"]; ok {
		quantity = int(opt.IntValue())
	}
	return item, quantity
}

// CostCommand shows the raw materials needed to craft an item
func CostCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "cost",
		Description: "Show the raw materials needed to craft an item",
		Options: []*discordgo.ApplicationCommandOption{
			itemOption("Item to craft (start typing to search)"),
			quantityOption(),
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		item, quantity := itemAndQuantity(i)

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		res, err := client.Calculate(ctx, item, quantity)
		if err != nil {
			slog.Error("Failed to calculate cost", "item", item, "quantity", quantity, "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		title := fmt.Sprintf("🧮 Cost of %d × %s", quantity, item)
		sendEmbed(s, i, calculationEmbed(title, res))
	}

	return cmd, handler
}

// calculationEmbed renders a calculation, flagging partial or warned results
func calculationEmbed(title string, res *handler.CalculationResponse) *discordgo.MessageEmbed {
	color := ColorCost
	if res.Partial || len(res.Warnings) > 0 {
		color = ColorWarning
	}
	return createEmbed(title, formatMaterials(res.Materials, res.Warnings), color,
		fmt.Sprintf("%s • %d steps", FooterCraftCalc, res.Steps))
}
