package discord

// Friendly message constants for Discord responses
const (
	MsgItemNotFound   = "❓ **Item Not Found**\nMaybe check the spelling?"
	MsgUnknownItem    = "❓ **Unknown Item**\nThat item has no recipe and is not a raw material."
	MsgCircularRecipe = "🔁 **Circular Recipe**\nThis item's recipe ends up requiring itself."
	MsgTooComplex     = "🌀 **Too Complex**\nThis recipe tree is too large to calculate."
	MsgListEmpty      = "🛒 **Your shopping list is empty.**\nAdd something with `/list-add`."
	MsgRateLimited    = "⏳ **Whoa there!**\nToo many requests, try again in a moment."

	MsgGenericError = "❌ Something went wrong."
	MsgAPIDown      = "Error connecting to the calculator service."
)

// Embed colors
const (
	ColorCost    = 0x3498db
	ColorList    = 0x2ecc71
	ColorWarning = 0xf39c12
)

// Discord rejects embed descriptions longer than this
const maxEmbedDescription = 4096
