package config

import "time"

const (
	DefaultPort = 8080

	// Catalog file paths
	DefaultRecipesPath      = "configs/recipes.json"
	DefaultRawMaterialsPath = "configs/raw_materials.json"

	DefaultSessionCapacity = 10000
	DefaultSessionTTL      = 24 * time.Hour
)
