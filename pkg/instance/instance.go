package instance

import "github.com/angelmondragon/storefront-backend/pkg/env"

const defaultID = "local"

// GetID names the running process for logs and lock tokens.
// STOREFRONT_INSTANCE_ID wins over the container HOSTNAME.
func GetID() string {
	return env.First(defaultID, "STOREFRONT_INSTANCE_ID", "HOSTNAME")
}
