package config

// Prism Central defaults.
const (
	// DefaultPort is the Prism Central API port.
	DefaultPort = 9440

	// DefaultCategoryName is the category key understood by Prism as the
	// network function provider selector.
	DefaultCategoryName = "network_function_provider"

	// DefaultCategoryValue identifies the sensor vendor.
	DefaultCategoryValue = "vectra_ai"

	// DefaultChainName is the name given to every created network function chain.
	DefaultChainName = "vectra_tap"

	// DefaultFunctionType is the network function type placed in created chains.
	DefaultFunctionType = "TAP"
)

// Environment variable names.
const (
	EnvHost     = "PC_IP"
	EnvUsername = "PC_USERNAME"
	EnvPassword = "PC_PASSWORD"

	EnvS3AccessKey = "NFSENSOR_S3_ACCESS_KEY"
	EnvS3SecretKey = "NFSENSOR_S3_SECRET_KEY"
)
