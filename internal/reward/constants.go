package reward

// Log messages
const (
	LogMsgRewardSampled    = "Mystery reward sampled"
	LogMsgFallbackTemplate = "No template for sampled type/rarity, using fallback"
	LogMsgBoxExpanded      = "Mystery box expanded"
)

// Error messages
const (
	ErrMsgEmptyCatalog    = "reward catalog has no templates"
	ErrMsgNoFallback      = "reward catalog has no usable fallback template"
	ErrMsgNilRandomSource = "random source must not be nil"
)
