package cli

const (
	FlagHome   = "home"
	FlagFormat = "format"
	FlagPolicy = "policy"
	FlagBinary = "binary"
)
