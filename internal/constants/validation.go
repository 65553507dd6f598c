package constants

// Field Length Limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 100
	MinNameLength     = 2
	MaxNameLength     = 50
	MaxEmailLength    = 255
	MaxTitleLength    = 300
)

// Mobile numbers are kept as plain digit strings, E.164 without the plus.
const (
	MinMobileDigits = 7
	MaxMobileDigits = 15
)
