package logger

// Level colors
const (
	errorColor = "\033[31m"
	infoColor  = "\033[32m"
	warnColor  = "\033[33m"
	colorReset = "\033[0m"
)

// Color constants for component prefixes
const (
	ColorGreen   = "\033[32m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
)
