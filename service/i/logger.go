package i

// Logger is the leveled logger services report through.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
