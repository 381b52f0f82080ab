package observability

// Attribute is a key/value pair attached to a log record.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int creates an integer attribute.
func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Error creates an attribute holding an error message under the "error" key.
func Error(err error) Attribute {
	if err == nil {
		return Attribute{Key: "error", Value: ""}
	}
	return Attribute{Key: "error", Value: err.Error()}
}

// Observer receives leveled log records from the pipeline. Implementations
// must be safe for concurrent use; the pipeline may be driven from multiple
// goroutines, each with its own conversion context.
type Observer interface {
	Debug(msg string, attrs ...Attribute)
	Info(msg string, attrs ...Attribute)
	Warn(msg string, attrs ...Attribute)
	Error(msg string, attrs ...Attribute)
}

// Noop returns an Observer that discards everything.
func Noop() Observer { return noopObserver{} }

type noopObserver struct{}

func (noopObserver) Debug(string, ...Attribute) {}
func (noopObserver) Info(string, ...Attribute)  {}
func (noopObserver) Warn(string, ...Attribute)  {}
func (noopObserver) Error(string, ...Attribute) {}
