package converter

// Notifier receives observations made during a walk that are not
// messages, such as elements no rule handled.
type Notifier interface {
	Notify(event any)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(event any)

// Notify implements Notifier.
func (f NotifierFunc) Notify(event any) { f(event) }

// NopNotifier discards every event. It is the default.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(any) {}

// LogNotifier writes every event to a Logger at debug level.
type LogNotifier struct {
	Logger Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(event any) {
	if n.Logger == nil {
		return
	}
	n.Logger.Debug("conversion event", "event", event)
}

// UnhandledElement is sent for an element outside the camunda namespace
// that no rule visited.
type UnhandledElement struct {
	// Element is the element in "prefix:name#id" form.
	Element string
	// Path is the element's position in the document.
	Path string
}

var (
	_ Notifier = NotifierFunc(nil)
	_ Notifier = NopNotifier{}
	_ Notifier = LogNotifier{}
)
