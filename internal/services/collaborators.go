package services

// Notifier delivers a notification to a user. Delivery is fire-and-forget:
// implementations must never block the calling operation or surface delivery
// failures into its result.
type Notifier interface {
	Notify(userID uint64, message string)
}

// Broadcaster fans an event out to already-connected listeners of a company
// room or a user room. A missed live delivery is acceptable; the message log
// stays the durable source of truth.
type Broadcaster interface {
	ToCompany(companyID uint64, event string, payload interface{})
	ToUser(userID uint64, event string, payload interface{})
}

// NopNotifier discards notifications; used where delivery is not wired.
type NopNotifier struct{}

func (NopNotifier) Notify(uint64, string) {}

// NopBroadcaster discards broadcasts.
type NopBroadcaster struct{}

func (NopBroadcaster) ToCompany(uint64, string, interface{}) {}

func (NopBroadcaster) ToUser(uint64, string, interface{}) {}
