package sim

type EventType int

const (
	EventVehicleEntered EventType = iota
	EventVehicleExited
	EventEnterRejected
	EventJumped
	EventLanded
	EventPanelShown
	EventPanelHidden
	EventCameraMode
)

var eventNames = map[EventType]string{
	EventVehicleEntered: "vehicle-entered",
	EventVehicleExited:  "vehicle-exited",
	EventEnterRejected:  "enter-rejected",
	EventJumped:         "jumped",
	EventLanded:         "landed",
	EventPanelShown:     "panel-shown",
	EventPanelHidden:    "panel-hidden",
	EventCameraMode:     "camera-mode",
}

func (t EventType) String() string {
	if s, ok := eventNames[t]; ok {
		return s
	}
	return "unknown"
}

type Event struct {
	Type     EventType
	Position Vec3
	Frame    uint64
	Panel    *Panel     // panel events only
	Mode     CameraMode // camera events only
	Distance float64    // enter-rejected: avatar to vehicle
}

type EventHandler func(Event)

// EventBus delivers events synchronously on the frame loop.
type EventBus struct {
	handlers map[EventType][]EventHandler
	all      []EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	eb.all = append(eb.all, fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
	for _, fn := range eb.all {
		fn(e)
	}
}
