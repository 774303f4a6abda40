package sim

import "strings"

// Action is a logical control independent of the physical key.
type Action int

const (
	ActionForward Action = iota
	ActionBack
	ActionLeft
	ActionRight
	ActionJump
	ActionToggleVehicle
	ActionToggleCamera
	actionCount
)

var actionNames = [actionCount]string{
	ActionForward:       "forward",
	ActionBack:          "back",
	ActionLeft:          "left",
	ActionRight:         "right",
	ActionJump:          "jump",
	ActionToggleVehicle: "toggle-vehicle",
	ActionToggleCamera:  "toggle-camera",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// DefaultBindings maps lowercase key names to actions. Arrow keys are
// synonyms for WASD.
var DefaultBindings = map[string]Action{
	"w":          ActionForward,
	"arrowup":    ActionForward,
	"s":          ActionBack,
	"arrowdown":  ActionBack,
	"a":          ActionLeft,
	"arrowleft":  ActionLeft,
	"d":          ActionRight,
	"arrowright": ActionRight,
	"space":      ActionJump,
	" ":          ActionJump,
	"e":          ActionToggleVehicle,
	"c":          ActionToggleCamera,
}

// Keys is the held-key set plus one-shot latches. Hosts call KeyDown/KeyUp
// as events arrive; the frame loop samples Held and drains latches with
// Consume, so a key held across many frames fires its one-shot once.
type Keys struct {
	bindings map[string]Action
	held     map[string]bool
	latched  [actionCount]bool
}

func NewKeys(bindings map[string]Action) *Keys {
	if bindings == nil {
		bindings = DefaultBindings
	}
	return &Keys{
		bindings: bindings,
		held:     make(map[string]bool),
	}
}

// NormalizeKey lowercases a key name.
func NormalizeKey(name string) string {
	if name == " " {
		return name
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// KeyDown records a press. Repeats while already held do not re-latch.
func (k *Keys) KeyDown(name string) {
	name = NormalizeKey(name)
	if k.held[name] {
		return
	}
	k.held[name] = true
	if a, ok := k.bindings[name]; ok {
		k.latched[a] = true
	}
}

func (k *Keys) KeyUp(name string) {
	delete(k.held, NormalizeKey(name))
}

// IsDown reports whether the named key is currently held.
func (k *Keys) IsDown(name string) bool {
	return k.held[NormalizeKey(name)]
}

// Held reports whether any key bound to a is held.
func (k *Keys) Held(a Action) bool {
	for name := range k.held {
		if b, ok := k.bindings[name]; ok && b == a {
			return true
		}
	}
	return false
}

// Consume returns and clears the one-shot latch for a.
func (k *Keys) Consume(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	v := k.latched[a]
	k.latched[a] = false
	return v
}

// Reset releases every key and clears latches (e.g. on focus loss).
func (k *Keys) Reset() {
	for name := range k.held {
		delete(k.held, name)
	}
	k.latched = [actionCount]bool{}
}
