package sfx

import "lunarfolio/internal/sim"

// ForEvent maps a simulation event to its effect. Ring reveals and panel
// hides are silent.
func ForEvent(e sim.Event) (Kind, bool) {
	switch e.Type {
	case sim.EventVehicleEntered:
		return Enter, true
	case sim.EventVehicleExited:
		return Exit, true
	case sim.EventEnterRejected:
		return Reject, true
	case sim.EventJumped:
		return Jump, true
	case sim.EventLanded:
		return Land, true
	case sim.EventCameraMode:
		return CameraSwitch, true
	case sim.EventPanelShown:
		if e.Panel == nil {
			return 0, false
		}
		switch e.Panel.Kind {
		case sim.PanelInfo:
			return RevealInfo, true
		case sim.PanelCuriosity:
			return RevealCuriosity, true
		}
	}
	return 0, false
}
