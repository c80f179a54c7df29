package config

// Button identifies a physical controller input.
type Button int

const (
	ButtonNone Button = iota
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonLeftTrigger
	ButtonRightTrigger
	ButtonOptions
	ButtonMenu
	ButtonCount // Must be last - used for array sizing
)

var buttonNames = [ButtonCount]string{
	ButtonNone:          "none",
	ButtonA:             "A",
	ButtonB:             "B",
	ButtonX:             "X",
	ButtonY:             "Y",
	ButtonLeftShoulder:  "LeftShoulder",
	ButtonRightShoulder: "RightShoulder",
	ButtonLeftTrigger:   "LeftTrigger",
	ButtonRightTrigger:  "RightTrigger",
	ButtonOptions:       "Options",
	ButtonMenu:          "Menu",
}

func (b Button) String() string {
	if b < 0 || b >= ButtonCount {
		return "unknown"
	}
	return buttonNames[b]
}

// Stick identifies a directional input.
type Stick int

const (
	StickDPad Stick = iota
	StickLeft
	StickRight
)

// ActionKind is a discrete actor action triggered by a button.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionAttack
	ActionHide
	ActionSpawnObstacle
	ActionResetScene
	ActionCount // Must be last - used for array sizing
)

func (a ActionKind) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionHide:
		return "hide"
	case ActionSpawnObstacle:
		return "spawnObstacle"
	case ActionResetScene:
		return "resetScene"
	}
	return "none"
}

// DeviceProfile describes which physical inputs a controller has.
type DeviceProfile int

const (
	// ProfileExtended has every button, both sticks and a d-pad.
	ProfileExtended DeviceProfile = iota
	// ProfileMicro has a d-pad, A, X and Menu. Its X button is reported as B.
	ProfileMicro
)

// InputConfig holds the static button table and stick handling.
type InputConfig struct {
	Bindings       map[Button]ActionKind
	Profiles       map[DeviceProfile]DeviceLayout
	AnalogDeadzone float64
	InvertStickY   bool // sticks report +Y up, locomotion wants +Y toward the camera
}

// DeviceLayout lists the inputs present on a device profile.
type DeviceLayout struct {
	Buttons []Button
	Sticks  []Stick
	// Remap renames physical buttons before binding lookup.
	Remap map[Button]Button
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		AnalogDeadzone: 0.15,
		InvertStickY:   true,
		Bindings: map[Button]ActionKind{
			ButtonA:            ActionAttack,
			ButtonLeftTrigger:  ActionAttack,
			ButtonRightTrigger: ActionAttack,

			ButtonB:             ActionHide,
			ButtonLeftShoulder:  ActionHide,
			ButtonRightShoulder: ActionHide,

			ButtonX:       ActionSpawnObstacle,
			ButtonOptions: ActionSpawnObstacle,

			ButtonY:    ActionResetScene,
			ButtonMenu: ActionResetScene,
		},
		Profiles: map[DeviceProfile]DeviceLayout{
			ProfileExtended: {
				Buttons: []Button{
					ButtonA, ButtonB, ButtonX, ButtonY,
					ButtonLeftShoulder, ButtonRightShoulder,
					ButtonLeftTrigger, ButtonRightTrigger,
					ButtonOptions, ButtonMenu,
				},
				Sticks: []Stick{StickDPad, StickLeft, StickRight},
			},
			ProfileMicro: {
				Buttons: []Button{ButtonA, ButtonX, ButtonMenu},
				Sticks:  []Stick{StickDPad},
				Remap:   map[Button]Button{ButtonX: ButtonB},
			},
		},
	}
}
