package rpc

import (
	"leguru.net/keybindd/binding"
	"leguru.net/keybindd/profile"
)

type Empty struct{}

type HelloRequest struct {
	Name string `json:"name"`
}

type HelloReply struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ProfileRef struct {
	ProfileID profile.ID `json:"profile_id"`
}

type ProfilesReply struct {
	Profiles []profile.ProfileInfo `json:"profiles"`
}

type ProfileReply struct {
	Profile profile.ProfileInfo `json:"profile"`
}

type AddProfileRequest struct {
	Name       string `json:"name"`
	DefaultMap string `json:"default_map"`
}

type MapsReply struct {
	Maps []string `json:"maps"`
}

type MapRef struct {
	ProfileID profile.ID `json:"profile_id"`
	Map       string     `json:"map"`
}

type MapReply struct {
	Name string      `json:"name"`
	Map  profile.Map `json:"map"`
}

type ActiveMapRequest struct {
	Map string `json:"map"`
}

type ActiveMapReply struct {
	ProfileID profile.ID `json:"profile_id"`
	Map       string     `json:"map"`
}

type KeyRef struct {
	ProfileID profile.ID `json:"profile_id"`
	Map       string     `json:"map"`
	Key       int        `json:"key"`
}

type ActionsReply struct {
	Actions []profile.Action `json:"actions"`
}

type AddActionRequest struct {
	KeyRef
	Action profile.Action `json:"action"`
}

type ActionIDReply struct {
	ActionID int `json:"action_id"`
}

type UpdateActionRequest struct {
	KeyRef
	ActionID int            `json:"action_id"`
	Action   profile.Action `json:"action"`
}

type RemoveActionRequest struct {
	KeyRef
	ActionID int `json:"action_id"`
}

type LEDsMessage struct {
	MapRef
	LEDs binding.LEDs `json:"leds"`
}

type MatrixMessage struct {
	MapRef
	Matrix profile.Matrix `json:"matrix"`
}

type MacroModeRequest struct {
	On bool `json:"on"`
}

type MacroKeyRequest struct {
	Key *int `json:"key"`
}

type MacroReply struct {
	On  bool `json:"on"`
	Key *int `json:"key,omitempty"`
}

type StatusReply struct {
	Status binding.Status        `json:"status"`
	Layers []profile.LayerReport `json:"layers"`
}
