package rest

import (
	"leguru.net/keybindd/binding"
	"leguru.net/keybindd/profile"
)

type ErrorReply struct {
	Error string `json:"error"`
}

type CreateProfileRequest struct {
	Name       string `json:"name" binding:"required"`
	DefaultMap string `json:"default_map"`
}

type CreateMapRequest struct {
	Name string `json:"name" binding:"required"`
}

type ActiveProfileRequest struct {
	ProfileID *profile.ID `json:"profile_id" binding:"required"`
}

type ActiveMapRequest struct {
	Map string `json:"map" binding:"required"`
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

type ActionIDReply struct {
	ActionID int `json:"action_id"`
}

type MapReply struct {
	Name string      `json:"name"`
	Map  profile.Map `json:"map"`
}

type ActiveReply struct {
	Profile profile.ProfileInfo `json:"profile"`
	Map     string              `json:"map"`
}

type StatusReply struct {
	binding.Status
	Layers []profile.LayerReport `json:"layers"`
}
