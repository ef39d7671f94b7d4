package rpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *Server) GetProfiles(_ context.Context, _ *Empty) (*ProfilesReply, error) {
	return &ProfilesReply{Profiles: s.manager.ListProfiles()}, nil
}

func (s *Server) GetActiveProfile(_ context.Context, _ *Empty) (*ProfileReply, error) {
	return &ProfileReply{Profile: s.manager.ActiveProfile()}, nil
}

func (s *Server) SetActiveProfile(_ context.Context, req *ProfileRef) (*Empty, error) {
	if err := s.manager.SetActiveProfile(req.ProfileID); err != nil {
		return nil, statusError(err, "Failed to activate profile")
	}
	return &Empty{}, nil
}

func (s *Server) AddProfile(_ context.Context, req *AddProfileRequest) (*ProfileRef, error) {
	id, err := s.manager.AddProfile(req.Name, req.DefaultMap)
	if err != nil {
		return nil, statusError(err, "Failed to add profile")
	}
	return &ProfileRef{ProfileID: id}, nil
}

func (s *Server) RemoveProfile(_ context.Context, req *ProfileRef) (*Empty, error) {
	if err := s.manager.RemoveProfile(req.ProfileID); err != nil {
		return nil, statusError(err, "Failed to remove profile")
	}
	return &Empty{}, nil
}

func (s *Server) GetMaps(_ context.Context, req *ProfileRef) (*MapsReply, error) {
	maps, err := s.manager.ListMaps(req.ProfileID)
	if err != nil {
		return nil, statusError(err, "Failed to list maps")
	}
	return &MapsReply{Maps: maps}, nil
}

func (s *Server) GetMap(_ context.Context, req *MapRef) (*MapReply, error) {
	m, err := s.manager.GetMap(req.ProfileID, req.Map)
	if err != nil {
		return nil, statusError(err, "Failed to get map")
	}
	return &MapReply{Name: req.Map, Map: m}, nil
}

func (s *Server) AddMap(_ context.Context, req *MapRef) (*Empty, error) {
	if err := s.manager.AddMap(req.ProfileID, req.Map); err != nil {
		return nil, statusError(err, "Failed to add map")
	}
	return &Empty{}, nil
}

func (s *Server) GetActiveMap(_ context.Context, _ *Empty) (*ActiveMapReply, error) {
	session := s.manager.Session()
	return &ActiveMapReply{ProfileID: session.ProfileID, Map: session.MapName}, nil
}

func (s *Server) SetActiveMap(_ context.Context, req *ActiveMapRequest) (*Empty, error) {
	if err := s.manager.SetActiveMap(req.Map); err != nil {
		return nil, statusError(err, "Failed to activate map")
	}
	return &Empty{}, nil
}

func (s *Server) GetActions(_ context.Context, req *KeyRef) (*ActionsReply, error) {
	actions, err := s.manager.GetActions(req.ProfileID, req.Map, req.Key)
	if err != nil {
		return nil, statusError(err, "Failed to get actions")
	}
	return &ActionsReply{Actions: actions}, nil
}

func (s *Server) AddAction(_ context.Context, req *AddActionRequest) (*ActionIDReply, error) {
	id, err := s.manager.AddAction(req.ProfileID, req.Map, req.Key, req.Action)
	if err != nil {
		return nil, statusError(err, "Failed to add action")
	}
	return &ActionIDReply{ActionID: id}, nil
}

func (s *Server) UpdateAction(_ context.Context, req *UpdateActionRequest) (*Empty, error) {
	if err := s.manager.UpdateAction(req.ProfileID, req.Map, req.Key, req.ActionID, req.Action); err != nil {
		return nil, statusError(err, "Failed to update action")
	}
	return &Empty{}, nil
}

func (s *Server) RemoveAction(_ context.Context, req *RemoveActionRequest) (*Empty, error) {
	if err := s.manager.RemoveAction(req.ProfileID, req.Map, req.Key, req.ActionID); err != nil {
		return nil, statusError(err, "Failed to remove action")
	}
	return &Empty{}, nil
}

func (s *Server) ClearActions(_ context.Context, req *KeyRef) (*Empty, error) {
	if err := s.manager.ClearActions(req.ProfileID, req.Map, req.Key); err != nil {
		return nil, statusError(err, "Failed to clear actions")
	}
	return &Empty{}, nil
}

func (s *Server) GetProfileLEDs(_ context.Context, req *MapRef) (*LEDsMessage, error) {
	leds, err := s.manager.GetProfileLEDs(req.ProfileID, req.Map)
	if err != nil {
		return nil, statusError(err, "Failed to get profile LEDs")
	}
	return &LEDsMessage{MapRef: *req, LEDs: leds}, nil
}

func (s *Server) SetProfileLEDs(_ context.Context, req *LEDsMessage) (*Empty, error) {
	if err := s.manager.SetProfileLEDs(req.ProfileID, req.Map, req.LEDs); err != nil {
		return nil, statusError(err, "Failed to set profile LEDs")
	}
	return &Empty{}, nil
}

func (s *Server) GetMatrix(_ context.Context, req *MapRef) (*MatrixMessage, error) {
	matrix, err := s.manager.GetMatrix(req.ProfileID, req.Map)
	if err != nil {
		return nil, statusError(err, "Failed to get matrix")
	}
	return &MatrixMessage{MapRef: *req, Matrix: matrix}, nil
}

func (s *Server) SetMatrix(_ context.Context, req *MatrixMessage) (*Empty, error) {
	if req.Matrix == nil {
		return nil, status.Errorf(codes.InvalidArgument, "Matrix is missing")
	}
	if err := s.manager.SetMatrix(req.ProfileID, req.Map, req.Matrix); err != nil {
		return nil, statusError(err, "Failed to set matrix")
	}
	return &Empty{}, nil
}

func (s *Server) SetMacroMode(_ context.Context, req *MacroModeRequest) (*MacroReply, error) {
	if err := s.manager.SetMacroMode(req.On); err != nil {
		return nil, statusError(err, "Failed to set macro mode")
	}
	on, key := s.manager.MacroMode()
	return &MacroReply{On: on, Key: key}, nil
}

func (s *Server) SetMacroKey(_ context.Context, req *MacroKeyRequest) (*MacroReply, error) {
	if err := s.manager.SetMacroKey(req.Key); err != nil {
		return nil, statusError(err, "Failed to set macro key")
	}
	on, key := s.manager.MacroMode()
	return &MacroReply{On: on, Key: key}, nil
}

func (s *Server) GetStatus(_ context.Context, _ *Empty) (*StatusReply, error) {
	return &StatusReply{Status: s.manager.Status(), Layers: s.manager.LayerReports()}, nil
}
