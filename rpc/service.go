package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "keybind.Binding"

// BindingServer is the server API of the keybind.Binding service.
type BindingServer interface {
	SayHello(context.Context, *HelloRequest) (*HelloReply, error)
	GetProfiles(context.Context, *Empty) (*ProfilesReply, error)
	GetActiveProfile(context.Context, *Empty) (*ProfileReply, error)
	SetActiveProfile(context.Context, *ProfileRef) (*Empty, error)
	AddProfile(context.Context, *AddProfileRequest) (*ProfileRef, error)
	RemoveProfile(context.Context, *ProfileRef) (*Empty, error)
	GetMaps(context.Context, *ProfileRef) (*MapsReply, error)
	GetMap(context.Context, *MapRef) (*MapReply, error)
	AddMap(context.Context, *MapRef) (*Empty, error)
	GetActiveMap(context.Context, *Empty) (*ActiveMapReply, error)
	SetActiveMap(context.Context, *ActiveMapRequest) (*Empty, error)
	GetActions(context.Context, *KeyRef) (*ActionsReply, error)
	AddAction(context.Context, *AddActionRequest) (*ActionIDReply, error)
	UpdateAction(context.Context, *UpdateActionRequest) (*Empty, error)
	RemoveAction(context.Context, *RemoveActionRequest) (*Empty, error)
	ClearActions(context.Context, *KeyRef) (*Empty, error)
	GetProfileLEDs(context.Context, *MapRef) (*LEDsMessage, error)
	SetProfileLEDs(context.Context, *LEDsMessage) (*Empty, error)
	GetMatrix(context.Context, *MapRef) (*MatrixMessage, error)
	SetMatrix(context.Context, *MatrixMessage) (*Empty, error)
	SetMacroMode(context.Context, *MacroModeRequest) (*MacroReply, error)
	SetMacroKey(context.Context, *MacroKeyRequest) (*MacroReply, error)
	GetStatus(context.Context, *Empty) (*StatusReply, error)
}

func unary[Req any, Rep any](name string, call func(BindingServer, context.Context, *Req) (*Rep, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BindingServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(BindingServer), ctx, req.(*Req))
			})
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BindingServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("SayHello", BindingServer.SayHello),
		unary("GetProfiles", BindingServer.GetProfiles),
		unary("GetActiveProfile", BindingServer.GetActiveProfile),
		unary("SetActiveProfile", BindingServer.SetActiveProfile),
		unary("AddProfile", BindingServer.AddProfile),
		unary("RemoveProfile", BindingServer.RemoveProfile),
		unary("GetMaps", BindingServer.GetMaps),
		unary("GetMap", BindingServer.GetMap),
		unary("AddMap", BindingServer.AddMap),
		unary("GetActiveMap", BindingServer.GetActiveMap),
		unary("SetActiveMap", BindingServer.SetActiveMap),
		unary("GetActions", BindingServer.GetActions),
		unary("AddAction", BindingServer.AddAction),
		unary("UpdateAction", BindingServer.UpdateAction),
		unary("RemoveAction", BindingServer.RemoveAction),
		unary("ClearActions", BindingServer.ClearActions),
		unary("GetProfileLEDs", BindingServer.GetProfileLEDs),
		unary("SetProfileLEDs", BindingServer.SetProfileLEDs),
		unary("GetMatrix", BindingServer.GetMatrix),
		unary("SetMatrix", BindingServer.SetMatrix),
		unary("SetMacroMode", BindingServer.SetMacroMode),
		unary("SetMacroKey", BindingServer.SetMacroKey),
		unary("GetStatus", BindingServer.GetStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "keybind/binding",
}

func RegisterBindingServer(s grpc.ServiceRegistrar, srv BindingServer) {
	s.RegisterService(&serviceDesc, srv)
}
