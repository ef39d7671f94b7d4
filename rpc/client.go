package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"leguru.net/keybindd/binding"
	"leguru.net/keybindd/profile"
)

// Client is a typed client of the keybind.Binding service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to a daemon. Extra options are appended to the defaults, which
// select the JSON codec and plaintext transport.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, in any, out any) error {
	return c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, in, out)
}

func (c *Client) SayHello(ctx context.Context, name string) (*HelloReply, error) {
	out := &HelloReply{}
	return out, c.invoke(ctx, "SayHello", &HelloRequest{Name: name}, out)
}

func (c *Client) GetProfiles(ctx context.Context) ([]profile.ProfileInfo, error) {
	out := &ProfilesReply{}
	err := c.invoke(ctx, "GetProfiles", &Empty{}, out)
	return out.Profiles, err
}

func (c *Client) GetActiveProfile(ctx context.Context) (profile.ProfileInfo, error) {
	out := &ProfileReply{}
	err := c.invoke(ctx, "GetActiveProfile", &Empty{}, out)
	return out.Profile, err
}

func (c *Client) SetActiveProfile(ctx context.Context, id profile.ID) error {
	return c.invoke(ctx, "SetActiveProfile", &ProfileRef{ProfileID: id}, &Empty{})
}

func (c *Client) AddProfile(ctx context.Context, name string, defaultMap string) (profile.ID, error) {
	out := &ProfileRef{}
	err := c.invoke(ctx, "AddProfile", &AddProfileRequest{Name: name, DefaultMap: defaultMap}, out)
	return out.ProfileID, err
}

func (c *Client) RemoveProfile(ctx context.Context, id profile.ID) error {
	return c.invoke(ctx, "RemoveProfile", &ProfileRef{ProfileID: id}, &Empty{})
}

func (c *Client) GetMaps(ctx context.Context, id profile.ID) ([]string, error) {
	out := &MapsReply{}
	err := c.invoke(ctx, "GetMaps", &ProfileRef{ProfileID: id}, out)
	return out.Maps, err
}

func (c *Client) GetMap(ctx context.Context, id profile.ID, name string) (profile.Map, error) {
	out := &MapReply{}
	err := c.invoke(ctx, "GetMap", &MapRef{ProfileID: id, Map: name}, out)
	return out.Map, err
}

func (c *Client) AddMap(ctx context.Context, id profile.ID, name string) error {
	return c.invoke(ctx, "AddMap", &MapRef{ProfileID: id, Map: name}, &Empty{})
}

func (c *Client) GetActiveMap(ctx context.Context) (*ActiveMapReply, error) {
	out := &ActiveMapReply{}
	return out, c.invoke(ctx, "GetActiveMap", &Empty{}, out)
}

func (c *Client) SetActiveMap(ctx context.Context, name string) error {
	return c.invoke(ctx, "SetActiveMap", &ActiveMapRequest{Map: name}, &Empty{})
}

func (c *Client) GetActions(ctx context.Context, key KeyRef) ([]profile.Action, error) {
	out := &ActionsReply{}
	err := c.invoke(ctx, "GetActions", &key, out)
	return out.Actions, err
}

func (c *Client) AddAction(ctx context.Context, key KeyRef, action profile.Action) (int, error) {
	out := &ActionIDReply{}
	err := c.invoke(ctx, "AddAction", &AddActionRequest{KeyRef: key, Action: action}, out)
	return out.ActionID, err
}

func (c *Client) UpdateAction(ctx context.Context, key KeyRef, actionID int, action profile.Action) error {
	return c.invoke(ctx, "UpdateAction", &UpdateActionRequest{KeyRef: key, ActionID: actionID, Action: action}, &Empty{})
}

func (c *Client) RemoveAction(ctx context.Context, key KeyRef, actionID int) error {
	return c.invoke(ctx, "RemoveAction", &RemoveActionRequest{KeyRef: key, ActionID: actionID}, &Empty{})
}

func (c *Client) ClearActions(ctx context.Context, key KeyRef) error {
	return c.invoke(ctx, "ClearActions", &key, &Empty{})
}

func (c *Client) GetProfileLEDs(ctx context.Context, ref MapRef) (binding.LEDs, error) {
	out := &LEDsMessage{}
	err := c.invoke(ctx, "GetProfileLEDs", &ref, out)
	return out.LEDs, err
}

func (c *Client) SetProfileLEDs(ctx context.Context, ref MapRef, leds binding.LEDs) error {
	return c.invoke(ctx, "SetProfileLEDs", &LEDsMessage{MapRef: ref, LEDs: leds}, &Empty{})
}

func (c *Client) GetMatrix(ctx context.Context, ref MapRef) (profile.Matrix, error) {
	out := &MatrixMessage{}
	err := c.invoke(ctx, "GetMatrix", &ref, out)
	return out.Matrix, err
}

func (c *Client) SetMatrix(ctx context.Context, ref MapRef, matrix profile.Matrix) error {
	return c.invoke(ctx, "SetMatrix", &MatrixMessage{MapRef: ref, Matrix: matrix}, &Empty{})
}

func (c *Client) SetMacroMode(ctx context.Context, on bool) (*MacroReply, error) {
	out := &MacroReply{}
	return out, c.invoke(ctx, "SetMacroMode", &MacroModeRequest{On: on}, out)
}

func (c *Client) SetMacroKey(ctx context.Context, key *int) (*MacroReply, error) {
	out := &MacroReply{}
	return out, c.invoke(ctx, "SetMacroKey", &MacroKeyRequest{Key: key}, out)
}

func (c *Client) GetStatus(ctx context.Context) (*StatusReply, error) {
	out := &StatusReply{}
	return out, c.invoke(ctx, "GetStatus", &Empty{}, out)
}
