package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
)

// Client calls the ruleset service with typed messages
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client over an existing connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// CreateRun starts a run
func (c *Client) CreateRun(ctx context.Context, req *CreateRunRequest, opts ...grpc.CallOption) (*RunResponse, error) {
	out := new(RunResponse)
	if err := c.invoke(ctx, MethodCreateRun, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRun loads a run
func (c *Client) GetRun(ctx context.Context, req *RunIDRequest, opts ...grpc.CallOption) (*RunResponse, error) {
	out := new(RunResponse)
	if err := c.invoke(ctx, MethodGetRun, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteRun removes a run
func (c *Client) DeleteRun(ctx context.Context, req *RunIDRequest, opts ...grpc.CallOption) (*DeleteRunResponse, error) {
	out := new(DeleteRunResponse)
	if err := c.invoke(ctx, MethodDeleteRun, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SetRuleset switches the ruleset
func (c *Client) SetRuleset(ctx context.Context, req *SetRulesetRequest, opts ...grpc.CallOption) (*RunResponse, error) {
	out := new(RunResponse)
	if err := c.invoke(ctx, MethodSetRuleset, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// EnterArea moves the player
func (c *Client) EnterArea(ctx context.Context, req *EnterAreaRequest, opts ...grpc.CallOption) (*EnterAreaResponse, error) {
	out := new(EnterAreaResponse)
	if err := c.invoke(ctx, MethodEnterArea, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// StartEncounter opens a wild battle
func (c *Client) StartEncounter(ctx context.Context, req *StartEncounterRequest, opts ...grpc.CallOption) (*StartEncounterResponse, error) {
	out := new(StartEncounterResponse)
	if err := c.invoke(ctx, MethodStartEncounter, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// QueueRelease marks a party slot for release
func (c *Client) QueueRelease(ctx context.Context, req *QueueReleaseRequest, opts ...grpc.CallOption) (*QueueReleaseResponse, error) {
	out := new(QueueReleaseResponse)
	if err := c.invoke(ctx, MethodQueueRelease, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ClearReleases empties the release queue
func (c *Client) ClearReleases(ctx context.Context, req *RunIDRequest, opts ...grpc.CallOption) (*RunResponse, error) {
	out := new(RunResponse)
	if err := c.invoke(ctx, MethodClearReleases, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// EndBattle reports a battle outcome
func (c *Client) EndBattle(ctx context.Context, req *EndBattleRequest, opts ...grpc.CallOption) (*EndBattleResponse, error) {
	out := new(EndBattleResponse)
	if err := c.invoke(ctx, MethodEndBattle, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEncounters reads the encounter journal
func (c *Client) ListEncounters(ctx context.Context, req *ListEncountersRequest, opts ...grpc.CallOption) (*ListEncountersResponse, error) {
	out := new(ListEncountersResponse)
	if err := c.invoke(ctx, MethodListEncounters, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, method string, req, out any, opts ...grpc.CallOption) error {
	in, err := encode(req)
	if err != nil {
		return err
	}

	reply := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, reply, opts...); err != nil {
		return errors.FromGRPCError(err)
	}

	if err := decodeReply(reply, out); err != nil {
		return errors.Wrapf(err, "failed to decode %s reply", method)
	}
	return nil
}
