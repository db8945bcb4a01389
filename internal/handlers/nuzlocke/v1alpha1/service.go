package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "nuzlocke.api.v1alpha1.RulesetService"

// Method names of the ruleset service
const (
	MethodCreateRun      = "CreateRun"
	MethodGetRun         = "GetRun"
	MethodDeleteRun      = "DeleteRun"
	MethodSetRuleset     = "SetRuleset"
	MethodEnterArea      = "EnterArea"
	MethodStartEncounter = "StartEncounter"
	MethodQueueRelease   = "QueueRelease"
	MethodClearReleases  = "ClearReleases"
	MethodEndBattle      = "EndBattle"
	MethodListEncounters = "ListEncounters"
)

// RulesetServiceServer is the server API of the ruleset service
type RulesetServiceServer interface {
	CreateRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetRuleset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EnterArea(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StartEncounter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	QueueRelease(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearReleases(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEncounters(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterRulesetServiceServer registers srv on s
func RegisterRulesetServiceServer(s grpc.ServiceRegistrar, srv RulesetServiceServer) {
	s.RegisterService(&RulesetServiceDesc, srv)
}

// RulesetServiceDesc describes the ruleset service for grpc.Server
var RulesetServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RulesetServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MethodCreateRun, RulesetServiceServer.CreateRun),
		unaryMethod(MethodGetRun, RulesetServiceServer.GetRun),
		unaryMethod(MethodDeleteRun, RulesetServiceServer.DeleteRun),
		unaryMethod(MethodSetRuleset, RulesetServiceServer.SetRuleset),
		unaryMethod(MethodEnterArea, RulesetServiceServer.EnterArea),
		unaryMethod(MethodStartEncounter, RulesetServiceServer.StartEncounter),
		unaryMethod(MethodQueueRelease, RulesetServiceServer.QueueRelease),
		unaryMethod(MethodClearReleases, RulesetServiceServer.ClearReleases),
		unaryMethod(MethodEndBattle, RulesetServiceServer.EndBattle),
		unaryMethod(MethodListEncounters, RulesetServiceServer.ListEncounters),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "nuzlocke/api/v1alpha1/ruleset.proto",
}

type unaryFunc func(RulesetServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryMethod builds the method handler protoc-gen-go-grpc would generate
func unaryMethod(name string, call unaryFunc) grpc.MethodDesc {
	fullMethod := FullMethod(name)

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RulesetServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(RulesetServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FullMethod returns the invoke path of a method
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}
