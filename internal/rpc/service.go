// Package rpc exposes breeding resolution over gRPC.
//
// Messages are google.protobuf.Struct values so the service needs no
// generated code:
//
//	Resolve: {first: "A", second: "E"} -> {result, tier, branch, advanced, pool}
//	Odds:    {first: "A", second: "E"} -> {colors: {A: 0.16, ...}, tiers: {"1": 0.32, ...}, advance_chance}
package rpc

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/breeding-backend/internal/breed"
)

const (
	ServiceName   = "breeding.v1.BreedingService"
	ResolveMethod = "/" + ServiceName + "/Resolve"
	OddsMethod    = "/" + ServiceName + "/Odds"
	tracerName    = "github.com/xtding233/breeding-backend/internal/rpc"
	fieldFirst    = "first"
	fieldSecond   = "second"
)

// Breeder is what the service needs from the resolution core.
type Breeder interface {
	Outcome(first, second breed.Color) breed.Outcome
	Probabilities() breed.ProbabilityConfig
}

// BreedingServer is the server API for the breeding service.
type BreedingServer interface {
	Resolve(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Odds(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// Service implements BreedingServer.
type Service struct {
	breeder Breeder
}

func NewService(b Breeder) *Service {
	return &Service{breeder: b}
}

func (s *Service) Resolve(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	first, second, err := parentsFrom(in)
	if err != nil {
		return nil, err
	}
	_, span := otel.Tracer(tracerName).Start(ctx, "breed.Resolve")
	defer span.End()

	out := s.breeder.Outcome(first, second)
	span.SetAttributes(
		attribute.String("breed.first", first.String()),
		attribute.String("breed.second", second.String()),
		attribute.String("breed.branch", string(out.Branch)),
		attribute.Bool("breed.advanced", out.Advanced),
		attribute.String("breed.result", out.Result.String()),
	)

	pool := make([]any, len(out.Pool))
	for i, c := range out.Pool {
		pool[i] = c.String()
	}
	resp, err := structpb.NewStruct(map[string]any{
		"result":   out.Result.String(),
		"tier":     int(breed.TierOf(out.Result)),
		"branch":   string(out.Branch),
		"advanced": out.Advanced,
		"pool":     pool,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode outcome: %v", err)
	}
	return resp, nil
}

func (s *Service) Odds(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	first, second, err := parentsFrom(in)
	if err != nil {
		return nil, err
	}
	d := breed.Odds(first, second, s.breeder.Probabilities())

	colors := make(map[string]any, len(d.Colors))
	for c, p := range d.Colors {
		colors[c.String()] = p
	}
	tiers := make(map[string]any, len(d.Tiers))
	for t, p := range d.Tiers {
		tiers[strconv.Itoa(int(t))] = p
	}
	resp, err := structpb.NewStruct(map[string]any{
		"colors":         colors,
		"tiers":          tiers,
		"advance_chance": d.AdvanceChance,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode odds: %v", err)
	}
	return resp, nil
}

func parentsFrom(in *structpb.Struct) (breed.Color, breed.Color, error) {
	fields := in.GetFields()
	first, err := breed.ParseColor(fields[fieldFirst].GetStringValue())
	if err != nil {
		return 0, 0, status.Errorf(codes.InvalidArgument, "%s: %v", fieldFirst, err)
	}
	second, err := breed.ParseColor(fields[fieldSecond].GetStringValue())
	if err != nil {
		return 0, 0, status.Errorf(codes.InvalidArgument, "%s: %v", fieldSecond, err)
	}
	return first, second, nil
}

// RegisterBreedingServer registers srv on s.
func RegisterBreedingServer(s grpc.ServiceRegistrar, srv BreedingServer) {
	s.RegisterService(&serviceDesc, srv)
}

func unaryHandler(method string, call func(BreedingServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BreedingServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BreedingServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BreedingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Resolve", Handler: unaryHandler(ResolveMethod, BreedingServer.Resolve)},
		{MethodName: "Odds", Handler: unaryHandler(OddsMethod, BreedingServer.Odds)},
	},
	Streams: []grpc.StreamDesc{},
}

// Client calls the breeding service over conn.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) Resolve(ctx context.Context, first, second string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ResolveMethod, first, second, opts...)
}

func (c *Client) Odds(ctx context.Context, first, second string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, OddsMethod, first, second, opts...)
}

func (c *Client) invoke(ctx context.Context, method, first, second string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]any{fieldFirst: first, fieldSecond: second})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
