package rpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/xtding233/breeding-backend/internal/breed"
)

func startServer(t *testing.T, probs breed.ProbabilityConfig) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	b := breed.NewBreeder(breed.StaticProbabilities(probs), breed.NewSeededRNG(1), nil)
	srv := NewWithListener(lis, b, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	conn, err := grpc.NewClient(
		"passthrough:///bufconn",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return conn
}

func TestResolve_Breakthrough(t *testing.T) {
	conn := startServer(t, breed.ProbabilityConfig{CrossTierBreakthroughChance: 1})
	client := NewClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := client.Resolve(ctx, "A", "e")
	require.NoError(t, err)

	fields := out.GetFields()
	assert.Equal(t, "F", fields["result"].GetStringValue())
	assert.Equal(t, float64(4), fields["tier"].GetNumberValue())
	assert.Equal(t, "cross_tier", fields["branch"].GetStringValue())
	assert.True(t, fields["advanced"].GetBoolValue())
	require.Len(t, fields["pool"].GetListValue().GetValues(), 1)
}

func TestResolve_UnknownColor(t *testing.T) {
	conn := startServer(t, breed.DefaultProbabilities())
	client := NewClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := client.Resolve(ctx, "A", "Z")
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Odds(ctx, "", "A")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestOdds(t *testing.T) {
	conn := startServer(t, breed.ProbabilityConfig{CrossTierBreakthroughChance: 0})
	client := NewClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := client.Odds(ctx, "B", "C")
	require.NoError(t, err)

	colors := out.GetFields()["colors"].GetStructValue().GetFields()
	require.Len(t, colors, 4)
	for _, c := range []string{"A", "B", "C", "D"} {
		assert.InDelta(t, 0.25, colors[c].GetNumberValue(), 1e-9, c)
	}
	tiers := out.GetFields()["tiers"].GetStructValue().GetFields()
	assert.InDelta(t, 0.5, tiers["1"].GetNumberValue(), 1e-9)
	assert.InDelta(t, 0.5, tiers["2"].GetNumberValue(), 1e-9)
}

func TestHealth(t *testing.T) {
	conn := startServer(t, breed.DefaultProbabilities())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
}
