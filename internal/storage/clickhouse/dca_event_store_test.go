package clickhouse_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"solana-dca-watch/internal/domain"
	"solana-dca-watch/internal/storage"
	chstore "solana-dca-watch/internal/storage/clickhouse"
	"solana-dca-watch/internal/storage/migrations"
)

// setupTestDB creates a ClickHouse container and applies the embedded
// migrations. Returns a cleanup function that must be called when done.
func setupTestDB(t *testing.T) (*chstore.Conn, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.1-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Application: Ready for connections").
				WithStartupTimeout(60*time.Second),
			wait.ForListeningPort("9000/tcp"),
		),
		Env: map[string]string{
			"CLICKHOUSE_DB":       "test",
			"CLICKHOUSE_USER":     "default",
			"CLICKHOUSE_PASSWORD": "",
		},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)

	dsn := fmt.Sprintf("clickhouse://%s:%s/test", host, port.Port())

	conn, err := chstore.NewConn(ctx, dsn)
	require.NoError(t, err)

	require.NoError(t, migrations.RunClickhouseMigrations(ctx, conn))

	cleanup := func() {
		conn.Close()
		_ = container.Terminate(ctx)
	}

	return conn, cleanup
}

func TestDcaEventStore_Insert(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := chstore.NewDcaEventStore(conn)
	ctx := context.Background()

	event := &domain.DcaEvent{
		TxSignature:      "sig1",
		User:             "user1",
		Side:             "buy",
		DepositMint:      "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
		DepositSymbol:    "USDC",
		TargetMint:       "AbcMint1111111111111111111111111111111111111",
		TargetSymbol:     "ABC",
		InAmount:         "250000000",
		InAmountPerCycle: "25000000",
		CycleFrequency:   3600,
		NumberOfCycles:   10,
		ETASeconds:       36000,
		CreatedAt:        time.Now().UnixMilli(),
	}

	require.NoError(t, store.Insert(ctx, event))

	var (
		side     string
		inAmount string
		cycles   int64
	)
	row := conn.QueryRow(ctx, "SELECT side, in_amount, number_of_cycles FROM dca_events WHERE tx_signature = 'sig1'")
	require.NoError(t, row.Scan(&side, &inAmount, &cycles))
	require.Equal(t, "buy", side)
	require.Equal(t, "250000000", inAmount)
	require.Equal(t, int64(10), cycles)
}

func TestDcaEventStore_Insert_Invalid(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := chstore.NewDcaEventStore(conn)
	ctx := context.Background()

	require.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
	require.ErrorIs(t, store.Insert(ctx, &domain.DcaEvent{}), storage.ErrInvalidInput)
}
