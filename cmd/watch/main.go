package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"solana-dca-watch/internal/classify"
	"solana-dca-watch/internal/decode"
	"solana-dca-watch/internal/metadata"
	"solana-dca-watch/internal/notify"
	"solana-dca-watch/internal/observability"
	"solana-dca-watch/internal/schedule"
	"solana-dca-watch/internal/schema"
	"solana-dca-watch/internal/solana"
	"solana-dca-watch/internal/storage"
	chstore "solana-dca-watch/internal/storage/clickhouse"
	"solana-dca-watch/internal/storage/memory"
	"solana-dca-watch/internal/storage/migrations"
	pgstore "solana-dca-watch/internal/storage/postgres"
	redisstore "solana-dca-watch/internal/storage/redis"
	"solana-dca-watch/internal/watcher"
)

// Well-known mainnet addresses.
const (
	jupiterDCAProgram = "DCA265Vj8a9CEuX1eb1LWRnDT7uK6q1xMipnNyatn23M"
	usdcMint          = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	usdtMint          = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
)

func main() {
	rpcEndpoint := flag.String("rpc-endpoint", "https://api.mainnet-beta.solana.com", "Solana RPC HTTP endpoint")
	wsEndpoint := flag.String("ws-endpoint", "", "Solana WebSocket endpoint (required for -source ws)")
	source := flag.String("source", "poll", "Signature source: poll or ws")
	programID := flag.String("program", jupiterDCAProgram, "DCA program address to monitor")
	stableMints := flag.String("stable-mints", usdcMint+","+usdtMint, "Comma-separated stablecoin mint addresses")
	pollInterval := flag.Duration("poll-interval", 10*time.Second, "Delay between polling rounds")
	limit := flag.Int("limit", 1000, "Maximum signatures fetched per round")
	dedup := flag.String("dedup", "memory", "Signature dedup backend: memory, postgres, or redis")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (for -dedup postgres)")
	redisAddr := flag.String("redis-addr", "", "Redis address (for -dedup redis)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse DSN for event archiving (empty to disable)")
	telegramToken := flag.String("telegram-token", "", "Telegram bot token")
	telegramChat := flag.String("telegram-chat", "", "Telegram chat ID")
	dryRun := flag.Bool("dry-run", false, "Log alerts instead of sending them")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus metrics HTTP address (empty to disable)")

	flag.Parse()

	logger := log.New(os.Stdout, "[watch] ", log.LstdFlags|log.Lshortfile)

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", observability.Handler())
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})
			logger.Printf("Starting metrics server on %s", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil && err != http.ErrServerClosed {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
		}
	}()

	err := run(ctx, logger, options{
		rpcEndpoint:   *rpcEndpoint,
		wsEndpoint:    *wsEndpoint,
		source:        *source,
		programID:     *programID,
		stableMints:   splitList(*stableMints),
		pollInterval:  *pollInterval,
		limit:         *limit,
		dedup:         *dedup,
		postgresDSN:   *postgresDSN,
		redisAddr:     *redisAddr,
		clickhouseDSN: *clickhouseDSN,
		telegramToken: *telegramToken,
		telegramChat:  *telegramChat,
		dryRun:        *dryRun,
	})

	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Error: %v", err)
	}

	logger.Println("Shutdown complete")
}

type options struct {
	rpcEndpoint   string
	wsEndpoint    string
	source        string
	programID     string
	stableMints   []string
	pollInterval  time.Duration
	limit         int
	dedup         string
	postgresDSN   string
	redisAddr     string
	clickhouseDSN string
	telegramToken string
	telegramChat  string
	dryRun        bool
}

func run(ctx context.Context, logger *log.Logger, opts options) error {
	rpc := solana.NewHTTPClient(opts.rpcEndpoint)

	logger.Printf("Fetching published schema for program %s...", opts.programID)
	sch, err := schema.Fetch(ctx, rpc, opts.programID)
	if err != nil {
		return fmt.Errorf("fetch program schema: %w", err)
	}
	logger.Printf("Schema loaded: %d instructions", sch.Len())

	sigStore, cleanup, err := buildSignatureStore(ctx, logger, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	var archive storage.DcaEventStore
	if opts.clickhouseDSN != "" {
		conn, err := chstore.NewConn(ctx, opts.clickhouseDSN)
		if err != nil {
			return fmt.Errorf("connect clickhouse: %w", err)
		}
		defer conn.Close()
		if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
			return fmt.Errorf("clickhouse migrations: %w", err)
		}
		archive = chstore.NewDcaEventStore(conn)
		logger.Println("Event archiving enabled (ClickHouse)")
	}

	var notifier notify.Notifier
	switch {
	case opts.dryRun:
		notifier = notify.NewLogNotifier(logger)
		logger.Println("Dry run: alerts will be logged, not sent")
	case opts.telegramToken != "" && opts.telegramChat != "":
		notifier = notify.NewTelegram(opts.telegramToken, opts.telegramChat)
	default:
		return fmt.Errorf("no notifier configured: pass -telegram-token and -telegram-chat, or -dry-run")
	}

	meta := metadata.NewClient()
	classifier := classify.New(opts.stableMints, meta)
	decoder := decode.New(opts.programID, sch)

	w, err := watcher.New(watcher.Options{
		RPC:        rpc,
		Signatures: sigStore,
		Decoder:    decoder,
		Classifier: classifier,
		Schedule:   schedule.NewCalculator(),
		Notifier:   notifier,
		Archive:    archive,
		Logger:     logger,
		Config: watcher.Config{
			ProgramID:    opts.programID,
			PollInterval: opts.pollInterval,
			BatchLimit:   opts.limit,
		},
	})
	if err != nil {
		return err
	}

	switch opts.source {
	case "poll":
		logger.Printf("Polling %s every %v (limit %d)", opts.programID, opts.pollInterval, opts.limit)
		return w.Run(ctx)
	case "ws":
		if opts.wsEndpoint == "" {
			return fmt.Errorf("-ws-endpoint is required for -source ws")
		}
		ws, err := solana.NewWSClient(ctx, opts.wsEndpoint, nil)
		if err != nil {
			return fmt.Errorf("connect websocket: %w", err)
		}
		defer ws.Close()
		notifs, err := ws.SubscribeLogs(ctx, opts.programID)
		if err != nil {
			return fmt.Errorf("subscribe logs: %w", err)
		}
		logger.Printf("Subscribed to logs mentioning %s", opts.programID)
		return w.RunLive(ctx, notifs)
	default:
		return fmt.Errorf("unknown source: %s", opts.source)
	}
}

// buildSignatureStore constructs the configured dedup backend. The returned
// cleanup func closes any underlying connection.
func buildSignatureStore(ctx context.Context, logger *log.Logger, opts options) (storage.SignatureStore, func(), error) {
	switch opts.dedup {
	case "memory":
		logger.Println("Using in-memory signature dedup (single process, not durable)")
		return memory.NewSignatureStore(), func() {}, nil
	case "postgres":
		if opts.postgresDSN == "" {
			return nil, nil, fmt.Errorf("-postgres-dsn is required for -dedup postgres")
		}
		pool, err := pgstore.NewPool(ctx, opts.postgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		logger.Println("Using PostgreSQL signature dedup")
		return pgstore.NewSignatureStore(pool), pool.Close, nil
	case "redis":
		if opts.redisAddr == "" {
			return nil, nil, fmt.Errorf("-redis-addr is required for -dedup redis")
		}
		client, err := redisstore.Connect(ctx, opts.redisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Println("Using Redis signature dedup")
		return redisstore.NewSignatureStore(client), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown dedup backend: %s", opts.dedup)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
