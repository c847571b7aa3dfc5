package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/flarexio/librarian"
	"github.com/flarexio/librarian/catalog"
	"github.com/flarexio/librarian/composer"
	"github.com/flarexio/librarian/embedding"
	"github.com/flarexio/librarian/persistence/jsonfile"

	mcpE "github.com/flarexio/librarian/mcp"
	httpT "github.com/flarexio/librarian/transport/http"
	natsT "github.com/flarexio/librarian/transport/nats"
)

func main() {
	cmd := &cli.Command{
		Name:  "librarian",
		Usage: "Librarian book-recommendation service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Path to the Librarian service",
			},
			&cli.StringFlag{
				Name:    "nats",
				Usage:   "NATS server URL",
				Value:   "wss://nats.flarex.io",
				Sources: cli.EnvVars("NATS_URL"),
			},
			&cli.StringFlag{
				Name:    "openai-api-key",
				Usage:   "OpenAI API key. If unset, the offline fallback embedder is used",
				Sources: cli.EnvVars("OPENAI_API_KEY"),
			},
			&cli.BoolFlag{
				Name:  "http",
				Usage: "Enable HTTP transport",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "http-addr",
				Usage: "HTTP server address",
				Value: ":8080",
			},
		},
		Action: run,
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err.Error())
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}

		path = filepath.Join(homeDir, ".flarex", "librarian")
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)

	f, err := os.Open(filepath.Join(path, "config.yaml"))
	if err != nil {
		return err
	}
	defer f.Close()

	var cfg librarian.Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return err
	}

	if key := cmd.String("openai-api-key"); key != "" {
		cfg.OpenAI.APIKey = key
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = filepath.Join(path, "embeddings.json")
	}

	books, err := catalog.NewSQLite(cfg.Catalog.DSN)
	if err != nil {
		return err
	}
	defer books.Close()

	store := jsonfile.NewStore(cfg.Store.Path)

	var (
		generator embedding.Generator
		chat      composer.ChatCompleter
	)

	if cfg.OpenAI.APIKey != "" {
		generator = embedding.NewOpenAIGenerator(
			cfg.OpenAI.BaseURL,
			cfg.OpenAI.APIKey,
			cfg.OpenAI.EmbeddingModel,
			cfg.OpenAI.Dimension,
			cfg.OpenAI.Timeout.Duration(),
		)

		chat = composer.NewOpenAIChat(
			cfg.OpenAI.BaseURL,
			cfg.OpenAI.APIKey,
			cfg.OpenAI.ChatModel,
			cfg.OpenAI.Temperature,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Timeout.Duration(),
		)
	} else {
		log.Warn("no OpenAI API key, using offline fallback embeddings")
		generator = embedding.NewLocalGenerator()
	}

	svc, err := librarian.NewService(books, store, generator, composer.New(chat))
	if err != nil {
		return err
	}
	defer svc.Close()

	svc = librarian.LoggingMiddleware(log)(svc)

	if err := svc.Initialize(ctx); err != nil {
		log.Error("initialization failed, will retry on first request", zap.Error(err))
	}

	endpoints := librarian.EndpointSet{
		Recommend:    librarian.RecommendEndpoint(svc),
		SearchBooks:  librarian.SearchBooksEndpoint(svc),
		RefreshIndex: librarian.RefreshIndexEndpoint(svc),
		Status:       librarian.StatusEndpoint(svc),
		GetBook:      librarian.GetBookEndpoint(svc),
	}

	natsURL := cmd.String("nats")
	natsCreds := filepath.Join(path, "user.creds")

	idBytes, err := os.ReadFile(filepath.Join(path, "id"))
	if err != nil {
		return err
	}

	// Add NATS Transport
	{
		edgeID := strings.TrimSpace(string(idBytes))

		nc, err := nats.Connect(natsURL,
			nats.Name("Librarian Server - "+edgeID),
			nats.UserCredentials(natsCreds),
		)

		if err != nil {
			return err
		}
		defer nc.Drain()

		srv, err := micro.AddService(nc, micro.Config{
			Name:    "librarian",
			Version: "1.0.0",
		})

		if err != nil {
			return err
		}
		defer srv.Stop()

		topic := "edges." + edgeID + ".librarian"

		root := srv.AddGroup(topic)
		natsT.AddEndpoints(root, endpoints)
	}

	httpEnabled := cmd.Bool("http")
	if httpEnabled {
		r := gin.Default()
		httpT.AddRouters(r, endpoints)

		endpoints := make(map[mcp.MCPMethod]mcpE.MCPEndpoint)
		endpoints[mcp.MethodInitialize] = mcpE.InitializeEndpoint(svc)
		endpoints[mcp.MethodPing] = mcpE.PingEndpoint(svc)
		endpoints[mcp.MethodToolsList] = mcpE.ListToolsEndpoint(svc)
		endpoints[mcp.MethodToolsCall] = mcpE.CallToolEndpoint(svc)
		httpT.AddStreamableRouters(r, endpoints)

		httpAddr := cmd.String("http-addr")
		go r.Run(httpAddr)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sign := <-quit

	log.Info("graceful shutdown", zap.String("signal", sign.String()))
	return nil
}
