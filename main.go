package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/dlimars/centralai/agent/contract"
	llmx "github.com/dlimars/centralai/agent/llm"
	orchestratorx "github.com/dlimars/centralai/agent/orchestrator"
	personax "github.com/dlimars/centralai/agent/persona"
	routerx "github.com/dlimars/centralai/agent/router"
	sessionx "github.com/dlimars/centralai/agent/session"
	toolx "github.com/dlimars/centralai/agent/tool"
	configx "github.com/dlimars/centralai/pkg/config"
	_ "github.com/dlimars/centralai/pkg/logger/autoload"
	openrouterx "github.com/dlimars/centralai/pkg/openrouter"
	"github.com/dlimars/centralai/service"
)

type AppConfig struct {
	SessionTTL  time.Duration `envconfig:"SESSION_TTL" split_words:"true" default:"30m"`
	TurnTimeout time.Duration `envconfig:"TURN_TIMEOUT" split_words:"true" default:"2m"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCfg := configx.MustNew[AppConfig]("APP")

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid model configuration")
	}

	routerModelCfg := llmCfg.RouterConfig()
	if err := openrouterx.CheckCredentials(ctx, openrouterx.NewClient(routerModelCfg)); err != nil {
		log.Warn().Err(err).Msg("provider credential check failed, chat turns may error")
	}

	dbCfg := configx.MustNew[service.DBConfig]("POSTGRES")
	db, err := service.NewDB(ctx, *dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("record store unavailable")
	}
	defer db.Close()

	customers := service.NewCustomerService(db, dbCfg.QueryTimeout)
	tools := toolx.NewRegistry(toolx.Deps{
		Customers: customers,
		Billing:   service.NewBillingService(db, customers, dbCfg.QueryTimeout),
		Plans:     service.NewPlanService(db, dbCfg.QueryTimeout),
		Tickets:   service.NewTicketService(db, dbCfg.QueryTimeout),
		Knowledge: service.NewKnowledgeService(),
	})

	routerModel, err := routerModelCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("build classifier model")
	}
	messageRouter, err := routerx.New(ctx, routerModel)
	if err != nil {
		log.Fatal().Err(err).Msg("build message router")
	}

	agents, err := personax.NewRegistry(ctx, personax.OpenRouterFactory(*llmCfg), tools)
	if err != nil {
		log.Fatal().Err(err).Msg("build agent registry")
	}

	redisCfg := configx.MustNew[sessionx.UpstashRedisConfig]("UPSTASH_REDIS")
	store := sessionx.Connect(ctx, *redisCfg, appCfg.SessionTTL)

	orchestrator, err := orchestratorx.New(store, messageRouter, agents, orchestratorx.Config{
		TurnTimeout: appCfg.TurnTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	runChat(ctx, orchestrator)
}

// runChat is a line-oriented chat loop over stdin, one session per process.
func runChat(ctx context.Context, orchestrator *orchestratorx.Orchestrator) {
	sessionID := uuid.NewString()
	fmt.Println("Central de Atendimento — digite sua mensagem (\"sair\" encerra)")
	fmt.Printf("sessão: %s\n", sessionID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "sair" || line == "exit" {
			break
		}

		envelope := orchestrator.Process(ctx, line, contractx.Context{
			contractx.CtxSessionID: sessionID,
		})
		out, err := json.MarshalIndent(envelope, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("marshal envelope")
			continue
		}
		fmt.Println(string(out))
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read stdin")
	}
	fmt.Println("Atendimento encerrado.")
}
