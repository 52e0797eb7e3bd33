package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AgentTarik/banco-api/internal/api"
	"github.com/AgentTarik/banco-api/internal/events"
	"github.com/AgentTarik/banco-api/internal/kafka"
	"github.com/AgentTarik/banco-api/internal/ledger"
	"github.com/AgentTarik/banco-api/telemetry"

	_ "github.com/AgentTarik/banco-api/docs"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func registerCustomValidations(v *validator.Validate) {
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return ledger.ValidCPF(fl.Field().String())
	})
}

func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	log, _ := telemetry.NewLogger()
	defer log.Sync()

	telemetry.InitMetrics()

	// In memory ledger
	reg := ledger.New()

	// validator
	v := validator.New()
	registerCustomValidations(v)

	// Kafka is optional: nil producer means events are only logged
	producer := kafka.NewProducerFromEnv()
	if producer != nil {
		defer producer.Close()
	}
	schema, err := kafka.NewValidator()
	if err != nil {
		log.Fatal("schema validator", zap.Error(err))
	}

	// worker: queue 100
	var pub events.Publisher
	if producer != nil {
		pub = producer
	}
	worker := events.NewWorker(log, pub, schema, 100)

	// handlers with dependencies
	h := &api.Handlers{
		Log:          log,
		Ledger:       reg,
		V:            v,
		KafkaEnabled: producer != nil,
		Enqueue: func(e events.TransactionRecorded) {
			worker.Enqueue(e)
		},
	}

	// gin engine
	r := gin.New()
	r.Use(gin.Recovery())

	// middleware de log http simples
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
		)
	})

	// CORS para o front local (origem única, configurável)
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		r.Use(func(c *gin.Context) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
		})
	}

	r.Use(telemetry.PrometheusMiddleware())

	api.SetupRoutes(r, h)

	// inicia worker
	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("addr", srv.Addr))

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	cancel()
	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctxTimeout)
	log.Info("server stopped")
}
