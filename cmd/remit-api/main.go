package main

import (
	// Go Internal Packages
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	// Local Packages
	api "remit-api/api"
	cipherpkg "remit-api/cipher"
	config "remit-api/config"
	events "remit-api/events"
	helpers "remit-api/helpers"
	mongodb "remit-api/repositories/mongodb"
	redisrepo "remit-api/repositories/redis"
	settlement "remit-api/services/settlement"
	txsvc "remit-api/services/transactions"
	webhook "remit-api/webhook"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

// LoadConfig loads the default configuration and overrides it with the config file
// specified by the path defined in the config flag
func LoadConfig() *koanf.Koanf {
	configPathMsg := "Path to the application config file"
	configPath := kingpin.Flag("config", configPathMsg).Short('c').Default("config.yml").String()

	kingpin.Parse()
	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(config.DefaultConfig), yaml.Parser())
	if *configPath != "" {
		_ = k.Load(file.Provider(*configPath), yaml.Parser())
	}
	return k
}

// LoadSecrets loads the secret variables and overrides the config
func LoadSecrets(c config.Config) config.Config {
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		c.Mongo.URI = uri
	}
	if uri := os.Getenv("REDIS_URI"); uri != "" {
		c.Redis.URI = uri
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		c.Redis.Password = password
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = strings.Split(brokers, ",")
	}
	if key := os.Getenv("CIPHER_KEY"); key != "" {
		c.Cipher.Key = key
	}
	if prod := os.Getenv("IS_PROD_MODE"); prod != "" {
		c.IsProdMode = prod == "true"
	}
	return c
}

func main() {
	k := LoadConfig()
	appKonf := config.Config{}

	// Unmarshalling config into struct
	err := k.Unmarshal("", &appKonf)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	appKonf = LoadSecrets(appKonf)

	// Validate the config loaded
	if err = appKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !appKonf.IsProdMode {
		redacted := appKonf
		redacted.Cipher.Key = "****"
		helpers.PrintStruct(redacted)
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(k.String("logger.level")))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = appKonf.Application
	cfg.OutputPaths = []string{"stdout"}
	logger, _ := cfg.Build()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Mongo Connection
	mongoClient, err := mongodb.Connect(ctx, appKonf.Mongo.URI)
	if err != nil {
		logger.Fatal("cannot create mongo client", zap.Error(err))
	}

	// Redis Connection
	redisClient, err := redisrepo.Connect(ctx, appKonf.Redis.URI, appKonf.Redis.Password)
	if err != nil {
		logger.Fatal("cannot create redis client", zap.Error(err))
	}

	box, err := cipherpkg.NewFromHex(appKonf.Cipher.Key)
	if err != nil {
		logger.Fatal("cannot build cipher", zap.Error(err))
	}

	txRepo := mongodb.NewTxRepository(mongoClient, appKonf.Mongo.Database)
	ownerRepo := mongodb.NewOwnerRepository(mongoClient, appKonf.Mongo.Database)
	failedWebhooks := redisrepo.NewFailedWebhooks(redisClient, logger)
	notifier := webhook.NewNotifier(logger, failedWebhooks)

	var publisher txsvc.Publisher = events.NopPublisher{}
	var closePublisher func()
	if appKonf.Kafka.Publish {
		metrics := kprom.NewMetrics("remit")
		conf := &events.ProducerConfig{
			Brokers: appKonf.Kafka.Brokers,
			Name:    appKonf.Kafka.ProducerName,
			Topic:   appKonf.Kafka.Topic,
		}
		kafkaPublisher, err := events.NewKafkaPublisher(conf, logger, metrics)
		if err != nil {
			logger.Fatal("cannot create events publisher", zap.Error(err))
		}
		publisher = kafkaPublisher
		closePublisher = kafkaPublisher.Close
	}

	engine := settlement.NewEngine(txRepo, notifier, publisher, logger, appKonf.Settlement.Delay)
	service := txsvc.NewService(logger, txRepo, ownerRepo, box, engine, publisher)
	router := api.NewRouter(logger, service)

	server := &http.Server{Addr: appKonf.Server.Addr, Handler: router}
	go func() {
		logger.Info("server listening", zap.String("addr", appKonf.Server.Addr))
		if serveErr := server.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(serveErr))
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appKonf.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown incomplete", zap.Error(err))
	}
	if err := engine.Shutdown(shutdownCtx); err != nil {
		logger.Warn("settlement shutdown incomplete", zap.Error(err))
	}
	if closePublisher != nil {
		closePublisher()
	}
	_ = mongoClient.Disconnect(shutdownCtx)
	_ = redisClient.Close()
	logger.Info("shutdown complete")
}
