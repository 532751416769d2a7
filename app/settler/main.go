package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gavelhouse/goapi/base/backoff"
	bCtx "github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/database/mongoclient"
	"github.com/gavelhouse/goapi/base/database/redisclient"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/base/metrics"
	"github.com/gavelhouse/goapi/base/normalizer"
	"github.com/gavelhouse/goapi/base/sweeper"
	"github.com/gavelhouse/goapi/domain"
	mmiddleware "github.com/gavelhouse/goapi/middleware"
	"github.com/gavelhouse/goapi/service/announcer"
	"github.com/gavelhouse/goapi/service/chain"
	"github.com/gavelhouse/goapi/service/chain/contract"
	"github.com/gavelhouse/goapi/service/pricefeed"
	"github.com/gavelhouse/goapi/service/query"
	"github.com/gavelhouse/goapi/service/redis"
	activity_repository "github.com/gavelhouse/goapi/stores/activity/repository"
	asset_repository "github.com/gavelhouse/goapi/stores/asset/repository"
	asset_usecase "github.com/gavelhouse/goapi/stores/asset/usecase"
	bank_repository "github.com/gavelhouse/goapi/stores/bank/repository"
	bank_usecase "github.com/gavelhouse/goapi/stores/bank/usecase"
	denom_repository "github.com/gavelhouse/goapi/stores/denom/repository"
	denom_usecase "github.com/gavelhouse/goapi/stores/denom/usecase"
	escrow_repository "github.com/gavelhouse/goapi/stores/escrow/repository"
	escrow_usecase "github.com/gavelhouse/goapi/stores/escrow/usecase"
	listing_repository "github.com/gavelhouse/goapi/stores/listing/repository"
	listing_usecase "github.com/gavelhouse/goapi/stores/listing/usecase"
	oracle_usecase "github.com/gavelhouse/goapi/stores/oracle/usecase"
)

func init() {
	pflag.Bool("once", false, "run a single sweep pass and exit")
	pflag.Parse()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		panic(err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/settler/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	ctx, cancel := bCtx.WithCancel(bCtx.Background())

	// start server to pass platform health checks
	startEchoServer()

	sweepInterval := viper.GetDuration("sweep.interval")
	sweepBatch := viper.GetInt32("sweep.batch")
	sweepWorkers := viper.GetInt("sweep.workers")
	sweepRetryLimit := viper.GetInt("sweep.retryLimit")
	backoffStart := viper.GetDuration("sweep.backoffStart")
	backoffLimit := viper.GetDuration("sweep.backoffLimit")

	ctx.WithFields(log.Fields{
		"interval": sweepInterval,
		"batch":    sweepBatch,
		"workers":  sweepWorkers,
	}).Info("config")

	ctx.Info("init mongo")
	q := initMongo()

	ctx.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	networks := viper.Sub("networks")
	rpcs := make(map[domain.ChainId]string)
	for k := range networks.AllSettings() {
		chainId := domain.ChainId(networks.GetInt32(fmt.Sprintf("%s.chainId", k)))
		rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
	}
	chainService, err := chain.NewClient(ctx, &chain.ClientCfg{
		RpcUrls: rpcs,
	})
	if err != nil {
		ctx.WithField("err", err).Warn("chainService started with error")
	}
	erc721Service := contract.NewErc721(chainService)
	pricefeedService := pricefeed.New(chainService)

	// repos
	listingRepo := listing_repository.New(q)
	activityRepo := activity_repository.New(q)
	denomRepo := denom_repository.New(q, redisCache)
	bankRepo := bank_repository.New(q)
	escrowRepo := escrow_repository.New(q)
	assetRepo := asset_repository.New(q)

	// usecases
	oracleAdapter := oracle_usecase.New(pricefeedService)
	denom := denom_usecase.New(&denom_usecase.DenomUsecaseCfg{
		Repo:   denomRepo,
		Oracle: oracleAdapter,
	})
	valueNormalizer := normalizer.New(&normalizer.NormalizerCfg{
		Denom:  denom,
		Oracle: oracleAdapter,
	})
	bankService := bank_usecase.New(bankRepo)
	escrow := escrow_usecase.New(&escrow_usecase.EscrowUsecaseCfg{
		Repo: escrowRepo,
		Bank: bankService,
	})
	custodian := asset_usecase.New(&asset_usecase.CustodianCfg{
		Repo:   assetRepo,
		Erc721: erc721Service,
	})
	listing := listing_usecase.New(&listing_usecase.ListingUsecaseCfg{
		Repo:         listingRepo,
		Query:        q,
		Custodian:    custodian,
		Escrow:       escrow,
		Bank:         bankService,
		Denom:        denom,
		Normalizer:   valueNormalizer,
		Activity:     activityRepo,
		Redis:        redisCache,
		FeeRecipient: domain.Address(viper.GetString("market.feeRecipient")).ToLower(),
	})

	var settledAnnouncer announcer.Announcer
	if botKey := viper.GetString("discord.botKey"); botKey != "" {
		settledAnnouncer = announcer.New(announcer.AnnouncerCfg{
			DiscordBotKey:    botKey,
			DiscordChannelId: viper.GetString("discord.channelId"),
			Denom:            denom,
		})
	}

	errCh := make(chan error, 10)
	sw := sweeper.New(&sweeper.SweeperCfg{
		Listing:    listing,
		Announcer:  settledAnnouncer,
		Interval:   sweepInterval,
		Batch:      sweepBatch,
		Workers:    sweepWorkers,
		RetryLimit: sweepRetryLimit,
		Backoff:    backoff.NewExponential(backoffStart, backoffLimit),
		ErrorCh:    errCh,
	})

	if viper.GetBool("once") {
		ctx.Info("running single sweep pass")
		if err := sw.RunOnce(ctx); err != nil {
			ctx.WithField("err", err).Error("sweep pass failed")
			os.Exit(1)
		}
		cancel()
		return
	}

	ctx.Info("starting sweeper")
	sw.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-errCh:
		ctx.WithField("err", err).Error("sweeper stopped")
	case sig := <-quit:
		ctx.WithField("signal", sig).Info("received signal")
	}

	cancel()
	sw.Wait()
}

func startEchoServer() {
	context := bCtx.Background()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())

	address := viper.GetString("server.address")
	context.WithField("address", address).Info("starting server")
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			context.Error("shutting down the server")
		}
	}()
}

func initMongo() query.Mongo {
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	return query.New(mongoClient, checkIndex)
}
