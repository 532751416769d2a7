package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/base/database/mongoclient"
	"github.com/gavelhouse/goapi/base/database/redisclient"
	"github.com/gavelhouse/goapi/base/log"
	"github.com/gavelhouse/goapi/base/metrics"
	"github.com/gavelhouse/goapi/base/normalizer"
	bValidator "github.com/gavelhouse/goapi/base/validator"
	"github.com/gavelhouse/goapi/domain"
	mmiddleware "github.com/gavelhouse/goapi/middleware"
	"github.com/gavelhouse/goapi/service/chain"
	"github.com/gavelhouse/goapi/service/chain/contract"
	"github.com/gavelhouse/goapi/service/pricefeed"
	"github.com/gavelhouse/goapi/service/query"
	"github.com/gavelhouse/goapi/service/redis"
	activity_repository "github.com/gavelhouse/goapi/stores/activity/repository"
	activity_usecase "github.com/gavelhouse/goapi/stores/activity/usecase"
	asset_repository "github.com/gavelhouse/goapi/stores/asset/repository"
	asset_usecase "github.com/gavelhouse/goapi/stores/asset/usecase"
	auth_delivery "github.com/gavelhouse/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/gavelhouse/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/gavelhouse/goapi/stores/auth/usecase"
	bank_delivery "github.com/gavelhouse/goapi/stores/bank/delivery/http"
	bank_repository "github.com/gavelhouse/goapi/stores/bank/repository"
	bank_usecase "github.com/gavelhouse/goapi/stores/bank/usecase"
	denom_delivery "github.com/gavelhouse/goapi/stores/denom/delivery/http"
	denom_repository "github.com/gavelhouse/goapi/stores/denom/repository"
	denom_usecase "github.com/gavelhouse/goapi/stores/denom/usecase"
	escrow_repository "github.com/gavelhouse/goapi/stores/escrow/repository"
	escrow_usecase "github.com/gavelhouse/goapi/stores/escrow/usecase"
	hc_delivery "github.com/gavelhouse/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/gavelhouse/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/gavelhouse/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/gavelhouse/goapi/stores/listing/delivery/http"
	listing_repository "github.com/gavelhouse/goapi/stores/listing/repository"
	listing_usecase "github.com/gavelhouse/goapi/stores/listing/usecase"
	oracle_usecase "github.com/gavelhouse/goapi/stores/oracle/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init Redis service
	context.Info("init redis cache")
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

	mmiddleware.SetupCache(redisCache)

	// init chain service
	networks := viper.Sub("networks")
	keys := networks.AllSettings()
	rpcs := make(map[domain.ChainId]string)
	for k := range keys {
		chainId := domain.ChainId(networks.GetInt32(fmt.Sprintf("%s.chainId", k)))
		rpcUrl := networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		rpcs[chainId] = rpcUrl
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls: rpcs,
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	erc721Service := contract.NewErc721(chainService)
	erc1271Service := contract.NewErc1271(chainService)
	pricefeedService := pricefeed.New(chainService)

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	listingRepo := listing_repository.New(q)
	activityRepo := activity_repository.New(q)
	denomRepo := denom_repository.New(q, redisCache)
	bankRepo := bank_repository.New(q)
	escrowRepo := escrow_repository.New(q)
	assetRepo := asset_repository.New(q)

	hc := hc_usecase.New(hcRepo)
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
	activity := activity_usecase.New(activityRepo)
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
	auth := auth_usecase.New(&auth_usecase.AuthUsecaseCfg{
		JwtSecret:    viper.GetString("auth.jwtSecret"),
		SignatureMsg: viper.GetString("auth.signatureMsg"),
		Redis:        redisCache,
		Erc1271:      erc1271Service,
	})

	// seed denominations from config so a fresh environment accepts bids
	denoms := viper.Sub("denominations")
	if denoms != nil {
		for k := range denoms.AllSettings() {
			d := &domain.Denom{
				ChainId:          domain.ChainId(denoms.GetInt32(fmt.Sprintf("%s.chainId", k))),
				Address:          domain.Address(denoms.GetString(fmt.Sprintf("%s.address", k))).ToLower(),
				Name:             denoms.GetString(fmt.Sprintf("%s.name", k)),
				Symbol:           denoms.GetString(fmt.Sprintf("%s.symbol", k)),
				PriceFeedAddress: domain.Address(denoms.GetString(fmt.Sprintf("%s.priceFeed", k))).ToLower(),
				TokenDecimals:    denoms.GetInt32(fmt.Sprintf("%s.tokenDecimals", k)),
				Enabled:          denoms.GetBool(fmt.Sprintf("%s.enabled", k)),
			}
			if d.IsNative() {
				d.Address = domain.EmptyAddress
				d.TokenDecimals = domain.UnitDecimals
			}
			if err := denomRepo.Upsert(context, d); err != nil {
				context.WithFields(log.Fields{
					"err":   err,
					"denom": d,
				}).Panic("seed denom failed")
			}
		}
	}

	adminAddresses := viper.GetStringSlice("admin.addresses")
	authMiddleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth, viper.GetString("auth.signatureMsg"))
	listing_delivery.New(e, listing, activity, authMiddleware)
	denom_delivery.New(e, denom, authMiddleware)
	bank_delivery.New(e, bankService, authMiddleware)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, authMiddleware.Auth())

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
