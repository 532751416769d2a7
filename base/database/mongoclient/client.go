package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/gavelhouse/goapi/base/log"
)

const (
	mgSocketTimeout = 60 * time.Second

	// connectTimeout bounds the whole dial-and-probe sequence so a broken
	// mongo uri fails the boot instead of hanging it
	connectTimeout = 15 * time.Second
)

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

// MustConnectMongoClient connects to mongo and panics when the connection
// cannot be established
func MustConnectMongoClient(uri, authDBName, dbName string, ssl, setSafe bool, poolSizeMultiplier float64) *Client {
	cli, err := ConnectMongoClient(uri, authDBName, dbName, ssl, setSafe, poolSizeMultiplier)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": uri, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// ConnectMongoClient connects to mongo and verifies dbName is reachable
// before returning the client
func ConnectMongoClient(uri, authDBName, dbName string, ssl, setSafe bool, poolSizeMultiplier float64) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	connSetting, err := connstring.Parse(uri)
	if err != nil {
		log.Log().WithFields(log.Fields{
			"mongoURI": uri,
			"dbName":   dbName,
			"err":      err,
		}).Error("fail to parse connstring")
		return nil, err
	}

	clientOpts := options.Client().
		ApplyURI(uri).
		SetSocketTimeout(mgSocketTimeout).
		SetRetryWrites(true)

	// fall back to authDBName when the connstring carries credentials
	// without an auth source
	if connSetting.Username != "" && connSetting.AuthSource == "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              authDBName,
		})
	}

	total := int(float64(runtime.NumCPU()) * poolSizeMultiplier)
	poolSize := perHostPoolSize(total, len(connSetting.Hosts))
	clientOpts.SetMinPoolSize(uint64(poolSize / 4))
	clientOpts.SetMaxPoolSize(uint64(poolSize))
	log.Log().WithField("poolSize", poolSize).Info("mongo driver pool size")

	if ssl {
		clientOpts.SetTLSConfig(&tls.Config{})
	}

	if setSafe {
		// wait for a majority of the replica set to acknowledge writes
		clientOpts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}

	errLog := log.Log().WithFields(log.Fields{
		"mongoHosts": connSetting.Hosts,
		"dbName":     dbName,
	})

	client, err := mongo.NewClient(clientOpts)
	if err != nil {
		errLog.WithField("err", err).Error("fail to create mongo client")
		return nil, err
	}

	if err := client.Connect(ctx); err != nil {
		errLog.WithField("err", err).Error("fail to connect mongo db")
		return nil, err
	}

	// the driver connects lazily, listing collections proves both the
	// credentials and the database name
	if _, err := client.Database(dbName).ListCollectionNames(ctx, bson.D{}); err != nil {
		errLog.WithField("err", err).Error("fail to probe mongo db")
		return nil, err
	}

	log.Log().WithFields(log.Fields{
		"mongoHosts": connSetting.Hosts,
		"db":         dbName,
	}).Info("mongo connected")

	return &Client{
		Client: client,
		DbName: dbName,
	}, nil
}

// perHostPoolSize splits the total connection budget across hosts, rounding
// up. The driver keeps one pool per host, sizing every pool by the total
// would over-allocate on replica sets
func perHostPoolSize(total, hosts int) int {
	if hosts < 1 {
		hosts = 1
	}
	return (total + hosts - 1) / hosts
}
