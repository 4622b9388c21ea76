package config

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	database string
}

// InitDB initializes and returns the database connections
func InitDB(ctx context.Context, cfg *Config) (*DB, error) {
	postgresDB, err := initPostgres(cfg.PostgresConnStr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to PostgreSQL")
	}

	mongoClient, err := initMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}

	return &DB{
		Postgres: postgresDB,
		Mongo:    mongoClient,
		database: cfg.MongoDB,
	}, nil
}

// Database returns the configured Mongo database
func (db *DB) Database() *mongo.Database {
	return db.Mongo.Database(db.database)
}

// initPostgres opens GORM with driver errors translated; CreateUser maps the resulting gorm.ErrDuplicatedKey to ErrDuplicate
func initPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	logrus.Info("connected to PostgreSQL")
	return db, nil
}

func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logrus.Info("connected to MongoDB")
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Postgres != nil {
		if sqlDB, err := db.Postgres.DB(); err != nil {
			logrus.WithError(err).Error("failed to get SQL DB from GORM")
		} else if err := sqlDB.Close(); err != nil {
			logrus.WithError(err).Error("failed to close PostgreSQL connection")
		} else {
			logrus.Info("PostgreSQL connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			logrus.WithError(err).Error("failed to close MongoDB connection")
		} else {
			logrus.Info("MongoDB connection closed")
		}
	}
}
