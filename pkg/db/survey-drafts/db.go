package surveydrafts

import (
	"context"
	"log/slog"
	"time"

	"github.com/case-framework/discovery-builder/pkg/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_DRAFTS = "survey_drafts"
)

type SurveyDraftsDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
}

func NewSurveyDraftsDBService(configs db.DBConfig) (*SurveyDraftsDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	sdDBSc := &SurveyDraftsDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		sdDBSc.CreateDefaultIndexesForDraftsCollection()
	}
	return sdDBSc, nil
}

func (dbService *SurveyDraftsDBService) getDBName() string {
	return dbService.DBNamePrefix + "survey_builder"
}

func (dbService *SurveyDraftsDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *SurveyDraftsDBService) collectionDrafts() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_DRAFTS)
}

func (dbService *SurveyDraftsDBService) Close() {
	ctx, cancel := dbService.getContext()
	defer cancel()
	if err := dbService.DBClient.Disconnect(ctx); err != nil {
		slog.Error("Error closing survey drafts DB client", slog.String("error", err.Error()))
	}
}
