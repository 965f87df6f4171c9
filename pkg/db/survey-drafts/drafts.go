package surveydrafts

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/case-framework/discovery-builder/pkg/db"
	"github.com/case-framework/discovery-builder/pkg/survey/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDraftNotFound = types.ErrDraftNotFound

// DraftDocument is the stored form of an autosaved draft.
type DraftDocument struct {
	SurveyID string        `bson:"surveyId"`
	Survey   *types.Survey `bson:"survey"`
	SavedAt  time.Time     `bson:"savedAt"`
}

var indexesForDraftsCollection = []mongo.IndexModel{
	{
		Keys: bson.D{
			{Key: "surveyId", Value: 1},
		},
		Options: options.Index().SetName("surveyId_1").SetUnique(true),
	},
	{
		Keys: bson.D{
			{Key: "savedAt", Value: -1},
		},
		Options: options.Index().SetName("savedAt_-1"),
	},
}

func (dbService *SurveyDraftsDBService) CreateDefaultIndexesForDraftsCollection() {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionDrafts().Indexes().CreateMany(ctx, indexesForDraftsCollection)
	if err != nil {
		slog.Error("Error creating index for survey drafts", slog.String("error", err.Error()))
	}
}

func (dbService *SurveyDraftsDBService) DropIndexForDraftsCollection(dropAll bool) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if dropAll {
		_, err := dbService.collectionDrafts().Indexes().DropAll(ctx)
		if err != nil {
			slog.Error("Error dropping all indexes for survey drafts", slog.String("error", err.Error()))
		}
		return
	}
	for _, index := range indexesForDraftsCollection {
		if index.Options == nil || index.Options.Name == nil {
			slog.Error("Index name is nil for survey drafts collection", slog.String("index", fmt.Sprintf("%+v", index)))
			continue
		}
		indexName := *index.Options.Name
		_, err := dbService.collectionDrafts().Indexes().DropOne(ctx, indexName)
		if err != nil {
			slog.Error("Error dropping index for survey drafts", slog.String("error", err.Error()), slog.String("indexName", indexName))
		}
	}
}

func (dbService *SurveyDraftsDBService) GetIndexes() ([]bson.M, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return db.ListCollectionIndexes(ctx, dbService.collectionDrafts())
}

// SaveDraft replaces the stored draft of the survey, creating it if needed.
func (dbService *SurveyDraftsDBService) SaveDraft(draft types.SurveyDraft) error {
	if draft.Survey == nil {
		return errors.New("draft has no survey")
	}

	ctx, cancel := dbService.getContext()
	defer cancel()

	doc := DraftDocument{
		SurveyID: draft.Survey.ID,
		Survey:   draft.Survey,
		SavedAt:  draft.SavedAt,
	}
	filter := bson.M{"surveyId": doc.SurveyID}
	_, err := dbService.collectionDrafts().ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		slog.Error("Error saving survey draft", slog.String("error", err.Error()), slog.String("surveyID", doc.SurveyID))
		return err
	}
	return nil
}

func (dbService *SurveyDraftsDBService) LoadDraft(surveyID string) (types.SurveyDraft, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var doc DraftDocument
	err := dbService.collectionDrafts().FindOne(ctx, bson.M{"surveyId": surveyID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.SurveyDraft{}, ErrDraftNotFound
		}
		return types.SurveyDraft{}, err
	}
	return types.SurveyDraft{Survey: doc.Survey, SavedAt: doc.SavedAt}, nil
}

func (dbService *SurveyDraftsDBService) ClearDraft(surveyID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionDrafts().DeleteOne(ctx, bson.M{"surveyId": surveyID})
	return err
}

// ListDraftIDs returns the survey ids with a stored draft, most recently saved first.
func (dbService *SurveyDraftsDBService) ListDraftIDs() ([]string, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "savedAt", Value: -1}}).
		SetProjection(bson.M{"surveyId": 1}).
		SetNoCursorTimeout(dbService.noCursorTimeout)
	cursor, err := dbService.collectionDrafts().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var doc DraftDocument
		if err := cursor.Decode(&doc); err != nil {
			slog.Error("Error decoding survey draft", slog.String("error", err.Error()))
			continue
		}
		ids = append(ids, doc.SurveyID)
	}
	return ids, cursor.Err()
}
