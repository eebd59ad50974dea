package nlu

import (
	"log/slog"
	"os"
	"time"

	"github.com/annotator-ai/nlu/database"
	"github.com/annotator-ai/nlu/helper"
	"github.com/annotator-ai/nlu/model"
	loadSql "github.com/annotator-ai/nlu/sql"
)

// Version is the library version stamped into persisted model metadata.
const Version = "0.1.0"

// Annotator provides a unified interface to the training-data store and the
// corpus/metadata persistence operations.
type Annotator struct {
	DB       *helper.Database
	Examples *database.ExamplesDBHandler
	// Logging
	log *slog.Logger
}

// NewAnnotator creates a new Annotator instance with the example store initialized
func NewAnnotator(config *helper.DatabaseConfiguration) (*Annotator, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("nlu", config, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload if functions already exist
	examples, err := database.NewExamplesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create examples handler", err)
	}

	return &Annotator{
		DB:       db,
		Examples: examples,
		log:      logger,
	}, nil
}

// Close closes the database connection
func (a *Annotator) Close() error {
	if a.DB != nil && a.DB.Instance != nil {
		return a.DB.Instance.Close()
	}
	return nil
}

// ImportTrainingData stores every example of the corpus and returns the
// number of inserted rows.
func (a *Annotator) ImportTrainingData(trainingData *model.TrainingData) (int, error) {
	inserted := 0
	for message := range trainingData.ExampleIterator() {
		example := model.ExampleFromMessage(message)
		if err := a.Examples.InsertExample(example); err != nil {
			return inserted, helper.NewError("insert example", err)
		}
		inserted++
	}

	a.log.Info("Imported training data", "examples", inserted)

	return inserted, nil
}

// ExportTrainingData reads every stored example back into a validated
// training data corpus, in insertion order.
func (a *Annotator) ExportTrainingData() (*model.TrainingData, error) {
	var messages []*model.Message
	var lastCreatedAt *time.Time

	for {
		examples, err := a.Examples.SelectAllExamples(lastCreatedAt, 500)
		if err != nil {
			return nil, helper.NewError("select examples", err)
		}
		if len(examples) == 0 {
			break
		}
		for _, example := range examples {
			messages = append(messages, example.ToMessage())
		}
		createdAt := examples[len(examples)-1].CreatedAt
		lastCreatedAt = &createdAt
	}

	return model.NewTrainingData(messages, a.log), nil
}

// PersistModel writes the corpus and its metadata into the directory,
// stamping the library version.
func (a *Annotator) PersistModel(trainingData *model.TrainingData, metadata *model.ModelMetadata, directory string) error {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return helper.NewError("create model directory", err)
	}

	if _, err := trainingData.Persist(directory); err != nil {
		return helper.NewError("persist training data", err)
	}

	if err := metadata.Persist(directory, Version); err != nil {
		return helper.NewError("persist metadata", err)
	}

	a.log.Info("Persisted model", "directory", directory)

	return nil
}
