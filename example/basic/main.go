package main

import (
	"context"
	"fmt"
	"log"
	"os"

	nlu "github.com/annotator-ai/nlu"
	"github.com/annotator-ai/nlu/helper"
	"github.com/annotator-ai/nlu/loader"
	"github.com/annotator-ai/nlu/model"
)

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	annotator, err := nlu.NewAnnotator(dbConfig)
	if err != nil {
		log.Fatalf("Failed to create annotator: %v", err)
	}
	defer annotator.Close()

	// Assemble a small corpus. The single goodbye example triggers a
	// validation warning (minimum is two examples per label).
	examples := []*model.Message{
		model.NewMessage("book a flight to berlin", model.Data{
			"classify": "book_flight",
			"entities": []any{
				map[string]any{"entity": "city", "value": "berlin", "start": 17, "end": 23},
			},
		}),
		model.NewMessage("i need a flight to paris", model.Data{
			"classify": "book_flight",
			"entities": []any{
				map[string]any{"entity": "city", "value": "paris", "start": 19, "end": 24},
			},
		}),
		model.NewMessage("goodbye", model.Data{
			"classify": "goodbye",
		}),
	}

	trainingData := model.NewTrainingData(examples, nil)
	fmt.Printf("intent examples: %d, entity examples: %d\n",
		trainingData.NumIntentExamples(), trainingData.NumEntityExamples())

	// Store the corpus and read it back
	inserted, err := annotator.ImportTrainingData(trainingData)
	if err != nil {
		log.Fatalf("Failed to import training data: %v", err)
	}
	fmt.Printf("imported %d examples\n", inserted)

	exported, err := annotator.ExportTrainingData()
	if err != nil {
		log.Fatalf("Failed to export training data: %v", err)
	}

	// Persist corpus and metadata as a model directory
	modelDir, err := os.MkdirTemp("", "nlu-model-")
	if err != nil {
		log.Fatalf("Failed to create model directory: %v", err)
	}
	defer os.RemoveAll(modelDir)

	metadata := model.NewModelMetadata(map[string]any{
		"language": "en",
		"pipeline": []string{"tokenizer", "classifier", "entity_extractor"},
	}, modelDir)

	if err := annotator.PersistModel(exported, metadata, modelDir); err != nil {
		log.Fatalf("Failed to persist model: %v", err)
	}

	// Reload everything from disk
	reloadedMetadata, err := model.LoadMetadata(modelDir)
	if err != nil {
		log.Fatalf("Failed to load metadata: %v", err)
	}
	fmt.Printf("pipeline: %v, trained at: %v\n",
		reloadedMetadata.Pipeline(), reloadedMetadata.Get("trained_at"))

	reloaded, err := loader.LoadFromDirectory(modelDir, nil)
	if err != nil {
		log.Fatalf("Failed to load training data: %v", err)
	}
	fmt.Println(reloaded.AsMarkdown())
}
