// Package loader reads persisted training corpora back into memory.
package loader

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/annotator-ai/nlu/model"
)

type corpusDocument struct {
	NluData struct {
		CommonExamples []map[string]any `json:"common_examples"`
	} `json:"nlu_data"`
}

// Load reads a training data document (the format written by
// TrainingData.Persist) into a validated TrainingData. Parse failures return
// an InvalidProjectError carrying the absolute path.
func Load(path string, logger *slog.Logger) (*model.TrainingData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, invalidProject(path, err)
	}

	var document corpusDocument
	if err := json.Unmarshal(content, &document); err != nil {
		return nil, invalidProject(path, err)
	}

	examples := make([]*model.Message, 0, len(document.NluData.CommonExamples))
	for _, raw := range document.NluData.CommonExamples {
		examples = append(examples, messageFromRaw(raw))
	}

	return model.NewTrainingData(examples, logger), nil
}

// LoadFromDirectory reads the training data file of a persisted model
// directory.
func LoadFromDirectory(directory string, logger *slog.Logger) (*model.TrainingData, error) {
	return Load(filepath.Join(directory, model.TrainingDataFileName), logger)
}

// messageFromRaw splits the text out of a raw example; every remaining key
// becomes a data property.
func messageFromRaw(raw map[string]any) *model.Message {
	data := make(model.Data, len(raw))
	text := ""
	for key, value := range raw {
		if key == "text" {
			text, _ = value.(string)
			continue
		}
		data[key] = value
	}
	return model.NewMessage(text, data)
}

func invalidProject(path string, cause error) *model.InvalidProjectError {
	abspath, err := filepath.Abs(path)
	if err != nil {
		abspath = path
	}
	return &model.InvalidProjectError{
		Message: fmt.Sprintf("failed to load training data from '%v': %v", abspath, cause),
	}
}
