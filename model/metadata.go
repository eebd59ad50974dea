package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MetadataFileName is the descriptor file inside a model directory.
const MetadataFileName = "metadata.json"

// ModelMetadata captures all information about a trained model needed to load
// and prepare it: language, ordered pipeline stage names and arbitrary
// additional properties.
type ModelMetadata struct {
	Properties      map[string]any
	SourceDirectory string
}

// NewModelMetadata creates metadata from a properties mapping.
func NewModelMetadata(properties map[string]any, sourceDirectory string) *ModelMetadata {
	if properties == nil {
		properties = map[string]any{}
	}
	return &ModelMetadata{
		Properties:      properties,
		SourceDirectory: sourceDirectory,
	}
}

// LoadMetadata reads metadata.json from a model directory. A missing or
// corrupt file returns an InvalidProjectError carrying the absolute path.
func LoadMetadata(modelDirectory string) (*ModelMetadata, error) {
	metadataFile := filepath.Join(modelDirectory, MetadataFileName)

	content, err := os.ReadFile(metadataFile)
	if err != nil {
		return nil, invalidProject(metadataFile, err)
	}

	var properties map[string]any
	if err := json.Unmarshal(content, &properties); err != nil {
		return nil, invalidProject(metadataFile, err)
	}

	return NewModelMetadata(properties, modelDirectory), nil
}

func invalidProject(metadataFile string, cause error) *InvalidProjectError {
	abspath, err := filepath.Abs(metadataFile)
	if err != nil {
		abspath = metadataFile
	}
	return &InvalidProjectError{
		Message: fmt.Sprintf("failed to load model metadata from '%v': %v", abspath, cause),
	}
}

// Get returns a property value, or nil when absent.
func (m *ModelMetadata) Get(propertyName string) any {
	return m.Properties[propertyName]
}

// GetDefault returns a property value, or the default when absent.
func (m *ModelMetadata) GetDefault(propertyName string, def any) any {
	if value, ok := m.Properties[propertyName]; ok {
		return value
	}
	return def
}

// Language returns the language of the underlying model, empty when unset.
func (m *ModelMetadata) Language() string {
	if language, ok := m.Get("language").(string); ok {
		return language
	}
	return ""
}

// Pipeline returns the ordered names of the processing pipeline stages the
// model was built with. Defaults to an empty sequence.
func (m *ModelMetadata) Pipeline() []string {
	switch pipeline := m.Get("pipeline").(type) {
	case []string:
		return pipeline
	case []any:
		names := make([]string, 0, len(pipeline))
		for _, name := range pipeline {
			if s, ok := name.(string); ok {
				names = append(names, s)
			}
		}
		return names
	default:
		return []string{}
	}
}

// Persist writes metadata.json into the directory, stamping the training
// timestamp and the library version into a copy of the properties. The
// in-memory metadata is never mutated.
func (m *ModelMetadata) Persist(directory string, version string) error {
	properties := make(map[string]any, len(m.Properties)+2)
	for key, value := range m.Properties {
		properties[key] = value
	}
	properties["trained_at"] = time.Now().Format("20060102-150405")
	properties["nlu_version"] = version

	content, err := json.MarshalIndent(properties, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(directory, MetadataFileName), content, 0644)
}
