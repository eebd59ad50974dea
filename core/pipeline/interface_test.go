package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/annotator-ai/nlu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() Registry {
	registry := Registry{}
	registry.Register(NewComponent("tokenizer", nil, func(message *model.Message, args map[string]any) error {
		message.Set("tokens", []any{"book", "a", "flight"}, false)
		return nil
	}))
	registry.Register(NewComponent("classifier", []string{"classifier_model"}, func(message *model.Message, args map[string]any) error {
		message.Set("classify", "book_flight", true)
		return nil
	}))
	registry.Register(NewComponent("entity_extractor", nil, func(message *model.Message, args map[string]any) error {
		message.Update("entities", []any{map[string]any{"entity": "city", "value": "NYC"}}, true)
		return nil
	}))
	return registry
}

func TestFromMetadata(t *testing.T) {
	registry := testRegistry()

	t.Run("Resolves stages in metadata order", func(t *testing.T) {
		metadata := model.NewModelMetadata(map[string]any{
			"pipeline": []string{"tokenizer", "classifier"},
		}, "")

		pipeline, err := FromMetadata(metadata, registry)

		require.NoError(t, err, "Expected FromMetadata to not return an error")
		require.Len(t, pipeline.Components, 2)
		assert.Equal(t, "tokenizer", pipeline.Components[0].Name())
		assert.Equal(t, "classifier", pipeline.Components[1].Name())
	})

	t.Run("Empty pipeline resolves to no components", func(t *testing.T) {
		metadata := model.NewModelMetadata(nil, "")

		pipeline, err := FromMetadata(metadata, registry)

		require.NoError(t, err)
		assert.Empty(t, pipeline.Components)
	})

	t.Run("Unknown stage name fails with InvalidProjectError", func(t *testing.T) {
		metadata := model.NewModelMetadata(map[string]any{
			"pipeline": []string{"tokenizer", "no_such_stage"},
		}, "")

		_, err := FromMetadata(metadata, registry)

		require.Error(t, err, "Expected an error for an unknown component")
		var invalidProject *model.InvalidProjectError
		require.True(t, errors.As(err, &invalidProject), "Expected an InvalidProjectError")
		assert.Contains(t, invalidProject.Message, "no_such_stage")
	})
}

func TestPipelineProcess(t *testing.T) {
	registry := testRegistry()

	t.Run("Runs components in order and enriches the message", func(t *testing.T) {
		metadata := model.NewModelMetadata(map[string]any{
			"pipeline": []string{"tokenizer", "classifier", "entity_extractor"},
		}, "")
		pipeline, err := FromMetadata(metadata, registry)
		require.NoError(t, err)

		message := model.NewMessage("book a flight", nil)
		err = pipeline.Process(message, map[string]any{"classifier_model": struct{}{}})

		require.NoError(t, err, "Expected Process to not return an error")
		assert.Equal(t, "book_flight", message.Get("classify"))
		assert.NotNil(t, message.Get("tokens"))
		assert.NotNil(t, message.Get("entities"))
	})

	t.Run("Missing required argument fails with MissingArgumentError", func(t *testing.T) {
		metadata := model.NewModelMetadata(map[string]any{
			"pipeline": []string{"classifier"},
		}, "")
		pipeline, err := FromMetadata(metadata, registry)
		require.NoError(t, err)

		message := model.NewMessage("book a flight", nil)
		err = pipeline.Process(message, nil)

		require.Error(t, err, "Expected an error for a missing argument")
		var missingArgument *model.MissingArgumentError
		require.True(t, errors.As(err, &missingArgument), "Expected a MissingArgumentError")
		assert.Contains(t, missingArgument.Message, "classifier_model")
		assert.Nil(t, message.Get("classify"), "Expected the component to not have run")
	})

	t.Run("Component errors are wrapped with the component name", func(t *testing.T) {
		registry := Registry{}
		registry.Register(NewComponent("broken", nil, func(message *model.Message, args map[string]any) error {
			return fmt.Errorf("stage exploded")
		}))
		metadata := model.NewModelMetadata(map[string]any{"pipeline": []string{"broken"}}, "")
		pipeline, err := FromMetadata(metadata, registry)
		require.NoError(t, err)

		err = pipeline.Process(model.NewMessage("text", nil), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
		assert.Contains(t, err.Error(), "stage exploded")
	})
}
