package model

import (
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Validation warns when a classify label or entity type has fewer examples.
const (
	MinExamplesPerClassify = 2
	MinExamplesPerEntity   = 2
)

// TrainingDataFileName is the corpus file written by Persist.
const TrainingDataFileName = "training_data.json"

// TrainingData holds the loaded classify and entity training examples. The
// example order is significant: all derived views and sorts preserve it for
// reproducible training.
type TrainingData struct {
	trainingExamples []*Message
	log              *slog.Logger

	// Memoized views over trainingExamples, rebuilt after SetExamples/AddExample.
	viewsComputed     bool
	classifyExamples  []*Message
	entityExamples    []*Message
	numEntityExamples int
}

// NewTrainingData creates a corpus from a finalized example sequence and runs
// a soft validation pass. A nil logger falls back to slog.Default().
func NewTrainingData(trainingExamples []*Message, logger *slog.Logger) *TrainingData {
	if logger == nil {
		logger = slog.Default()
	}
	td := &TrainingData{
		trainingExamples: trainingExamples,
		log:              logger,
	}
	td.Validate()
	return td
}

// Examples returns the backing example sequence in original order.
func (t *TrainingData) Examples() []*Message {
	return t.trainingExamples
}

// SetExamples replaces the backing sequence and invalidates the memoized views.
func (t *TrainingData) SetExamples(examples []*Message) {
	t.trainingExamples = examples
	t.viewsComputed = false
}

// AddExample appends an example and invalidates the memoized views.
func (t *TrainingData) AddExample(example *Message) {
	t.trainingExamples = append(t.trainingExamples, example)
	t.viewsComputed = false
}

func (t *TrainingData) ensureViews() {
	if t.viewsComputed {
		return
	}
	t.classifyExamples = nil
	t.entityExamples = nil
	t.numEntityExamples = 0
	for _, example := range t.trainingExamples {
		if example.Get("classify") != nil {
			t.classifyExamples = append(t.classifyExamples, example)
		}
		if example.Get("entities") != nil {
			t.entityExamples = append(t.entityExamples, example)
		}
		if len(entitiesOf(example)) > 0 {
			t.numEntityExamples++
		}
	}
	t.viewsComputed = true
}

// ClassifyExamples returns the examples carrying a classify label, in
// original relative order.
func (t *TrainingData) ClassifyExamples() []*Message {
	t.ensureViews()
	return t.classifyExamples
}

// EntityExamples returns the examples carrying an entities annotation, in
// original relative order.
func (t *TrainingData) EntityExamples() []*Message {
	t.ensureViews()
	return t.entityExamples
}

// NumIntentExamples returns the number of classify examples.
func (t *TrainingData) NumIntentExamples() int {
	return len(t.ClassifyExamples())
}

// NumEntityExamples returns the number of examples containing at least one
// annotated entity. Examples with an empty entities sequence do not count.
func (t *TrainingData) NumEntityExamples() int {
	t.ensureViews()
	return t.numEntityExamples
}

// ExampleIterator yields every training example in original order. Each call
// starts an independent traversal over the current sequence.
func (t *TrainingData) ExampleIterator() iter.Seq[*Message] {
	return func(yield func(*Message) bool) {
		for _, example := range t.trainingExamples {
			if !yield(example) {
				return
			}
		}
	}
}

// SortedEntityExamples flattens every entity occurrence across all entity
// examples and sorts them by entity type name. The sort is stable: entities
// of the same type keep the order they were encountered in.
func (t *TrainingData) SortedEntityExamples() []map[string]any {
	var entities []map[string]any
	for _, example := range t.EntityExamples() {
		for _, entity := range entitiesOf(example) {
			if e, ok := entity.(map[string]any); ok {
				entities = append(entities, e)
			}
		}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return entityType(entities[i]) < entityType(entities[j])
	})
	return entities
}

// SortedClassifyExamples sorts the classify examples by label with a stable
// sort, so equal labels keep their original relative order.
func (t *TrainingData) SortedClassifyExamples() []*Message {
	examples := t.ClassifyExamples()
	sorted := make([]*Message, len(examples))
	copy(sorted, examples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return classifyLabel(sorted[i]) < classifyLabel(sorted[j])
	})
	return sorted
}

// Validate warns about classify labels and entity types with fewer examples
// than the minimum. Warnings are non-fatal; the corpus stays usable.
func (t *TrainingData) Validate() {
	classifyCounts := map[string]int{}
	for _, example := range t.ClassifyExamples() {
		classifyCounts[classifyLabel(example)]++
	}
	for _, label := range sortedKeys(classifyCounts) {
		if count := classifyCounts[label]; count < MinExamplesPerClassify {
			t.log.Warn("Classify label has too few training examples",
				"classify", label, "count", count, "min", MinExamplesPerClassify)
		}
	}

	entityCounts := map[string]int{}
	for _, example := range t.EntityExamples() {
		for _, entity := range entitiesOf(example) {
			if e, ok := entity.(map[string]any); ok {
				entityCounts[entityType(e)]++
			}
		}
	}
	for _, entity := range sortedKeys(entityCounts) {
		if count := entityCounts[entity]; count < MinExamplesPerEntity {
			t.log.Warn("Entity type has too few training examples",
				"entity", entity, "count", count, "min", MinExamplesPerEntity)
		}
	}
}

// AsJSON renders the corpus as an indented JSON document with all examples
// under nlu_data.common_examples.
func (t *TrainingData) AsJSON() (string, error) {
	examples := make([]Data, 0, len(t.trainingExamples))
	for _, example := range t.trainingExamples {
		examples = append(examples, example.AsDict(false))
	}
	document := map[string]any{
		"nlu_data": map[string]any{
			"common_examples": examples,
		},
	}
	content, err := json.MarshalIndent(document, "", "    ")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// AsMarkdown renders the corpus grouped by classify label, followed by the
// entity examples with their annotations inlined.
func (t *TrainingData) AsMarkdown() string {
	var b strings.Builder

	var lastLabel string
	for i, example := range t.SortedClassifyExamples() {
		label := classifyLabel(example)
		if i == 0 || label != lastLabel {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "## classify:%v\n", label)
			lastLabel = label
		}
		fmt.Fprintf(&b, "- %v\n", example.Text)
	}

	if entityExamples := t.EntityExamples(); len(entityExamples) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("## entity examples\n")
		for _, example := range entityExamples {
			fmt.Fprintf(&b, "- %v", example.Text)
			for _, entity := range entitiesOf(example) {
				if e, ok := entity.(map[string]any); ok {
					fmt.Fprintf(&b, " [%v:%v]", entityType(e), e["value"])
				}
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Persist writes the corpus into the directory and returns the information
// needed to load it again.
func (t *TrainingData) Persist(dirName string) (map[string]any, error) {
	content, err := t.AsJSON()
	if err != nil {
		return nil, err
	}

	err = os.WriteFile(filepath.Join(dirName, TrainingDataFileName), []byte(content), 0644)
	if err != nil {
		return nil, err
	}

	return map[string]any{"training_data": TrainingDataFileName}, nil
}

func entitiesOf(example *Message) []any {
	entities, _ := example.Get("entities").([]any)
	return entities
}

func entityType(entity map[string]any) string {
	return fmt.Sprintf("%v", entity["entity"])
}

func classifyLabel(example *Message) string {
	return fmt.Sprintf("%v", example.Get("classify"))
}

func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
