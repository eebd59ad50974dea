package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/annotator-ai/nlu/helper"
	"github.com/annotator-ai/nlu/model"
	"github.com/annotator-ai/nlu/sql"
	"github.com/google/uuid"
)

// ExamplesDBHandlerFunctions defines the interface for Examples database operations.
type ExamplesDBHandlerFunctions interface {
	InsertExample(example *model.Example) error
	SelectExample(rid uuid.UUID) (*model.Example, error)
	SelectAllExamples(lastCreatedAt *time.Time, limit int) ([]*model.Example, error)
	SelectExamplesBySearch(searchTerm string, limit int) ([]*model.Example, error)
	UpdateExample(example *model.Example) error
	DeleteExample(rid uuid.UUID) error
}

// ExamplesDBHandler handles training-example database operations
type ExamplesDBHandler struct {
	db *helper.Database
}

// NewExamplesDBHandler creates a new examples database handler.
// It initializes the database connection and loads example-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewExamplesDBHandler(db *helper.Database, force bool) (*ExamplesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	examplesDbHandler := &ExamplesDBHandler{
		db: db,
	}

	err := sql.LoadExamplesSql(examplesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load examples sql", err)
	}

	err = examplesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ExamplesDBHandler")

	return examplesDbHandler, nil
}

// CreateTable creates the 'examples' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes.
func (h *ExamplesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_examples();`)
	if err != nil {
		log.Panicf("error initializing examples table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table examples")

	return nil
}

// InsertExample inserts a new training example
func (h *ExamplesDBHandler) InsertExample(example *model.Example) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_example($1, $2)`,
		example.Text,
		example.Data,
	)

	err := row.Scan(
		&example.ID,
		&example.RID,
		&example.Text,
		&example.Data,
		&example.CreatedAt,
		&example.UpdatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectExample retrieves a training example by RID
func (h *ExamplesDBHandler) SelectExample(rid uuid.UUID) (*model.Example, error) {
	example := &model.Example{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_example($1)`,
		rid,
	)

	err := row.Scan(
		&example.ID,
		&example.RID,
		&example.Text,
		&example.Data,
		&example.CreatedAt,
		&example.UpdatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return example, nil
}

// SelectAllExamples retrieves all training examples with keyset pagination
func (h *ExamplesDBHandler) SelectAllExamples(lastCreatedAt *time.Time, limit int) ([]*model.Example, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_all_examples($1, $2)`,
		lastCreatedAt,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var examples []*model.Example
	for rows.Next() {
		example := &model.Example{}
		err := rows.Scan(
			&example.ID,
			&example.RID,
			&example.Text,
			&example.Data,
			&example.CreatedAt,
			&example.UpdatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		examples = append(examples, example)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return examples, nil
}

// SelectExamplesBySearch searches training examples by text
func (h *ExamplesDBHandler) SelectExamplesBySearch(searchTerm string, limit int) ([]*model.Example, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM search_examples($1, $2)`,
		searchTerm,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var examples []*model.Example
	for rows.Next() {
		example := &model.Example{}
		err := rows.Scan(
			&example.ID,
			&example.RID,
			&example.Text,
			&example.Data,
			&example.CreatedAt,
			&example.UpdatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		examples = append(examples, example)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return examples, nil
}

// UpdateExample updates a training example
func (h *ExamplesDBHandler) UpdateExample(example *model.Example) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM update_example($1, $2, $3)`,
		example.RID,
		example.Text,
		example.Data,
	)

	err := row.Scan(
		&example.ID,
		&example.RID,
		&example.Text,
		&example.Data,
		&example.CreatedAt,
		&example.UpdatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// DeleteExample deletes a training example by RID
func (h *ExamplesDBHandler) DeleteExample(rid uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_example($1)`,
		rid,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
