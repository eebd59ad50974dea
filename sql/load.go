package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed examples.sql
var examplesSQL string

// Function list for verification
var ExamplesFunctions = []string{
	"init_examples",
	"insert_example",
	"select_example",
	"select_all_examples",
	"search_examples",
	"update_example",
	"delete_example",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadExamplesSql loads example-related SQL functions
func LoadExamplesSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, ExamplesFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing examples functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(examplesSQL)
	if err != nil {
		return fmt.Errorf("error executing examples SQL: %w", err)
	}

	exist, err := checkFunctions(db, ExamplesFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL examples functions loaded successfully")
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
