// Package store persists validated pipeline specifications and the
// validation failures recorded against submitted documents.
package store

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the sqlite database and creates the tables if needed.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	specTable := `
	CREATE TABLE IF NOT EXISTS specs (
		id TEXT PRIMARY KEY,
		name TEXT,
		source TEXT,
		step_count INTEGER,
		status TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS spec_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		spec_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`

	if _, err := db.Exec(specTable); err != nil {
		return err
	}
	if _, err := db.Exec(errorTable); err != nil {
		return err
	}

	return nil
}

// CloseDB closes the underlying database handle.
func CloseDB() error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// SaveSpec stores a submitted specification document and its outcome.
// The raw source is kept verbatim so invalid documents can be inspected.
func SaveSpec(specID, name string, source []byte, stepCount int, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO specs (id, name, source, step_count, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		specID, name, string(source), stepCount, status, now, now)
	return err
}

// SaveSpecError records a validation failure for a spec
func SaveSpecError(specID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO spec_errors (spec_id, error_message, created_at) VALUES (?, ?, ?)`,
		specID, err.Error(), now)
	return e
}

// ListSpecs returns all stored specs with basic info
func ListSpecs() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, name, step_count, status, created_at, updated_at FROM specs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specs []map[string]interface{}
	for rows.Next() {
		var id, name, status string
		var stepCount int
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &name, &stepCount, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		specs = append(specs, map[string]interface{}{
			"id":        id,
			"name":      name,
			"stepCount": stepCount,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return specs, rows.Err()
}

// GetSpec fetches one spec including its raw source document
func GetSpec(specID string) (map[string]interface{}, error) {
	var name, source, status string
	var stepCount int
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT name, source, step_count, status, created_at, updated_at FROM specs WHERE id = ?`, specID).
		Scan(&name, &source, &stepCount, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        specID,
		"name":      name,
		"source":    source,
		"stepCount": stepCount,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// GetSpecErrors returns the validation failures recorded for a spec
func GetSpecErrors(specID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, error_message, created_at FROM spec_errors WHERE spec_id = ? ORDER BY created_at`, specID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specErrors []map[string]interface{}
	for rows.Next() {
		var id int64
		var message string
		var createdAt time.Time
		if err := rows.Scan(&id, &message, &createdAt); err != nil {
			return nil, err
		}
		specErrors = append(specErrors, map[string]interface{}{
			"id":        id,
			"message":   message,
			"createdAt": createdAt,
		})
	}
	return specErrors, rows.Err()
}

// UpdateSpecStatus updates spec status
func UpdateSpecStatus(specID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE specs SET status = ?, updated_at = ? WHERE id = ?`, status, now, specID)
	return err
}

// DeleteSpec removes a spec and its recorded errors
func DeleteSpec(specID string) error {
	if _, err := db.Exec(`DELETE FROM spec_errors WHERE spec_id = ?`, specID); err != nil {
		return err
	}
	res, err := db.Exec(`DELETE FROM specs WHERE id = ?`, specID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
