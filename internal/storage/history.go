package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	"jdisco/internal/inventory"
)

// ScanRecord is one row of scan history without the full result blob.
type ScanRecord struct {
	ScanID              string    `json:"scanId"`
	Project             string    `json:"project"`
	Root                string    `json:"root"`
	Fingerprint         string    `json:"fingerprint"`
	StartedAt           time.Time `json:"startedAt"`
	FinishedAt          time.Time `json:"finishedAt"`
	FilesScanned        int       `json:"filesScanned"`
	Entities            int       `json:"entities"`
	BusinessComponents  int       `json:"businessComponents"`
	JSFPages            int       `json:"jsfPages"`
	DBConfigs           int       `json:"dbConfigs"`
	BusinessRuleMethods int       `json:"businessRuleMethods"`
}

// SaveScan stores the complete model as a zstd-compressed JSON blob plus the
// summary columns used for listing.
func (db *DB) SaveScan(m *inventory.Model) error {
	blob, err := encodeModel(m)
	if err != nil {
		return err
	}

	err = db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO scans (
				scan_id, project, root, fingerprint,
				started_at, finished_at,
				files_scanned, entities, business_components,
				jsf_pages, db_configs, business_rule_methods, model
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ScanID, m.Project, m.Root, m.Fingerprint,
			m.StartedAt, m.FinishedAt,
			m.Summary.FilesScanned, m.Summary.Entities, m.Summary.BusinessComponents,
			m.Summary.JSFPages, m.Summary.DBConfigs, m.Summary.BusinessRuleMethods,
			blob)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save scan %s: %w", m.ScanID, err)
	}

	db.logger.Debug("Saved scan", "scanId", m.ScanID, "blobBytes", len(blob))
	return nil
}

// ListScans returns the most recent scans, newest first. limit <= 0 means no
// limit.
func (db *DB) ListScans(limit int) ([]ScanRecord, error) {
	query := `
		SELECT scan_id, project, root, fingerprint,
		       started_at, finished_at,
		       files_scanned, entities, business_components,
		       jsf_pages, db_configs, business_rule_methods
		FROM scans
		ORDER BY finished_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var r ScanRecord
		if err := rows.Scan(
			&r.ScanID, &r.Project, &r.Root, &r.Fingerprint,
			&r.StartedAt, &r.FinishedAt,
			&r.FilesScanned, &r.Entities, &r.BusinessComponents,
			&r.JSFPages, &r.DBConfigs, &r.BusinessRuleMethods,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// LoadScan restores the full model for a stored scan ID.
func (db *DB) LoadScan(scanID string) (*inventory.Model, error) {
	var blob []byte
	err := db.conn.QueryRow(
		`SELECT model FROM scans WHERE scan_id = ?`, scanID).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scan %s not found", scanID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scan %s: %w", scanID, err)
	}
	return decodeModel(blob)
}

func encodeModel(m *inventory.Model) ([]byte, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode model: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

func decodeModel(blob []byte) (*inventory.Model, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress model: %w", err)
	}
	var m inventory.Model
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	return &m, nil
}
