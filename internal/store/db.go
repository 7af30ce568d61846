package store

import (
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"

	"github.com/kvesta/mdyml/pkg/model"
)

const softwareTable = `CREATE TABLE IF NOT EXISTS software (
			"ID" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
			"Hash" TEXT UNIQUE,
			"Vendor" TEXT,
			"Product" TEXT,
			"AffectedVersions" TEXT,
			"PatchedVersions" TEXT,
			"UnaffectedVersions" TEXT,
			"Investigated" INTEGER,
			"VendorLink" TEXT,
			"Notes" TEXT,
			"Refs" TEXT,
			"Reporter" TEXT,
			"LastUpdated" TEXT,
			"Status" TEXT);`

const selectRows = `SELECT "ID", "Hash", "Vendor", "Product", "AffectedVersions", "PatchedVersions",
		"UnaffectedVersions", "Investigated", "VendorLink", "Notes", "Refs", "Reporter",
		"LastUpdated", "Status" FROM software`

const orderRows = ` ORDER BY "Vendor" COLLATE NOCASE, "Product" COLLATE NOCASE`

// Open opens the archive at path, creating the file and schema on first use.
func Open(path string) (*Client, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.FileMode(0755)); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	cli := &Client{DB: db, Path: path}
	if err := cli.Init(); err != nil {
		db.Close()
		return nil, err
	}

	return cli, nil
}

func (cli *Client) Init() error {
	if _, err := cli.DB.Exec(softwareTable); err != nil {
		return fmt.Errorf("create software table: %w", err)
	}
	return nil
}

func (cli *Client) Close() error {
	return cli.DB.Close()
}

// Save writes records, replacing rows with the same vendor, product and
// reporter.
func (cli *Client) Save(records []model.SoftwareRecord) error {
	tx, err := cli.DB.Begin()
	if err != nil {
		return err
	}

	sqlRow := `INSERT OR REPLACE INTO software
				  ("Hash", "Vendor", "Product", "AffectedVersions", "PatchedVersions", "UnaffectedVersions",
				   "Investigated", "VendorLink", "Notes", "Refs", "Reporter", "LastUpdated", "Status")
				  VALUES
				  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, r := range records {
		r = r.Filled()
		hash := md5.Sum([]byte(r.Key()))

		_, err := tx.Exec(sqlRow, hex.EncodeToString(hash[:]), r.Vendor, r.Product,
			encodeList(r.AffectedVersions), encodeList(r.PatchedVersions),
			encodeList(r.UnaffectedVersions), r.Investigated, r.VendorLink,
			r.Notes, encodeList(r.References), r.Reporter, r.LastUpdated, string(r.Status))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("save %q/%q: %w", r.Vendor, r.Product, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Debugf("Saved %d records to %s", len(records), cli.Path)
	return nil
}

func (cli *Client) All() ([]model.SoftwareRecord, error) {
	return cli.query(selectRows + orderRows)
}

// QueryByVendor matches the vendor name case-insensitively.
func (cli *Client) QueryByVendor(vendor string) ([]model.SoftwareRecord, error) {
	return cli.query(selectRows+` WHERE "Vendor" = ? COLLATE NOCASE`+orderRows, vendor)
}

func (cli *Client) QueryByStatus(status model.Status) ([]model.SoftwareRecord, error) {
	return cli.query(selectRows+` WHERE "Status" = ?`+orderRows, string(status))
}

func (cli *Client) query(sqlRow string, args ...interface{}) ([]model.SoftwareRecord, error) {
	records := []model.SoftwareRecord{}

	rows, err := cli.DB.Query(sqlRow, args...)
	if err != nil {
		return records, err
	}

	defer rows.Close()

	for rows.Next() {
		r := &DBRow{}
		err = rows.Scan(&r.Id, &r.Hash, &r.Vendor, &r.Product,
			&r.AffectedVersions, &r.PatchedVersions, &r.UnaffectedVersions,
			&r.Investigated, &r.VendorLink, &r.Notes, &r.Refs,
			&r.Reporter, &r.LastUpdated, &r.Status)
		if err != nil {
			log.Warnf("failed to read software row: %v", err)
			continue
		}

		records = append(records, r.record())
	}

	if err = rows.Err(); err != nil {
		return records, err
	}

	return records, nil
}

func (r *DBRow) record() model.SoftwareRecord {
	return model.SoftwareRecord{
		Vendor:             r.Vendor,
		Product:            r.Product,
		AffectedVersions:   decodeList(r.AffectedVersions),
		PatchedVersions:    decodeList(r.PatchedVersions),
		UnaffectedVersions: decodeList(r.UnaffectedVersions),
		Investigated:       r.Investigated,
		VendorLink:         r.VendorLink,
		Notes:              r.Notes,
		References:         decodeList(r.Refs),
		Reporter:           r.Reporter,
		LastUpdated:        r.LastUpdated,
		Status:             model.Status(r.Status),
	}
}

func encodeList(items []string) string {
	data, _ := json.Marshal(items)
	return string(data)
}

func decodeList(s string) []string {
	items := []string{}
	if s == "" {
		return items
	}
	if err := json.Unmarshal([]byte(s), &items); err != nil || items == nil {
		return []string{}
	}
	return items
}
