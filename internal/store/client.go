package store

import (
	"database/sql"
)

type Client struct {
	DB *sql.DB

	Path string
}

type DBRow struct {
	Id                 int
	Hash               string
	Vendor             string
	Product            string
	AffectedVersions   string
	PatchedVersions    string
	UnaffectedVersions string
	Investigated       bool
	VendorLink         string
	Notes              string
	Refs               string
	Reporter           string
	LastUpdated        string
	Status             string
}
