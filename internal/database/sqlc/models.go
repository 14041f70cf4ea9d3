package sqldb

import (
	"database/sql"
)

type Facility struct {
	ID        int64
	Name      string
	Scope     string
	Active    int64
	Address1  sql.NullString
	Address2  sql.NullString
	City      sql.NullString
	State     sql.NullString
	ZipCode   sql.NullString
	CreatedAt sql.NullTime
	UpdatedAt sql.NullTime
}

type Section struct {
	ID         int64
	FacilityID int64
	Ordinal    int64
	Scope      string
	Slug       string
	Title      string
	Active     int64
	Notes      sql.NullString
	CreatedAt  sql.NullTime
	UpdatedAt  sql.NullTime
}

type Category struct {
	ID          int64
	SectionID   int64
	Ordinal     int64
	Slug        string
	Service     string
	Accumulated int64
	Active      int64
	Notes       sql.NullString
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

type Detail struct {
	ID         int64
	CategoryID int64
	Date       string
	Value      sql.NullFloat64
	Notes      sql.NullString
	CreatedAt  sql.NullTime
}

type Daily struct {
	SectionID      int64
	Date           string
	CategoryIds    string
	CategoryValues string
	UpdatedAt      sql.NullTime
}
