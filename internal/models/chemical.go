package models

import (
	"time"

	"github.com/lib/pq"
)

// Chemical represents a single bottle in the inventory. ShelfID is a soft
// reference to a shelf: it is checked against the shelves table when the
// chemical is created, but no foreign-key constraint enforces it afterwards.
type Chemical struct {
	ID             string         `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	ShelfID        string         `json:"shelf_id" db:"shelf_id"`
	Formula        string         `json:"formula" db:"formula"`
	FormulaLatex   string         `json:"formula_latex" db:"formula_latex"`
	Synonyms       pq.StringArray `json:"synonyms" db:"synonyms"`
	MsdsURL        string         `json:"msds_url" db:"msds_url"`
	Structure2DURL string         `json:"structure_2d_url" db:"structure_2d_url"`
	BottleNumber   string         `json:"bottle_number" db:"bottle_number"`
	IsConcentrated bool           `json:"is_concentrated" db:"is_concentrated"`
}

// Shelf is a physical shelf. ShelfInitial is the short prefix code used when
// generating bottle numbers for chemicals placed on it.
type Shelf struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Location     string    `json:"location" db:"location"`
	ShelfInitial string    `json:"shelf_initial" db:"shelf_initial"`
	LastUpdated  time.Time `json:"last_updated" db:"last_updated"`
}

// ChemicalWithShelf is the read-side shape: a chemical joined with its shelf.
// Shelf is nil when the reference dangles (the shelf was force-deleted).
type ChemicalWithShelf struct {
	Chemical
	Shelf *Shelf `json:"shelf"`
}
