package stats

import "time"

// Facility is the top-level organizational unit. Name and Scope are globally unique.
type Facility struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,max=255"`
	Scope     string    `json:"scope" validate:"required,scope"`
	Active    bool      `json:"active"`
	Address1  string    `json:"address1,omitempty" validate:"max=255"`
	Address2  string    `json:"address2,omitempty" validate:"max=255"`
	City      string    `json:"city,omitempty" validate:"max=255"`
	State     string    `json:"state,omitempty" validate:"max=255"`
	ZipCode   string    `json:"zipCode,omitempty" validate:"max=32"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Section groups categories within a facility. Ordinal is unique within the facility.
type Section struct {
	ID         int64     `json:"id"`
	FacilityID int64     `json:"facilityId" validate:"required"`
	Ordinal    int64     `json:"ordinal" validate:"gte=0"`
	Scope      string    `json:"scope" validate:"required,scope"`
	Slug       string    `json:"slug" validate:"required,max=255"`
	Title      string    `json:"title" validate:"required,max=255"`
	Active     bool      `json:"active"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Category is a tracked statistic within a section. Ordinal is unique within the section.
// Accumulated selects between summing and taking the final value in period reports; the
// monthly roll-up implements summing only.
type Category struct {
	ID          int64     `json:"id"`
	SectionID   int64     `json:"sectionId" validate:"required"`
	Ordinal     int64     `json:"ordinal" validate:"gte=0"`
	Slug        string    `json:"slug" validate:"required,max=255"`
	Service     string    `json:"service" validate:"required,max=255"`
	Accumulated bool      `json:"accumulated"`
	Active      bool      `json:"active"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Detail is a single recorded value for one category on one date.
type Detail struct {
	ID         int64     `json:"id"`
	CategoryID int64     `json:"categoryId" validate:"required"`
	Date       string    `json:"date" validate:"required,datetime=2006-01-02"`
	Value      *float64  `json:"value"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CategoryIDs returns the IDs of cats in order, as a CategorySet.
func CategoryIDs(cats []Category) CategorySet {
	ids := make([]int64, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	return NewCategorySet(ids...)
}
