package validation

import "github.com/tallykeep/tally/internal/stats"

// ForFacility builds the rules guarding a facility create or update.
func ForFacility(f stats.Facility) Pipeline {
	return Pipeline{
		Fields(EntityFacility, f),
		Unique(Probe{Entity: EntityFacility, Field: "name", Value: f.Name, ExcludeID: f.ID}),
		Unique(Probe{Entity: EntityFacility, Field: "scope", Value: f.Scope, ExcludeID: f.ID}),
	}
}

// ForSection builds the rules guarding a section create or update.
func ForSection(s stats.Section) Pipeline {
	return Pipeline{
		Fields(EntitySection, s),
		Exists(EntitySection, "facilityId", EntityFacility, s.FacilityID),
		Unique(Probe{
			Entity:     EntitySection,
			Field:      "ordinal",
			Value:      s.Ordinal,
			ScopeField: "facilityId",
			ScopeID:    s.FacilityID,
			ExcludeID:  s.ID,
		}),
	}
}

// ForCategory builds the rules guarding a category create or update.
func ForCategory(c stats.Category) Pipeline {
	return Pipeline{
		Fields(EntityCategory, c),
		Exists(EntityCategory, "sectionId", EntitySection, c.SectionID),
		Unique(Probe{
			Entity:     EntityCategory,
			Field:      "ordinal",
			Value:      c.Ordinal,
			ScopeField: "sectionId",
			ScopeID:    c.SectionID,
			ExcludeID:  c.ID,
		}),
	}
}

// ForDetail builds the rules guarding a detail insert.
func ForDetail(d stats.Detail) Pipeline {
	return Pipeline{
		Fields(EntityDetail, d),
		Exists(EntityDetail, "categoryId", EntityCategory, d.CategoryID),
	}
}

type dailyKey struct {
	SectionID int64  `json:"sectionId" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

// ForDaily builds the rules guarding a daily upsert.
func ForDaily(sectionID int64, date string) Pipeline {
	return Pipeline{
		Fields(EntityDaily, dailyKey{SectionID: sectionID, Date: date}),
		Exists(EntityDaily, "sectionId", EntitySection, sectionID),
	}
}
