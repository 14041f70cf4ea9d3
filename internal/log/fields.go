package log

// Field names for structured logging.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldErrorType  = "error_type"
	FieldFacilityID = "facility_id"
	FieldSectionID  = "section_id"
	FieldCategoryID = "category_id"
	FieldDate       = "date"
	FieldDateFrom   = "date_from"
	FieldDateTo     = "date_to"
	FieldCount      = "count"
	FieldField      = "field"
	FieldPath       = "path"
)

// Component names.
const (
	ComponentApp         = "app"
	ComponentStats       = "stats"
	ComponentAdmin       = "admin"
	ComponentMaintenance = "maintenance"
	ComponentMCP         = "mcp"
	ComponentCLI         = "cli"
)

// Operation names.
const (
	OpCreate  = "create"
	OpRead    = "read"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpList    = "list"
	OpWrite   = "write"
	OpDailies = "dailies"
	OpMonthly = "monthlies"
	OpBackup  = "backup"
	OpPurge   = "purge"
)

// Error type categories.
const (
	ErrorTypeValidation  = "validation_error"
	ErrorTypeNotFound    = "not_found_error"
	ErrorTypeConsistency = "consistency_error"
	ErrorTypeDatabase    = "database_error"
)
