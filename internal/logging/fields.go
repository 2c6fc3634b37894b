package logging

// Field name constants for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Per-document fields.
	FieldMode        = "mode"
	FieldModeSource  = "mode_source"
	FieldSchema      = "schema"
	FieldEncoding    = "encoding"
	FieldTags        = "tags"
	FieldDiagnostics = "diagnostics"
	FieldDuration    = "duration"

	// Run fields.
	FieldJobs             = "jobs"
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldFilesFailed      = "files_failed"
	FieldDiagnosticsTotal = "diagnostics_total"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Check fields.
	FieldKind        = "kind"
	FieldName        = "name"
	FieldSeverity    = "severity"
	FieldDescription = "description"
)
