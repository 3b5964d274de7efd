package domain

// MigrationResult represents the result of one schema statement
type MigrationResult struct {
	Object  string
	Success bool
	Error   error
}
