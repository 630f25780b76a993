package types

import "fmt"

// ExportFormat represents the output format of a case export
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportHTML ExportFormat = "html"
)

// IsValid checks if the export format is valid
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportCSV, ExportHTML:
		return true
	default:
		return false
	}
}

// ContentType returns the MIME type of the rendered export
func (f ExportFormat) ContentType() string {
	if f == ExportCSV {
		return "text/csv"
	}
	return "text/html"
}

// String returns the string representation of the export format
func (f ExportFormat) String() string {
	return string(f)
}

// ParseExportFormat parses a string into an ExportFormat
func ParseExportFormat(s string) (ExportFormat, error) {
	format := ExportFormat(s)
	if !format.IsValid() {
		return "", fmt.Errorf("invalid export format: %s", s)
	}
	return format, nil
}
