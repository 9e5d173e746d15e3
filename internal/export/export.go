// Package export writes records and derived statistics to CSV and JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"
)

// Format represents the export format.
type Format string

const (
	// FormatCSV represents CSV export format.
	FormatCSV Format = "csv"
	// FormatJSON represents JSON export format.
	FormatJSON Format = "json"
)

// Options holds configuration for export operations.
type Options struct {
	Format     Format
	FilePath   string
	PrettyJSON bool
	Overwrite  bool
}

// Exporter handles exporting tagged structs to the configured format.
type Exporter struct {
	opts Options
}

// NewExporter creates a new Exporter with the given options.
func NewExporter(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export exports the given data. For CSV, data must be a slice of structs
// carrying csv tags; for JSON anything marshalable works.
func (e *Exporter) Export(data interface{}) error {
	switch e.opts.Format {
	case FormatCSV:
		return e.exportCSV(data)
	case FormatJSON:
		return e.exportJSON(data)
	default:
		return fmt.Errorf("unsupported export format: %s", e.opts.Format)
	}
}

func (e *Exporter) exportJSON(data interface{}) error {
	var output []byte
	var err error

	if e.opts.PrettyJSON {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return e.writeToFile(output)
}

func (e *Exporter) exportCSV(data interface{}) (err error) {
	file, fileErr := e.createFile()
	if fileErr != nil {
		return fileErr
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return writeCSVToWriter(file, data)
}

// writeToFile writes data to the configured file path.
func (e *Exporter) writeToFile(data []byte) (err error) {
	file, fileErr := e.createFile()
	if fileErr != nil {
		return fileErr
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = file.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	return nil
}

// createFile creates the output file, handling overwrite settings.
func (e *Exporter) createFile() (*os.File, error) {
	dir := filepath.Dir(e.opts.FilePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	if _, err := os.Stat(e.opts.FilePath); err == nil && !e.opts.Overwrite {
		return nil, fmt.Errorf("file already exists: %s (use overwrite option to replace)", e.opts.FilePath)
	}

	file, err := os.Create(e.opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

// ExportToWriter exports data to an io.Writer instead of a file.
// Useful for writing to stdout or other streams.
func ExportToWriter(w io.Writer, format Format, data interface{}, prettyJSON bool) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		if prettyJSON {
			encoder.SetIndent("", "  ")
		}
		return encoder.Encode(data)
	case FormatCSV:
		return writeCSVToWriter(w, data)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// writeCSVToWriter writes a slice of tagged structs as CSV.
func writeCSVToWriter(w io.Writer, data interface{}) error {
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("CSV export requires a slice, got %s", v.Kind())
	}
	if v.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	firstElem := v.Index(0)
	if firstElem.Kind() == reflect.Ptr {
		firstElem = firstElem.Elem()
	}
	if firstElem.Kind() != reflect.Struct {
		return fmt.Errorf("CSV export requires a slice of structs")
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeaders(firstElem.Type())); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		if elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		if err := writer.Write(structToCSVRow(elem)); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	return nil
}

// csvHeaders extracts field names from a struct type for CSV headers.
func csvHeaders(t reflect.Type) []string {
	var headers []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if csvTag := field.Tag.Get("csv"); csvTag != "" && csvTag != "-" {
			headers = append(headers, csvTag)
		} else if field.IsExported() && field.Tag.Get("csv") != "-" {
			headers = append(headers, field.Name)
		}
	}
	return headers
}

// structToCSVRow converts a struct to a CSV row.
func structToCSVRow(v reflect.Value) []string {
	var row []string
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("csv") == "-" {
			continue
		}
		row = append(row, valueToString(v.Field(i)))
	}
	return row
}

// valueToString converts a reflect.Value to its CSV representation.
// Nil pointers become the empty cell.
func valueToString(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", v.Float())
	case reflect.Bool:
		return fmt.Sprintf("%t", v.Bool())
	case reflect.Struct:
		if v.Type() == reflect.TypeOf(time.Time{}) {
			return v.Interface().(time.Time).Format("2006-01-02")
		}
		return fmt.Sprintf("%v", v.Interface())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// GenerateFilename generates a default filename for an export type.
func GenerateFilename(exportType string, format Format) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", exportType, timestamp, format)
}
