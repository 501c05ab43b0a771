// Package archive implements the caller-side post-processing of historical emissions
// downloads: saving the zip payload, extracting it and merging the contained monthly
// CSV files into a single one.
package archive

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Save writes a raw archive payload to the given path, creating missing parent directories
func Save(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Extract unpacks the zip archive at zipPath into destDir
func Extract(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if err := extractFile(file, destDir); err != nil {
			return fmt.Errorf("extract %s: %w", file.Name, err)
		}
	}
	return nil
}

func extractFile(file *zip.File, destDir string) error {
	// Reject entries that would escape the destination directory
	target := filepath.Join(destDir, file.Name)
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal entry path")
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	source, err := file.Open()
	if err != nil {
		return err
	}
	defer source.Close()

	dest, err := os.Create(target)
	if err != nil {
		return err
	}
	defer dest.Close()

	_, err = io.Copy(dest, source)
	return err
}

// Concatenate merges all CSV files inside csvDir into a single CSV file at outPath,
// keeping only the header row of the first file.
// All files are expected to share the same column layout.
func Concatenate(csvDir, outPath string) error {
	paths, err := filepath.Glob(filepath.Join(csvDir, "*.csv"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no CSV files in %s", csvDir)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	for i, path := range paths {
		if err := appendCSV(writer, path, i == 0); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// appendCSV appends the records of a single CSV file to the combined output,
// dropping the header row unless requested otherwise
func appendCSV(writer *csv.Writer, path string, includeHeader bool) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	if !includeHeader {
		records = records[1:]
	}
	return writer.WriteAll(records)
}
