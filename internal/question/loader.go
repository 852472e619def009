package question

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError reports a question bank that could not be read. Record is the
// 1-based data record (CSV rows exclude the header), or 0 for whole-file
// errors.
type ParseError struct {
	Path   string
	Record int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("parse %s: record %d: %v", e.Path, e.Record, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadFile reads a question bank, choosing the format from the extension:
// .json, .yaml/.yml, anything else is treated as CSV.
func LoadFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var qs []Question
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		qs, err = ParseJSON(data)
	case ".yaml", ".yml":
		qs, err = ParseYAML(data)
	default:
		qs, err = ParseCSV(bytes.NewReader(data))
	}
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	return qs, nil
}

// LoadOrBuiltin loads the bank at path, falling back to the built-in pool
// when path is empty, missing, or unparseable. Fallbacks are logged.
func LoadOrBuiltin(path string, logger *slog.Logger) []Question {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return Builtin()
	}
	qs, err := LoadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("question bank not found, using built-in pool", "path", path)
		return Builtin()
	case err != nil:
		logger.Warn("question bank unreadable, using built-in pool", "path", path, "error", err)
		return Builtin()
	case len(qs) == 0:
		logger.Warn("question bank is empty, using built-in pool", "path", path)
		return Builtin()
	}
	return qs
}

// ParseCSV reads rows with header id,prompt,A,B,C,D,answer,explanation,chapter,tags.
// Column order is free; explanation, chapter and tags are optional.
func ParseCSV(r io.Reader) ([]Question, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("read header: %w", err)}
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, need := range []string{"prompt", "A", "B", "C", "D", "answer"} {
		if _, ok := cols[need]; !ok {
			return nil, &ParseError{Err: fmt.Errorf("missing column %q", need)}
		}
	}

	var qs []Question
	for n := 1; ; n++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Record: n, Err: err}
		}
		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		q, err := New(
			cell("id"),
			cell("prompt"),
			[NumOptions]string{cell("A"), cell("B"), cell("C"), cell("D")},
			cell("answer"),
			cell("explanation"),
			cell("chapter"),
			splitTags(cell("tags")),
		)
		if err != nil {
			return nil, &ParseError{Record: n, Err: err}
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// record is the loose shape shared by JSON and YAML banks. id and chapter
// may be numbers; tags may be a list or a delimited string.
type record struct {
	ID          any    `json:"id" yaml:"id"`
	IDUpper     any    `json:"ID" yaml:"ID"`
	Prompt      string `json:"prompt" yaml:"prompt"`
	A           string `json:"A" yaml:"A"`
	B           string `json:"B" yaml:"B"`
	C           string `json:"C" yaml:"C"`
	D           string `json:"D" yaml:"D"`
	Answer      string `json:"answer" yaml:"answer"`
	Explanation string `json:"explanation" yaml:"explanation"`
	Chapter     any    `json:"chapter" yaml:"chapter"`
	Tags        any    `json:"tags" yaml:"tags"`
}

func (r record) toQuestion() (Question, error) {
	id := scalarString(r.ID)
	if id == "" {
		id = scalarString(r.IDUpper)
	}
	return New(
		id,
		r.Prompt,
		[NumOptions]string{r.A, r.B, r.C, r.D},
		r.Answer,
		r.Explanation,
		scalarString(r.Chapter),
		tagList(r.Tags),
	)
}

// ParseJSON validates data against the bank schema and decodes it.
func ParseJSON(data []byte) ([]Question, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := validateBank(doc); err != nil {
		return nil, &ParseError{Err: err}
	}

	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, &ParseError{Err: err}
	}
	return fromRecords(recs)
}

// ParseYAML decodes a YAML sequence of bank records.
func ParseYAML(data []byte) ([]Question, error) {
	var recs []record
	if err := yaml.Unmarshal(data, &recs); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("invalid YAML: %w", err)}
	}
	return fromRecords(recs)
}

func fromRecords(recs []record) ([]Question, error) {
	qs := make([]Question, 0, len(recs))
	for i, r := range recs {
		q, err := r.toQuestion()
		if err != nil {
			return nil, &ParseError{Record: i + 1, Err: err}
		}
		qs = append(qs, q)
	}
	return qs, nil
}

func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

func tagList(v any) []string {
	switch x := v.(type) {
	case string:
		return splitTags(x)
	case []any:
		tags := make([]string, 0, len(x))
		for _, t := range x {
			tags = append(tags, scalarString(t))
		}
		return tags
	}
	return nil
}
