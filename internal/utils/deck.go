package utils

import (
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed data/deck.json
var defaultDeck []byte

var ErrEmptyDeck = errors.New("deck has no cards")

type deckEntry struct {
	Name string `json:"name"`
}

// DefaultDeck returns the built-in 54 card catalog.
func DefaultDeck() ([]string, error) {
	return parseJSONDeck(defaultDeck)
}

// LoadDeck reads the card catalog from a .json or .csv file. JSON may be a
// list of strings or a list of objects with a "name" field; CSV takes the
// first column of every record.
func LoadDeck(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open deck %s: %w", filePath, err)
	}
	defer f.Close()

	var names []string
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		names, err = parseCSVDeck(f)
	default:
		var raw []byte
		raw, err = io.ReadAll(f)
		if err == nil {
			names, err = parseJSONDeck(raw)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("parse deck %s: %w", filePath, err)
	}

	log.Info().Str("path", filePath).Int("cards", len(names)).Msg("[LoadDeck] catalog loaded")
	return names, nil
}

func parseJSONDeck(raw []byte) ([]string, error) {
	var entries []deckEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		var plain []string
		if errPlain := json.Unmarshal(raw, &plain); errPlain != nil {
			return nil, err
		}
		return uniqueNames(plain)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return uniqueNames(names)
}

func parseCSVDeck(r io.Reader) ([]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(records))
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		// optional header row
		if i == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "name") {
			continue
		}
		names = append(names, record[0])
	}
	return uniqueNames(names)
}

// uniqueNames drops blank entries and rejects duplicates, which would
// break the no-repeat draw.
func uniqueNames(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			log.Warn().Msg("[LoadDeck] skipping blank card name")
			continue
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("duplicate card %q", n)
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, ErrEmptyDeck
	}
	return out, nil
}
