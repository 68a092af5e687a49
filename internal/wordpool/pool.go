// Package wordpool provides the fixed word list used by random practice mode
// and the word of the day. The default list is embedded; a plain text or CSV
// file (first column) can replace it.
package wordpool

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

//go:embed words.txt
var defaultWords string

// Pool is an immutable, de-duplicated list of words.
type Pool struct {
	words []string
}

// Default returns the embedded pool.
func Default() *Pool {
	p, err := Parse(strings.NewReader(defaultWords))
	if err != nil {
		panic(fmt.Sprintf("wordpool: embedded list: %v", err))
	}
	return p
}

// Load reads a pool from path. An empty path yields the embedded pool.
func Load(path string) (*Pool, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word pool: %w", err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse word pool %s: %w", path, err)
	}
	return p, nil
}

// Parse reads one word per row from the first CSV column. Blank rows and rows
// starting with '#' are skipped, as are case-insensitive duplicates.
func Parse(r io.Reader) (*Pool, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	seen := make(map[string]bool)
	var words []string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		word := strings.TrimSpace(record[0])
		key := domain.WordKey(word)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		words = append(words, word)
	}

	if len(words) == 0 {
		return nil, domain.NewValidationError("pool", "word pool is empty")
	}
	return &Pool{words: words}, nil
}

// Words returns the pool contents. The slice must not be modified.
func (p *Pool) Words() []string { return p.words }

// Len returns the number of words.
func (p *Pool) Len() int { return len(p.words) }
