package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hattriego/hattrie"
)

// loadStore opens the store file at path and returns its Map[string],
// or an empty map if the file does not yet exist.
func loadStore(path string) (*hattrie.Map[string], error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return hattrie.NewMap[string](), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, _, err := hattrie.DeserializeMap[string](f)
	if err != nil {
		return nil, fmt.Errorf("loading store %s: %w", path, err)
	}
	return m, nil
}

// saveStore overwrites the store file at path with m's contents.
func saveStore(path string, m *hattrie.Map[string]) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.Serialize(f, true)
}

// readEntries reads "key\tvalue" lines from r, one entry per line. A
// line with no tab is treated as a key with an empty value.
func readEntries(r *bufio.Scanner) map[string]string {
	entries := make(map[string]string)
	for r.Scan() {
		line := r.Text()
		if line == "" {
			continue
		}
		if idx := strings.IndexByte(line, '\t'); idx >= 0 {
			entries[line[:idx]] = line[idx+1:]
		} else {
			entries[line] = ""
		}
	}
	return entries
}
