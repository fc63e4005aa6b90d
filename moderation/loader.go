package moderation

import (
	"bufio"
	"bytes"
	"collab-lab/errors"
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed words/*.txt
var embeddedWords embed.FS

// WordList is the result of loading the dictionaries, with the languages found for logging.
type WordList struct {
	Words     []string
	Languages []string
}

// LoadWords reads every "<lang>.txt" file of dir in fsys, one word per line,
// and returns the deduplicated words.
func LoadWords(fsys fs.FS, dir string) (*WordList, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var languages []string
	unique := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		// Scanner copes with both \n and \r\n endings.
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				unique[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(unique) == 0 {
		return nil, errors.ErrEmptyWords
	}

	words := make([]string, 0, len(unique))
	for w := range unique {
		words = append(words, w)
	}
	slices.Sort(words)
	return &WordList{Words: words, Languages: languages}, nil
}

// LoadEmbeddedWords loads the dictionaries shipped with the binary.
func LoadEmbeddedWords() (*WordList, error) {
	return LoadWords(embeddedWords, "words")
}
