// assets/embed.go
//
// Build-time data shipped inside the binary:
//   - words.txt:     the fixed list of secret words.
//   - migrations/:   SQL migrations for the optional round history.
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed words.txt migrations/*.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded secret words, lowercased, comments skipped.
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// Migrations returns the embedded migrations directory as an fs.FS rooted at "migrations".
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "migrations")
}
