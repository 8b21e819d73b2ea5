package view

import (
	"bytes"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Template renderer shared by every UI handler. Pages that carry a
// {{define "content"}} block are wrapped in layout.html; anything else is
// treated as a bare fragment (HTML rows swapped in by the client) and rendered
// standalone. Page templates are parsed together with their sibling fragments
// so a collection view can reuse its row markup via {{template}}.

var (
	baseDir string
	once    sync.Once

	tplCache = struct {
		sync.RWMutex
		m map[string]*cached
	}{m: map[string]*cached{}}
)

type cached struct {
	tpl  *template.Template
	exec string
}

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// SetBaseDir overrides the template base directory (useful for tests or custom setups).
func SetBaseDir(path string) {
	if path == "" {
		return
	}
	baseDir = filepath.Clean(path)
	once = sync.Once{}
}

// ResetForTests clears the cache and forces base dir detection to rerun.
func ResetForTests() {
	tplCache.Lock()
	tplCache.m = map[string]*cached{}
	tplCache.Unlock()
	baseDir = ""
	once = sync.Once{}
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		// str flattens optional text columns for display; nil renders empty.
		"str": func(v any) string {
			switch s := v.(type) {
			case nil:
				return ""
			case string:
				return s
			case *string:
				if s == nil {
					return ""
				}
				return *s
			default:
				return ""
			}
		},
		"fmtTime":   func(v any) string { return formatTime(v, "2006-01-02 15:04") },
		"inputTime": func(v any) string { return formatTime(v, "2006-01-02T15:04") },
		"mul": func(a, b float64) float64 {
			return a * b
		},
		"year": func() int { return time.Now().Year() },
		// dict creates a map from key-value pairs for passing to sub-templates.
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

func formatTime(v any, layout string) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(layout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(layout)
	default:
		return ""
	}
}

// Render parses and executes the named template relative to the templates root,
// e.g. "quotes/quotes.html" or "quotes/quotes_row.html".
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	_ = r
	if baseDir == "" {
		once.Do(detectBase)
	}
	if data == nil {
		data = map[string]any{}
	}

	devMode := os.Getenv("DEV") == "1"
	if !devMode {
		tplCache.RLock()
		c, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok && c != nil {
			return c.tpl.ExecuteTemplate(w, c.exec, data)
		}
	}

	mainPath := filepath.Join(baseDir, name)
	content, err := os.ReadFile(mainPath)
	if err != nil {
		return err
	}

	c := &cached{}
	if bytes.Contains(content, []byte(`{{define "content"`)) {
		// Full page: layout + page + sibling fragments from the page's
		// directory. Siblings that are pages themselves (they define their own
		// content block) are skipped so they cannot shadow this page's body.
		files := []string{filepath.Join(baseDir, "layout.html"), mainPath}
		siblings, _ := filepath.Glob(filepath.Join(filepath.Dir(mainPath), "*.html"))
		for _, s := range siblings {
			if filepath.Base(s) == filepath.Base(mainPath) {
				continue
			}
			b, err := os.ReadFile(s)
			if err != nil || bytes.Contains(b, []byte(`{{define "content"`)) {
				continue
			}
			files = append(files, s)
		}
		parsed, err := template.New("layout.html").Funcs(Funcs()).ParseFiles(files...)
		if err != nil {
			return err
		}
		c.tpl = parsed
		c.exec = "layout.html"
	} else {
		parsed, err := template.New(filepath.Base(name)).Funcs(Funcs()).ParseFiles(mainPath)
		if err != nil {
			return err
		}
		c.tpl = parsed
		c.exec = filepath.Base(name)
	}

	if !devMode {
		tplCache.Lock()
		tplCache.m[name] = c
		tplCache.Unlock()
	}
	return c.tpl.ExecuteTemplate(w, c.exec, data)
}
