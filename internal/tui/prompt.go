package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const maxSuggestions = 8

type promptResult int

const (
	promptPending promptResult = iota
	promptSubmitted
	promptCancelled
)

// pathPrompt asks for a file path with directory-based completion.
// Completion lists directories and the files accept lets through.
type pathPrompt struct {
	input   textinput.Model
	accept  func(string) bool
	suggest []string
	keys    keyMap
}

func newPathPrompt(seed, ext string, accept func(string) bool, keys keyMap) pathPrompt {
	in := textinput.New()
	in.Prompt = "Path: "
	in.Placeholder = "form" + ext
	in.SetValue(seed)
	in.CursorEnd()
	in.Focus()
	p := pathPrompt{input: in, accept: accept, keys: keys}
	p.computeSuggestions()
	return p
}

func (p *pathPrompt) setWidth(w int) {
	if w > 10 {
		p.input.Width = w - len(p.input.Prompt) - 1
	}
}

// value returns the entered path expanded to an absolute one.
func (p *pathPrompt) value() string { return expandPath(p.input.Value()) }

func (p *pathPrompt) update(msg tea.KeyMsg) (promptResult, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Confirm):
		if strings.TrimSpace(p.input.Value()) == "" {
			return promptPending, nil
		}
		return promptSubmitted, nil
	case key.Matches(msg, p.keys.Cancel):
		return promptCancelled, nil
	case key.Matches(msg, p.keys.Complete):
		if len(p.suggest) > 0 {
			p.input.SetValue(p.suggest[0])
			p.input.CursorEnd()
			p.computeSuggestions()
		}
		return promptPending, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.computeSuggestions()
	return promptPending, cmd
}

func (p *pathPrompt) computeSuggestions() {
	in := p.input.Value()
	if strings.TrimSpace(in) == "" {
		p.suggest = nil
		return
	}
	expanded := expandPath(in)
	dir, base := filepath.Dir(expanded), filepath.Base(expanded)
	if strings.HasSuffix(in, string(filepath.Separator)) {
		dir, base = expanded, ""
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		p.suggest = nil
		return
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if base != "" && !strings.HasPrefix(strings.ToLower(name), strings.ToLower(base)) {
			continue
		}
		if !e.IsDir() && !p.accept(name) {
			continue
		}
		cand := filepath.Join(dir, name)
		if e.IsDir() {
			cand += string(filepath.Separator)
		}
		out = append(out, displayPath(cand))
	}
	sort.Strings(out)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	p.suggest = out
}

func (p *pathPrompt) view() string {
	var b strings.Builder
	b.WriteString(p.input.View())
	for _, s := range p.suggest {
		b.WriteString("\n" + faintStyle.Render("  • ") + s)
	}
	return b.String()
}

// displayPath shortens paths within the home directory to ~/.
func displayPath(p string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	if strings.HasPrefix(p, home+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(p, home)
	}
	return p
}

func expandPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if h, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(h, strings.TrimPrefix(p, "~"))
		}
	}
	p = os.ExpandEnv(p)
	if p != "" && !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}
