package markup

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// fxNamespace is the namespace FXML documents bind to the "fx" prefix.
const fxNamespace = "http://javafx.com/fxml"

// maxIncludeDepth bounds nested fx:include chains.
const maxIncludeDepth = 16

// XMLLoader loads FXML-style XML documents. <fx:include source="…"/>
// elements are replaced by the root of the referenced file, resolved
// relative to Options.BaseDir.
type XMLLoader struct{}

// Load implements Loader.
func (l XMLLoader) Load(src []byte, opts Options) (*Tree, error) {
	return l.load(src, opts, map[string]bool{}, 0)
}

func (l XMLLoader) load(src []byte, opts Options, visiting map[string]bool, depth int) (*Tree, error) {
	d := xml.NewDecoder(bytes.NewReader(src))
	d.Strict = true

	p := xmlParser{
		loader:   l,
		opts:     opts,
		visiting: visiting,
		depth:    depth,
		prefixes: map[string]string{fxNamespace: "fx"},
		dec:      d,
	}

	return p.parse()
}

type xmlParser struct {
	loader   XMLLoader
	opts     Options
	visiting map[string]bool
	depth    int

	dec       *xml.Decoder
	prefixes  map[string]string // namespace URL -> prefix
	defaultNS string

	tree  Tree
	stack []*Node
}

func (p *xmlParser) parse() (*Tree, error) {
	for {
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var syn *xml.SyntaxError
			if errors.As(err, &syn) {
				return nil, &Error{Line: syn.Line, Msg: syn.Msg}
			}

			return nil, &Error{Line: p.line(), Err: err}
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == "import" {
				p.tree.Imports = append(p.tree.Imports, strings.TrimSpace(string(t.Inst)))
			}

		case xml.StartElement:
			if err := p.start(t); err != nil {
				return nil, err
			}

		case xml.EndElement:
			if err := p.end(); err != nil {
				return nil, err
			}

		case xml.CharData:
			if len(p.stack) == 0 {
				if s := strings.TrimSpace(string(t)); s != "" {
					return nil, &Error{Line: p.line(), Msg: fmt.Sprintf("text %q outside the root element", s)}
				}

				continue
			}

			top := p.stack[len(p.stack)-1]
			top.Text += strings.TrimSpace(string(t))
		}
	}

	if p.tree.Root == nil {
		return nil, &Error{Msg: "document has no root element"}
	}

	return &p.tree, nil
}

func (p *xmlParser) start(t xml.StartElement) error {
	line := p.line()

	if len(p.stack) == 0 && p.tree.Root != nil {
		return &Error{Line: line, Msg: "document has more than one root element"}
	}

	// Namespace declarations first so the element's own prefix resolves.
	for _, a := range t.Attr {
		switch {
		case a.Name.Space == "xmlns":
			p.prefixes[a.Value] = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			p.defaultNS = a.Value
		}
	}

	n := &Node{Name: p.qualify(t.Name), Line: line}

	for _, a := range t.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}

		n.Attrs = append(n.Attrs, Attr{Name: p.qualify(a.Name), Value: a.Value})
	}

	if n.Name == "fx:include" {
		included, err := p.include(n)
		if err != nil {
			return err
		}

		n = included
	}

	if len(p.stack) == 0 {
		p.tree.Root = n
	} else {
		parent := p.stack[len(p.stack)-1]
		parent.Children = append(parent.Children, n)
	}

	p.stack = append(p.stack, n)

	return nil
}

func (p *xmlParser) end() error {
	if len(p.stack) == 0 {
		return &Error{Line: p.line(), Msg: "unexpected end element"}
	}

	p.stack = p.stack[:len(p.stack)-1]

	return nil
}

func (p *xmlParser) include(n *Node) (*Node, error) {
	source, ok := n.Attr("source")
	if !ok || source == "" {
		return nil, &Error{Line: n.Line, Msg: "fx:include without a source attribute"}
	}

	if p.opts.BaseDir == "" && !filepath.IsAbs(source) {
		return nil, &Error{Line: n.Line, Msg: fmt.Sprintf("cannot resolve include %q: document has not been saved", source)}
	}

	if p.depth >= maxIncludeDepth {
		return nil, &Error{Line: n.Line, Msg: fmt.Sprintf("includes nested deeper than %d", maxIncludeDepth)}
	}

	path := source
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.opts.BaseDir, filepath.FromSlash(source))
	}

	path = filepath.Clean(path)

	if p.visiting[path] {
		return nil, &Error{Line: n.Line, Msg: fmt.Sprintf("include cycle through %s", source)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Line: n.Line, Msg: fmt.Sprintf("missing include %q", source), Err: err}
	}

	p.visiting[path] = true
	defer delete(p.visiting, path)

	sub, err := p.loader.load(data, Options{BaseDir: filepath.Dir(path)}, p.visiting, p.depth+1)
	if err != nil {
		return nil, &Error{Line: n.Line, Msg: fmt.Sprintf("in include %q", source), Err: err}
	}

	root := sub.Root
	root.Source = source

	// fx:id and other attributes on the include element apply to the
	// included root.
	for _, a := range n.Attrs {
		if a.Name != "source" {
			root.Attrs = append(root.Attrs, a)
		}
	}

	return root, nil
}

func (p *xmlParser) qualify(name xml.Name) string {
	switch {
	case name.Space == "":
		return name.Local
	case name.Space == p.defaultNS:
		return name.Local
	}

	if prefix, ok := p.prefixes[name.Space]; ok {
		return prefix + ":" + name.Local
	}

	// Undeclared prefixes come through verbatim.
	return name.Space + ":" + name.Local
}

func (p *xmlParser) line() int {
	line, _ := p.dec.InputPos()
	return line
}
