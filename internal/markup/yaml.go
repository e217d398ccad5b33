package markup

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads the YAML form of a declarative UI document. Each element
// is a single-key mapping whose key is the element name:
//
//	VBox:
//	  spacing: 10
//	  children:
//	    - Label: Hello
//	    - Button: {text: OK}
//
// Scalar values become attributes, a scalar element value becomes the
// element text, and nested mappings or sequences become property elements.
type YAMLLoader struct{}

// MaxYAMLNodes caps the elements a YAML document may expand to. Aliases
// are copied in full, so a short document can otherwise describe an
// enormous tree.
const MaxYAMLNodes = 100_000

// Load implements Loader.
func (YAMLLoader) Load(src []byte, _ Options) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, &Error{Msg: strings.TrimPrefix(err.Error(), "yaml: ")}
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &Error{Msg: "document has no root element"}
	}

	w := &yamlWalker{expanding: map[*yaml.Node]bool{}}

	root, err := w.element(doc.Content[0])
	if err != nil {
		return nil, err
	}

	return &Tree{Root: root}, nil
}

// yamlWalker converts yaml nodes into elements. It tracks the anchors
// being expanded so self-referencing aliases fail instead of recursing.
type yamlWalker struct {
	expanding map[*yaml.Node]bool
	nodes     int
}

func (w *yamlWalker) newNode(name string, line int) (*Node, error) {
	w.nodes++
	if w.nodes > MaxYAMLNodes {
		return nil, &Error{Line: line, Msg: fmt.Sprintf("document expands to more than %d elements", MaxYAMLNodes)}
	}

	return &Node{Name: name, Line: line}, nil
}

// resolve follows n when it is an alias. The returned release func must be
// called once the target has been walked.
func (w *yamlWalker) resolve(n *yaml.Node) (*yaml.Node, func(), error) {
	if n.Kind != yaml.AliasNode {
		return n, func() {}, nil
	}

	if n.Alias == nil {
		return nil, nil, &Error{Line: n.Line, Msg: "dangling alias"}
	}

	target := n.Alias
	if w.expanding[target] {
		return nil, nil, &Error{Line: n.Line, Msg: "recursive alias"}
	}

	w.expanding[target] = true

	return target, func() { delete(w.expanding, target) }, nil
}

// element converts a single-key mapping into an element.
func (w *yamlWalker) element(n *yaml.Node) (*Node, error) {
	n, release, err := w.resolve(n)
	if err != nil {
		return nil, err
	}
	defer release()

	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, &Error{Line: n.Line, Msg: "an element must be a mapping with exactly one key"}
	}

	key, value := n.Content[0], n.Content[1]

	el, err := w.newNode(key.Value, key.Line)
	if err != nil {
		return nil, err
	}

	if err := w.fill(el, value); err != nil {
		return nil, err
	}

	return el, nil
}

func (w *yamlWalker) fill(el *Node, value *yaml.Node) error {
	value, release, err := w.resolve(value)
	if err != nil {
		return err
	}
	defer release()

	switch value.Kind {
	case yaml.ScalarNode:
		el.Text = value.Value
		return nil

	case yaml.SequenceNode:
		return w.appendItems(el, value)

	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			if err := w.property(el, value.Content[i], value.Content[i+1]); err != nil {
				return err
			}
		}

		return nil

	default:
		return &Error{Line: value.Line, Msg: fmt.Sprintf("unsupported value for %q", el.Name)}
	}
}

// property adds the mapping entry k: v to el.
func (w *yamlWalker) property(el *Node, k, v *yaml.Node) error {
	v, release, err := w.resolve(v)
	if err != nil {
		return err
	}
	defer release()

	switch v.Kind {
	case yaml.ScalarNode:
		el.Attrs = append(el.Attrs, Attr{Name: k.Value, Value: v.Value})
		return nil

	case yaml.SequenceNode:
		if k.Value == "children" {
			return w.appendItems(el, v)
		}

		prop, err := w.newNode(k.Value, k.Line)
		if err != nil {
			return err
		}

		if err := w.appendItems(prop, v); err != nil {
			return err
		}

		el.Children = append(el.Children, prop)

		return nil

	case yaml.MappingNode:
		prop, err := w.newNode(k.Value, k.Line)
		if err != nil {
			return err
		}

		if err := w.fill(prop, v); err != nil {
			return err
		}

		el.Children = append(el.Children, prop)

		return nil

	default:
		return &Error{Line: v.Line, Msg: fmt.Sprintf("unsupported value for %q", k.Value)}
	}
}

func (w *yamlWalker) appendItems(parent *Node, seq *yaml.Node) error {
	for _, item := range seq.Content {
		child, err := w.element(item)
		if err != nil {
			return err
		}

		parent.Children = append(parent.Children, child)
	}

	return nil
}
