// Package datanode reads and writes the hierarchical text format areas are
// stored in:
//
//	// comment
//	name = value
//	block {
//		child = value
//	}
//
// Values are trimmed. A line without '=' is a node with an empty value.
package datanode

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/automoto/sectormap/shared/gamemath"
)

// ErrSyntax is returned when braces do not balance.
var ErrSyntax = errors.New("datanode: syntax error")

// Node is one entry of the tree.
type Node struct {
	Name     string
	Value    string
	Children []*Node
	Line     int // 1-based source line, 0 for nodes built in code
}

// New creates a node with a value.
func New(name, value string) *Node {
	return &Node{Name: name, Value: value}
}

// Add appends a child and returns it.
func (n *Node) Add(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// AddValue appends a name=value child.
func (n *Node) AddValue(name, value string) *Node {
	return n.Add(New(name, value))
}

// Child returns the first child with the name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child with the name, in order.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Parse reads a whole tree. The returned root has no name.
func Parse(r io.Reader) (*Node, error) {
	root := &Node{}
	stack := []*Node{root}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNr := 0

	for sc.Scan() {
		lineNr++
		line := strings.TrimLeft(sc.Text(), " \t\r")
		if lineNr == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		for line != "" {
			if strings.HasPrefix(line, "//") {
				break
			}
			cur := stack[len(stack)-1]

			if pos := strings.IndexByte(line, '}'); pos == 0 {
				if len(stack) == 1 {
					return nil, fmt.Errorf("line %d: unexpected '}': %w", lineNr, ErrSyntax)
				}
				stack = stack[:len(stack)-1]
				line = strings.TrimLeft(line[1:], " \t\r")
				continue
			}

			if pos := strings.IndexByte(line, '{'); pos >= 0 {
				child := cur.Add(&Node{Name: strings.TrimSpace(line[:pos]), Line: lineNr})
				stack = append(stack, child)
				line = strings.TrimLeft(line[pos+1:], " \t\r")
				continue
			}

			// A closing brace later on the line ends the value
			rest := ""
			if pos := strings.IndexByte(line, '}'); pos > 0 {
				rest = line[pos:]
				line = line[:pos]
			}
			name, value := line, ""
			if pos := strings.IndexByte(line, '='); pos > 0 {
				name, value = line[:pos], line[pos+1:]
			}
			cur.Add(&Node{
				Name:  strings.TrimSpace(name),
				Value: strings.TrimSpace(value),
				Line:  lineNr,
			})
			line = rest
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("block %q opened on line %d is never closed: %w",
			stack[len(stack)-1].Name, stack[len(stack)-1].Line, ErrSyntax)
	}
	return root, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

// Write serializes the children of root, one per line, indented with tabs.
func Write(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	for _, c := range root.Children {
		writeNode(bw, c, 0)
	}
	return bw.Flush()
}

// String returns the serialized children of n.
func (n *Node) String() string {
	var sb strings.Builder
	_ = Write(&sb, n)
	return sb.String()
}

func writeNode(w *bufio.Writer, n *Node, level int) {
	tabs := strings.Repeat("\t", level)
	w.WriteString(tabs)
	w.WriteString(n.Name)
	switch {
	case len(n.Children) > 0:
		w.WriteString(" {\n")
		for _, c := range n.Children {
			writeNode(w, c, level+1)
		}
		w.WriteString(tabs)
		w.WriteString("}")
	case n.Value != "":
		w.WriteString(" = ")
		w.WriteString(n.Value)
	}
	w.WriteString("\n")
}

// Float parses the value as a float.
func (n *Node) Float() (float64, error) {
	f, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", n.Line, n.Name, err)
	}
	return f, nil
}

// Int parses the value as an int.
func (n *Node) Int() (int, error) {
	i, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", n.Line, n.Name, err)
	}
	return i, nil
}

// Bool reads true, yes, y, t and 1 as true, case-insensitively.
// Anything else is false.
func (n *Node) Bool() bool {
	switch strings.ToLower(n.Value) {
	case "true", "yes", "y", "t", "1":
		return true
	}
	return false
}

// Point parses "x y".
func (n *Node) Point() (gamemath.Point, error) {
	p, err := gamemath.ParsePoint(n.Value)
	if err != nil {
		return p, fmt.Errorf("line %d: %s: %w", n.Line, n.Name, err)
	}
	return p, nil
}

// Ints parses space separated ints.
func (n *Node) Ints() ([]int, error) {
	fields := strings.Fields(n.Value)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", n.Line, n.Name, err)
		}
		out[i] = v
	}
	return out, nil
}

// Color parses "r g b [a]". Alpha defaults to 255.
func (n *Node) Color() (color.NRGBA, error) {
	fields := strings.Fields(n.Value)
	if len(fields) < 3 || len(fields) > 4 {
		return color.NRGBA{}, fmt.Errorf("line %d: %s: color %q needs 3 or 4 components", n.Line, n.Name, n.Value)
	}
	c := [4]uint8{0, 0, 0, 255}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("line %d: %s: bad color component %q", n.Line, n.Name, f)
		}
		c[i] = uint8(v)
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}

// FormatColor writes "r g b", adding alpha only when it is not 255.
func FormatColor(c color.NRGBA) string {
	s := fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
	if c.A != 255 {
		s += " " + strconv.Itoa(int(c.A))
	}
	return s
}

// FormatBool writes a bool the way Bool reads it.
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}
