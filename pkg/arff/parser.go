// Package arff reads dense Attribute-Relation File Format files.
package arff

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrSyntax      = errors.New("arff: syntax error")
	ErrUnsupported = errors.New("arff: unsupported construct")
)

// Column holds the values of one attribute. Numeric attributes fill Floats
// (missing values are NaN), all other types fill Strings (missing values are "").
type Column struct {
	Floats  []float64
	Strings []string
}

// Dataset is a parsed ARFF file. Columns are aligned with Schema.Attributes.
type Dataset struct {
	Schema
	Columns []Column
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	if len(d.Columns) == 0 {
		return 0
	}
	if d.Attributes[0].Type == Numeric {
		return len(d.Columns[0].Floats)
	}
	return len(d.Columns[0].Strings)
}

// Column returns the values of the named attribute.
func (d *Dataset) Column(name string) (Attribute, Column, bool) {
	i := d.Index(name)
	if i < 0 {
		return Attribute{}, Column{}, false
	}
	return d.Attributes[i], d.Columns[i], true
}

// ParseFile opens and parses the ARFF file at path.
func ParseFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open arff")
	}
	defer file.Close()

	ds, err := Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return ds, nil
}

// Parse reads a dense ARFF document. Header keywords are case-insensitive,
// lines starting with '%' are comments.
func Parse(r io.Reader) (*Dataset, error) {
	br := bufio.NewReader(r)
	ds := &Dataset{}
	inData := false
	lineNum := 0

	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, errors.Wrap(readErr, "read arff")
		}
		lineNum++
		line = strings.TrimSpace(line)

		if line != "" && line[0] != '%' {
			var err error
			if inData {
				err = ds.appendRow(line)
			} else {
				inData, err = ds.parseHeaderLine(line)
			}
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	if !inData {
		return nil, errors.Wrap(ErrSyntax, "missing @data section")
	}
	return ds, nil
}

// parseHeaderLine handles one non-empty header line and reports whether the
// @data marker was reached.
func (d *Dataset) parseHeaderLine(line string) (bool, error) {
	keyword, rest := splitKeyword(line)
	switch strings.ToLower(keyword) {
	case "@relation":
		name, _, err := readName(rest)
		if err != nil {
			return false, err
		}
		d.Relation = name
		return false, nil
	case "@attribute":
		attr, err := parseAttribute(rest)
		if err != nil {
			return false, err
		}
		if d.Index(attr.Name) >= 0 {
			return false, errors.Wrapf(ErrSyntax, "duplicate attribute %q", attr.Name)
		}
		d.Attributes = append(d.Attributes, attr)
		d.Columns = append(d.Columns, Column{})
		return false, nil
	case "@data":
		if len(d.Attributes) == 0 {
			return false, errors.Wrap(ErrSyntax, "@data before any @attribute")
		}
		return true, nil
	}
	return false, errors.Wrapf(ErrSyntax, "unexpected header line %q", line)
}

func parseAttribute(rest string) (Attribute, error) {
	name, typeSpec, err := readName(rest)
	if err != nil {
		return Attribute{}, err
	}
	typeSpec = strings.TrimSpace(typeSpec)
	if typeSpec == "" {
		return Attribute{}, errors.Wrapf(ErrSyntax, "attribute %q has no type", name)
	}

	if typeSpec[0] == '{' {
		if !strings.HasSuffix(typeSpec, "}") {
			return Attribute{}, errors.Wrapf(ErrSyntax, "unterminated nominal set for %q", name)
		}
		fields, err := splitFields(typeSpec[1 : len(typeSpec)-1])
		if err != nil {
			return Attribute{}, err
		}
		values := make([]string, len(fields))
		for i, f := range fields {
			values[i] = f.text
		}
		return Attribute{Name: name, Type: Nominal, Values: values}, nil
	}

	kind, _ := splitKeyword(typeSpec)
	switch strings.ToLower(kind) {
	case "numeric", "real", "integer":
		return Attribute{Name: name, Type: Numeric}, nil
	case "string":
		return Attribute{Name: name, Type: String}, nil
	case "date":
		return Attribute{Name: name, Type: Date}, nil
	case "relational":
		return Attribute{}, errors.Wrapf(ErrUnsupported, "relational attribute %q", name)
	}
	return Attribute{}, errors.Wrapf(ErrSyntax, "unknown type %q for attribute %q", kind, name)
}

func (d *Dataset) appendRow(line string) error {
	if line[0] == '{' {
		return errors.Wrap(ErrUnsupported, "sparse data row")
	}
	fields, err := splitFields(line)
	if err != nil {
		return err
	}
	if len(fields) != len(d.Attributes) {
		return errors.Wrapf(ErrSyntax, "expected %d values, got %d", len(d.Attributes), len(fields))
	}

	for i, f := range fields {
		attr := d.Attributes[i]
		missing := f.text == "?" && !f.quoted

		if attr.Type == Numeric {
			v := math.NaN()
			if !missing {
				v, err = strconv.ParseFloat(f.text, 64)
				if err != nil {
					return errors.Wrapf(ErrSyntax, "attribute %q: invalid number %q", attr.Name, f.text)
				}
			}
			d.Columns[i].Floats = append(d.Columns[i].Floats, v)
			continue
		}

		value := f.text
		if missing {
			value = ""
		} else if attr.Type == Nominal && !contains(attr.Values, value) {
			return errors.Wrapf(ErrSyntax, "attribute %q: undeclared value %q", attr.Name, value)
		}
		d.Columns[i].Strings = append(d.Columns[i].Strings, value)
	}
	return nil
}

type field struct {
	text   string
	quoted bool
}

// splitFields splits a comma separated list. Quoted fields keep their inner
// whitespace, unquoted ones are trimmed.
func splitFields(s string) ([]field, error) {
	var fields []field
	i := 0
	for {
		for i < len(s) && isSpace(s[i]) {
			i++
		}

		var f field
		if i < len(s) && (s[i] == '\'' || s[i] == '"') {
			text, n, err := readQuoted(s[i:])
			if err != nil {
				return nil, err
			}
			i += n
			for i < len(s) && isSpace(s[i]) {
				i++
			}
			if i < len(s) && s[i] != ',' {
				return nil, errors.Wrapf(ErrSyntax, "unexpected %q after quoted value", s[i])
			}
			f = field{text: text, quoted: true}
		} else {
			start := i
			for i < len(s) && s[i] != ',' {
				i++
			}
			f = field{text: strings.TrimSpace(s[start:i])}
		}

		fields = append(fields, f)
		if i >= len(s) {
			return fields, nil
		}
		i++
	}
}

// readQuoted reads a quoted token at the start of s and returns its unescaped
// text and the number of bytes consumed.
func readQuoted(s string) (string, int, error) {
	q := s[0]
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		if c == q {
			return b.String(), i + 1, nil
		}
		b.WriteByte(c)
	}
	return "", 0, errors.Wrap(ErrSyntax, "unterminated quote")
}

// readName reads an optionally quoted name and returns the remainder.
func readName(s string) (string, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", errors.Wrap(ErrSyntax, "missing name")
	}
	if s[0] == '\'' || s[0] == '"' {
		name, n, err := readQuoted(s)
		if err != nil {
			return "", "", err
		}
		return name, s[n:], nil
	}
	name, rest := splitKeyword(s)
	return name, rest, nil
}

func splitKeyword(s string) (string, string) {
	i := strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' })
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
