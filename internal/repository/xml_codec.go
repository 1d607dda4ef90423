package repository

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/weekplan/internal/domain"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// planDocument is the on-disk shape of a plan: a <tasks> container holding
// nested <task> elements. The container is not itself a task.
type planDocument struct {
	XMLName xml.Name      `xml:"tasks"`
	Tasks   []taskElement `xml:"task"`
}

// Attribute order here is the order written to disk.
type taskElement struct {
	Text      string        `xml:"text,attr"`
	Done      bool          `xml:"done,attr"`
	Important bool          `xml:"important,attr"`
	Urgent    bool          `xml:"urgent,attr"`
	Optional  bool          `xml:"optional,attr"`
	Obsolete  bool          `xml:"obsolete,attr"`
	Open      bool          `xml:"open,attr"`
	Children  []taskElement `xml:"task"`
}

// EncodePlan serializes forest. Equal forests always encode to identical
// bytes. Text that would not decode back unchanged is rejected with
// domain.ErrInvalidText.
func EncodePlan(forest []*domain.Task) ([]byte, error) {
	if err := checkText(forest); err != nil {
		return nil, err
	}
	doc := planDocument{Tasks: toElements(forest)}
	body, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	var buf bytes.Buffer
	buf.Grow(len(xmlHeader) + len(body) + 1)
	buf.WriteString(xmlHeader)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// DecodePlan parses a plan document. Malformed input yields a
// *domain.ParseError carrying the position where decoding stopped.
func DecodePlan(r io.Reader) ([]*domain.Task, error) {
	dec := xml.NewDecoder(r)
	var doc planDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.ParseError{Err: errors.New("document has no root element")}
		}
		line, col := dec.InputPos()
		var syn *xml.SyntaxError
		if errors.As(err, &syn) {
			return nil, &domain.ParseError{Line: syn.Line, Column: col, Err: errors.New(syn.Msg)}
		}
		return nil, &domain.ParseError{Line: line, Column: col, Err: err}
	}
	if err := checkTrailing(dec); err != nil {
		return nil, err
	}
	return toTasks(doc.Tasks), nil
}

// checkTrailing allows only whitespace, comments and processing
// instructions after the root element.
func checkTrailing(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line, col := dec.InputPos()
		if err != nil {
			var syn *xml.SyntaxError
			if errors.As(err, &syn) {
				return &domain.ParseError{Line: syn.Line, Column: col, Err: errors.New(syn.Msg)}
			}
			return &domain.ParseError{Line: line, Column: col, Err: err}
		}
		switch tok := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) != 0 {
				return &domain.ParseError{Line: line, Column: col, Err: errors.New("text after root element")}
			}
		default:
			return &domain.ParseError{Line: line, Column: col, Err: errors.New("content after root element")}
		}
	}
}

func checkText(forest []*domain.Task) error {
	for _, t := range forest {
		if !domain.ValidText(t.Text) {
			return fmt.Errorf("encoding plan: %q: %w", t.Text, domain.ErrInvalidText)
		}
		if err := checkText(t.Children); err != nil {
			return err
		}
	}
	return nil
}

func toElements(forest []*domain.Task) []taskElement {
	if len(forest) == 0 {
		return nil
	}
	out := make([]taskElement, len(forest))
	for i, t := range forest {
		out[i] = taskElement{
			Text:      t.Text,
			Done:      t.Done,
			Important: t.Important,
			Urgent:    t.Urgent,
			Optional:  t.Optional,
			Obsolete:  t.Obsolete,
			Open:      t.Open,
			Children:  toElements(t.Children),
		}
	}
	return out
}

func toTasks(elems []taskElement) []*domain.Task {
	if len(elems) == 0 {
		return nil
	}
	out := make([]*domain.Task, 0, len(elems))
	for _, e := range elems {
		out = append(out, &domain.Task{
			Text:      e.Text,
			Done:      e.Done,
			Important: e.Important,
			Urgent:    e.Urgent,
			Optional:  e.Optional,
			Obsolete:  e.Obsolete,
			Open:      e.Open,
			Children:  toTasks(e.Children),
		})
	}
	return out
}
