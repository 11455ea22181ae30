// Package writer inserts note annotations into a workbook while keeping its
// drawing shapes intact.
package writer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nappayawal/STAF-Insert-Comment-V3-1/pkg/staf/models"
)

// DefaultAuthor is the note author used when none is configured.
const DefaultAuthor = "STAF Notes"

// Options configures a note-writing session.
type Options struct {
	// OutPath is where the annotated workbook is saved. Empty derives
	// "<name>_with_Note<ext>" next to the input, unless Overwrite is set.
	OutPath string
	// Overwrite saves back to the input path when OutPath is empty.
	Overwrite bool
	// Author is the note author name.
	Author string
}

// Summary reports what one session did.
type Summary struct {
	InPath  string `json:"in_path"`
	OutPath string `json:"out_path"`
	Sheet   string `json:"sheet"`

	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`

	ShapesBefore int `json:"shapes_before"`
	ShapesAfter  int `json:"shapes_after"`
}

// ShapesIntact reports whether the sheet's shape count survived the write.
func (s Summary) ShapesIntact() bool {
	return s.ShapesBefore == s.ShapesAfter
}

// WithNotePath derives the default output path: "plan.xlsm" ->
// "plan_with_Note.xlsm".
func WithNotePath(inPath string) string {
	ext := filepath.Ext(inPath)
	return strings.TrimSuffix(inPath, ext) + "_with_Note" + ext
}

// Session is one open workbook accepting note insertions for a single sheet.
// Nothing is persisted until Close.
type Session struct {
	f       *excelize.File
	sheet   string
	author  string
	outPath string
	summary Summary
}

// Open loads the workbook at inPath for note insertion on the named sheet.
func Open(inPath, sheetName string, opts Options) (*Session, error) {
	shapesBefore, err := CountShapes(inPath, sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to inventory shapes: %w", err)
	}

	f, err := excelize.OpenFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load workbook: %w", err)
	}
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		f.Close()
		return nil, fmt.Errorf("sheet %q not found in %s", sheetName, inPath)
	}

	outPath := opts.OutPath
	if outPath == "" {
		if opts.Overwrite {
			outPath = inPath
		} else {
			outPath = WithNotePath(inPath)
		}
	}
	author := opts.Author
	if author == "" {
		author = DefaultAuthor
	}

	return &Session{
		f:       f,
		sheet:   sheetName,
		author:  author,
		outPath: outPath,
		summary: Summary{
			InPath:       inPath,
			OutPath:      outPath,
			Sheet:        sheetName,
			ShapesBefore: shapesBefore,
		},
	}, nil
}

// Insert adds or replaces the note at cell. An existing note with identical
// text is left alone and counted as skipped.
func (s *Session) Insert(cell, text string) error {
	existing, found, err := s.noteAt(cell)
	if err != nil {
		return err
	}

	if found {
		if strings.TrimSpace(existing) == strings.TrimSpace(text) {
			s.summary.Skipped++
			return nil
		}
		if err := s.f.DeleteComment(s.sheet, cell); err != nil {
			return fmt.Errorf("failed to clear note at %s: %w", cell, err)
		}
		if err := s.addNote(cell, text); err != nil {
			return err
		}
		s.summary.Updated++
		return nil
	}

	if err := s.addNote(cell, text); err != nil {
		return err
	}
	s.summary.Created++
	return nil
}

// InsertAll applies placements in order within this session.
func (s *Session) InsertAll(placements []models.Placement) error {
	for _, p := range placements {
		if err := s.Insert(p.Cell, p.Text); err != nil {
			return err
		}
	}
	return nil
}

// Close saves the workbook and re-counts the sheet's shapes on the written
// file. The returned Summary is valid even when the shape check fails.
func (s *Session) Close() (Summary, error) {
	var err error
	if s.outPath == s.summary.InPath {
		err = s.f.Save()
	} else {
		err = s.f.SaveAs(s.outPath)
	}
	s.f.Close()
	if err != nil {
		return s.summary, fmt.Errorf("failed to save %s: %w", s.outPath, err)
	}

	after, err := CountShapes(s.outPath, s.sheet)
	if err != nil {
		return s.summary, fmt.Errorf("failed to verify shapes: %w", err)
	}
	s.summary.ShapesAfter = after
	return s.summary, nil
}

// Abort closes the workbook without saving.
func (s *Session) Abort() {
	s.f.Close()
}

func (s *Session) addNote(cell, text string) error {
	err := s.f.AddComment(s.sheet, excelize.Comment{
		Cell:   cell,
		Author: s.author,
		Paragraph: []excelize.RichTextRun{
			{Text: text},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to add note at %s: %w", cell, err)
	}
	return nil
}

// noteAt returns the text of the note at cell, if one exists.
func (s *Session) noteAt(cell string) (string, bool, error) {
	comments, err := s.f.GetComments(s.sheet)
	if err != nil {
		return "", false, fmt.Errorf("failed to read notes: %w", err)
	}
	for _, c := range comments {
		if c.Cell == cell {
			return commentText(c), true, nil
		}
	}
	return "", false, nil
}

// commentText flattens a comment's rich text runs, falling back to its plain
// text field.
func commentText(c excelize.Comment) string {
	if len(c.Paragraph) == 0 {
		return c.Text
	}
	var b strings.Builder
	for _, run := range c.Paragraph {
		b.WriteString(run.Text)
	}
	return b.String()
}
