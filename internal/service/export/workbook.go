package export

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"
	models "queenzz/internal/domain/models/library"
)

const (
	questionsSheet = "Questions"
	answersSheet   = "Answers"
)

// Filename builds "<name-slug>_export.<ext>". Names without any sluggable
// character fall back to "library".
func Filename(name, ext string) string {
	base := slug.Make(name)
	if base == "" {
		base = "library"
	}
	return fmt.Sprintf("%s_export.%s", base, ext)
}

// optionLetter returns "a" for 0, "b" for 1 and so on
func optionLetter(i int) string {
	return string(rune('a' + i))
}

// AnswerKey numbers the questions of quizzes consecutively and returns one
// "n-letter" entry per question. A question whose correct answer is not among
// its options gets "?".
func AnswerKey(quizzes []*models.Item) []string {
	var key []string
	n := 1
	for _, quiz := range quizzes {
		for _, q := range quiz.Questions {
			letter := "?"
			if idx := q.CorrectIndex(); idx >= 0 {
				letter = optionLetter(idx)
			}
			key = append(key, fmt.Sprintf("%d-%s", n, letter))
			n++
		}
	}
	return key
}

// Workbook renders quizzes as a printable xlsx file: a questions sheet with
// each quiz title followed by its numbered questions and lettered options,
// and an answer sheet listing the key in two columns.
func Workbook(title string, quizzes []*models.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", questionsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(answersSheet); err != nil {
		return nil, fmt.Errorf("create answer sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}
	heading, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return nil, fmt.Errorf("create style: %w", err)
	}

	w := &sheetWriter{f: f, sheet: questionsSheet, row: 1}
	if strings.TrimSpace(title) != "" {
		w.cell("A", title, heading)
		w.row += 2
	}

	n := 1
	for _, quiz := range quizzes {
		w.cell("A", quiz.Title, heading)
		w.row++
		for _, q := range quiz.Questions {
			w.cell("A", fmt.Sprintf("%d.", n), bold)
			w.cell("B", q.Question, bold)
			w.row++
			for i, opt := range q.Options {
				w.cell("B", fmt.Sprintf("%s) %s", optionLetter(i), opt), wrap)
				w.row++
			}
			w.row++
			n++
		}
	}
	if w.err != nil {
		return nil, w.err
	}
	if err := f.SetColWidth(questionsSheet, "A", "A", 6); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(questionsSheet, "B", "B", 100); err != nil {
		return nil, err
	}

	if err := writeAnswerSheet(f, AnswerKey(quizzes), heading); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeAnswerSheet splits the key at its midpoint into columns A and C
func writeAnswerSheet(f *excelize.File, key []string, heading int) error {
	w := &sheetWriter{f: f, sheet: answersSheet, row: 1}
	w.cell("A", "Answer Sheet", heading)
	w.row += 2

	mid := (len(key) + 1) / 2
	for i := 0; i < mid; i++ {
		w.cell("A", key[i], 0)
		if i+mid < len(key) {
			w.cell("C", key[i+mid], 0)
		}
		w.row++
	}
	return w.err
}

// sheetWriter writes cells of the current row and keeps the first error
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) cell(col, value string, style int) {
	if w.err != nil {
		return
	}
	ref := fmt.Sprintf("%s%d", col, w.row)
	if err := w.f.SetCellStr(w.sheet, ref, value); err != nil {
		w.err = fmt.Errorf("set %s!%s: %w", w.sheet, ref, err)
		return
	}
	if style != 0 {
		if err := w.f.SetCellStyle(w.sheet, ref, ref, style); err != nil {
			w.err = fmt.Errorf("style %s!%s: %w", w.sheet, ref, err)
		}
	}
}
