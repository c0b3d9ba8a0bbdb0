package processor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/mdYoungDOer/pdf-processor/engine"
	"github.com/mdYoungDOer/pdf-processor/model"
)

// fakeTableEngine serves canned grids per page on the lines pass.
type fakeTableEngine struct {
	pageCount int
	grids     map[int][]*model.Grid
	errPages  map[int]error
}

func (f *fakeTableEngine) PageCount() int { return f.pageCount }

func (f *fakeTableEngine) Tables(_ context.Context, page int, strategy engine.Strategy) ([]*model.Grid, error) {
	if err := f.errPages[page]; err != nil {
		return nil, err
	}
	if strategy != engine.StrategyLines {
		return nil, nil
	}
	return f.grids[page], nil
}

// fakeTextEngine serves canned text per page.
type fakeTextEngine struct {
	pageCount int
	texts     map[int]string
	errPages  map[int]error
}

func (f *fakeTextEngine) PageCount() int { return f.pageCount }

func (f *fakeTextEngine) PageText(_ context.Context, page int) (string, error) {
	if err := f.errPages[page]; err != nil {
		return "", err
	}
	return f.texts[page], nil
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFromBytes_EmptyInput(t *testing.T) {
	_, _, err := FromBytes(nil).Dataset()
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}

	_, _, err = FromBytes([]byte{}).Text()
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestDataset_MergesAcrossPages(t *testing.T) {
	fake := &fakeTableEngine{
		pageCount: 2,
		grids: map[int][]*model.Grid{
			1: {model.GridFromStrings([][]string{
				{"Name", "Total"},
				{"Ann", "10"},
				{"Bob", "20"},
			})},
			2: {model.GridFromStrings([][]string{
				{"Name", "Qty"},
				{"Cyd", "3"},
			})},
		},
	}

	ds, warnings, err := FromEngines(fake, nil).WithLogger(quiet()).Dataset()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("Unexpected warnings: %v", warnings)
	}
	if !reflect.DeepEqual(ds.Columns, []string{"Name", "Total", "Qty"}) {
		t.Fatalf("Expected columns [Name Total Qty], got %v", ds.Columns)
	}
	if ds.RowCount() != 3 {
		t.Fatalf("Expected 3 records, got %d", ds.RowCount())
	}
	if got := ds.Value(2, 2).String(); got != "3" {
		t.Errorf("Expected %q, got %q", "3", got)
	}
	if !ds.Value(0, 2).Null() {
		t.Errorf("Expected null Qty on first page's rows")
	}
}

func TestDataset_NoTablesIsSuccess(t *testing.T) {
	fake := &fakeTableEngine{pageCount: 3}

	ds, warnings, err := FromEngines(fake, nil).WithLogger(quiet()).Dataset()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("Unexpected warnings: %v", warnings)
	}
	if !ds.IsEmpty() {
		t.Errorf("Expected empty dataset, got %+v", ds)
	}
}

func TestDataset_WarningsDoNotAbort(t *testing.T) {
	// Page 1 fails detection, page 2 yields one unusable grid and one
	// good table. The good table must survive.
	unusable := model.NewGrid([]model.Row{
		{{}, {}},
		{{}, {}},
	})
	fake := &fakeTableEngine{
		pageCount: 2,
		errPages:  map[int]error{1: errors.New("engine exploded")},
		grids: map[int][]*model.Grid{
			2: {
				unusable,
				model.GridFromStrings([][]string{
					{"Name", "Total"},
					{"Ann", "10"},
				}),
			},
		},
	}

	ds, warnings, err := FromEngines(fake, nil).WithLogger(quiet()).Dataset()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %v", warnings)
	}
	if warnings[0].Page != 1 || warnings[0].Stage != StageDetect {
		t.Errorf("Unexpected first warning: %+v", warnings[0])
	}
	if warnings[1].Page != 2 || warnings[1].Stage != StageClean {
		t.Errorf("Unexpected second warning: %+v", warnings[1])
	}
	if ds.RowCount() != 1 {
		t.Errorf("Expected the good table kept, got %+v", ds)
	}
}

func TestText_JoinsPagesWithHeaders(t *testing.T) {
	fake := &fakeTextEngine{
		pageCount: 3,
		texts: map[int]string{
			1: "First   page",
			3: "Last page",
		},
	}

	text, warnings, err := FromEngines(nil, fake).WithLogger(quiet()).Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("Unexpected warnings: %v", warnings)
	}
	if !strings.Contains(text, "Page 1 of 3") || !strings.Contains(text, "Page 3 of 3") {
		t.Errorf("Expected page headers, got %q", text)
	}
	if strings.Contains(text, "Page 2 of 3") {
		t.Errorf("Empty page should be skipped, got %q", text)
	}
	if !strings.Contains(text, "First page") {
		t.Errorf("Expected whitespace collapsed, got %q", text)
	}
}

func TestText_WarningOnPageFailure(t *testing.T) {
	fake := &fakeTextEngine{
		pageCount: 2,
		texts:     map[int]string{1: "ok"},
		errPages:  map[int]error{2: errors.New("bad stream")},
	}

	text, warnings, err := FromEngines(nil, fake).WithLogger(quiet()).Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Page != 2 || warnings[0].Stage != StageText {
		t.Fatalf("Expected one text warning for page 2, got %v", warnings)
	}
	if !strings.Contains(text, "ok") {
		t.Errorf("Expected surviving page text, got %q", text)
	}
}

func TestPages_Selection(t *testing.T) {
	fake := &fakeTextEngine{
		pageCount: 5,
		texts:     map[int]string{1: "one", 2: "two", 3: "three"},
	}

	// Duplicated, unordered selection resolves to sorted unique pages.
	text, _, err := FromEngines(nil, fake).Pages(3, 1, 3).WithLogger(quiet()).Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Contains(text, "two") {
		t.Errorf("Unselected page included: %q", text)
	}
	one := strings.Index(text, "one")
	three := strings.Index(text, "three")
	if one < 0 || three < 0 || one > three {
		t.Errorf("Expected pages in document order, got %q", text)
	}
	if c := strings.Count(text, "three"); c != 1 {
		t.Errorf("Duplicate selection processed twice: %q", text)
	}
}

func TestPageRange(t *testing.T) {
	fake := &fakeTextEngine{
		pageCount: 5,
		texts:     map[int]string{2: "two", 3: "three", 4: "four"},
	}

	text, _, err := FromEngines(nil, fake).PageRange(2, 3).WithLogger(quiet()).Text()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(text, "two") || !strings.Contains(text, "three") {
		t.Errorf("Expected range pages, got %q", text)
	}
	if strings.Contains(text, "four") {
		t.Errorf("Page past range included: %q", text)
	}
}

func TestPages_OutOfRange(t *testing.T) {
	fake := &fakeTableEngine{pageCount: 2}

	_, _, err := FromEngines(fake, nil).Pages(7).WithLogger(quiet()).Dataset()
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("Expected out-of-range error, got %v", err)
	}
}

func TestConfigurationIsImmutable(t *testing.T) {
	base := FromEngines(&fakeTableEngine{pageCount: 9}, nil).WithLogger(quiet())

	restricted := base.Pages(1)
	if len(base.options.pages) != 0 {
		t.Error("Pages leaked back into the base chain")
	}
	if len(restricted.options.pages) != 1 {
		t.Error("Derived chain missing its page selection")
	}

	other := base.WithMerger(nil)
	if base.options.merger == nil {
		t.Error("WithMerger leaked back into the base chain")
	}
	_ = other
}

func TestPageCount(t *testing.T) {
	n, err := FromEngines(&fakeTableEngine{pageCount: 4}, nil).PageCount()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != 4 {
		t.Errorf("Expected 4, got %d", n)
	}

	n, err = FromEngines(nil, &fakeTextEngine{pageCount: 2}).PageCount()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2, got %d", n)
	}
}

func TestMissingEngines(t *testing.T) {
	if _, _, err := FromEngines(nil, &fakeTextEngine{pageCount: 1}).Dataset(); err == nil {
		t.Error("Expected an error without a table engine")
	}
	if _, _, err := FromEngines(&fakeTableEngine{pageCount: 1}, nil).Text(); err == nil {
		t.Error("Expected an error without a text engine")
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected Must to panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}

func TestMustResult(t *testing.T) {
	if got := MustResult("ok", nil, nil); got != "ok" {
		t.Errorf("Expected %q, got %q", "ok", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected MustResult to panic on error")
		}
	}()
	MustResult("", nil, errors.New("boom"))
}

func TestFormatWarnings(t *testing.T) {
	got := FormatWarnings([]Warning{
		{Page: 1, Stage: StageDetect, Message: "a"},
		{Page: 2, Stage: StageText, Message: "b"},
	})
	want := "page 1 (detect): a\npage 2 (text): b"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
