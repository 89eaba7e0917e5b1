package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/view"
)

func TestNextPageSize(t *testing.T) {
	cases := map[int]int{0: 5, 5: 10, 10: 20, 15: 20, 20: 50, 50: 5, 80: 5}
	for current, want := range cases {
		if got := nextPageSize(current); got != want {
			t.Fatalf("nextPageSize(%d) = %d, want %d", current, got, want)
		}
	}
}

func TestProductRows(t *testing.T) {
	products := []catalog.Product{
		{ID: 7, Title: "Lamp", Price: 12.5, Category: &catalog.Category{ID: 3, Name: "Furniture"}, Images: []string{`["https://img/lamp.png"]`}},
		{ID: 8, Title: "Mystery", Price: 3},
	}

	rows := productRows(products)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if got := strings.Join(rows[0], "|"); got != "7|Lamp|$12.5|Furniture|https://img/lamp.png" {
		t.Fatalf("row 0 = %q", got)
	}
	if rows[1][3] != "N/A" || rows[1][4] != "-" {
		t.Fatalf("row 1 category/image = %q/%q, want N/A/-", rows[1][3], rows[1][4])
	}
}

func TestSummary(t *testing.T) {
	if got := summary(view.PageInfo{}); got != "No products to show" {
		t.Fatalf("summary(empty) = %q", got)
	}
	info := view.Paginate(25, 2, 10)
	if got := summary(info); got != "Showing 11-20 of 25 products" {
		t.Fatalf("summary = %q", got)
	}
}

func TestRenderPager(t *testing.T) {
	styles := GetTheme("Dracula").Styles()

	if got := renderPager(nil, styles); got != "" {
		t.Fatalf("renderPager(nil) = %q, want empty", got)
	}

	got := renderPager(view.Window(5, 10), styles)
	for _, want := range []string{"‹ Prev", "Next ›", "…", "10", " 5 "} {
		if !strings.Contains(got, want) {
			t.Fatalf("renderPager = %q, missing %q", got, want)
		}
	}
}

func TestHeaderTitle(t *testing.T) {
	if got := headerTitle("Price", view.Indicator{}); got != "Price ↕" {
		t.Fatalf("headerTitle = %q", got)
	}
	if got := headerTitle("Price", view.Indicator{Active: true, Direction: view.Desc}); got != "Price ↓" {
		t.Fatalf("headerTitle = %q", got)
	}
}

func TestColumnWidths_NarrowTerminalKeepsMinimums(t *testing.T) {
	title, image := columnWidths(10)
	if title != minTitleWidth || image != minImageWidth {
		t.Fatalf("columnWidths(10) = %d,%d, want %d,%d", title, image, minTitleWidth, minImageWidth)
	}

	title, image = columnWidths(140)
	if title <= minTitleWidth || image < minImageWidth {
		t.Fatalf("columnWidths(140) = %d,%d", title, image)
	}
}

func TestFormPatch(t *testing.T) {
	f := newEditForm(catalog.Product{ID: 3, Title: "Chair", Price: 40, Description: "oak"})
	f.inputs[0].SetValue("Stool")
	f.inputs[1].SetValue(" 41.5 ")

	patch, err := f.patch()
	if err != nil {
		t.Fatalf("patch returned error: %v", err)
	}
	want := catalog.Patch{Title: "Stool", Price: 41.5, Description: "oak"}
	if patch != want {
		t.Fatalf("patch = %+v, want %+v", patch, want)
	}

	for _, raw := range []string{"forty", "NaN", "+Inf", "-1"} {
		f.inputs[1].SetValue(raw)
		if _, err := f.patch(); !errors.Is(err, errInvalidPrice) {
			t.Fatalf("patch(%q) error = %v, want errInvalidPrice", raw, err)
		}
	}
	f.inputs[1].SetValue("0")
	if _, err := f.patch(); err != nil {
		t.Fatalf("patch(0) returned error: %v", err)
	}
}

func TestFormDraft_UnparseableNumbersBecomeZero(t *testing.T) {
	f := newCreateForm()
	f.inputs[0].SetValue("Desk")
	f.inputs[1].SetValue("abc")
	f.inputs[3].SetValue("x")

	d := f.draft()
	if d.Price != 0 || d.CategoryID != 0 {
		t.Fatalf("draft numbers = %v/%d, want 0/0", d.Price, d.CategoryID)
	}
	if d.Images != nil {
		t.Fatalf("Images = %#v, want nil", d.Images)
	}

	f.inputs[1].SetValue("Inf")
	if d := f.draft(); d.Price != 0 {
		t.Fatalf("draft price for Inf = %v, want 0", d.Price)
	}

	f.inputs[4].SetValue(" https://img/desk.png ")
	if d := f.draft(); len(d.Images) != 1 || d.Images[0] != "https://img/desk.png" {
		t.Fatalf("Images = %#v", d.Images)
	}
}

func TestFormMoveWraps(t *testing.T) {
	f := newCreateForm()
	f.move(-1)
	if f.focus != len(f.inputs)-1 {
		t.Fatalf("focus = %d, want %d", f.focus, len(f.inputs)-1)
	}
	f.move(1)
	if f.focus != 0 {
		t.Fatalf("focus = %d, want 0", f.focus)
	}
}

func TestThemeCycle(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q", got)
	}
	if got := NextTheme("unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(unknown) = %q", got)
	}
	if got := GetTheme("missing").Name; got != "Dracula" {
		t.Fatalf("GetTheme(missing) = %q", got)
	}
}
