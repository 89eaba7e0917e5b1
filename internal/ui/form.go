package ui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/catalog"
)

var errInvalidPrice = errors.New("price must be a non-negative number")

type formKind int

const (
	formEdit formKind = iota
	formCreate
)

// form is the edit or create dialog. Inputs are in display order.
type form struct {
	kind   formKind
	id     int64
	labels []string
	inputs []textinput.Model
	focus  int
	// info holds read-only lines shown above the inputs.
	info []string
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	in.Prompt = ""
	return in
}

// newEditForm opens the edit dialog prefilled from p.
func newEditForm(p catalog.Product) form {
	title := newInput("Product title", 200)
	title.SetValue(p.Title)
	price := newInput("0.00", 16)
	price.SetValue(strconv.FormatFloat(p.Price, 'f', -1, 64))
	desc := newInput("Description", 1000)
	desc.SetValue(p.Description)

	f := form{
		kind:   formEdit,
		id:     p.ID,
		labels: []string{"Title", "Price", "Description"},
		inputs: []textinput.Model{title, price, desc},
		info: []string{
			"ID:       " + strconv.FormatInt(p.ID, 10),
			"Category: " + p.CategoryName(),
			"Image:    " + p.FirstImage(),
		},
	}
	f.inputs[0].Focus()
	return f
}

// newCreateForm opens an empty create dialog.
func newCreateForm() form {
	f := form{
		kind:   formCreate,
		labels: []string{"Title", "Price", "Description", "Category ID", "Image URL"},
		inputs: []textinput.Model{
			newInput("Required", 200),
			newInput("Required, greater than 0", 16),
			newInput(catalog.DefaultDescription, 1000),
			newInput("1-5", 6),
			newInput("https://", 500),
		},
	}
	f.inputs[0].Focus()
	return f
}

func (f form) title() string {
	if f.kind == formCreate {
		return "New Product"
	}
	return "Edit Product"
}

func (f *form) move(delta int) {
	f.inputs[f.focus].Blur()
	n := len(f.inputs)
	f.focus = (f.focus + delta + n) % n
	f.inputs[f.focus].Focus()
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) value(i int) string {
	return f.inputs[i].Value()
}

// parsePrice accepts finite, non-negative numbers only.
func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || price < 0 || !catalog.IsFinite(price) {
		return 0, errInvalidPrice
	}
	return price, nil
}

// patch reads the edit inputs. Only the price can be malformed.
func (f form) patch() (catalog.Patch, error) {
	price, err := parsePrice(f.value(1))
	if err != nil {
		return catalog.Patch{}, err
	}
	return catalog.Patch{
		Title:       f.value(0),
		Price:       price,
		Description: f.value(2),
	}, nil
}

// draft reads the create inputs. Unparseable numbers become zero and are
// then rejected by draft validation.
func (f form) draft() catalog.Draft {
	price, err := parsePrice(f.value(1))
	if err != nil {
		price = 0
	}
	categoryID, err := strconv.ParseInt(strings.TrimSpace(f.value(3)), 10, 64)
	if err != nil {
		categoryID = 0
	}
	var images []string
	if url := strings.TrimSpace(f.value(4)); url != "" {
		images = []string{url}
	}
	return catalog.Draft{
		Title:       f.value(0),
		Price:       price,
		Description: f.value(2),
		CategoryID:  categoryID,
		Images:      images,
	}
}
