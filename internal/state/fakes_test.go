package state

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/platzi"
)

var (
	errStatus    = &platzi.NetworkError{Op: platzi.OpUpdate, StatusCode: http.StatusInternalServerError, Err: errors.New("api returned status 500")}
	errTransport = &platzi.NetworkError{Op: platzi.OpUpdate, Err: errors.New("execute request: connection refused")}
)

type fakeRemote struct {
	mu sync.Mutex

	products []catalog.Product
	fetchErr error
	fetches  int

	updateErr  error
	updateResp *catalog.Product
	updates    []catalog.Patch

	createErr  error
	createResp func(catalog.Draft) *catalog.Product
	creates    []catalog.Draft

	// gate, when set, blocks update and create until it is closed.
	gate chan struct{}
}

func (f *fakeRemote) FetchProducts(context.Context) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return catalog.CloneAll(f.products), nil
}

func (f *fakeRemote) UpdateProduct(_ context.Context, _ int64, patch catalog.Patch) (*catalog.Product, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, patch)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResp, nil
}

func (f *fakeRemote) CreateProduct(_ context.Context, draft catalog.Draft) (*catalog.Product, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, draft)
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResp == nil {
		return nil, nil
	}
	return f.createResp(draft), nil
}

type fakeMirror struct {
	mu      sync.Mutex
	stored  []catalog.Product
	present bool
	saves   int
	clears  int
}

func (m *fakeMirror) Load(context.Context) ([]catalog.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.present {
		return nil, false
	}
	return catalog.CloneAll(m.stored), true
}

func (m *fakeMirror) Save(_ context.Context, products []catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.stored = catalog.CloneAll(products)
	m.present = true
}

func (m *fakeMirror) Clear(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.stored = nil
	m.present = false
}

func (m *fakeMirror) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
