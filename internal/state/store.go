package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/metrics"
	"github.com/five82/shelf/internal/mirror"
	"github.com/five82/shelf/internal/platzi"
	"github.com/five82/shelf/internal/view"
)

// DefaultPageSize is the number of rows per page until the user picks another.
const DefaultPageSize = 10

var (
	// ErrLoad marks the initial load failing with no local mirror to fall back on.
	ErrLoad = errors.New("load products")
	// ErrUnknownColumn is returned by SetSort for columns that cannot be sorted.
	ErrUnknownColumn = errors.New("unknown sort column")
	// ErrInvalidPageSize is returned by SetPageSize for sizes below one.
	ErrInvalidPageSize = errors.New("page size must be at least 1")
)

// Source records where the current collection came from.
type Source int

const (
	SourceNone Source = iota
	SourceMirror
	SourceRemote
)

func (s Source) String() string {
	switch s {
	case SourceMirror:
		return "mirror"
	case SourceRemote:
		return "remote"
	default:
		return "none"
	}
}

// Options wires a Store to its collaborators.
type Options struct {
	Remote   platzi.ProductAPI
	Mirror   mirror.Mirror
	Metrics  *metrics.Metrics
	PageSize int
}

// Store is the single owner of the product collection and the view settings.
//
// mu guards the state and is never held across a network call. writeMu
// serializes whole mutations (load, reset, update, create) so that a second
// mutation cannot interleave with the read-modify-write of another one while
// it waits on the API.
type Store struct {
	remote  platzi.ProductAPI
	mirror  mirror.Mirror
	metrics *metrics.Metrics

	writeMu sync.Mutex

	mu       sync.RWMutex
	all      []catalog.Product
	filtered []catalog.Product
	filter   string
	sort     view.Sort
	page     int
	pageSize int
	source   Source
	loadErr  error
}

// New builds an empty Store. Call Initialize to populate it.
func New(opts Options) *Store {
	size := opts.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	return &Store{
		remote:   opts.Remote,
		mirror:   opts.Mirror,
		metrics:  opts.Metrics,
		page:     1,
		pageSize: size,
	}
}

// Initialize adopts the mirrored collection when it is non-empty, otherwise
// fetches from the API and mirrors the result. The returned error wraps
// ErrLoad; the collection stays empty in that case.
func (s *Store) Initialize(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if products, ok := s.mirror.Load(ctx); ok && len(products) > 0 {
		s.adopt(products, SourceMirror)
		log.Info().Int("products", len(products)).Msg("loaded products from local mirror")
		return nil
	}
	return s.fetchLocked(ctx)
}

// Reset discards the local mirror and reloads from the API. The filter, sort
// and page return to their defaults; the page size is kept.
func (s *Store) Reset(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mirror.Clear(context.WithoutCancel(ctx))

	s.mu.Lock()
	s.filter = ""
	s.sort = view.Sort{}
	s.page = 1
	s.mu.Unlock()

	return s.fetchLocked(ctx)
}

func (s *Store) fetchLocked(ctx context.Context) error {
	products, err := s.remote.FetchProducts(ctx)
	if err != nil {
		loadErr := fmt.Errorf("%w: %w", ErrLoad, err)
		s.mu.Lock()
		s.all = nil
		s.filtered = nil
		s.page = 1
		s.source = SourceNone
		s.loadErr = loadErr
		s.mu.Unlock()
		log.Error().Err(err).Msg("fetch products failed")
		return loadErr
	}
	s.adopt(products, SourceRemote)
	s.mirror.Save(context.WithoutCancel(ctx), products)
	log.Info().Int("products", len(products)).Msg("loaded products from api")
	return nil
}

func (s *Store) adopt(products []catalog.Product, source Source) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.all = catalog.CloneAll(products)
	if s.all == nil {
		s.all = []catalog.Product{}
	}
	s.source = source
	s.loadErr = nil
	s.refilterLocked()
}

// refilterLocked recomputes filtered from all and keeps page in range.
func (s *Store) refilterLocked() {
	s.filtered = view.Filter(s.all, s.filter)
	s.page = view.ClampPage(s.page, view.TotalPages(len(s.filtered), s.pageSize))
}

// SetFilter changes the search term and returns to the first page.
func (s *Store) SetFilter(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = term
	s.page = 1
	s.refilterLocked()
}

// SetSort selects column, flipping the direction when it is already selected.
func (s *Store) SetSort(column view.Column) error {
	if !column.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sort = s.sort.Toggle(column)
	s.page = 1
	return nil
}

// SetPageSize changes the rows per page and returns to the first page.
func (s *Store) SetPageSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pageSize = n
	s.page = 1
	s.refilterLocked()
	return nil
}

// SetPage moves to page n. It reports false and changes nothing when n is
// outside [1, total pages].
func (s *Store) SetPage(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 || n > view.TotalPages(len(s.filtered), s.pageSize) {
		return false
	}
	s.page = n
	return true
}

// UpdateProduct sends patch to the API and then applies it locally whatever
// the API said. An unknown id leaves the collection untouched. A patch with
// an unusable price is rejected before either side is touched.
func (s *Store) UpdateProduct(ctx context.Context, id int64, patch catalog.Patch) Outcome {
	if err := patch.Validate(); err != nil {
		s.metrics.ObserveMutation(OpUpdate, ValidationFailed.String())
		return Outcome{Op: OpUpdate, Kind: ValidationFailed, Err: err}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	remote, err := s.remote.UpdateProduct(ctx, id, patch)
	kind := classify(err)
	if err != nil {
		log.Warn().Err(err).Int64("id", id).Str("outcome", kind.String()).Msg("remote update failed, applying locally")
	}

	s.mu.Lock()
	idx := catalog.IndexOf(s.all, id)
	if idx < 0 {
		s.mu.Unlock()
		log.Debug().Int64("id", id).Msg("update for unknown product dropped")
		s.metrics.ObserveMutation(OpUpdate, kind.String())
		return Outcome{Op: OpUpdate, Kind: kind, Err: err}
	}

	record := s.all[idx]
	if err == nil && remote != nil && remote.ID == id {
		record = mergeRemote(record, *remote)
	}
	patch.Apply(&record)
	s.all[idx] = record
	s.refilterLocked()
	snapshot := catalog.CloneAll(s.all)
	s.mu.Unlock()

	s.mirror.Save(context.WithoutCancel(ctx), snapshot)
	s.metrics.ObserveMutation(OpUpdate, kind.String())

	stored := record.Clone()
	return Outcome{Op: OpUpdate, Kind: kind, Product: &stored, Err: err}
}

// mergeRemote takes the server's record as the base, keeping local
// category and images when the server omitted them.
func mergeRemote(local, remote catalog.Product) catalog.Product {
	merged := remote.Clone()
	if merged.Category == nil && local.Category != nil {
		cat := *local.Category
		merged.Category = &cat
	}
	if merged.Images == nil {
		merged.Images = append([]string(nil), local.Images...)
	}
	return merged
}

// CreateProduct validates draft, sends it to the API and appends the result.
// When the API fails, a local record with the next free id is appended instead.
func (s *Store) CreateProduct(ctx context.Context, draft catalog.Draft) Outcome {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		s.metrics.ObserveMutation(OpCreate, ValidationFailed.String())
		return Outcome{Op: OpCreate, Kind: ValidationFailed, Err: err}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	created, err := s.remote.CreateProduct(ctx, draft)
	kind := classify(err)
	if err != nil {
		log.Warn().Err(err).Str("title", draft.Title).Str("outcome", kind.String()).Msg("remote create failed, creating locally")
	}

	s.mu.Lock()
	var record catalog.Product
	// A 2xx with an empty body still means the server accepted the create,
	// so the outcome stays RemoteApplied around the synthesized record.
	if err == nil && created != nil {
		record = created.Clone()
		if record.ID == 0 || catalog.IndexOf(s.all, record.ID) >= 0 {
			next := catalog.NextID(s.all)
			log.Warn().Int64("remote_id", record.ID).Int64("id", next).Msg("api returned unusable id, assigning local id")
			record.ID = next
		}
	} else {
		record = draft.Synthesize(catalog.NextID(s.all))
	}
	s.all = append(s.all, record)
	s.page = 1
	s.refilterLocked()
	snapshot := catalog.CloneAll(s.all)
	s.mu.Unlock()

	s.mirror.Save(context.WithoutCancel(ctx), snapshot)
	s.metrics.ObserveMutation(OpCreate, kind.String())

	stored := record.Clone()
	return Outcome{Op: OpCreate, Kind: kind, Product: &stored, Err: err}
}
