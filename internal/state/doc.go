// Package state owns the product collection and the view settings of shelf.
//
// # Overview
//
// Store is the single owner of the product list, the search filter, the sort
// column and the current page. It loads the collection from the local mirror
// or the catalog API, applies edits and creations with a remote-first,
// local-fallback policy, and answers the read queries the UI renders from.
//
// # Loading
//
//	Initialize()
//	  ├─> mirror.Load()        non-empty?  adopt it, done
//	  └─> api.FetchProducts()  ok?         adopt it, mirror.Save()
//	                           failed?     ErrLoad, collection stays empty
//
// Reset clears the mirror first and always goes to the API.
//
// # Mutation Semantics
//
// UpdateProduct and CreateProduct never fail from the caller's point of view.
// The API is tried first; afterwards the change is applied to the local
// collection regardless of the answer, the mirror is saved and the filtered
// view is recomputed. The returned Outcome tells the paths apart:
//
//	RemoteApplied                 API accepted the change
//	RemoteFailedLocalApplied      API answered with an error status
//	NetworkExceptionLocalApplied  API unreachable, timed out, or unreadable
//	ValidationFailed              create draft missing required fields
//
// A failed create gets a local id of max(existing ids)+1 and a category name
// from the fixed category table.
//
// # Concurrency Model
//
// Two locks:
//
//   - writeMu serializes entire mutations, including the time spent waiting
//     on the API, so concurrent creates can never pick the same local id and
//     an update cannot be lost under a concurrent create.
//   - mu (RWMutex) guards the fields and is held only while copying or
//     modifying them, never across network I/O.
//
// Read methods (VisibleSlice, Snapshot, PageWindow, ...) therefore stay
// responsive while a mutation is waiting on a slow API.
//
// Mutations are not cancelled once started: the caller's context bounds the
// API call, but the local apply and the mirror save always run.
//
// # Defensive Copying
//
// Everything returned from the Store is a deep copy. Callers may keep or
// modify returned products freely.
//
// # Invariants
//
//   - filtered is recomputed from all and filter after every change to either
//   - page resets to 1 when filter, sort or page size changes
//   - page always lies in [1, max(1, ceil(matches/pageSize))]
//   - product ids are unique within the collection
package state
