// Package interfaces documents the core abstractions used throughout the application.
//
// Consumers declare the narrow interface they need next to the code that uses
// it; the concrete repositories and clients satisfy them implicitly. This
// package only holds the compile-time checks that tie the two together.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - LibraryEntryStore, EntryGetter: shelf mutations (internal/http/library.go, stores.go)
//   - CategoryStore, EntryCategoryStore: TBR categories (internal/http/categories.go, library.go)
//   - NoteStore: reading notes (internal/http/notes.go)
//   - ClubStore: clubs and suggestions (internal/http/clubs.go)
//   - ProfileStore: user profiles (internal/http/profiles.go)
//   - LibraryStore, CategoryResolver, BookStore, ClubStore, ProfileStore, PublicNoteReader: service inputs (internal/services/interfaces.go)
//
// ## Service Interfaces
//
//   - LibraryViewer: composed library listings (internal/http/library.go)
//   - BookCatalog: catalog search and add-to-library (internal/http/books.go)
//   - ClubBoard: member-only suggestion board and member profiles (internal/http/clubs.go)
//
// ## External Service Interfaces
//
//   - CatalogSearcher: Open Library search (internal/services/interfaces.go)
//   - CoverCache, CoverStore: local cover images (internal/http/books.go, internal/tasks/prefetch.go)
//
// ## Background Work Interfaces
//
//   - CoverEnqueuer, PrefetchEnqueuer: task queue producers
//   - TaskStatusReader, PrefetchRunner, ProgressReader: task endpoints (internal/http/tasks.go)
//   - ProgressReporter: bulk prefetch progress (internal/tasks/prefetch.go)
//
// # Adding a New Catalog Source
//
// To search another catalog (e.g., Google Books):
//
//  1. Implement CatalogSearcher in internal/catalog/
//
//     type GoogleBooksClient struct {
//         apiKey     string
//         httpClient *http.Client
//     }
//
//     func (c *GoogleBooksClient) Search(ctx context.Context, query string) ([]Candidate, error)
//     func (c *GoogleBooksClient) SearchByISBN(ctx context.Context, isbn string) ([]Candidate, error)
//
//  2. Add a check to checks.go and pass the client to services.NewBookService in entrypoint.go
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the consumer interface in internal/http/ or internal/services/
//
//  4. Add compile-time check to checks.go:
//
//     var _ http.SomeStore = (*Repository)(nil)
package interfaces
