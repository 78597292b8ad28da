// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── errors.go        # gorm/sqlite error -> domain error translation
//	├── books/           # Book catalog records (find-or-create)
//	├── library/         # Library entries: status, progress, rating
//	├── categories/      # TBR categories and entry assignments
//	├── notes/           # Reading notes attached to library entries
//	├── clubs/           # Book clubs, members, suggestions, votes, comments
//	├── profiles/        # User profiles shown to club members
//	└── progress/        # Bulk cover prefetch progress
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./ruckus.db")
//
//	libraryRepo := library.NewRepository(db.DB)
//	categoriesRepo := categories.NewRepository(db.DB)
//
//	entry, err := libraryRepo.AddEntry(ctx, userID, bookID, entities.StatusWantToRead)
//	err = categoriesRepo.SetEntryCategories(ctx, entry.ID, []string{kindleID})
//
// # Errors
//
// Repositories never return raw gorm errors. Every failure is passed through
// TranslateError so callers can match on internal/errors sentinels:
//
//   - gorm.ErrRecordNotFound, foreign key violations: errors.ErrNotFound
//   - unique constraint violations: errors.ErrDuplicateEntry
//   - anything else: errors.ErrStoreUnavailable
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the entity to Models in database.go
//  5. Add compile-time interface check: var _ SomeInterface = (*Repository)(nil)
package database
