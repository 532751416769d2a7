package query

/*
	Package query wraps the official mongo driver behind a small interface so
	stores never touch collections directly. Every call is bounded by
	queryMaxTime, measured, and slow-logged. When checkIndex is enabled the
	read paths run an explain first and reject collection scans.

	Driver reference: https://godoc.org/go.mongodb.org/mongo-driver/mongo
*/

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/gavelhouse/goapi/base/ctx"
	"github.com/gavelhouse/goapi/domain"
)

var (
	// ErrNotFound is returned when no document matches the selector
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is returned when a write violates a unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")

	// ErrCollScan is returned when checkIndex rejects an unindexed query
	ErrCollScan = fmt.Errorf("COLLSCAN is not allowed")
)

// Mongo abstracts the mongo layer.
type Mongo interface {
	// Insert inserts a new document into the table
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne reads a single document from the table
	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	// Count returns the number of documents matching the selector
	// https://docs.mongodb.com/manual/reference/method/db.collection.countDocuments
	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Upsert replaces the document matching the selector, inserting it when
	// no document matches
	Upsert(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search pages through matching documents ordered by `sort` ("field"
	// ascending, "-field" descending). An empty sort skips ordering and
	// mongo does not guarantee the result order.
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// SearchNSorts sorts with multiple fields. With a compound index the
	// field order must follow the index order.
	// https://docs.mongodb.com/manual/tutorial/sort-results-with-indexes/
	SearchNSorts(context ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, query, results interface{}) error

	// Remove deletes an entry from the table.
	// Returns ErrNotFound if the selector does not match any document
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	// Patch applies a $set update to the matching entry.
	// Returns ErrNotFound if the selector does not match any document
	Patch(context ctx.Ctx, table domain.Table, selector, update interface{}) error

	// CustomPatch applies a caller-built update document, for operators $set
	// alone cannot express. Returns ErrNotFound if upsert is false and the
	// selector does not match any document
	CustomPatch(context ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error

	// RunWithTransaction runs `run` inside a mongo session, writes issued
	// through the bound ctx commit or roll back as a unit
	RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error
}
