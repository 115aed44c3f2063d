// Package verdictdb memoizes (queryHash, variantHash) -> verdict pairs so
// a MatchableQuery reused across a high-volume filtering pipeline can
// skip re-running its engine against a variant it has already decided.
// The matching subsystem itself stays pure and cache-free; this layer is
// an entirely optional decorator a caller wires in front of it.
package verdictdb

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MatchVerdict is one memoized (query, variant) -> bool decision. Tags
// holds arbitrary caller metadata about the decision (which engine kind
// produced it, worker ID, batch run label) the same way the teacher's
// Stage.ConfidenceFactors and Stage.ScopeAST carry free-form JSON
// alongside a row's scalar columns.
type MatchVerdict struct {
	ID          uint           `gorm:"primaryKey"`
	QueryHash   string         `gorm:"type:varchar(40);index:idx_verdict_pair,unique"`
	VariantHash string         `gorm:"type:varchar(40);index:idx_verdict_pair,unique"`
	Verdict     bool
	Tags        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   int64          `gorm:"autoCreateTime"`
}

// TableName pins the table name so renaming this Go type never migrates
// the schema out from under an existing cache file.
func (MatchVerdict) TableName() string {
	return "match_verdicts"
}

// Cache wraps a gorm connection scoped to the match_verdicts table.
type Cache struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the sqlite database at dsn via the
// pure-Go glebarez/sqlite dialector and migrates it.
func Open(dsn string, debug bool) (*Cache, error) {
	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("verdictdb: failed to open %s: %w", dsn, err)
	}

	if err := db.AutoMigrate(&MatchVerdict{}); err != nil {
		return nil, fmt.Errorf("verdictdb: migration failed: %w", err)
	}

	return &Cache{db: db}, nil
}

// Lookup reports a previously stored verdict for the pair, and whether
// one was found at all.
func (c *Cache) Lookup(queryHash, variantHash string) (verdict bool, ok bool, err error) {
	var row MatchVerdict
	res := c.db.Where("query_hash = ? AND variant_hash = ?", queryHash, variantHash).First(&row)
	if res.Error != nil {
		if res.Error == gorm.ErrRecordNotFound {
			return false, false, nil
		}
		return false, false, fmt.Errorf("verdictdb: lookup failed: %w", res.Error)
	}
	return row.Verdict, true, nil
}

// Store memoizes a verdict for the pair, overwriting any prior entry.
func (c *Cache) Store(queryHash, variantHash string, verdict bool) error {
	return c.StoreWithTags(queryHash, variantHash, verdict, nil)
}

// StoreWithTags is Store plus an arbitrary JSON payload of caller
// metadata about the decision.
func (c *Cache) StoreWithTags(queryHash, variantHash string, verdict bool, tags datatypes.JSON) error {
	row := MatchVerdict{QueryHash: queryHash, VariantHash: variantHash, Verdict: verdict, Tags: tags}
	res := c.db.Where("query_hash = ? AND variant_hash = ?", queryHash, variantHash).
		Assign(map[string]interface{}{"verdict": verdict, "tags": tags}).
		FirstOrCreate(&row)
	if res.Error != nil {
		return fmt.Errorf("verdictdb: store failed: %w", res.Error)
	}
	return nil
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
