package vcfld

import (
	"fmt"
	"strings"
	"time"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
)

const sitesSchema = `
DROP TABLE IF EXISTS Metadata;
DROP TABLE IF EXISTS Variant;
CREATE TABLE Metadata (
	filename TEXT NOT NULL,
	number_of_samples INTEGER NOT NULL,
	index_creation_time INTEGER NOT NULL
);
CREATE TABLE Variant (
	chromosome TEXT NOT NULL,
	position INTEGER NOT NULL,
	number_of_ref_haplotypes INTEGER NOT NULL,
	number_of_alt_haplotypes INTEGER NOT NULL,
	number_of_missing_haplotypes INTEGER NOT NULL
);
`

// SiteIndex conforms to the rows of the SQLite table "Variant" in a sites
// index, and can be easily parsed with sqlx.
type SiteIndex struct {
	Chromosome string `db:"chromosome"`
	Position   int    `db:"position"`
	NRef       int    `db:"number_of_ref_haplotypes"`
	NAlt       int    `db:"number_of_alt_haplotypes"`
	NMissing   int    `db:"number_of_missing_haplotypes"`
}

// SitesMetadata conforms to the single row of the SQLite table "Metadata".
type SitesMetadata struct {
	Filename          string `db:"filename"`
	NSamples          int    `db:"number_of_samples"`
	IndexCreationTime Time   `db:"index_creation_time"`
}

// SitesIndex is a SQLite database with one row per variant read, recording
// how many haplotypes carry each allele.
type SitesIndex struct {
	DB       *sqlx.DB
	Metadata *SitesMetadata

	tx   *sqlx.Tx
	stmt *sqlx.Stmt
}

func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}

func sqliteURI(path string) string {
	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	return path
}

// CreateSitesIndex creates (or replaces) the sites tables at path. Rows added
// with Add are committed by Close.
func CreateSitesIndex(path, filename string, nSamples int) (*SitesIndex, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if _, err := db.Exec(sitesSchema); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	idx := &SitesIndex{
		DB: db,
		Metadata: &SitesMetadata{
			Filename:          filename,
			NSamples:          nSamples,
			IndexCreationTime: Time(time.Now()),
		},
	}

	if _, err := db.Exec("INSERT INTO Metadata (filename, number_of_samples, index_creation_time) VALUES (?, ?, ?)",
		filename, nSamples, time.Time(idx.Metadata.IndexCreationTime).Unix()); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	idx.tx, err = db.Beginx()
	if err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	idx.stmt, err = idx.tx.Preparex(`INSERT INTO Variant (chromosome, position, number_of_ref_haplotypes,
		number_of_alt_haplotypes, number_of_missing_haplotypes) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		idx.tx.Rollback()
		db.Close()
		return nil, pfx.Err(err)
	}

	return idx, nil
}

// OpenSitesIndex opens an existing sites index for reading.
func OpenSitesIndex(path string) (*SitesIndex, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	idx := &SitesIndex{
		DB:       db,
		Metadata: &SitesMetadata{},
	}

	if err := idx.DB.Get(idx.Metadata, "SELECT * FROM Metadata LIMIT 1"); err != nil {
		db.Close()
		return nil, pfx.Err(fmt.Errorf("%s does not look like a sites index: %w", path, err))
	}

	return idx, nil
}

// Add records one variant. It is only valid on an index made by
// CreateSitesIndex.
func (s *SitesIndex) Add(v *Variant) error {
	if s.stmt == nil {
		return pfx.Err(fmt.Errorf("sites index is not open for writing"))
	}

	ref, alt, missing := v.HaplotypeCounts()
	if _, err := s.stmt.Exec(v.Chromosome, v.Position, ref, alt, missing); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// Sites returns every recorded variant in insertion order.
func (s *SitesIndex) Sites() ([]SiteIndex, error) {
	if s.tx != nil {
		return nil, pfx.Err(fmt.Errorf("sites index is still being written"))
	}

	var out []SiteIndex
	if err := s.DB.Select(&out, "SELECT * FROM Variant ORDER BY rowid ASC"); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// Close commits pending rows, if any, and closes the database.
func (s *SitesIndex) Close() error {
	var err error
	if s.stmt != nil {
		s.stmt.Close()
		s.stmt = nil
	}
	if s.tx != nil {
		err = s.tx.Commit()
		s.tx = nil
	}

	if cerr := s.DB.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return pfx.Err(err)
	}

	return nil
}

// SitesRecorder passes variants through from a source, adding each one to a
// sites index on the way.
type SitesRecorder struct {
	src   VariantSource
	index *SitesIndex
	err   error
}

func NewSitesRecorder(src VariantSource, index *SitesIndex) *SitesRecorder {
	return &SitesRecorder{src: src, index: index}
}

func (r *SitesRecorder) Read() *Variant {
	if r.err != nil {
		return nil
	}

	v := r.src.Read()
	if v == nil {
		return nil
	}

	if err := r.index.Add(v); err != nil {
		r.err = err
		return nil
	}

	return v
}

func (r *SitesRecorder) Error() error {
	if r.err != nil {
		return r.err
	}

	return r.src.Error()
}
