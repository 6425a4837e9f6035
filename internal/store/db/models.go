// Package db holds the row types and the Querier interface for the six
// record tables (occurrences, observers, identifications, comments, likes,
// interactions) plus the community-identification materialization and the
// cursor checkpoint row. It is written by hand in the shape sqlc would
// generate (param structs, row structs, a narrow Querier interface) because
// the pipeline has no migrations/codegen step in scope (spec §1 Out of
// scope), but the teacher's services are universally built against
// generated code of exactly this shape.
package db

import "time"

// Occurrence is one biodiversity observation row.
type Occurrence struct {
	URI                     string
	CID                     string
	AuthorDID               string
	EventTime               time.Time
	Latitude                float64
	Longitude               float64
	CoordinateUncertaintyM  *float64
	Continent               *string
	Country                 *string
	CountryCode             *string
	StateProvince           *string
	County                  *string
	Municipality            *string
	Locality                *string
	WaterBody               *string
	VerbatimLocality        *string
	Remarks                 *string
	AssociatedMedia         []byte // raw JSON, stored verbatim
	CreatedAt               time.Time
}

// Identification is one taxonomic claim about a subject within an occurrence.
type Identification struct {
	URI             string
	CID             string
	AuthorDID       string
	SubjectURI      string
	SubjectCID      string
	SubjectIndex    int32
	ScientificName  string
	Rank            *string
	TaxonKingdom    *string
	TaxonPhylum     *string
	TaxonClass      *string
	TaxonOrder      *string
	TaxonFamily     *string
	TaxonGenus      *string
	TaxonSpecies    *string
	ExternalTaxonID *string
	IsAgreement     bool
	DateIdentified  time.Time
	Remarks         *string
	Confidence      *float64
	CreatedAt       time.Time
}

// Comment is a threaded text record attached to a subject URI.
type Comment struct {
	URI         string
	CID         string
	AuthorDID   string
	SubjectURI  string
	SubjectCID  string
	ReplyToURI  *string
	ReplyToCID  *string
	Body        string
	CreatedAt   time.Time
}

// Like is a unary endorsement of a subject, unique per (subject, author).
type Like struct {
	URI        string
	SubjectURI string
	AuthorDID  string
	CreatedAt  time.Time
}

// InteractionSubject is one of the two organism slots in an interaction edge.
type InteractionSubject struct {
	OccurrenceURI *string
	SubjectIndex  *int32
	TaxonName     *string
	Kingdom       *string
}

// Interaction is an edge between two organism subjects.
type Interaction struct {
	URI         string
	CID         string
	AuthorDID   string
	SubjectA    InteractionSubject
	SubjectB    InteractionSubject
	Type        string
	Direction   string
	Confidence  *float64
	Comment     *string
	CreatedAt   time.Time
}

// ObserverRole enumerates the join table's role column.
type ObserverRole string

const (
	ObserverRoleOwner       ObserverRole = "owner"
	ObserverRoleCoObserver  ObserverRole = "co-observer"
)

// Observer is a join row between an occurrence and a contributing author.
type Observer struct {
	OccurrenceURI string
	AuthorDID     string
	Role          ObserverRole
}

// QualityGrade is the derived label attached to a CommunityIdentification.
type QualityGrade string

const (
	QualityResearch QualityGrade = "research"
	QualityNeedsID  QualityGrade = "needs_id"
	QualityCasual   QualityGrade = "casual"
)

// CommunityIdentification is the per-subject consensus projection.
type CommunityIdentification struct {
	OccurrenceURI   string
	SubjectIndex    int32
	ScientificName  string
	Kingdom         string
	IDCount         int32
	AgreementCount  int32
	QualityGrade    QualityGrade
}

// CursorKey is the fixed single-row key for the checkpoint record.
const CursorKey = "cursor"
