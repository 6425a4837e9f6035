package normalize

import (
	"strings"

	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/store/db"
)

// Like builds a like row. Requires subject.uri and subject.cid (§4.3).
// IsForOccurrence reports whether the like's subject is accepted on
// create/update — likes of non-occurrence subjects are dropped, but
// deletes always flow through regardless of subject (§3, §4.3).
func Like(c jetstream.Commit) (db.Like, bool) {
	rec := c.Record
	if rec == nil {
		return db.Like{}, false
	}

	subject, ok := getMap(rec, "subject")
	if !ok {
		return db.Like{}, false
	}
	subjectURI, ok := getString(subject, "uri")
	if !ok || subjectURI == "" {
		return db.Like{}, false
	}
	if _, ok := getString(subject, "cid"); !ok {
		return db.Like{}, false
	}

	return db.Like{
		URI:        c.URI(),
		SubjectURI: subjectURI,
		AuthorDID:  c.AuthorDID,
		CreatedAt:  c.Time,
	}, true
}

// IsForOccurrence reports whether subjectURI's collection segment is the
// occurrence collection (§4.3: "a like for a subject whose URI does not
// contain the occurrence-collection name is dropped").
func IsForOccurrence(subjectURI string) bool {
	return strings.Contains(subjectURI, "/"+CollectionOccurrence+"/")
}
