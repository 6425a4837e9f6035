package normalize

import (
	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/store/db"
)

// Interaction builds an interaction row. Both subject slots may
// independently carry an occurrence-ref, a subject-index, a taxon-name and
// a kingdom; direction defaults to AtoB (§4.3).
func Interaction(c jetstream.Commit) (db.Interaction, bool) {
	rec := c.Record
	if rec == nil {
		return db.Interaction{}, false
	}

	subjectA, ok := getMap(rec, "subjectA")
	if !ok {
		return db.Interaction{}, false
	}
	subjectB, ok := getMap(rec, "subjectB")
	if !ok {
		return db.Interaction{}, false
	}
	interactionType, ok := getString(rec, "interactionType")
	if !ok || interactionType == "" {
		return db.Interaction{}, false
	}

	direction, ok := getString(rec, "direction")
	if !ok || direction == "" {
		direction = "a_to_b"
	}

	return db.Interaction{
		URI:        c.URI(),
		CID:        c.CID,
		AuthorDID:  c.AuthorDID,
		SubjectA:   interactionSubject(subjectA),
		SubjectB:   interactionSubject(subjectB),
		Type:       interactionType,
		Direction:  direction,
		Confidence: getFloatPtr(rec, "confidence"),
		Comment:    getStringPtr(rec, "comment"),
		CreatedAt:  c.Time,
	}, true
}

func interactionSubject(m map[string]any) db.InteractionSubject {
	var s db.InteractionSubject
	if occ, ok := getMap(m, "occurrence"); ok {
		if uri, ok := getString(occ, "uri"); ok && uri != "" {
			s.OccurrenceURI = &uri
		}
		if _, present := occ["subjectIndex"]; present {
			idx := getInt32(occ, "subjectIndex", 0)
			s.SubjectIndex = &idx
		}
	}
	s.TaxonName = getStringPtr(m, "taxonName")
	s.Kingdom = getStringPtr(m, "kingdom")
	return s
}
