package normalize

import (
	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/store/db"
)

// Identification builds an identification row. Requires subject.uri,
// subject.cid, and taxon.scientificName (§4.3); subjectIndex defaults to 0.
func Identification(c jetstream.Commit) (db.Identification, bool) {
	rec := c.Record
	if rec == nil {
		return db.Identification{}, false
	}

	subject, ok := getMap(rec, "subject")
	if !ok {
		return db.Identification{}, false
	}
	subjectURI, ok := getString(subject, "uri")
	if !ok || subjectURI == "" {
		return db.Identification{}, false
	}
	subjectCID, ok := getString(subject, "cid")
	if !ok || subjectCID == "" {
		return db.Identification{}, false
	}

	taxon, ok := getMap(rec, "taxon")
	if !ok {
		return db.Identification{}, false
	}
	sciName, ok := getString(taxon, "scientificName")
	if !ok || sciName == "" {
		return db.Identification{}, false
	}

	dateIdentified, ok := parseTime(firstString(rec, "createdAt"))
	if !ok {
		dateIdentified = c.Time
	}

	return db.Identification{
		URI:             c.URI(),
		CID:             c.CID,
		AuthorDID:       c.AuthorDID,
		SubjectURI:      subjectURI,
		SubjectCID:      subjectCID,
		SubjectIndex:    getInt32(rec, "subjectIndex", 0),
		ScientificName:  sciName,
		Rank:            getStringPtr(taxon, "rank"),
		TaxonKingdom:    getStringPtr(taxon, "kingdom"),
		TaxonPhylum:     getStringPtr(taxon, "phylum"),
		TaxonClass:      getStringPtr(taxon, "class"),
		TaxonOrder:      getStringPtr(taxon, "order"),
		TaxonFamily:     getStringPtr(taxon, "family"),
		TaxonGenus:      getStringPtr(taxon, "genus"),
		TaxonSpecies:    getStringPtr(taxon, "species"),
		ExternalTaxonID: getStringPtr(taxon, "taxonID"),
		IsAgreement:     getBool(rec, "isAgreement"),
		DateIdentified:  dateIdentified,
		Remarks:         getStringPtr(rec, "remarks"),
		Confidence:      getFloatPtr(rec, "confidence"),
		CreatedAt:       c.Time,
	}, true
}
