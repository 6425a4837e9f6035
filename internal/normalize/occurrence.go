package normalize

import (
	"encoding/json"

	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/store/db"
)

// Occurrence builds an occurrence row from a create/update commit. ok is
// false when a required field is missing or invalid (§4.3): latitude and
// longitude must parse as finite numbers and eventDate must be
// RFC3339-parseable. This is the only normalizer with the dedicated
// invariant in spec §3 ("Records missing either coordinate is silently
// dropped") and the boundary case in §8 (lat/lng out of range -> no row).
func Occurrence(c jetstream.Commit) (db.Occurrence, bool) {
	rec := c.Record
	if rec == nil {
		return db.Occurrence{}, false
	}

	loc, ok := getMap(rec, "location")
	if !ok {
		return db.Occurrence{}, false
	}
	lat, ok := getFloat(loc, "decimalLatitude")
	if !ok || lat < -90 || lat > 90 {
		return db.Occurrence{}, false
	}
	lng, ok := getFloat(loc, "decimalLongitude")
	if !ok || lng < -180 || lng > 180 {
		return db.Occurrence{}, false
	}

	eventDateStr, _ := getString(rec, "eventDate")
	eventTime, ok := parseTime(eventDateStr)
	if !ok {
		return db.Occurrence{}, false
	}

	createdAt, ok := parseTime(firstString(rec, "createdAt"))
	if !ok {
		createdAt = eventTime
	}

	o := db.Occurrence{
		URI:                    c.URI(),
		CID:                    c.CID,
		AuthorDID:              c.AuthorDID,
		EventTime:              eventTime,
		Latitude:               lat,
		Longitude:              lng,
		CoordinateUncertaintyM: getFloatPtr(loc, "coordinateUncertaintyInMeters"),
		Continent:              getStringPtr(loc, "continent"),
		Country:                getStringPtr(loc, "country"),
		CountryCode:            getStringPtr(loc, "countryCode"),
		StateProvince:          getStringPtr(loc, "stateProvince"),
		County:                 getStringPtr(loc, "county"),
		Municipality:           getStringPtr(loc, "municipality"),
		Locality:               getStringPtr(loc, "locality"),
		WaterBody:              getStringPtr(loc, "waterBody"),
		VerbatimLocality:       getStringPtr(rec, "verbatimLocality"),
		Remarks:                getStringPtr(rec, "remarks"),
		CreatedAt:              createdAt,
	}

	if blobs, ok := rec["blobs"]; ok && blobs != nil {
		if raw, err := json.Marshal(blobs); err == nil {
			o.AssociatedMedia = raw
		}
	}

	return o, true
}

// Observers derives the observer join rows for an occurrence commit: the
// author is always owner, and every DID in recordedBy (excluding the
// author) becomes a co-observer (§3 "Observer").
func Observers(c jetstream.Commit) []db.ObserverParams {
	rows := []db.ObserverParams{{AuthorDID: c.AuthorDID, Role: db.ObserverRoleOwner}}

	recordedBy, ok := getSlice(c.Record, "recordedBy")
	if !ok {
		return rows
	}
	seen := map[string]bool{c.AuthorDID: true}
	for _, v := range recordedBy {
		did, ok := v.(string)
		if !ok || did == "" || seen[did] {
			continue
		}
		seen[did] = true
		rows = append(rows, db.ObserverParams{AuthorDID: did, Role: db.ObserverRoleCoObserver})
	}
	return rows
}

func firstString(rec map[string]any, key string) string {
	s, _ := getString(rec, key)
	return s
}
