// Package community implements the community-identification materializer
// (C5): the per-subject consensus algorithm and the concurrent refresh that
// runs it after every identification write.
package community

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/observ-ing/core-sub000/internal/store/db"
)

// taxonKey normalizes (scientificName, kingdom) so cross-kingdom homonyms
// don't count together (§4.5 step 2).
type taxonKey struct {
	name    string
	kingdom string
}

// Result is the outcome of running the consensus algorithm over one
// subject's identifications.
type Result struct {
	ScientificName string
	Kingdom        string
	IDCount        int32 // deduplicated-by-author total
	WinnerCount    int32
	Grade          db.QualityGrade
}

// Compute runs the authoritative algorithm from §4.5 over the given set of
// identifications, which must all share one (subject-URI, subject-index).
// ok is false when ids is empty (no identifications — caller should delete
// any existing materialized row rather than write a Casual one with no
// taxon).
func Compute(ids []db.Identification) (Result, bool) {
	if len(ids) == 0 {
		return Result{}, false
	}

	// Step 1: dedupe by author, keeping the latest dateIdentified. A later
	// identification from the same author supersedes an earlier one (§8
	// boundary behavior). On an exact dateIdentified tie (unspecified by the
	// algorithm), the more specific rank wins so that, e.g., a species-level
	// correction submitted in the same batch as a genus-level placeholder
	// is the one that counts.
	latest := make(map[string]db.Identification, len(ids))
	for _, id := range ids {
		cur, ok := latest[id.AuthorDID]
		if !ok || supersedes(id, cur) {
			latest[id.AuthorDID] = id
		}
	}

	// Step 2: group by normalized taxon key, preserving first-seen order so
	// ties break deterministically on the first-encountered group (§4.5
	// step 3).
	type group struct {
		key     taxonKey
		name    string
		kingdom string
		count   int32
	}
	order := make([]taxonKey, 0, len(latest))
	groups := make(map[taxonKey]*group, len(latest))
	for _, id := range orderedByAuthor(latest) {
		k := taxonKey{
			name:    strings.ToLower(id.ScientificName),
			kingdom: strings.ToLower(derefOr(id.TaxonKingdom, "")),
		}
		g, ok := groups[k]
		if !ok {
			g = &group{key: k, name: id.ScientificName, kingdom: derefOr(id.TaxonKingdom, "")}
			groups[k] = g
			order = append(order, k)
		}
		g.count++
	}

	// Step 3: pick the winner — highest count, ties broken by the
	// first-encountered group at the top count.
	var winner *group
	for _, k := range order {
		g := groups[k]
		if winner == nil || g.count > winner.count {
			winner = g
		}
	}

	total := int32(len(latest))
	confidence := float64(winner.count) / float64(total)

	grade := db.QualityNeedsID
	if total >= 2 && confidence >= 2.0/3.0 {
		grade = db.QualityResearch
	}

	return Result{
		ScientificName: winner.name,
		Kingdom:        winner.kingdom,
		IDCount:        total,
		WinnerCount:    winner.count,
		Grade:          grade,
	}, true
}

// orderedByAuthor returns the deduplicated-by-author identifications in a
// stable order (by author DID) so group discovery order is deterministic
// across calls — needed for the tie-break rule to be reproducible in tests.
func orderedByAuthor(byAuthor map[string]db.Identification) []db.Identification {
	keys := make([]string, 0, len(byAuthor))
	for k := range byAuthor {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]db.Identification, 0, len(keys))
	for _, k := range keys {
		out = append(out, byAuthor[k])
	}
	return out
}

// supersedes reports whether candidate should replace existing as an
// author's latest identification: later dateIdentified wins outright; on an
// exact tie, the more specific rank wins (see Compute's step 1).
func supersedes(candidate, existing db.Identification) bool {
	if candidate.DateIdentified.After(existing.DateIdentified) {
		return true
	}
	if candidate.DateIdentified.Equal(existing.DateIdentified) {
		return IsMoreSpecific(derefOr(candidate.Rank, ""), derefOr(existing.Rank, ""))
	}
	return false
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

// Refresh recomputes and upserts the community identification for one
// subject, deleting the row if no identifications remain (§4.5, §4.4 "on
// any write or delete, triggers a refresh").
func Refresh(ctx context.Context, q db.Querier, subjectURI string, subjectIndex int32) error {
	ids, err := q.ListIdentificationsForSubject(ctx, subjectURI, subjectIndex)
	if err != nil {
		return fmt.Errorf("list identifications for %s#%d: %w", subjectURI, subjectIndex, err)
	}

	result, ok := Compute(ids)
	if !ok {
		if err := q.DeleteCommunityIdentification(ctx, subjectURI, subjectIndex); err != nil {
			return fmt.Errorf("delete community identification %s#%d: %w", subjectURI, subjectIndex, err)
		}
		return nil
	}

	row := db.CommunityIdentification{
		OccurrenceURI:  subjectURI,
		SubjectIndex:   subjectIndex,
		ScientificName: result.ScientificName,
		Kingdom:        result.Kingdom,
		IDCount:        result.IDCount,
		AgreementCount: result.WinnerCount,
		QualityGrade:   result.Grade,
	}
	if err := q.UpsertCommunityIdentification(ctx, row); err != nil {
		return fmt.Errorf("upsert community identification %s#%d: %w", subjectURI, subjectIndex, err)
	}
	return nil
}
