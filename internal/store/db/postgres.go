package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Queries is the pgx-backed implementation of Querier. Construction mirrors
// apps/iam-service/cmd/api/main.go: parse the DSN, attach the otelpgx
// tracer, then open the pool.
type Queries struct {
	pool *pgxpool.Pool
}

// Connect opens an OTel-instrumented pgxpool against dsn.
func Connect(ctx context.Context, dsn string) (*Queries, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return &Queries{pool: pool}, nil
}

// New wraps an already-constructed pool.
func New(pool *pgxpool.Pool) *Queries { return &Queries{pool: pool} }

func (q *Queries) Close() { q.pool.Close() }

func (q *Queries) UpsertOccurrence(ctx context.Context, o Occurrence) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO occurrences (
			uri, cid, author_did, event_time, latitude, longitude,
			coordinate_uncertainty_m, continent, country, country_code,
			state_province, county, municipality, locality, water_body,
			verbatim_locality, remarks, associated_media, geom, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, ST_SetSRID(ST_MakePoint($6, $5), 4326), COALESCE($19, now())
		)
		ON CONFLICT (uri) DO UPDATE SET
			cid = EXCLUDED.cid,
			author_did = EXCLUDED.author_did,
			event_time = EXCLUDED.event_time,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			coordinate_uncertainty_m = EXCLUDED.coordinate_uncertainty_m,
			continent = EXCLUDED.continent,
			country = EXCLUDED.country,
			country_code = EXCLUDED.country_code,
			state_province = EXCLUDED.state_province,
			county = EXCLUDED.county,
			municipality = EXCLUDED.municipality,
			locality = EXCLUDED.locality,
			water_body = EXCLUDED.water_body,
			verbatim_locality = EXCLUDED.verbatim_locality,
			remarks = EXCLUDED.remarks,
			associated_media = EXCLUDED.associated_media,
			geom = ST_SetSRID(ST_MakePoint(EXCLUDED.longitude, EXCLUDED.latitude), 4326)
	`,
		o.URI, o.CID, o.AuthorDID, o.EventTime, o.Latitude, o.Longitude,
		o.CoordinateUncertaintyM, o.Continent, o.Country, o.CountryCode,
		o.StateProvince, o.County, o.Municipality, o.Locality, o.WaterBody,
		o.VerbatimLocality, o.Remarks, nullableJSON(o.AssociatedMedia), o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert occurrence %s: %w", o.URI, err)
	}
	return nil
}

func (q *Queries) DeleteOccurrence(ctx context.Context, uri string) error {
	// observer rows cascade via the FK on observers.occurrence_uri.
	_, err := q.pool.Exec(ctx, `DELETE FROM occurrences WHERE uri = $1`, uri)
	if err != nil {
		return fmt.Errorf("delete occurrence %s: %w", uri, err)
	}
	return nil
}

func (q *Queries) ReplaceObservers(ctx context.Context, occurrenceURI string, observers []ObserverParams) error {
	tx, err := q.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin observer tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM observers WHERE occurrence_uri = $1`, occurrenceURI); err != nil {
		return fmt.Errorf("clear observers for %s: %w", occurrenceURI, err)
	}
	for _, o := range observers {
		if _, err := tx.Exec(ctx, `
			INSERT INTO observers (occurrence_uri, author_did, role)
			VALUES ($1, $2, $3)
			ON CONFLICT (occurrence_uri, author_did) DO UPDATE SET role = EXCLUDED.role
		`, occurrenceURI, o.AuthorDID, o.Role); err != nil {
			return fmt.Errorf("insert observer %s/%s: %w", occurrenceURI, o.AuthorDID, err)
		}
	}
	return tx.Commit(ctx)
}

func (q *Queries) UpsertIdentification(ctx context.Context, i Identification) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO identifications (
			uri, cid, author_did, subject_uri, subject_cid, subject_index,
			scientific_name, rank, taxon_kingdom, taxon_phylum, taxon_class,
			taxon_order, taxon_family, taxon_genus, taxon_species,
			external_taxon_id, is_agreement, date_identified, remarks,
			confidence, created_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20, COALESCE($21, now())
		)
		ON CONFLICT (uri) DO UPDATE SET
			cid = EXCLUDED.cid,
			subject_uri = EXCLUDED.subject_uri,
			subject_cid = EXCLUDED.subject_cid,
			subject_index = EXCLUDED.subject_index,
			scientific_name = EXCLUDED.scientific_name,
			rank = COALESCE(EXCLUDED.rank, identifications.rank),
			taxon_kingdom = COALESCE(EXCLUDED.taxon_kingdom, identifications.taxon_kingdom),
			taxon_phylum = COALESCE(EXCLUDED.taxon_phylum, identifications.taxon_phylum),
			taxon_class = COALESCE(EXCLUDED.taxon_class, identifications.taxon_class),
			taxon_order = COALESCE(EXCLUDED.taxon_order, identifications.taxon_order),
			taxon_family = COALESCE(EXCLUDED.taxon_family, identifications.taxon_family),
			taxon_genus = COALESCE(EXCLUDED.taxon_genus, identifications.taxon_genus),
			taxon_species = COALESCE(EXCLUDED.taxon_species, identifications.taxon_species),
			external_taxon_id = COALESCE(EXCLUDED.external_taxon_id, identifications.external_taxon_id),
			is_agreement = EXCLUDED.is_agreement,
			date_identified = EXCLUDED.date_identified,
			remarks = EXCLUDED.remarks,
			confidence = EXCLUDED.confidence
	`,
		i.URI, i.CID, i.AuthorDID, i.SubjectURI, i.SubjectCID, i.SubjectIndex,
		i.ScientificName, i.Rank, i.TaxonKingdom, i.TaxonPhylum, i.TaxonClass,
		i.TaxonOrder, i.TaxonFamily, i.TaxonGenus, i.TaxonSpecies,
		i.ExternalTaxonID, i.IsAgreement, i.DateIdentified, i.Remarks,
		i.Confidence, i.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert identification %s: %w", i.URI, err)
	}
	return nil
}

func (q *Queries) DeleteIdentification(ctx context.Context, uri string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM identifications WHERE uri = $1`, uri)
	if err != nil {
		return fmt.Errorf("delete identification %s: %w", uri, err)
	}
	return nil
}

func (q *Queries) GetIdentificationSubject(ctx context.Context, uri string) (string, int32, error) {
	var subjectURI string
	var subjectIndex int32
	err := q.pool.QueryRow(ctx,
		`SELECT subject_uri, subject_index FROM identifications WHERE uri = $1`, uri,
	).Scan(&subjectURI, &subjectIndex)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("get identification subject %s: %w", uri, err)
	}
	return subjectURI, subjectIndex, nil
}

func (q *Queries) ListIdentificationsForSubject(ctx context.Context, subjectURI string, subjectIndex int32) ([]Identification, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT uri, cid, author_did, subject_uri, subject_cid, subject_index,
			scientific_name, rank, taxon_kingdom, taxon_phylum, taxon_class,
			taxon_order, taxon_family, taxon_genus, taxon_species,
			external_taxon_id, is_agreement, date_identified, remarks,
			confidence, created_at
		FROM identifications
		WHERE subject_uri = $1 AND subject_index = $2
	`, subjectURI, subjectIndex)
	if err != nil {
		return nil, fmt.Errorf("list identifications for %s#%d: %w", subjectURI, subjectIndex, err)
	}
	defer rows.Close()

	var out []Identification
	for rows.Next() {
		var i Identification
		if err := rows.Scan(
			&i.URI, &i.CID, &i.AuthorDID, &i.SubjectURI, &i.SubjectCID, &i.SubjectIndex,
			&i.ScientificName, &i.Rank, &i.TaxonKingdom, &i.TaxonPhylum, &i.TaxonClass,
			&i.TaxonOrder, &i.TaxonFamily, &i.TaxonGenus, &i.TaxonSpecies,
			&i.ExternalTaxonID, &i.IsAgreement, &i.DateIdentified, &i.Remarks,
			&i.Confidence, &i.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan identification row: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (q *Queries) UpsertComment(ctx context.Context, c Comment) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO comments (uri, cid, author_did, subject_uri, subject_cid, reply_to_uri, reply_to_cid, body, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8, COALESCE($9, now()))
		ON CONFLICT (uri) DO UPDATE SET
			cid = EXCLUDED.cid,
			subject_uri = EXCLUDED.subject_uri,
			subject_cid = EXCLUDED.subject_cid,
			reply_to_uri = EXCLUDED.reply_to_uri,
			reply_to_cid = EXCLUDED.reply_to_cid,
			body = EXCLUDED.body
	`, c.URI, c.CID, c.AuthorDID, c.SubjectURI, c.SubjectCID, c.ReplyToURI, c.ReplyToCID, c.Body, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert comment %s: %w", c.URI, err)
	}
	return nil
}

func (q *Queries) DeleteComment(ctx context.Context, uri string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM comments WHERE uri = $1`, uri)
	if err != nil {
		return fmt.Errorf("delete comment %s: %w", uri, err)
	}
	return nil
}

func (q *Queries) InsertLikeIgnoreConflict(ctx context.Context, l Like) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO likes (uri, subject_uri, author_did, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
		ON CONFLICT (subject_uri, author_did) DO NOTHING
	`, l.URI, l.SubjectURI, l.AuthorDID, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert like %s: %w", l.URI, err)
	}
	return nil
}

func (q *Queries) DeleteLike(ctx context.Context, uri string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM likes WHERE uri = $1`, uri)
	if err != nil {
		return fmt.Errorf("delete like %s: %w", uri, err)
	}
	return nil
}

func (q *Queries) UpsertInteraction(ctx context.Context, i Interaction) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO interactions (
			uri, cid, author_did,
			subject_a_occurrence_uri, subject_a_index, subject_a_taxon_name, subject_a_kingdom,
			subject_b_occurrence_uri, subject_b_index, subject_b_taxon_name, subject_b_kingdom,
			interaction_type, direction, confidence, comment, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15, COALESCE($16, now()))
		ON CONFLICT (uri) DO UPDATE SET
			subject_a_occurrence_uri = EXCLUDED.subject_a_occurrence_uri,
			subject_a_index = EXCLUDED.subject_a_index,
			subject_a_taxon_name = EXCLUDED.subject_a_taxon_name,
			subject_a_kingdom = EXCLUDED.subject_a_kingdom,
			subject_b_occurrence_uri = EXCLUDED.subject_b_occurrence_uri,
			subject_b_index = EXCLUDED.subject_b_index,
			subject_b_taxon_name = EXCLUDED.subject_b_taxon_name,
			subject_b_kingdom = EXCLUDED.subject_b_kingdom,
			interaction_type = EXCLUDED.interaction_type,
			direction = EXCLUDED.direction,
			confidence = EXCLUDED.confidence,
			comment = EXCLUDED.comment
	`,
		i.URI, i.CID, i.AuthorDID,
		i.SubjectA.OccurrenceURI, i.SubjectA.SubjectIndex, i.SubjectA.TaxonName, i.SubjectA.Kingdom,
		i.SubjectB.OccurrenceURI, i.SubjectB.SubjectIndex, i.SubjectB.TaxonName, i.SubjectB.Kingdom,
		i.Type, i.Direction, i.Confidence, i.Comment, i.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert interaction %s: %w", i.URI, err)
	}
	return nil
}

func (q *Queries) DeleteInteraction(ctx context.Context, uri string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM interactions WHERE uri = $1`, uri)
	if err != nil {
		return fmt.Errorf("delete interaction %s: %w", uri, err)
	}
	return nil
}

func (q *Queries) UpsertCommunityIdentification(ctx context.Context, c CommunityIdentification) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO community_identifications (
			occurrence_uri, subject_index, scientific_name, kingdom, id_count, agreement_count, quality_grade
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (occurrence_uri, subject_index) DO UPDATE SET
			scientific_name = EXCLUDED.scientific_name,
			kingdom = EXCLUDED.kingdom,
			id_count = EXCLUDED.id_count,
			agreement_count = EXCLUDED.agreement_count,
			quality_grade = EXCLUDED.quality_grade
	`, c.OccurrenceURI, c.SubjectIndex, c.ScientificName, c.Kingdom, c.IDCount, c.AgreementCount, c.QualityGrade)
	if err != nil {
		return fmt.Errorf("upsert community identification %s#%d: %w", c.OccurrenceURI, c.SubjectIndex, err)
	}
	return nil
}

func (q *Queries) DeleteCommunityIdentification(ctx context.Context, subjectURI string, subjectIndex int32) error {
	_, err := q.pool.Exec(ctx,
		`DELETE FROM community_identifications WHERE occurrence_uri = $1 AND subject_index = $2`,
		subjectURI, subjectIndex)
	if err != nil {
		return fmt.Errorf("delete community identification %s#%d: %w", subjectURI, subjectIndex, err)
	}
	return nil
}

func (q *Queries) GetCursor(ctx context.Context) (*int64, error) {
	var seq int64
	err := q.pool.QueryRow(ctx, `SELECT sequence FROM cursors WHERE key = $1`, CursorKey).Scan(&seq)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cursor: %w", err)
	}
	return &seq, nil
}

func (q *Queries) UpsertCursor(ctx context.Context, seq int64) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO cursors (key, sequence) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET sequence = EXCLUDED.sequence
		WHERE cursors.sequence IS DISTINCT FROM EXCLUDED.sequence
	`, CursorKey, seq)
	if err != nil {
		return fmt.Errorf("upsert cursor: %w", err)
	}
	return nil
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	// Round-trip through json.RawMessage so pgx sends it as jsonb, not bytea.
	return json.RawMessage(raw)
}
