package normalize

import (
	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/store/db"
)

// Comment builds a comment row. Requires subject.uri and body (§4.3);
// replyTo is optional and carried whole (both URI and CID) when present.
// Length validation (1..3000) is enforced only at the HTTP write boundary,
// not here — the ingester accepts whatever the firehose delivers (§4.3).
func Comment(c jetstream.Commit) (db.Comment, bool) {
	rec := c.Record
	if rec == nil {
		return db.Comment{}, false
	}

	subject, ok := getMap(rec, "subject")
	if !ok {
		return db.Comment{}, false
	}
	subjectURI, ok := getString(subject, "uri")
	if !ok || subjectURI == "" {
		return db.Comment{}, false
	}
	subjectCID, _ := getString(subject, "cid")

	body, ok := getString(rec, "body")
	if !ok {
		return db.Comment{}, false
	}

	out := db.Comment{
		URI:        c.URI(),
		CID:        c.CID,
		AuthorDID:  c.AuthorDID,
		SubjectURI: subjectURI,
		SubjectCID: subjectCID,
		Body:       body,
		CreatedAt:  c.Time,
	}

	if reply, ok := getMap(rec, "replyTo"); ok {
		if uri, ok := getString(reply, "uri"); ok && uri != "" {
			out.ReplyToURI = &uri
			if cid, ok := getString(reply, "cid"); ok {
				out.ReplyToCID = &cid
			}
		}
	}

	if createdAt, ok := parseTime(firstString(rec, "createdAt")); ok {
		out.CreatedAt = createdAt
	}

	return out, true
}
