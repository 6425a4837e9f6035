package normalize

// Collection NSIDs the ingester understands, matching the glossary's
// example namespace (spec GLOSSARY: "Collection ... e.g.,
// org.rwell.test.occurrence").
const (
	CollectionOccurrence     = "org.rwell.test.occurrence"
	CollectionIdentification = "org.rwell.test.identification"
	CollectionComment        = "org.rwell.test.comment"
	CollectionLike           = "org.rwell.test.like"
	CollectionInteraction    = "org.rwell.test.interaction"
)

// WantedCollections is the full collection list the subscription client
// requests from the relay.
var WantedCollections = []string{
	CollectionOccurrence,
	CollectionIdentification,
	CollectionComment,
	CollectionLike,
	CollectionInteraction,
}
