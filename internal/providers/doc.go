// Package providers contains the HTTP clients for the external metadata
// services used to enrich indexed media files.
//
// Three independent clients are provided:
//
//   - [OMDbClient] looks up structured movie/series metadata (title, year,
//     plot, cast, poster) by title.
//   - [TVMazeClient] looks up show and episode detail for series.
//   - [WikidataClient] is the fallback, answering a single SPARQL query for
//     a title, an image, and an entity identifier.
//
// Every outbound call passes through the client's rate limiter before the
// request is issued, including retries. A lookup that finds nothing returns
// (nil, nil); an error is returned only for transport or decoding failures.
package providers
