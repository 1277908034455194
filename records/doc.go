// Package records implements the payload codecs of common well-known record
// types. Importing it registers Text, URI and Smart Poster records with
// ndef.DefaultRegistry:
//
//	import _ "ndefkit/records"
//
// Other registries can be populated with Register.
package records
