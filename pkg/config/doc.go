// Package config loads expectation suites: files that describe which log
// entries a run must produce and which matching strategy to apply.
//
// Suites are YAML (.yaml, .yml) or JSON (anything else):
//
//	version: "1"
//	strategy: containsInOrder
//	filter:
//	  loggerGlob: "orders.*"
//	expect:
//	  - level: INFO
//	    message: order placed
//	    properties:
//	      - key: orderId
//	        value: "${ORDER_ID:-42}"
//	  - level: ERROR
//	    messages:
//	      - startsWith: "payment"
//	      - matches: "payment .* declined"
//	    error: any
//
// ${VAR} and ${VAR:-default} are expanded from the environment before
// parsing. A loaded suite has been checked against an embedded JSON Schema
// and by Validate, so Expectations cannot fail on it.
package config
