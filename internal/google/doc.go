// Package google handles OAuth2 authentication against Google for the
// calendar gateway.
//
// Tokens are stored per account under the user cache directory, so one
// installation can hold credentials for every calendar user on the roster
// (token_user1.json, token_user2.json, ...). The TokenProvider interface
// lets tests and alternative deployments substitute their own source.
package google
