// Package github implements the GitHub search connector.
//
// The connector runs search queries against the GitHub REST search
// endpoints (code, commits, issues, repositories), draining every
// result page for a query before returning, and owns all rate
// handling so callers never see a rate-limit error.
//
// # Architecture
//
// The connector implements the [driven.RepoSearcher] and
// [driven.RepoInspector] ports. It comprises the following components:
//
//   - Client: GitHub API communication and the pagination loop
//   - RateLimiter: proactive inter-page throttling plus reactive stalls
//   - Config: connection and pagination settings
//
// # Authentication
//
// A bearer token is required; there is no anonymous mode. Authenticated
// requests get 5,000 core requests per hour and 30 search requests per
// minute.
//
// # Rate Limiting
//
// Two cooperating strategies:
//
//  1. Proactive throttling: a token bucket inserts a fixed delay
//     between consecutive page fetches.
//
//  2. Reactive stalling: the client tracks X-RateLimit-Remaining and
//     X-RateLimit-Reset from every response. When the remaining quota
//     falls to the floor, the whole pipeline stalls until the reset
//     time plus a safety margin. The quota is one shared budget, so a
//     stall here intentionally blocks every pending query, not just
//     the current one.
//
// Forbidden responses carrying rate headers take the same stall path
// and the page is retried. Any other failure aborts only the current
// query; accumulated hits are still returned.
package github
